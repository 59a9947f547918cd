// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters provides filtering capabilities for changeset edit records.
//
// The package parses filter expressions to select subsets of edit records
// based on column values. Filters are specified as key-operator-target
// expressions and can be combined using a configurable delimiter (default:
// comma, override via DIFFTABLE_FILTER_DELIM).
//
// Operators include:
//
//   - = : exact match (supports negation with !=)
//   - ^ : prefix match (supports negation with !^)
//   - ~ : case-insensitive match (supports negation with !~)
//   - < : less than (numeric comparison)
//   - > : greater than (numeric comparison)
//   - @ : contains substring (supports negation with !@)
//   - / : regex match (supports negation with !/)
//
// Examples:
//
//   - "kind=insert" : matches edits that insert a section or item
//   - "scope=item" : matches item-level edits only
//   - "id^api-" : matches edits whose identity starts with "api-"
//   - "section!@east" : matches edits whose section does not contain "east"
//   - "from>2" : matches edits originating past index 2
//
// Filter Keys and Attributes:
//
// Filter keys are matched against the OutputKey of attributes (see attrs
// package). The special key "hungarian" checks whether an item edit's id
// embeds its service name ("hungarian=false" keeps ids that break the
// service-prefixed minting convention).
//
// Filter Parsing:
//
// The BuildFilters function parses a comma-delimited (or custom-delimited)
// filter specification string. Invalid specifications (unsupported operands
// or malformed expressions) are logged as warnings and skipped, allowing
// partial filter sets to be processed.
//
// Filter Application:
//
// The apply path, FilterDataset, filters a list of candidate edit records,
// keeping only those that match all provided filter expressions. Attributes
// specified in the attrs parameter determine which record fields are carried
// into the filtered result.
package filters
