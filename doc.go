// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package difftable provides diffable, identity-keyed data sources for
// list and table views on hosts without native automatic diffing.
//
// A caller describes the desired display state as a snapshot: ordered
// sections of ordered item identifiers, plus a payload value per item for
// reload detection. Applying a snapshot to a DataSource diffs it against
// the currently displayed one, hands the resulting changeset to the
// attached view target, and commits. Apply requests are serialized in
// submission order on one worker, so a view is never mutated by
// overlapping updates.
//
// The snapshot value and builder live in the snapshot subpackage, the diff
// engine and changeset model in diff, and a bubbletea view adapter in
// teaview. This package ties them together: the DataSource controller, the
// Target contract, and the identity index over the applied snapshot.
package difftable
