// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package feed supplies the demo service board behind the watch and explain
// commands: ordered regions, each holding ordered service instances.
//
// Boards load from a JSON file (or the embedded seed board) and convert to
// snapshots with regions as sections, instances as items, and a fingerprint
// of the displayed fields as each item's payload. A content change therefore
// surfaces as a reload without the feed tracking revisions itself.
//
// The Simulator mutates a board deterministically from a seed so watch
// sessions replay and explain fixtures can be regenerated.
package feed
