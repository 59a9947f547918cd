// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot defines the ordered, identity-keyed description of a
// sectioned list that the diff engine compares and the data source applies.
// A Snapshot is built through its mutating operations, handed to a data
// source, and from then on treated as a value: the data source clones on
// ingest, so later caller-side mutation never leaks into applied state.
//
// Identity rules are the caller's contract: a section identifier may appear
// at most once per snapshot, and an item identifier at most once across the
// whole snapshot, not just within its section. Mutating operations enforce
// both and treat a violation as a programmer error (panic with
// *InvariantError), never as a recoverable condition.
package snapshot
