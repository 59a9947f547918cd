// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package diff compares two snapshots and produces the positional edit
// script (a Changeset) that transforms one into the other.
//
// The comparison runs in two phases. The section orderings are diffed
// first; every section present in both snapshots then has its item
// orderings diffed as a matched pair. Each phase matches identities with a
// position index and selects a maximum-weight set of elements to leave in
// place, so an identity that did not change position is never reported as
// moved. Retained identities outside that set become moves, identities
// present on only one side become deletes or inserts, and an unmoved item
// whose payload changed becomes a reload.
//
// Deletes, moves and reloads address the old ordering; inserts and move
// destinations address the new ordering. Replay documents how those
// coordinates compose when the script is applied.
package diff
