// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package teaview connects a difftable data source to a bubbletea program.
//
// Forward builds the difftable.Target side: it commits each apply and
// forwards the changeset into the program's message loop, preserving apply
// order. Model is the view side: a bubbles-style component that rebuilds
// its rows from the applied snapshot on every update message and uses the
// changeset only to flash the affected rows. Cell content stays out of the
// core: hosts inject a CellRenderer (or a RenderFunc) that binds an item
// identity at a position to its rendered line.
package teaview
