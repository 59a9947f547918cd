// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"fmt"
	"strings"
)

// SectionEdit is a single section delete or insert. Index addresses the old
// ordering for deletes and the new ordering for inserts.
type SectionEdit[S comparable] struct {
	Index int
	ID    S
}

// SectionMove relocates a retained section from its old position to its new
// one.
type SectionMove[S comparable] struct {
	From int
	To   int
	ID   S
}

// ItemEdit is a single item delete, insert, or reload within one section.
// Index addresses the old item ordering for deletes and reloads and the new
// ordering for inserts.
type ItemEdit[I comparable] struct {
	Index int
	ID    I
}

// ItemMove relocates a retained item from its old position to its new one
// within the same section.
type ItemMove[I comparable] struct {
	From int
	To   int
	ID   I
}

// ItemEdits groups the item-level edits of one section present in both
// snapshots. OldSection and NewSection are the section's positions in the
// two orderings; they are equal when the section did not move.
type ItemEdits[S comparable, I comparable] struct {
	SectionID  S
	OldSection int
	NewSection int

	Deletes []ItemEdit[I]
	Inserts []ItemEdit[I]
	Moves   []ItemMove[I]
	Reloads []ItemEdit[I]
}

// empty reports whether the group carries no edits at all.
func (g *ItemEdits[S, I]) empty() bool {
	return len(g.Deletes) == 0 && len(g.Inserts) == 0 && len(g.Moves) == 0 && len(g.Reloads) == 0
}

// Changeset is the ordered edit script between two snapshots. Section edits
// come first, then one ItemEdits group per affected section, ascending by
// old section position. A changeset is produced by Between, handed to the
// collaborator that applies it, and then discarded; it is never retained
// across applies.
type Changeset[S comparable, I comparable] struct {
	SectionDeletes []SectionEdit[S]
	SectionInserts []SectionEdit[S]
	SectionMoves   []SectionMove[S]
	ItemEdits      []ItemEdits[S, I]
}

// IsEmpty reports whether the changeset carries no edits.
func (c *Changeset[S, I]) IsEmpty() bool {
	if len(c.SectionDeletes) > 0 || len(c.SectionInserts) > 0 || len(c.SectionMoves) > 0 {
		return false
	}
	for i := range c.ItemEdits {
		if !c.ItemEdits[i].empty() {
			return false
		}
	}
	return true
}

// TotalChanges returns the number of individual edits in the changeset.
func (c *Changeset[S, I]) TotalChanges() int {
	n := len(c.SectionDeletes) + len(c.SectionInserts) + len(c.SectionMoves)
	for i := range c.ItemEdits {
		g := &c.ItemEdits[i]
		n += len(g.Deletes) + len(g.Inserts) + len(g.Moves) + len(g.Reloads)
	}
	return n
}

// Summary renders compact edit counts for logging, e.g.
// "sections +1 -1 >0, items +2 -1 >1 ~3". + is insert, - is delete,
// > is move, ~ is reload.
func (c *Changeset[S, I]) Summary() string {
	var di, dd, dm, dr int
	for i := range c.ItemEdits {
		g := &c.ItemEdits[i]
		di += len(g.Inserts)
		dd += len(g.Deletes)
		dm += len(g.Moves)
		dr += len(g.Reloads)
	}
	return fmt.Sprintf("sections +%d -%d >%d, items +%d -%d >%d ~%d",
		len(c.SectionInserts), len(c.SectionDeletes), len(c.SectionMoves),
		di, dd, dm, dr)
}

// String renders every edit on its own line, old-side edits before
// new-side, for logs and test failures.
func (c *Changeset[S, I]) String() string {
	var b strings.Builder
	for _, e := range c.SectionDeletes {
		fmt.Fprintf(&b, "section -%v@%d\n", e.ID, e.Index)
	}
	for _, e := range c.SectionInserts {
		fmt.Fprintf(&b, "section +%v@%d\n", e.ID, e.Index)
	}
	for _, m := range c.SectionMoves {
		fmt.Fprintf(&b, "section >%v %d->%d\n", m.ID, m.From, m.To)
	}
	for i := range c.ItemEdits {
		g := &c.ItemEdits[i]
		for _, e := range g.Deletes {
			fmt.Fprintf(&b, "item -%v@%v[%d]\n", e.ID, g.SectionID, e.Index)
		}
		for _, e := range g.Inserts {
			fmt.Fprintf(&b, "item +%v@%v[%d]\n", e.ID, g.SectionID, e.Index)
		}
		for _, m := range g.Moves {
			fmt.Fprintf(&b, "item >%v@%v %d->%d\n", m.ID, g.SectionID, m.From, m.To)
		}
		for _, e := range g.Reloads {
			fmt.Fprintf(&b, "item ~%v@%v[%d]\n", e.ID, g.SectionID, e.Index)
		}
	}
	return b.String()
}
