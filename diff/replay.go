// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"sort"

	"github.com/difftable/difftable/snapshot"
)

// Replay applies a changeset to an ordered structure the way a view-side
// collaborator applies it to an index-based store: removals first, then
// insertions.
//
// Removals cover deletes and move sources and run in old coordinates,
// highest position first, so earlier positions stay valid while later ones
// disappear. Insertions cover inserts and move destinations and run in new
// coordinates, lowest position first, so each insert lands in a structure
// whose earlier new positions are already final. Item removals run before
// section removals; item insertions run after section insertions, once
// every retained section sits at its new position.
//
// contents supplies the item ordering for inserted sections, looked up by
// section identifier, the way a view queries its data source after a
// structural insert. Reloads do not change structure and are ignored here.
//
// Replaying Between(a, b) over a.Sections() with b supplying inserted
// contents always reproduces b.Sections().
func Replay[S comparable, I comparable](base []snapshot.Section[S, I], cs *Changeset[S, I], contents func(S) []I) []snapshot.Section[S, I] {
	secs := make([]snapshot.Section[S, I], len(base))
	for i, sec := range base {
		secs[i] = snapshot.Section[S, I]{ID: sec.ID, Items: append([]I(nil), sec.Items...)}
	}

	// Item removals, per old section, descending.
	type itemIns struct {
		section int // new section position
		index   int // new item position
		id      I
	}
	var inserts []itemIns
	for gi := range cs.ItemEdits {
		g := &cs.ItemEdits[gi]
		removals := make([]int, 0, len(g.Deletes)+len(g.Moves))
		for _, e := range g.Deletes {
			removals = append(removals, e.Index)
		}
		for _, m := range g.Moves {
			removals = append(removals, m.From)
			inserts = append(inserts, itemIns{section: g.NewSection, index: m.To, id: m.ID})
		}
		for _, e := range g.Inserts {
			inserts = append(inserts, itemIns{section: g.NewSection, index: e.Index, id: e.ID})
		}
		sort.Sort(sort.Reverse(sort.IntSlice(removals)))
		items := secs[g.OldSection].Items
		for _, at := range removals {
			items = append(items[:at], items[at+1:]...)
		}
		secs[g.OldSection].Items = items
	}

	// Section removals, descending old position. Moved sections are set
	// aside with their surviving items and come back during insertion.
	type secIns struct {
		index int // new section position
		sec   snapshot.Section[S, I]
	}
	var secInserts []secIns
	removals := make([]int, 0, len(cs.SectionDeletes)+len(cs.SectionMoves))
	for _, e := range cs.SectionDeletes {
		removals = append(removals, e.Index)
	}
	for _, m := range cs.SectionMoves {
		removals = append(removals, m.From)
		secInserts = append(secInserts, secIns{index: m.To, sec: secs[m.From]})
	}
	for _, e := range cs.SectionInserts {
		ins := snapshot.Section[S, I]{ID: e.ID}
		if contents != nil {
			ins.Items = append([]I(nil), contents(e.ID)...)
		}
		secInserts = append(secInserts, secIns{index: e.Index, sec: ins})
	}
	sort.Sort(sort.Reverse(sort.IntSlice(removals)))
	for _, at := range removals {
		secs = append(secs[:at], secs[at+1:]...)
	}

	// Section insertions, ascending new position.
	sort.Slice(secInserts, func(i, j int) bool { return secInserts[i].index < secInserts[j].index })
	for _, si := range secInserts {
		secs = append(secs[:si.index], append([]snapshot.Section[S, I]{si.sec}, secs[si.index:]...)...)
	}

	// Item insertions, ascending new position within each section.
	sort.Slice(inserts, func(i, j int) bool {
		if inserts[i].section != inserts[j].section {
			return inserts[i].section < inserts[j].section
		}
		return inserts[i].index < inserts[j].index
	})
	for _, ii := range inserts {
		items := secs[ii.section].Items
		secs[ii.section].Items = append(items[:ii.index], append([]I{ii.id}, items[ii.index:]...)...)
	}
	return secs
}

// SectionsEqual reports whether two ordered structures hold the same
// sections with the same item orderings.
func SectionsEqual[S comparable, I comparable](a, b []snapshot.Section[S, I]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || len(a[i].Items) != len(b[i].Items) {
			return false
		}
		for j := range a[i].Items {
			if a[i].Items[j] != b[i].Items[j] {
				return false
			}
		}
	}
	return true
}
