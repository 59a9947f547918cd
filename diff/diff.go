// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"sort"

	"github.com/difftable/difftable/snapshot"
)

// Between compares two snapshots and returns the changeset that transforms
// before into after. Both snapshots stay untouched; the result addresses
// before with its old-side coordinates and after with its new-side ones.
//
// Between never fails for snapshots built through the snapshot package,
// whose builders already reject duplicate identities.
func Between[S comparable, I comparable](before, after *snapshot.Snapshot[S, I]) *Changeset[S, I] {
	oldSecs := before.SectionIdentifiers()
	newSecs := after.SectionIdentifiers()
	sc := computeScript(oldSecs, newSecs)

	cs := &Changeset[S, I]{}
	for _, o := range sc.deletes {
		cs.SectionDeletes = append(cs.SectionDeletes, SectionEdit[S]{Index: o, ID: oldSecs[o]})
	}
	for _, n := range sc.inserts {
		cs.SectionInserts = append(cs.SectionInserts, SectionEdit[S]{Index: n, ID: newSecs[n]})
	}
	for _, m := range sc.moves {
		cs.SectionMoves = append(cs.SectionMoves, SectionMove[S]{From: m[0], To: m[1], ID: oldSecs[m[0]]})
	}

	// Every section present in both snapshots, moved or not, has its item
	// orderings diffed as a matched pair.
	matched := append(append([][2]int(nil), sc.stationary...), sc.moves...)
	sort.Slice(matched, func(i, j int) bool { return matched[i][0] < matched[j][0] })

	for _, m := range matched {
		secID := oldSecs[m[0]]
		oldItems, _ := before.ItemIdentifiers(secID)
		newItems, _ := after.ItemIdentifiers(secID)
		isc := computeScript(oldItems, newItems)

		g := ItemEdits[S, I]{SectionID: secID, OldSection: m[0], NewSection: m[1]}
		for _, o := range isc.deletes {
			g.Deletes = append(g.Deletes, ItemEdit[I]{Index: o, ID: oldItems[o]})
		}
		for _, n := range isc.inserts {
			g.Inserts = append(g.Inserts, ItemEdit[I]{Index: n, ID: newItems[n]})
		}
		for _, mv := range isc.moves {
			g.Moves = append(g.Moves, ItemMove[I]{From: mv[0], To: mv[1], ID: oldItems[mv[0]]})
		}
		// A stationary item reloads when its payload changed. A moved item
		// never reloads; the host rebinds it at its new position anyway.
		for _, st := range isc.stationary {
			id := oldItems[st[0]]
			bp, _ := before.Payload(id)
			ap, _ := after.Payload(id)
			if bp != ap {
				g.Reloads = append(g.Reloads, ItemEdit[I]{Index: st[0], ID: id})
			}
		}
		if !g.empty() {
			cs.ItemEdits = append(cs.ItemEdits, g)
		}
	}
	return cs
}

// script is the positional edit script between two orderings of unique
// identities. deletes, moves[i][0] and stationary[i][0] are old positions;
// inserts, moves[i][1] and stationary[i][1] are new positions. All lists
// ascend by their old or new position.
type script struct {
	deletes    []int
	inserts    []int
	moves      [][2]int
	stationary [][2]int
}

// computeScript diffs two orderings of unique identities. It matches
// identities through a position index, selects the maximum-weight set of
// retained elements whose old positions ascend in new order, and reports
// everything outside that set as moved. An element occupying the same
// position on both sides carries a weight exceeding every alternative
// combined, so it can never be displaced into the move list by a cheaper
// chain.
func computeScript[T comparable](oldOrder, newOrder []T) script {
	oldPos := make(map[T]int, len(oldOrder))
	for i, id := range oldOrder {
		oldPos[id] = i
	}

	var sc script
	pairs := make([]pair, 0, len(newOrder))
	retained := make([]bool, len(oldOrder))
	for n, id := range newOrder {
		o, ok := oldPos[id]
		if !ok {
			sc.inserts = append(sc.inserts, n)
			continue
		}
		pairs = append(pairs, pair{old: o, new: n, parent: -1})
		retained[o] = true
	}
	for o := range oldOrder {
		if !retained[o] {
			sc.deletes = append(sc.deletes, o)
		}
	}

	dominating := len(pairs) + 1
	for i := range pairs {
		if pairs[i].old == pairs[i].new {
			pairs[i].weight = dominating
		} else {
			pairs[i].weight = 1
		}
	}
	markStationary(pairs, len(oldOrder))

	for _, p := range pairs {
		if p.keep {
			sc.stationary = append(sc.stationary, [2]int{p.old, p.new})
		} else {
			sc.moves = append(sc.moves, [2]int{p.old, p.new})
		}
	}
	sort.Slice(sc.moves, func(i, j int) bool { return sc.moves[i][0] < sc.moves[j][0] })
	sort.Slice(sc.stationary, func(i, j int) bool { return sc.stationary[i][0] < sc.stationary[j][0] })
	return sc
}

// pair tracks one identity retained across both orderings while the
// stationary set is chosen.
type pair struct {
	old    int
	new    int
	weight int
	total  int
	parent int
	keep   bool
}

// markStationary selects the maximum-weight subsequence of pairs, taken in
// new order, whose old positions strictly ascend. Pairs in the subsequence
// hold their position during replay; every other pair becomes a move. Ties
// on total weight resolve toward the pair appearing later in new order.
func markStationary(pairs []pair, oldLen int) {
	if len(pairs) == 0 {
		return
	}
	fw := newFenwick(oldLen)
	bestTotal, bestAt := 0, -1
	for i := range pairs {
		p := &pairs[i]
		t, at := fw.best(p.old - 1)
		p.total = p.weight + t
		p.parent = at
		fw.update(p.old, p.total, i)
		if p.total >= bestTotal {
			bestTotal, bestAt = p.total, i
		}
	}
	for i := bestAt; i >= 0; i = pairs[i].parent {
		pairs[i].keep = true
	}
}

// fenwick is a prefix-maximum tree over old positions. It answers "what is
// the heaviest chain ending at or before this old position, and which pair
// ends it" in logarithmic time.
type fenwick struct {
	total []int
	at    []int
}

func newFenwick(n int) *fenwick {
	f := &fenwick{total: make([]int, n+1), at: make([]int, n+1)}
	for i := range f.at {
		f.at[i] = -1
	}
	return f
}

// update records a chain of the given total ending at old position pos,
// achieved by pairs[at]. Each old position is updated at most once because
// identities are unique.
func (f *fenwick) update(pos, total, at int) {
	for i := pos + 1; i < len(f.total); i += i & (-i) {
		if total > f.total[i] {
			f.total[i], f.at[i] = total, at
		}
	}
}

// best returns the heaviest chain total over old positions [0, pos] and
// the pair ending it, or (0, -1) when pos is negative or nothing is
// recorded yet.
func (f *fenwick) best(pos int) (total, at int) {
	at = -1
	if pos < 0 {
		return 0, at
	}
	if pos >= len(f.total)-1 {
		pos = len(f.total) - 2
	}
	for i := pos + 1; i > 0; i -= i & (-i) {
		if f.total[i] > total {
			total, at = f.total[i], f.at[i]
		}
	}
	return total, at
}
