// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

// Mutating operations. Every operation validates its identifiers before
// touching any state, so a panic always leaves the snapshot unchanged.

// AppendSections appends the given sections, in order, after the last
// existing section. Panics with *InvariantError if any identifier is
// already present or repeats within ids.
func (s *Snapshot[S, I]) AppendSections(ids ...S) {
	s.insertSections("AppendSections", len(s.sections), ids)
}

// InsertSectionsBefore inserts the given sections immediately before the
// anchor section. Panics with *InvariantError if the anchor is absent or
// any inserted identifier is already present.
func (s *Snapshot[S, I]) InsertSectionsBefore(anchor S, ids ...S) {
	at, ok := s.sectionAt[anchor]
	if !ok {
		fail("InsertSectionsBefore", "anchor section %v not present", anchor)
	}
	s.insertSections("InsertSectionsBefore", at, ids)
}

// InsertSectionsAfter inserts the given sections immediately after the
// anchor section. Panics with *InvariantError if the anchor is absent or
// any inserted identifier is already present.
func (s *Snapshot[S, I]) InsertSectionsAfter(anchor S, ids ...S) {
	at, ok := s.sectionAt[anchor]
	if !ok {
		fail("InsertSectionsAfter", "anchor section %v not present", anchor)
	}
	s.insertSections("InsertSectionsAfter", at+1, ids)
}

func (s *Snapshot[S, I]) insertSections(op string, at int, ids []S) {
	if len(ids) == 0 {
		return
	}
	seen := make(map[S]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := s.sectionAt[id]; dup {
			fail(op, "section %v already present", id)
		}
		if _, dup := seen[id]; dup {
			fail(op, "section %v repeated in arguments", id)
		}
		seen[id] = struct{}{}
	}
	ins := make([]section[S, I], len(ids))
	for i, id := range ids {
		ins[i] = section[S, I]{id: id}
	}
	s.sections = append(s.sections[:at], append(ins, s.sections[at:]...)...)
	s.reindexSections()
}

// DeleteSections removes the given sections and every item they hold.
// Panics with *InvariantError if any identifier is absent.
func (s *Snapshot[S, I]) DeleteSections(ids ...S) {
	if len(ids) == 0 {
		return
	}
	doomed := make(map[S]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.sectionAt[id]; !ok {
			fail("DeleteSections", "section %v not present", id)
		}
		doomed[id] = struct{}{}
	}
	kept := s.sections[:0]
	for _, sec := range s.sections {
		if _, gone := doomed[sec.id]; gone {
			for _, it := range sec.items {
				delete(s.itemIn, it)
				delete(s.payloads, it)
			}
			continue
		}
		kept = append(kept, sec)
	}
	s.sections = kept
	s.reindexSections()
}

// MoveSectionBefore moves a section immediately before the anchor section.
// Panics with *InvariantError if either identifier is absent or they are
// equal.
func (s *Snapshot[S, I]) MoveSectionBefore(id, anchor S) {
	s.moveSection("MoveSectionBefore", id, anchor, 0)
}

// MoveSectionAfter moves a section immediately after the anchor section.
// Panics with *InvariantError if either identifier is absent or they are
// equal.
func (s *Snapshot[S, I]) MoveSectionAfter(id, anchor S) {
	s.moveSection("MoveSectionAfter", id, anchor, 1)
}

func (s *Snapshot[S, I]) moveSection(op string, id, anchor S, offset int) {
	if id == anchor {
		fail(op, "section %v used as its own anchor", id)
	}
	from, ok := s.sectionAt[id]
	if !ok {
		fail(op, "section %v not present", id)
	}
	if _, ok := s.sectionAt[anchor]; !ok {
		fail(op, "anchor section %v not present", anchor)
	}
	moved := s.sections[from]
	s.sections = append(s.sections[:from], s.sections[from+1:]...)
	// Anchor ordinal shifts once the moved section is pulled out.
	at := 0
	for i, sec := range s.sections {
		if sec.id == anchor {
			at = i + offset
			break
		}
	}
	s.sections = append(s.sections[:at], append([]section[S, I]{moved}, s.sections[at:]...)...)
	s.reindexSections()
}

// AppendItems appends the given items, in order, after the last item of the
// given section. Panics with *InvariantError if the section is absent or
// any identifier is already present anywhere in the snapshot.
func (s *Snapshot[S, I]) AppendItems(sectionID S, ids ...I) {
	idx, ok := s.sectionAt[sectionID]
	if !ok {
		fail("AppendItems", "section %v not present", sectionID)
	}
	s.insertItems("AppendItems", idx, len(s.sections[idx].items), ids)
}

// InsertItemsBefore inserts the given items immediately before the anchor
// item, in the anchor's section. Panics with *InvariantError if the anchor
// is absent or any inserted identifier is already present.
func (s *Snapshot[S, I]) InsertItemsBefore(anchor I, ids ...I) {
	p := s.mustItemPath("InsertItemsBefore", anchor)
	s.insertItems("InsertItemsBefore", p.Section, p.Item, ids)
}

// InsertItemsAfter inserts the given items immediately after the anchor
// item, in the anchor's section. Panics with *InvariantError if the anchor
// is absent or any inserted identifier is already present.
func (s *Snapshot[S, I]) InsertItemsAfter(anchor I, ids ...I) {
	p := s.mustItemPath("InsertItemsAfter", anchor)
	s.insertItems("InsertItemsAfter", p.Section, p.Item+1, ids)
}

func (s *Snapshot[S, I]) insertItems(op string, secIdx, at int, ids []I) {
	if len(ids) == 0 {
		return
	}
	seen := make(map[I]struct{}, len(ids))
	for _, id := range ids {
		if holder, dup := s.itemIn[id]; dup {
			fail(op, "item %v already present in section %v", id, holder)
		}
		if _, dup := seen[id]; dup {
			fail(op, "item %v repeated in arguments", id)
		}
		seen[id] = struct{}{}
	}
	sec := &s.sections[secIdx]
	sec.items = append(sec.items[:at], append(append([]I(nil), ids...), sec.items[at:]...)...)
	for _, id := range ids {
		s.itemIn[id] = sec.id
		s.payloads[id] = 0
	}
}

// DeleteItems removes the given items. Panics with *InvariantError if any
// identifier is absent.
func (s *Snapshot[S, I]) DeleteItems(ids ...I) {
	if len(ids) == 0 {
		return
	}
	doomed := make(map[I]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.itemIn[id]; !ok {
			fail("DeleteItems", "item %v not present", id)
		}
		doomed[id] = struct{}{}
	}
	for i := range s.sections {
		sec := &s.sections[i]
		kept := sec.items[:0]
		for _, it := range sec.items {
			if _, gone := doomed[it]; gone {
				continue
			}
			kept = append(kept, it)
		}
		sec.items = kept
	}
	for id := range doomed {
		delete(s.itemIn, id)
		delete(s.payloads, id)
	}
}

// MoveItemBefore moves an item immediately before the anchor item, into the
// anchor's section if they differ. Panics with *InvariantError if either
// identifier is absent or they are equal.
func (s *Snapshot[S, I]) MoveItemBefore(id, anchor I) {
	s.moveItem("MoveItemBefore", id, anchor, 0)
}

// MoveItemAfter moves an item immediately after the anchor item, into the
// anchor's section if they differ. Panics with *InvariantError if either
// identifier is absent or they are equal.
func (s *Snapshot[S, I]) MoveItemAfter(id, anchor I) {
	s.moveItem("MoveItemAfter", id, anchor, 1)
}

func (s *Snapshot[S, I]) moveItem(op string, id, anchor I, offset int) {
	if id == anchor {
		fail(op, "item %v used as its own anchor", id)
	}
	from := s.mustItemPath(op, id)
	if _, ok := s.itemIn[anchor]; !ok {
		fail(op, "anchor item %v not present", anchor)
	}
	fromSec := &s.sections[from.Section]
	fromSec.items = append(fromSec.items[:from.Item], fromSec.items[from.Item+1:]...)
	// Re-resolve the anchor after removal; it may share the moved item's
	// section, in which case its ordinal just shifted.
	to := s.mustItemPath(op, anchor)
	toSec := &s.sections[to.Section]
	at := to.Item + offset
	toSec.items = append(toSec.items[:at], append([]I{id}, toSec.items[at:]...)...)
	s.itemIn[id] = toSec.id
}

// ReloadItems marks the given items as needing redisplay by bumping their
// payload values. Panics with *InvariantError if any identifier is absent.
func (s *Snapshot[S, I]) ReloadItems(ids ...I) {
	for _, id := range ids {
		if _, ok := s.itemIn[id]; !ok {
			fail("ReloadItems", "item %v not present", id)
		}
	}
	for _, id := range ids {
		s.payloads[id]++
	}
}

// SetItemPayload associates a payload value with an item, typically a
// content fingerprint. A diff reports a reload for any item whose payload
// differs between the two snapshots. Panics with *InvariantError if the
// item is absent.
func (s *Snapshot[S, I]) SetItemPayload(id I, payload uint64) {
	if _, ok := s.itemIn[id]; !ok {
		fail("SetItemPayload", "item %v not present", id)
	}
	s.payloads[id] = payload
}

// mustItemPath resolves an item's path or fails the operation.
func (s *Snapshot[S, I]) mustItemPath(op string, id I) IndexPath {
	secID, ok := s.itemIn[id]
	if !ok {
		fail(op, "item %v not present", id)
	}
	secIdx := s.sectionAt[secID]
	for i, it := range s.sections[secIdx].items {
		if it == id {
			return IndexPath{Section: secIdx, Item: i}
		}
	}
	fail(op, "identifier %v tracked in section %v but missing from its ordering", id, secID)
	return IndexPath{}
}
