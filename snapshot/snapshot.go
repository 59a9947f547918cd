// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"strings"
)

// IndexPath locates an item by position: section ordinal first, then the
// item ordinal within that section. Paths are only meaningful against the
// snapshot they were read from.
type IndexPath struct {
	Section int
	Item    int
}

// String renders the path in the conventional [section, item] form.
func (p IndexPath) String() string {
	return fmt.Sprintf("[%d, %d]", p.Section, p.Item)
}

// Section is the read-only view of one section: its identifier and its item
// identifiers in order. Sections() returns copies, so callers may keep or
// mutate them freely.
type Section[S comparable, I comparable] struct {
	ID    S
	Items []I
}

// section is the internal mutable representation.
type section[S comparable, I comparable] struct {
	id    S
	items []I
}

// Snapshot is an ordered sequence of sections, each an ordered sequence of
// item identifiers, plus a payload value per item used to detect in-place
// reloads. The zero value is not usable; construct with New.
type Snapshot[S comparable, I comparable] struct {
	sections []section[S, I]

	// sectionAt maps a section identifier to its current ordinal. Rebuilt
	// whenever section order changes; section counts are UI sized, so the
	// rebuild cost is irrelevant next to the map's O(1) membership checks.
	sectionAt map[S]int

	// itemIn maps an item identifier to the identifier of the section that
	// holds it. Section identity is stable across reordering, which keeps
	// this map valid through every section-level operation.
	itemIn map[I]S

	// payloads carries one entry per ordered item. Two snapshots that hold
	// the same item at the same position but with different payload values
	// diff as a reload.
	payloads map[I]uint64
}

// New returns an empty snapshot.
func New[S comparable, I comparable]() *Snapshot[S, I] {
	return &Snapshot[S, I]{
		sectionAt: make(map[S]int),
		itemIn:    make(map[I]S),
		payloads:  make(map[I]uint64),
	}
}

// Clone returns a deep copy sharing no state with the receiver.
func (s *Snapshot[S, I]) Clone() *Snapshot[S, I] {
	c := &Snapshot[S, I]{
		sections:  make([]section[S, I], len(s.sections)),
		sectionAt: make(map[S]int, len(s.sectionAt)),
		itemIn:    make(map[I]S, len(s.itemIn)),
		payloads:  make(map[I]uint64, len(s.payloads)),
	}
	for i, sec := range s.sections {
		c.sections[i] = section[S, I]{id: sec.id, items: append([]I(nil), sec.items...)}
	}
	for k, v := range s.sectionAt {
		c.sectionAt[k] = v
	}
	for k, v := range s.itemIn {
		c.itemIn[k] = v
	}
	for k, v := range s.payloads {
		c.payloads[k] = v
	}
	return c
}

// NumberOfSections returns the section count.
func (s *Snapshot[S, I]) NumberOfSections() int {
	return len(s.sections)
}

// NumberOfItems returns the item count of the given section, or false if the
// section is not present. Absence is a benign result here because callers
// may race a structural change that removed the section.
func (s *Snapshot[S, I]) NumberOfItems(sectionID S) (int, bool) {
	idx, ok := s.sectionAt[sectionID]
	if !ok {
		return 0, false
	}
	return len(s.sections[idx].items), true
}

// SectionIndex returns the ordinal of the given section, or false if absent.
func (s *Snapshot[S, I]) SectionIndex(id S) (int, bool) {
	idx, ok := s.sectionAt[id]
	return idx, ok
}

// ItemIndex returns the position of the given item, or false if absent.
func (s *Snapshot[S, I]) ItemIndex(id I) (IndexPath, bool) {
	secID, ok := s.itemIn[id]
	if !ok {
		return IndexPath{}, false
	}
	secIdx := s.sectionAt[secID]
	for i, it := range s.sections[secIdx].items {
		if it == id {
			return IndexPath{Section: secIdx, Item: i}, true
		}
	}
	// itemIn said the section holds the item but the ordering disagreed.
	fail("ItemIndex", "identifier %v tracked in section %v but missing from its ordering", id, secID)
	return IndexPath{}, false
}

// ItemAt returns the item identifier at the given path, or false if the path
// is out of range.
func (s *Snapshot[S, I]) ItemAt(p IndexPath) (I, bool) {
	var zero I
	if p.Section < 0 || p.Section >= len(s.sections) {
		return zero, false
	}
	items := s.sections[p.Section].items
	if p.Item < 0 || p.Item >= len(items) {
		return zero, false
	}
	return items[p.Item], true
}

// SectionAt returns the section identifier at the given ordinal, or false if
// out of range.
func (s *Snapshot[S, I]) SectionAt(index int) (S, bool) {
	var zero S
	if index < 0 || index >= len(s.sections) {
		return zero, false
	}
	return s.sections[index].id, true
}

// ContainsItem reports whether the item is anywhere in the snapshot.
func (s *Snapshot[S, I]) ContainsItem(id I) bool {
	_, ok := s.itemIn[id]
	return ok
}

// ContainsSection reports whether the section is in the snapshot.
func (s *Snapshot[S, I]) ContainsSection(id S) bool {
	_, ok := s.sectionAt[id]
	return ok
}

// Payload returns the payload value associated with the item, or false if
// the item is absent.
func (s *Snapshot[S, I]) Payload(id I) (uint64, bool) {
	v, ok := s.payloads[id]
	return v, ok
}

// SectionIdentifiers returns the section identifiers in order.
func (s *Snapshot[S, I]) SectionIdentifiers() []S {
	out := make([]S, len(s.sections))
	for i, sec := range s.sections {
		out[i] = sec.id
	}
	return out
}

// ItemIdentifiers returns the item identifiers of the given section in
// order, or false if the section is absent.
func (s *Snapshot[S, I]) ItemIdentifiers(sectionID S) ([]I, bool) {
	idx, ok := s.sectionAt[sectionID]
	if !ok {
		return nil, false
	}
	return append([]I(nil), s.sections[idx].items...), true
}

// AllItemIdentifiers returns every item identifier in traversal order:
// section by section, items in section order.
func (s *Snapshot[S, I]) AllItemIdentifiers() []I {
	out := make([]I, 0, len(s.itemIn))
	for _, sec := range s.sections {
		out = append(out, sec.items...)
	}
	return out
}

// NumberOfAllItems returns the total item count across sections.
func (s *Snapshot[S, I]) NumberOfAllItems() int {
	return len(s.itemIn)
}

// Sections returns an ordered copy of the structure, suitable for replaying
// changesets against or seeding an index-based row store.
func (s *Snapshot[S, I]) Sections() []Section[S, I] {
	out := make([]Section[S, I], len(s.sections))
	for i, sec := range s.sections {
		out[i] = Section[S, I]{ID: sec.id, Items: append([]I(nil), sec.items...)}
	}
	return out
}

// String renders the snapshot deterministically for logs and test failures:
// one "section[item item ...]" group per section, items with a non-zero
// payload shown as id@payload.
func (s *Snapshot[S, I]) String() string {
	var b strings.Builder
	for i, sec := range s.sections {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%v[", sec.id)
		for j, it := range sec.items {
			if j > 0 {
				b.WriteString(" ")
			}
			if p := s.payloads[it]; p != 0 {
				fmt.Fprintf(&b, "%v@%d", it, p)
			} else {
				fmt.Fprintf(&b, "%v", it)
			}
		}
		b.WriteString("]")
	}
	return b.String()
}

// reindexSections rebuilds sectionAt after any change to section order.
func (s *Snapshot[S, I]) reindexSections() {
	clear(s.sectionAt)
	for i, sec := range s.sections {
		s.sectionAt[sec.id] = i
	}
}
