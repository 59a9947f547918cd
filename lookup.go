// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package difftable

// The lookup API reads the applied snapshot only. A snapshot queued or
// mid-apply is never visible here; callers racing the worker observe the
// previous fully applied state until the in-flight request commits.

// Snapshot returns a copy of the applied snapshot. The copy is detached;
// mutating it, typically to derive the next state, never affects the data
// source.
func (d *DataSource[S, I]) Snapshot() *Snapshot[S, I] {
	return d.applied.Load().Clone()
}

// NumberOfSections returns the applied section count.
func (d *DataSource[S, I]) NumberOfSections() int {
	return d.applied.Load().NumberOfSections()
}

// NumberOfItems returns the applied item count of the given section, or
// false if the section is not currently displayed.
func (d *DataSource[S, I]) NumberOfItems(section S) (int, bool) {
	return d.applied.Load().NumberOfItems(section)
}

// SectionIdentifier returns the section identifier at the given position,
// or false if out of range.
func (d *DataSource[S, I]) SectionIdentifier(index int) (S, bool) {
	return d.applied.Load().SectionAt(index)
}

// ItemIdentifier returns the item identifier at the given position, or
// false if the path is out of range. Absence is benign: the caller may
// hold a path from before the latest commit.
func (d *DataSource[S, I]) ItemIdentifier(p IndexPath) (I, bool) {
	return d.applied.Load().ItemAt(p)
}

// IndexPathForItem returns the applied position of the given item, or
// false if the item is not currently displayed.
func (d *DataSource[S, I]) IndexPathForItem(id I) (IndexPath, bool) {
	return d.applied.Load().ItemIndex(id)
}

// MustItemIdentifier is ItemIdentifier for positions that are in range by
// construction, such as a view walking its own row store. A miss is an
// internal consistency bug and panics with *InvariantError.
func (d *DataSource[S, I]) MustItemIdentifier(p IndexPath) I {
	id, ok := d.applied.Load().ItemAt(p)
	if !ok {
		panic(&InvariantError{Op: "MustItemIdentifier", Detail: "no item at " + p.String()})
	}
	return id
}

// MustIndexPathForItem is IndexPathForItem for identities known to be
// displayed. A miss panics with *InvariantError.
func (d *DataSource[S, I]) MustIndexPathForItem(id I) IndexPath {
	p, ok := d.applied.Load().ItemIndex(id)
	if !ok {
		panic(&InvariantError{Op: "MustIndexPathForItem", Detail: "item not displayed"})
	}
	return p
}
