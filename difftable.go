// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package difftable

import (
	"sync"
	"sync/atomic"

	"github.com/difftable/difftable/diff"
	"github.com/difftable/difftable/snapshot"
)

// Snapshot describes an ordered, identity-keyed display state. See the
// snapshot package for the builder operations.
type Snapshot[S comparable, I comparable] = snapshot.Snapshot[S, I]

// Section is one section of a snapshot's ordered structure.
type Section[S comparable, I comparable] = snapshot.Section[S, I]

// IndexPath locates an item by section and item position.
type IndexPath = snapshot.IndexPath

// Changeset is the positional edit script between two snapshots. See the
// diff package for its layout and replay semantics.
type Changeset[S comparable, I comparable] = diff.Changeset[S, I]

// NewSnapshot returns an empty snapshot.
func NewSnapshot[S comparable, I comparable]() *Snapshot[S, I] {
	return snapshot.New[S, I]()
}

// Diff compares two snapshots without involving a data source.
func Diff[S comparable, I comparable](before, after *Snapshot[S, I]) *Changeset[S, I] {
	return diff.Between(before, after)
}

// Target is the view collaborator a DataSource drives. PerformUpdates must
// apply the changeset's edits to the host's index-based store in changeset
// order: section deletes, section inserts, section moves, then per section
// group the item deletes, inserts, moves, and reloads.
//
// commit atomically publishes the incoming snapshot as the applied state;
// a target that maintains its own row store calls it at the point where its
// store and the snapshot agree. Returning without calling commit is fine —
// the data source commits on return regardless. commit must not be retained
// past the PerformUpdates call.
//
// A stalled PerformUpdates stalls the whole apply queue; there is no
// timeout.
type Target[S comparable, I comparable] interface {
	PerformUpdates(changes *Changeset[S, I], animate bool, commit func())
}

// TargetFunc adapts a function to the Target interface.
type TargetFunc[S comparable, I comparable] func(changes *Changeset[S, I], animate bool, commit func())

// PerformUpdates calls f.
func (f TargetFunc[S, I]) PerformUpdates(changes *Changeset[S, I], animate bool, commit func()) {
	f(changes, animate, commit)
}

// DataSource owns the applied snapshot for one view and serializes every
// apply against it. All methods are safe for concurrent use; apply
// requests execute strictly in submission order on a single worker, and
// the lookup API always observes a fully applied snapshot, never a
// half-applied one.
type DataSource[S comparable, I comparable] struct {
	mu     sync.Mutex
	queue  []request[S, I]
	target Target[S, I]
	closed bool

	wake chan struct{}
	done chan struct{}

	applied atomic.Pointer[snapshot.Snapshot[S, I]]
	stats   stats
}

// request is one queued apply.
type request[S comparable, I comparable] struct {
	snap       *snapshot.Snapshot[S, I]
	animate    bool
	completion func()
}

// New returns a data source displaying the empty snapshot, driving the
// given target. target may be nil; applies then commit without a view,
// which is the same state Detach leaves behind.
func New[S comparable, I comparable](target Target[S, I]) *DataSource[S, I] {
	d := &DataSource[S, I]{
		target: target,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	d.applied.Store(snapshot.New[S, I]())
	go d.run()
	return d
}

// Attach replaces the view target. Requests already being processed keep
// the target they started with.
func (d *DataSource[S, I]) Attach(target Target[S, I]) {
	d.mu.Lock()
	d.target = target
	d.mu.Unlock()
}

// Detach removes the view target. Pending and future applies skip the view
// call but still commit and fire their completions.
func (d *DataSource[S, I]) Detach() {
	d.Attach(nil)
}

// Close drains the pending queue, stops the worker, and returns once the
// last completion has fired. Further applies return ErrClosed. Close must
// not be called from a completion callback or from PerformUpdates; the
// worker cannot drain past a request that is waiting on it.
func (d *DataSource[S, I]) Close() error {
	d.mu.Lock()
	already := d.closed
	d.closed = true
	d.mu.Unlock()
	if !already {
		d.nudge()
	}
	<-d.done
	return nil
}

// Apply enqueues snap as the next desired display state and returns
// without waiting for it to be processed. The worker diffs it against the
// applied snapshot, drives the target, commits, and then calls completion.
//
// Requests complete strictly in Apply order, including requests enqueued
// from a completion callback, which run after everything already queued.
// completion may be nil. snap is cloned on entry; the caller may keep
// mutating it. Apply panics with *InvariantError when snap is nil and
// returns ErrClosed after Close.
func (d *DataSource[S, I]) Apply(snap *Snapshot[S, I], animate bool, completion func()) error {
	if snap == nil {
		panic(&InvariantError{Op: "Apply", Detail: "nil snapshot"})
	}
	clone := snap.Clone()

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.queue = append(d.queue, request[S, I]{snap: clone, animate: animate, completion: completion})
	d.stats.queueDepth.Store(int64(len(d.queue)))
	d.mu.Unlock()

	d.nudge()
	return nil
}

// nudge wakes the worker without blocking; a single pending wakeup is
// enough because the worker re-checks the queue before sleeping.
func (d *DataSource[S, I]) nudge() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// run is the worker loop: pop, process, repeat; exit once closed and
// drained.
func (d *DataSource[S, I]) run() {
	defer close(d.done)
	for {
		d.mu.Lock()
		for len(d.queue) == 0 {
			closed := d.closed
			d.mu.Unlock()
			if closed {
				return
			}
			<-d.wake
			d.mu.Lock()
		}
		req := d.queue[0]
		d.queue[0] = request[S, I]{}
		d.queue = d.queue[1:]
		d.stats.queueDepth.Store(int64(len(d.queue)))
		target := d.target
		d.mu.Unlock()

		d.process(req, target)
	}
}
