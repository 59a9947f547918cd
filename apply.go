// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package difftable

import (
	"sync/atomic"
	"time"

	"github.com/apex/log"

	"github.com/difftable/difftable/diff"
)

// process runs one apply on the worker: diff, drive the target, commit,
// complete. commit is idempotent and forced after the target returns, so a
// target that never calls it still advances the applied state, and a
// detached target degrades to commit plus completion.
func (d *DataSource[S, I]) process(req request[S, I], target Target[S, I]) {
	before := d.applied.Load()

	start := time.Now()
	changes := diff.Between(before, req.snap)
	elapsed := time.Since(start)

	d.observe(changes, elapsed)
	log.Debugf("difftable: apply %s in %s", changes.Summary(), elapsed)

	committed := false
	commit := func() {
		if committed {
			return
		}
		committed = true
		d.applied.Store(req.snap)
	}

	if target != nil {
		target.PerformUpdates(changes, req.animate, commit)
	}
	commit()

	if req.completion != nil {
		req.completion()
	}
}

// stats carries the counters the Collector and Stats read. Written only on
// the worker, read from anywhere.
type stats struct {
	applies      atomic.Uint64
	emptyApplies atomic.Uint64

	sectionInserts atomic.Uint64
	sectionDeletes atomic.Uint64
	sectionMoves   atomic.Uint64
	itemInserts    atomic.Uint64
	itemDeletes    atomic.Uint64
	itemMoves      atomic.Uint64
	itemReloads    atomic.Uint64

	queueDepth    atomic.Int64
	lastDiffNanos atomic.Int64
}

// observe folds one changeset into the counters.
func (d *DataSource[S, I]) observe(changes *diff.Changeset[S, I], elapsed time.Duration) {
	st := &d.stats
	st.applies.Add(1)
	if changes.IsEmpty() {
		st.emptyApplies.Add(1)
	}
	st.sectionInserts.Add(uint64(len(changes.SectionInserts)))
	st.sectionDeletes.Add(uint64(len(changes.SectionDeletes)))
	st.sectionMoves.Add(uint64(len(changes.SectionMoves)))
	for i := range changes.ItemEdits {
		g := &changes.ItemEdits[i]
		st.itemInserts.Add(uint64(len(g.Inserts)))
		st.itemDeletes.Add(uint64(len(g.Deletes)))
		st.itemMoves.Add(uint64(len(g.Moves)))
		st.itemReloads.Add(uint64(len(g.Reloads)))
	}
	st.lastDiffNanos.Store(int64(elapsed))
}

// Stats is a point-in-time copy of a data source's counters.
type Stats struct {
	Applies      uint64
	EmptyApplies uint64

	SectionInserts uint64
	SectionDeletes uint64
	SectionMoves   uint64
	ItemInserts    uint64
	ItemDeletes    uint64
	ItemMoves      uint64
	ItemReloads    uint64

	QueueDepth int
	LastDiff   time.Duration
}

// Stats returns a copy of the counters: processed applies, edit counts by
// kind, current queue depth, and the duration of the most recent diff.
func (d *DataSource[S, I]) Stats() Stats {
	st := &d.stats
	return Stats{
		Applies:        st.applies.Load(),
		EmptyApplies:   st.emptyApplies.Load(),
		SectionInserts: st.sectionInserts.Load(),
		SectionDeletes: st.sectionDeletes.Load(),
		SectionMoves:   st.sectionMoves.Load(),
		ItemInserts:    st.itemInserts.Load(),
		ItemDeletes:    st.itemDeletes.Load(),
		ItemMoves:      st.itemMoves.Load(),
		ItemReloads:    st.itemReloads.Load(),
		QueueDepth:     int(st.queueDepth.Load()),
		LastDiff:       time.Duration(st.lastDiffNanos.Load()),
	}
}
