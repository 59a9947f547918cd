// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package difftable

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is the surface the Collector reads; every DataSource
// implements it regardless of its identifier types.
type StatsSource interface {
	Stats() Stats
}

// Collector exposes a data source's counters as prometheus metrics.
// Nothing is registered globally; construct one and register it with the
// registry of your choice:
//
//	prometheus.MustRegister(difftable.NewCollector(ds))
type Collector struct {
	source StatsSource

	applies      *prometheus.Desc
	appliesEmpty *prometheus.Desc
	edits        *prometheus.Desc
	queueDepth   *prometheus.Desc
	lastDiff     *prometheus.Desc
}

// NewCollector returns a Collector over the given data source.
func NewCollector(source StatsSource) *Collector {
	return &Collector{
		source: source,

		applies: prometheus.NewDesc(
			"difftable_applies_total",
			"Total number of apply requests processed",
			nil, nil,
		),
		appliesEmpty: prometheus.NewDesc(
			"difftable_applies_empty_total",
			"Total number of applies whose changeset carried no edits",
			nil, nil,
		),
		edits: prometheus.NewDesc(
			"difftable_edits_total",
			"Total number of edits produced, by scope and kind",
			[]string{"scope", "kind"}, nil,
		),
		queueDepth: prometheus.NewDesc(
			"difftable_queue_depth",
			"Number of apply requests currently queued",
			nil, nil,
		),
		lastDiff: prometheus.NewDesc(
			"difftable_last_diff_duration_seconds",
			"Duration of the most recent diff computation",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.applies
	ch <- c.appliesEmpty
	ch <- c.edits
	ch <- c.queueDepth
	ch <- c.lastDiff
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(
		c.applies,
		prometheus.CounterValue,
		float64(st.Applies),
	)
	ch <- prometheus.MustNewConstMetric(
		c.appliesEmpty,
		prometheus.CounterValue,
		float64(st.EmptyApplies),
	)

	ch <- prometheus.MustNewConstMetric(
		c.edits, prometheus.CounterValue, float64(st.SectionInserts), "section", "insert")
	ch <- prometheus.MustNewConstMetric(
		c.edits, prometheus.CounterValue, float64(st.SectionDeletes), "section", "delete")
	ch <- prometheus.MustNewConstMetric(
		c.edits, prometheus.CounterValue, float64(st.SectionMoves), "section", "move")
	ch <- prometheus.MustNewConstMetric(
		c.edits, prometheus.CounterValue, float64(st.ItemInserts), "item", "insert")
	ch <- prometheus.MustNewConstMetric(
		c.edits, prometheus.CounterValue, float64(st.ItemDeletes), "item", "delete")
	ch <- prometheus.MustNewConstMetric(
		c.edits, prometheus.CounterValue, float64(st.ItemMoves), "item", "move")
	ch <- prometheus.MustNewConstMetric(
		c.edits, prometheus.CounterValue, float64(st.ItemReloads), "item", "reload")

	ch <- prometheus.MustNewConstMetric(
		c.queueDepth,
		prometheus.GaugeValue,
		float64(st.QueueDepth),
	)
	ch <- prometheus.MustNewConstMetric(
		c.lastDiff,
		prometheus.GaugeValue,
		st.LastDiff.Seconds(),
	)
}
