// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"fmt"
	"math/rand"
)

var services = []string{"api", "auth", "billing", "cache", "ingest", "search", "worker"}

// statuses is weighted: most of a healthy fleet stays healthy.
var statuses = []string{"healthy", "healthy", "healthy", "degraded", "starting", "down"}

// Simulator drifts a board through plausible fleet churn. All randomness
// comes from the seed, so the same seed replays the same session.
type Simulator struct {
	board  *Board
	rng    *rand.Rand
	serial int
}

// NewSimulator wraps the board. The id sequence continues past the seed
// board's instance count so minted ids stay unique.
func NewSimulator(b *Board, seed int64) *Simulator {
	return &Simulator{
		board:  b,
		rng:    rand.New(rand.NewSource(seed)),
		serial: b.NumberOfInstances(),
	}
}

// Board returns the simulated board.
func (s *Simulator) Board() *Board {
	return s.board
}

// Step applies one weighted random mutation.
func (s *Simulator) Step() {
	switch r := s.rng.Intn(100); {
	case r < 40:
		s.Reload()
	case r < 65:
		s.Shuffle()
	case r < 80:
		s.Add()
	case r < 92:
		s.Remove()
	default:
		s.RotateRegions()
	}
}

// Reload rewrites a random instance's status and latency in place.
func (s *Simulator) Reload() {
	ri, ii, ok := s.pick()
	if !ok {
		return
	}
	inst := &s.board.Regions[ri].Instances[ii]
	inst.Status = statuses[s.rng.Intn(len(statuses))]
	latency := s.rng.Intn(250)
	if inst.Status == "down" {
		latency = 0
	}
	if latency == inst.Latency {
		latency++
	}
	inst.Latency = latency
}

// Shuffle moves a random instance to a random position, possibly in another
// region.
func (s *Simulator) Shuffle() {
	ri, ii, ok := s.pick()
	if !ok {
		return
	}
	inst := s.board.Regions[ri].Instances[ii]
	s.removeAt(ri, ii)

	target := s.rng.Intn(len(s.board.Regions))
	at := s.rng.Intn(len(s.board.Regions[target].Instances) + 1)
	s.insertAt(target, at, inst)
}

// Add starts a fresh instance in a random region.
func (s *Simulator) Add() {
	if len(s.board.Regions) == 0 || s.board.NumberOfInstances() >= 64 {
		return
	}
	service := services[s.rng.Intn(len(services))]
	inst := Instance{
		ID:      s.mintID(service),
		Service: service,
		Status:  "starting",
		Version: fmt.Sprintf("v%d.%d.%d", s.rng.Intn(3), s.rng.Intn(20), s.rng.Intn(10)),
		Latency: 0,
	}
	ri := s.rng.Intn(len(s.board.Regions))
	at := s.rng.Intn(len(s.board.Regions[ri].Instances) + 1)
	s.insertAt(ri, at, inst)
}

// Remove retires a random instance, keeping a small floor so the board never
// empties out.
func (s *Simulator) Remove() {
	if s.board.NumberOfInstances() <= 2 {
		return
	}
	ri, ii, ok := s.pick()
	if !ok {
		return
	}
	s.removeAt(ri, ii)
}

// RotateRegions moves a random region to a different position.
func (s *Simulator) RotateRegions() {
	n := len(s.board.Regions)
	if n < 2 {
		return
	}
	from := s.rng.Intn(n)
	to := s.rng.Intn(n - 1)
	if to >= from {
		to++
	}
	region := s.board.Regions[from]
	s.board.Regions = append(s.board.Regions[:from], s.board.Regions[from+1:]...)
	s.board.Regions = append(s.board.Regions[:to], append([]Region{region}, s.board.Regions[to:]...)...)
}

// pick selects a uniformly random instance position.
func (s *Simulator) pick() (region, instance int, ok bool) {
	n := s.board.NumberOfInstances()
	if n == 0 {
		return 0, 0, false
	}
	k := s.rng.Intn(n)
	for ri := range s.board.Regions {
		if k < len(s.board.Regions[ri].Instances) {
			return ri, k, true
		}
		k -= len(s.board.Regions[ri].Instances)
	}
	return 0, 0, false
}

func (s *Simulator) mintID(service string) string {
	for {
		s.serial++
		id := fmt.Sprintf("%s-%04d", service, s.serial)
		if _, ok := s.board.Instance(id); !ok {
			return id
		}
	}
}

func (s *Simulator) insertAt(ri, at int, inst Instance) {
	items := s.board.Regions[ri].Instances
	s.board.Regions[ri].Instances = append(items[:at], append([]Instance{inst}, items[at:]...)...)
}

func (s *Simulator) removeAt(ri, ii int) {
	items := s.board.Regions[ri].Instances
	s.board.Regions[ri].Instances = append(items[:ii], items[ii+1:]...)
}
