// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/difftable/difftable/internal/fingerprint"
	"github.com/difftable/difftable/snapshot"
)

//go:embed board.json
var seedBoard []byte

// Instance is one service process on the board.
type Instance struct {
	ID      string `json:"id"`
	Service string `json:"service"`
	Status  string `json:"status"`
	Version string `json:"version"`
	Latency int    `json:"latency_ms"`
}

// Fingerprint hashes the displayed fields. An identity-stable row whose
// fingerprint changed needs a reload.
func (in Instance) Fingerprint() uint64 {
	return fingerprint.Fields(in.Service, in.Status, in.Version, strconv.Itoa(in.Latency))
}

// Region is an ordered group of instances. Regions map to sections.
type Region struct {
	ID        string     `json:"id"`
	Instances []Instance `json:"instances"`
}

// Board is an ordered list of regions.
type Board struct {
	Name    string   `json:"board"`
	Regions []Region `json:"regions"`
}

// Load reads a board from path, or the embedded seed board when path is
// empty.
func Load(path string) (*Board, error) {
	data := seedBoard
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read board (%s): %w", path, err)
		}
	}

	board, err := Parse(data)
	if err != nil && path != "" {
		return nil, fmt.Errorf("failed to parse board (%s): %w", path, err)
	}
	return board, err
}

// Parse decodes and validates board JSON. Region and instance identifiers
// must be unique across the whole board, matching what snapshots require.
func Parse(data []byte) (*Board, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("board is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	regions := doc.Get("regions")
	if !regions.IsArray() {
		return nil, fmt.Errorf("board has no regions array")
	}

	board := &Board{Name: doc.Get("board").String()}
	seenRegions := map[string]bool{}
	seenInstances := map[string]bool{}

	var parseErr error
	regions.ForEach(func(_, r gjson.Result) bool {
		id := r.Get("id").String()
		if id == "" {
			parseErr = fmt.Errorf("region %d has no id", len(board.Regions))
			return false
		}
		if seenRegions[id] {
			parseErr = fmt.Errorf("duplicate region id %s", id)
			return false
		}
		seenRegions[id] = true

		region := Region{ID: id}
		r.Get("instances").ForEach(func(_, inst gjson.Result) bool {
			iid := inst.Get("id").String()
			if iid == "" {
				parseErr = fmt.Errorf("instance %d in region %s has no id", len(region.Instances), id)
				return false
			}
			if seenInstances[iid] {
				parseErr = fmt.Errorf("duplicate instance id %s", iid)
				return false
			}
			seenInstances[iid] = true
			region.Instances = append(region.Instances, Instance{
				ID:      iid,
				Service: inst.Get("service").String(),
				Status:  inst.Get("status").String(),
				Version: inst.Get("version").String(),
				Latency: int(inst.Get("latency_ms").Int()),
			})
			return true
		})
		if parseErr != nil {
			return false
		}

		board.Regions = append(board.Regions, region)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return board, nil
}

// Snapshot converts the board: regions as sections, instances as items,
// fingerprints as payloads.
func (b *Board) Snapshot() *snapshot.Snapshot[string, string] {
	snap := snapshot.New[string, string]()
	for _, region := range b.Regions {
		snap.AppendSections(region.ID)
		for _, inst := range region.Instances {
			snap.AppendItems(region.ID, inst.ID)
			snap.SetItemPayload(inst.ID, inst.Fingerprint())
		}
	}
	return snap
}

// Instance returns the named instance wherever it currently sits.
func (b *Board) Instance(id string) (Instance, bool) {
	for i := range b.Regions {
		for _, inst := range b.Regions[i].Instances {
			if inst.ID == id {
				return inst, true
			}
		}
	}
	return Instance{}, false
}

// NumberOfInstances counts instances across all regions.
func (b *Board) NumberOfInstances() int {
	n := 0
	for i := range b.Regions {
		n += len(b.Regions[i].Instances)
	}
	return n
}

// JSON renders the board in the same shape Load reads.
func (b *Board) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}
	return append(out, '\n'), nil
}
