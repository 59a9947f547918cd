// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package snapshot

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// buildOp is one scripted mutation: an operation name plus whichever
// arguments that operation takes.
type buildOp struct {
	Op      string   `yaml:"op"`
	Section string   `yaml:"section"`
	Anchor  string   `yaml:"anchor"`
	ID      string   `yaml:"id"`
	IDs     []string `yaml:"ids"`
	Payload uint64   `yaml:"payload"`
}

// testBuildCase represents a single test case for TestSnapshot_Build.
type testBuildCase struct {
	Name    string    `yaml:"name"`
	Ops     []buildOp `yaml:"ops"`
	Want    string    `yaml:"want"`
	WantErr string    `yaml:"wantErr"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v any) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

// applyOp dispatches one scripted mutation onto the snapshot.
func applyOp(t *testing.T, s *Snapshot[string, string], op buildOp) {
	t.Helper()
	switch op.Op {
	case "appendSections":
		s.AppendSections(op.IDs...)
	case "insertSectionsBefore":
		s.InsertSectionsBefore(op.Anchor, op.IDs...)
	case "insertSectionsAfter":
		s.InsertSectionsAfter(op.Anchor, op.IDs...)
	case "deleteSections":
		s.DeleteSections(op.IDs...)
	case "moveSectionBefore":
		s.MoveSectionBefore(op.ID, op.Anchor)
	case "moveSectionAfter":
		s.MoveSectionAfter(op.ID, op.Anchor)
	case "appendItems":
		s.AppendItems(op.Section, op.IDs...)
	case "insertItemsBefore":
		s.InsertItemsBefore(op.Anchor, op.IDs...)
	case "insertItemsAfter":
		s.InsertItemsAfter(op.Anchor, op.IDs...)
	case "deleteItems":
		s.DeleteItems(op.IDs...)
	case "moveItemBefore":
		s.MoveItemBefore(op.ID, op.Anchor)
	case "moveItemAfter":
		s.MoveItemAfter(op.ID, op.Anchor)
	case "reloadItems":
		s.ReloadItems(op.IDs...)
	case "setItemPayload":
		s.SetItemPayload(op.ID, op.Payload)
	default:
		t.Fatalf("unknown op %q", op.Op)
	}
}

// runOps applies the scripted mutations, converting an invariant panic back
// into a returned error so table cases can assert on it.
func runOps(t *testing.T, s *Snapshot[string, string], ops []buildOp) (err *InvariantError) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			if err, ok = r.(*InvariantError); !ok {
				panic(r)
			}
		}
	}()
	for _, op := range ops {
		applyOp(t, s, op)
	}
	return nil
}

func TestSnapshot_Build(t *testing.T) {
	var tests []testBuildCase
	require.NoError(t, loadTestData("build_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			s := New[string, string]()
			err := runOps(t, s, tt.Ops)

			if tt.WantErr != "" {
				require.NotNil(t, err, "expected an invariant violation")
				assert.Contains(t, err.Error(), tt.WantErr)
				return
			}

			require.Nil(t, err, "unexpected invariant violation: %v", err)
			assert.Equal(t, tt.Want, s.String())
		})
	}
}

func TestSnapshot_Reads(t *testing.T) {
	s := New[string, string]()
	s.AppendSections("one", "two")
	s.AppendItems("one", "a", "b")
	s.AppendItems("two", "c")
	s.SetItemPayload("b", 7)

	assert.Equal(t, 2, s.NumberOfSections())
	assert.Equal(t, 3, s.NumberOfAllItems())

	n, ok := s.NumberOfItems("one")
	require.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = s.NumberOfItems("ghost")
	assert.False(t, ok)

	idx, ok := s.SectionIndex("two")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	p, ok := s.ItemIndex("c")
	require.True(t, ok)
	assert.Equal(t, IndexPath{Section: 1, Item: 0}, p)

	_, ok = s.ItemIndex("ghost")
	assert.False(t, ok)

	id, ok := s.ItemAt(IndexPath{Section: 0, Item: 1})
	require.True(t, ok)
	assert.Equal(t, "b", id)

	_, ok = s.ItemAt(IndexPath{Section: 0, Item: 9})
	assert.False(t, ok)
	_, ok = s.ItemAt(IndexPath{Section: -1, Item: 0})
	assert.False(t, ok)

	secID, ok := s.SectionAt(0)
	require.True(t, ok)
	assert.Equal(t, "one", secID)
	_, ok = s.SectionAt(2)
	assert.False(t, ok)

	pl, ok := s.Payload("b")
	require.True(t, ok)
	assert.Equal(t, uint64(7), pl)

	assert.True(t, s.ContainsItem("a"))
	assert.False(t, s.ContainsItem("z"))
	assert.True(t, s.ContainsSection("one"))
	assert.False(t, s.ContainsSection("zero"))

	assert.Equal(t, []string{"one", "two"}, s.SectionIdentifiers())
	items, ok := s.ItemIdentifiers("one")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, items)
	assert.Equal(t, []string{"a", "b", "c"}, s.AllItemIdentifiers())
}

func TestSnapshot_Sections(t *testing.T) {
	s := New[string, string]()
	s.AppendSections("one", "two")
	s.AppendItems("one", "a", "b")

	secs := s.Sections()
	require.Len(t, secs, 2)
	assert.Equal(t, "one", secs[0].ID)
	assert.Equal(t, []string{"a", "b"}, secs[0].Items)
	assert.Empty(t, secs[1].Items)

	// Returned sections are copies; mutating them must not leak back.
	secs[0].Items[0] = "mutated"
	items, _ := s.ItemIdentifiers("one")
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestSnapshot_Clone(t *testing.T) {
	s := New[string, string]()
	s.AppendSections("one")
	s.AppendItems("one", "a", "b")
	s.SetItemPayload("a", 3)

	c := s.Clone()
	assert.Equal(t, s.String(), c.String())

	c.AppendItems("one", "z")
	c.ReloadItems("a")
	c.DeleteItems("b")

	// Original is untouched.
	assert.Equal(t, "one[a@3 b]", s.String())
	assert.Equal(t, "one[a@4 z]", c.String())
}

func TestSnapshot_MoveItemAcrossSections(t *testing.T) {
	s := New[string, string]()
	s.AppendSections("one", "two")
	s.AppendItems("one", "a", "b")
	s.AppendItems("two", "c")

	s.MoveItemAfter("a", "c")
	assert.Equal(t, "one[b] two[c a]", s.String())

	p, ok := s.ItemIndex("a")
	require.True(t, ok)
	assert.Equal(t, IndexPath{Section: 1, Item: 1}, p)
}

func TestSnapshot_MoveItemSameSectionAnchorShift(t *testing.T) {
	s := New[string, string]()
	s.AppendSections("one")
	s.AppendItems("one", "a", "b", "c", "d")

	// Moving an earlier item after a later anchor shifts the anchor's
	// ordinal during the move; the result must still land beside it.
	s.MoveItemAfter("a", "c")
	assert.Equal(t, "one[b c a d]", s.String())

	s.MoveItemBefore("d", "b")
	assert.Equal(t, "one[d b c a]", s.String())
}

func TestSnapshot_PanicLeavesStateUnchanged(t *testing.T) {
	s := New[string, string]()
	s.AppendSections("one")
	s.AppendItems("one", "a", "b")
	before := s.String()

	for name, fn := range map[string]func(){
		"duplicate item":  func() { s.AppendItems("one", "c", "a") },
		"missing anchor":  func() { s.InsertItemsBefore("ghost", "c") },
		"missing delete":  func() { s.DeleteItems("a", "ghost") },
		"missing move":    func() { s.MoveItemBefore("a", "ghost") },
		"missing section": func() { s.DeleteSections("one", "ghost") },
	} {
		assert.Panics(t, fn, name)
		assert.Equal(t, before, s.String(), name)
	}
}
