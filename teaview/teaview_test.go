// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package teaview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/difftable/difftable"
)

func newBoard(items ...string) *difftable.Snapshot[string, string] {
	s := difftable.NewSnapshot[string, string]()
	s.AppendSections("main")
	if len(items) > 0 {
		s.AppendItems("main", items...)
	}
	return s
}

// applyWait applies snap and blocks until its completion fired.
func applyWait(t *testing.T, d *difftable.DataSource[string, string], snap *difftable.Snapshot[string, string], animate bool) {
	t.Helper()
	done := make(chan struct{})
	require.NoError(t, d.Apply(snap, animate, func() { close(done) }))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("apply did not complete")
	}
}

func TestForward_CommitsBeforeSending(t *testing.T) {
	var msgs []tea.Msg
	d := difftable.New[string, string](nil)
	defer d.Close()

	committedAtSend := false
	d.Attach(Forward[string, string](func(msg tea.Msg) {
		// The applied snapshot must already hold the new state when the
		// message goes out.
		if _, ok := d.IndexPathForItem("a"); ok {
			committedAtSend = true
		}
		msgs = append(msgs, msg)
	}))

	applyWait(t, d, newBoard("a"), true)

	require.Len(t, msgs, 1)
	um, ok := msgs[0].(UpdatesMsg[string, string])
	require.True(t, ok, "want UpdatesMsg, got %T", msgs[0])
	assert.True(t, um.Animate)
	assert.False(t, um.Changes.IsEmpty())
	assert.True(t, committedAtSend)
}

func TestForward_PreservesApplyOrder(t *testing.T) {
	var msgs []UpdatesMsg[string, string]
	d := difftable.New[string, string](nil)
	d.Attach(Forward[string, string](func(msg tea.Msg) {
		msgs = append(msgs, msg.(UpdatesMsg[string, string]))
	}))

	applyWait(t, d, newBoard("a"), false)
	applyWait(t, d, newBoard("a", "b"), true)
	require.NoError(t, d.Close())

	require.Len(t, msgs, 2)
	assert.False(t, msgs[0].Animate)
	assert.True(t, msgs[1].Animate)
	// Second changeset is the a→ab delta: exactly one item insert.
	require.Len(t, msgs[1].Changes.ItemEdits, 1)
	assert.Len(t, msgs[1].Changes.ItemEdits[0].Inserts, 1)
}

// drive applies snap and feeds the resulting UpdatesMsg through the model,
// returning the follow-up command (the flash expiry tick, if animated).
func drive(t *testing.T, d *difftable.DataSource[string, string], m Model[string, string], snap *difftable.Snapshot[string, string], animate bool) (Model[string, string], tea.Cmd) {
	t.Helper()
	var captured tea.Msg
	d.Attach(Forward[string, string](func(msg tea.Msg) { captured = msg }))
	applyWait(t, d, snap, animate)
	require.NotNil(t, captured)
	return m.Update(captured)
}

func TestModel_RebuildsRowsFromAppliedSnapshot(t *testing.T) {
	d := difftable.New[string, string](nil)
	defer d.Close()

	m := New(d, RenderFunc[string, string](func(section, item string, path difftable.IndexPath) string {
		return "cell:" + item
	}))
	assert.Contains(t, m.View(), "no rows")

	m, _ = drive(t, d, m, newBoard("a", "b"), false)
	rows := m.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b"}, rows[0].Items)

	view := m.View()
	assert.Contains(t, view, "main")
	assert.Contains(t, view, "cell:a")
	assert.Less(t, strings.Index(view, "cell:a"), strings.Index(view, "cell:b"),
		"rows must render in snapshot order")

	m, _ = drive(t, d, m, newBoard("b", "a"), false)
	view = m.View()
	assert.Less(t, strings.Index(view, "cell:b"), strings.Index(view, "cell:a"))
}

func TestModel_FlashesTouchedRowsUntilTick(t *testing.T) {
	d := difftable.New[string, string](nil)
	defer d.Close()

	m := New(d, RenderFunc[string, string](func(section, item string, path difftable.IndexPath) string {
		return item
	}))
	m.FlashDuration = time.Millisecond

	m, _ = drive(t, d, m, newBoard("a", "b", "c"), false)
	assert.Equal(t, FlashNone, m.Flash("a"))

	m, cmd := drive(t, d, m, newBoard("c", "a", "d"), true)
	require.NotNil(t, cmd, "animated update must schedule a flash expiry")
	assert.Equal(t, FlashInsert, m.Flash("d"))
	assert.Equal(t, FlashMove, m.Flash("c"))
	assert.Equal(t, FlashNone, m.Flash("a"), "untouched rows do not flash")

	// Running the tick command yields the expiry message.
	m, _ = m.Update(cmd())
	assert.Equal(t, FlashNone, m.Flash("d"))
	assert.Equal(t, FlashNone, m.Flash("c"))
}

func TestModel_StaleTickDoesNotClearNewerFlashes(t *testing.T) {
	d := difftable.New[string, string](nil)
	defer d.Close()

	m := New(d, RenderFunc[string, string](func(section, item string, path difftable.IndexPath) string {
		return item
	}))
	m.FlashDuration = time.Millisecond

	m, staleCmd := drive(t, d, m, newBoard("a"), true)
	require.NotNil(t, staleCmd)
	staleMsg := staleCmd()

	m, _ = drive(t, d, m, newBoard("a", "b"), true)
	require.Equal(t, FlashInsert, m.Flash("b"))

	m, _ = m.Update(staleMsg)
	assert.Equal(t, FlashInsert, m.Flash("b"), "older generation tick cleared newer flashes")
}

func TestModel_ReloadFlash(t *testing.T) {
	d := difftable.New[string, string](nil)
	defer d.Close()

	m := New(d, RenderFunc[string, string](func(section, item string, path difftable.IndexPath) string {
		return item
	}))

	first := newBoard("a", "b")
	m, _ = drive(t, d, m, first, false)

	second := newBoard("a", "b")
	second.ReloadItems("b")
	m, _ = drive(t, d, m, second, true)

	assert.Equal(t, FlashReload, m.Flash("b"))
	assert.Equal(t, FlashNone, m.Flash("a"))
}

func TestModel_SilentApplyClearsFlashes(t *testing.T) {
	d := difftable.New[string, string](nil)
	defer d.Close()

	m := New(d, RenderFunc[string, string](func(section, item string, path difftable.IndexPath) string {
		return item
	}))

	m, _ = drive(t, d, m, newBoard("a"), true)
	m, _ = drive(t, d, m, newBoard("a", "b"), false)
	assert.Equal(t, FlashNone, m.Flash("b"))
	assert.Equal(t, FlashNone, m.Flash("a"))
}
