// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package teaview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/difftable/difftable"
)

// CellRenderer binds an item identity at a position to its rendered line.
// Implementations must not block; View calls them on every frame.
type CellRenderer[S comparable, I comparable] interface {
	RenderCell(section S, item I, path difftable.IndexPath) string
}

// RenderFunc adapts a function to the CellRenderer interface.
type RenderFunc[S comparable, I comparable] func(section S, item I, path difftable.IndexPath) string

// RenderCell calls f.
func (f RenderFunc[S, I]) RenderCell(section S, item I, path difftable.IndexPath) string {
	return f(section, item, path)
}

// FlashKind says why a row is currently highlighted.
type FlashKind int8

const (
	FlashNone FlashKind = iota
	FlashInsert
	FlashMove
	FlashReload
)

// Styles control the component's rendering.
type Styles struct {
	Header      lipgloss.Style
	Row         lipgloss.Style
	InsertFlash lipgloss.Style
	MoveFlash   lipgloss.Style
	ReloadFlash lipgloss.Style
	Empty       lipgloss.Style
}

// DefaultStyles returns the stock look: bold headers, green insert
// flashes, cyan move flashes, yellow reload flashes.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Row:         lipgloss.NewStyle(),
		InsertFlash: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		MoveFlash:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		ReloadFlash: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Empty:       lipgloss.NewStyle().Faint(true),
	}
}

// Model is a bubbles-style sectioned table fed by a difftable data source.
// Embed it in a program model, forward messages to Update, and render View.
// It keeps no item content of its own: rows are identities resolved through
// the injected CellRenderer at draw time.
type Model[S comparable, I comparable] struct {
	// Styles and FlashDuration may be adjusted after New. RenderHeader
	// overrides the default %v rendering of section identifiers.
	Styles        Styles
	FlashDuration time.Duration
	RenderHeader  func(S) string

	source *difftable.DataSource[S, I]
	render CellRenderer[S, I]

	rows     []difftable.Section[S, I]
	flashes  map[I]FlashKind
	headered map[S]FlashKind
	flashGen int
}

// clearFlashMsg expires the flashes of one update generation.
type clearFlashMsg struct {
	gen int
}

// New returns a model over the data source's applied snapshot, rendering
// cells with render.
func New[S comparable, I comparable](source *difftable.DataSource[S, I], render CellRenderer[S, I]) Model[S, I] {
	m := Model[S, I]{
		Styles:        DefaultStyles(),
		FlashDuration: 500 * time.Millisecond,
		source:        source,
		render:        render,
	}
	m.rows = source.Snapshot().Sections()
	return m
}

// Update consumes UpdatesMsg and the internal flash-expiry ticks. All other
// messages pass through untouched.
func (m Model[S, I]) Update(msg tea.Msg) (Model[S, I], tea.Cmd) {
	switch msg := msg.(type) {
	case UpdatesMsg[S, I]:
		// Pin one applied snapshot for the whole rebuild; the worker may
		// commit again while this runs.
		m.rows = m.source.Snapshot().Sections()
		if !msg.Animate {
			m.flashes, m.headered = nil, nil
			return m, nil
		}
		m.flashes, m.headered = marksFrom(msg.Changes)
		m.flashGen++
		gen := m.flashGen
		return m, tea.Tick(m.FlashDuration, func(time.Time) tea.Msg {
			return clearFlashMsg{gen: gen}
		})
	case clearFlashMsg:
		// A stale tick from a superseded update must not clear newer
		// flashes.
		if msg.gen == m.flashGen {
			m.flashes, m.headered = nil, nil
		}
	}
	return m, nil
}

// marksFrom collects the identities a changeset touched, keyed by identity
// rather than position so marks survive later commits.
func marksFrom[S comparable, I comparable](changes *difftable.Changeset[S, I]) (map[I]FlashKind, map[S]FlashKind) {
	flashes := make(map[I]FlashKind)
	headered := make(map[S]FlashKind)
	for _, e := range changes.SectionInserts {
		headered[e.ID] = FlashInsert
	}
	for _, mv := range changes.SectionMoves {
		headered[mv.ID] = FlashMove
	}
	for i := range changes.ItemEdits {
		g := &changes.ItemEdits[i]
		for _, e := range g.Inserts {
			flashes[e.ID] = FlashInsert
		}
		for _, mv := range g.Moves {
			flashes[mv.ID] = FlashMove
		}
		for _, e := range g.Reloads {
			flashes[e.ID] = FlashReload
		}
	}
	return flashes, headered
}

// Flash reports whether the item is currently highlighted and why.
func (m Model[S, I]) Flash(id I) FlashKind {
	return m.flashes[id]
}

// Rows returns the currently displayed structure.
func (m Model[S, I]) Rows() []difftable.Section[S, I] {
	return m.rows
}

// View renders the sectioned table.
func (m Model[S, I]) View() string {
	if len(m.rows) == 0 {
		return m.Styles.Empty.Render("no rows") + "\n"
	}
	var b strings.Builder
	for si, sec := range m.rows {
		header := fmt.Sprintf("%v", sec.ID)
		if m.RenderHeader != nil {
			header = m.RenderHeader(sec.ID)
		}
		style := m.Styles.Header
		switch m.headered[sec.ID] {
		case FlashInsert:
			style = m.Styles.InsertFlash.Bold(true)
		case FlashMove:
			style = m.Styles.MoveFlash.Bold(true)
		}
		b.WriteString(style.Render(header))
		b.WriteString("\n")

		for ii, it := range sec.Items {
			line := m.render.RenderCell(sec.ID, it, difftable.IndexPath{Section: si, Item: ii})
			rowStyle := m.Styles.Row
			switch m.flashes[it] {
			case FlashInsert:
				rowStyle = m.Styles.InsertFlash
			case FlashMove:
				rowStyle = m.Styles.MoveFlash
			case FlashReload:
				rowStyle = m.Styles.ReloadFlash
			}
			b.WriteString(rowStyle.Render("  " + line))
			b.WriteString("\n")
		}
	}
	return b.String()
}
