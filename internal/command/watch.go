// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/difftable/difftable"
	"github.com/difftable/difftable/internal/config"
	"github.com/difftable/difftable/internal/feed"
	"github.com/difftable/difftable/internal/meta"
	"github.com/difftable/difftable/teaview"
)

var (
	watchTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b08800"))
	watchStatusStyle  = lipgloss.NewStyle().Faint(true)
	watchSpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f6be00"))
)

// watchCommandAction is the action handler for the "watch" subcommand. It
// runs a live board in a full-screen table view, stepping the feed simulator
// and applying a fresh snapshot on every tick.
func watchCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "watch") {
		return nil
	}

	config.Config.Namespace = "watch"

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("watch needs a terminal; use explain for scripted output")
	}

	// The positional feed ref wins over the flag and its config/env chain.
	feedPath := m.Feed
	if feedPath == "" {
		feedPath = cmd.String("feed")
	}

	seed := m.Seed
	if seed == 0 {
		seed = int64(cmd.Int("seed"))
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	interval, err := time.ParseDuration(cmd.String("interval"))
	if err != nil {
		return fmt.Errorf("failed to parse interval (%s): %w", cmd.String("interval"), err)
	}

	board, err := feed.Load(feedPath)
	if err != nil {
		return err
	}

	sim := feed.NewSimulator(board, seed)
	log.Debugf("watching: feed=%q seed=%d interval=%s", feedPath, seed, interval)

	return runWatchBoard(sim, interval, cmd.Bool("animate"))
}

// watchTickMsg advances the feed simulator by one step.
type watchTickMsg time.Time

// watchErrMsg carries a fatal error into the update loop.
type watchErrMsg struct{ err error }

// watchKeyMap defines the key bindings for the watch TUI.
type watchKeyMap struct {
	Pause   key.Binding
	Animate key.Binding
	Shuffle key.Binding
	Add     key.Binding
	Remove  key.Binding
	Reload  key.Binding
	Rotate  key.Binding
	Quit    key.Binding
}

func defaultWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Animate: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "animate"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shuffle"),
		),
		Add: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "add"),
		),
		Remove: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "remove"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload one"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rotate regions"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp satisfies help.KeyMap.
func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Animate, k.Shuffle, k.Add, k.Remove, k.Reload, k.Rotate, k.Quit}
}

// FullHelp satisfies help.KeyMap.
func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// watchModel represents the Bubble Tea model for the watch command.
type watchModel struct {
	board    teaview.Model[string, string]
	source   *difftable.DataSource[string, string]
	sim      *feed.Simulator
	keys     watchKeyMap
	help     help.Model
	spin     spinner.Model
	interval time.Duration
	animate  bool
	paused   bool
	lastEdit time.Time
	err      error
}

func initialWatchModel(sim *feed.Simulator, interval time.Duration, animate bool) (watchModel, error) {
	source := difftable.New[string, string](nil)

	// Seed the source before building the view, so the first frame shows the
	// full board rather than an empty table.
	applied := make(chan struct{})
	if err := source.Apply(sim.Board().Snapshot(), false, func() { close(applied) }); err != nil {
		return watchModel{}, err
	}
	<-applied

	render := teaview.RenderFunc[string, string](func(_ string, item string, _ difftable.IndexPath) string {
		inst, ok := sim.Board().Instance(item)
		if !ok {
			return item
		}
		return fmt.Sprintf("%-14s %-10s %-9s %-8s %4dms",
			inst.ID, inst.Service, inst.Status, inst.Version, inst.Latency)
	})

	board := teaview.New(source, render)
	board.RenderHeader = func(section string) string {
		n, _ := source.NumberOfItems(section)
		return fmt.Sprintf("%s (%d)", section, n)
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(watchSpinnerStyle))

	return watchModel{
		board:    board,
		source:   source,
		sim:      sim,
		keys:     defaultWatchKeyMap(),
		help:     help.New(),
		spin:     sp,
		interval: interval,
		animate:  animate,
	}, nil
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.spin.Tick)
}

// tickCmd arms the next simulator step.
func (m watchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

// applyBoard queues the simulator's current board on the data source. The
// resulting changeset comes back through the program as an UpdatesMsg.
func (m watchModel) applyBoard() tea.Cmd {
	if err := m.source.Apply(m.sim.Board().Snapshot(), m.animate, nil); err != nil {
		return func() tea.Msg { return watchErrMsg{err} }
	}
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if !m.paused {
				return m, m.tickCmd()
			}
			return m, nil

		case key.Matches(msg, m.keys.Animate):
			m.animate = !m.animate
			return m, nil

		case key.Matches(msg, m.keys.Shuffle):
			m.sim.Shuffle()
			return m, m.applyBoard()

		case key.Matches(msg, m.keys.Add):
			m.sim.Add()
			return m, m.applyBoard()

		case key.Matches(msg, m.keys.Remove):
			m.sim.Remove()
			return m, m.applyBoard()

		case key.Matches(msg, m.keys.Reload):
			m.sim.Reload()
			return m, m.applyBoard()

		case key.Matches(msg, m.keys.Rotate):
			m.sim.RotateRegions()
			return m, m.applyBoard()
		}
		return m, nil

	case watchTickMsg:
		if m.paused {
			return m, nil
		}
		m.sim.Step()
		return m, tea.Batch(m.applyBoard(), m.tickCmd())

	case watchErrMsg:
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case teaview.UpdatesMsg[string, string]:
		if !msg.Changes.IsEmpty() {
			m.lastEdit = time.Now()
		}
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

func (m watchModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("difftable watch: %s", m.sim.Board().Name)
	if m.paused {
		title += " (paused)"
	}
	b.WriteString(watchTitleStyle.Render(title))
	if !m.paused {
		b.WriteString(" " + m.spin.View())
	}
	b.WriteString("\n\n")

	b.WriteString(m.board.View())
	b.WriteString("\n")

	b.WriteString(watchStatusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// statusLine summarizes the source counters for the footer.
func (m watchModel) statusLine() string {
	st := m.source.Stats()
	edits := st.SectionInserts + st.SectionDeletes + st.SectionMoves +
		st.ItemInserts + st.ItemDeletes + st.ItemMoves + st.ItemReloads

	line := fmt.Sprintf("%s applies, %s edits, queue %d, last diff %s",
		humanize.Comma(int64(st.Applies)), humanize.Comma(int64(edits)),
		st.QueueDepth, st.LastDiff.Round(time.Microsecond))
	if !m.lastEdit.IsZero() {
		line += ", last change " + humanize.Time(m.lastEdit)
	}
	return line
}

// runWatchBoard wires the data source into a bubbletea program and runs it.
func runWatchBoard(sim *feed.Simulator, interval time.Duration, animate bool) error {
	model, err := initialWatchModel(sim, interval, animate)
	if err != nil {
		return err
	}
	defer model.source.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.source.Attach(teaview.Forward[string, string](p.Send))

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(watchModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// watchCommandBuilder constructs the cli.Command for "watch" and wires up
// metadata, flags, and the action handler.
func watchCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "watch a live board in a table view",
		UsageText: "difftable watch [feed[::seed]] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			tldrFlag,
			NewFeedFlag("watch", meta.Config.Source),
			NewIntervalFlag("watch", meta.Config.Source),
			NewSeedFlag(),
			&cli.BoolFlag{
				Name:  "animate",
				Usage: "flash rows as edits land",
				Value: true,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: watchCommandAction,
	}
}
