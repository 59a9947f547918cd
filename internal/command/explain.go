// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/difftable/difftable/diff"
	"github.com/difftable/difftable/internal/attrs"
	"github.com/difftable/difftable/internal/config"
	"github.com/difftable/difftable/internal/feed"
	"github.com/difftable/difftable/internal/meta"
	"github.com/difftable/difftable/snapshot"
)

// EditRecord is one row of explain output: a single edit from the changeset
// between two boards. Positions are old-coordinate for deletes, move sources
// and reloads, new-coordinate for inserts and move destinations; item
// positions render as [section, item] index paths.
type EditRecord struct {
	Scope   string `json:"scope"`
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Service string `json:"service"`
	Section string `json:"section"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// explainCommandAction is the action handler for the "explain" subcommand. It
// loads two board files, diffs their snapshots, and renders the changeset as
// one row per edit.
func explainCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "explain") {
		return nil
	}

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(EditRecord{})) {
		return nil
	}

	header := "\nChangeset edits"
	if cmd.String("filter") != "" {
		header += " (filtered)"
	}
	header += ":"
	cmd.Metadata["header"] = header

	config.Config.Namespace = "explain"

	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("explain needs a before and an after board file")
	}

	before, err := loadBoardArg(args[0])
	if err != nil {
		return err
	}
	after, err := loadBoardArg(args[1])
	if err != nil {
		return err
	}

	if cmd.Bool("payloads") {
		return payloadDiff(cmd, before, after, os.Stdout)
	}

	cs := diff.Between(before.Snapshot(), after.Snapshot())

	footer := cs.Summary()
	if cmd.Bool("verify") {
		if err := verifyReplay(before, after, cs); err != nil {
			return err
		}
		footer += " (replay verified)"
	}
	cmd.Metadata["footer"] = footer

	records := editRecords(cs, before, after)

	al := BuildAttrs(cmd, attrs.EditAttrs())
	return EmitRecordSlice(records, al, cmd, nil)
}

// loadBoardArg loads a board from a positional argument. "-" reads the board
// from stdin.
func loadBoardArg(arg string) (*feed.Board, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read board from stdin: %w", err)
		}
		return feed.Parse(data)
	}

	if info, err := os.Stat(arg); err != nil {
		return nil, fmt.Errorf("board file does not exist: %s", arg)
	} else if info.IsDir() {
		return nil, fmt.Errorf("board input cannot be a directory: %s", arg)
	}

	return feed.Load(arg)
}

// editRecords flattens a changeset into one row per edit, in the order a
// view-side collaborator performs them: section deletes, section inserts,
// section moves, then per section group the item deletes, inserts, moves,
// and reloads.
func editRecords(cs *diff.Changeset[string, string], before, after *feed.Board) []EditRecord {
	records := make([]EditRecord, 0, cs.TotalChanges())

	for _, e := range cs.SectionDeletes {
		records = append(records, EditRecord{
			Scope: "section",
			Kind:  "delete",
			ID:    e.ID,
			From:  strconv.Itoa(e.Index),
		})
	}
	for _, e := range cs.SectionInserts {
		records = append(records, EditRecord{
			Scope: "section",
			Kind:  "insert",
			ID:    e.ID,
			To:    strconv.Itoa(e.Index),
		})
	}
	for _, mv := range cs.SectionMoves {
		records = append(records, EditRecord{
			Scope: "section",
			Kind:  "move",
			ID:    mv.ID,
			From:  strconv.Itoa(mv.From),
			To:    strconv.Itoa(mv.To),
		})
	}

	for gi := range cs.ItemEdits {
		g := &cs.ItemEdits[gi]
		for _, e := range g.Deletes {
			records = append(records, EditRecord{
				Scope:   "item",
				Kind:    "delete",
				ID:      e.ID,
				Service: serviceOf(before, e.ID),
				Section: g.SectionID,
				From:    snapshot.IndexPath{Section: g.OldSection, Item: e.Index}.String(),
			})
		}
		for _, e := range g.Inserts {
			records = append(records, EditRecord{
				Scope:   "item",
				Kind:    "insert",
				ID:      e.ID,
				Service: serviceOf(after, e.ID),
				Section: g.SectionID,
				To:      snapshot.IndexPath{Section: g.NewSection, Item: e.Index}.String(),
			})
		}
		for _, mv := range g.Moves {
			records = append(records, EditRecord{
				Scope:   "item",
				Kind:    "move",
				ID:      mv.ID,
				Service: serviceOf(after, mv.ID),
				Section: g.SectionID,
				From:    snapshot.IndexPath{Section: g.OldSection, Item: mv.From}.String(),
				To:      snapshot.IndexPath{Section: g.NewSection, Item: mv.To}.String(),
			})
		}
		for _, e := range g.Reloads {
			records = append(records, EditRecord{
				Scope:   "item",
				Kind:    "reload",
				ID:      e.ID,
				Service: serviceOf(after, e.ID),
				Section: g.SectionID,
				From:    snapshot.IndexPath{Section: g.OldSection, Item: e.Index}.String(),
			})
		}
	}

	return records
}

// serviceOf looks up the service name an instance belongs to on the given
// board. Deletes resolve against the before board, everything else against
// the after board.
func serviceOf(b *feed.Board, id string) string {
	if inst, ok := b.Instance(id); ok {
		return inst.Service
	}
	return ""
}

// verifyReplay replays the changeset over the before board's ordering and
// confirms it reproduces the after board's ordering.
func verifyReplay(before, after *feed.Board, cs *diff.Changeset[string, string]) error {
	afterSnap := after.Snapshot()
	contents := func(sectionID string) []string {
		ids, _ := afterSnap.ItemIdentifiers(sectionID)
		return ids
	}

	got := diff.Replay(before.Snapshot().Sections(), cs, contents)
	if !diff.SectionsEqual(got, afterSnap.Sections()) {
		return fmt.Errorf("changeset replay failed to reproduce the after board")
	}
	return nil
}

// payloadDiff renders a content-level JSON diff of the two boards instead of
// the positional changeset.
func payloadDiff(cmd *cli.Command, before, after *feed.Board, w io.Writer) error {
	lhs, err := before.JSON()
	if err != nil {
		return err
	}
	rhs, err := after.JSON()
	if err != nil {
		return err
	}

	differ := gojsondiff.New()

	delta, err := differ.Compare(lhs, rhs)
	if err != nil {
		return fmt.Errorf("failed to compare boards: %w", err)
	}

	if delta.Modified() {
		var jdoc map[string]interface{}
		if err := json.Unmarshal(lhs, &jdoc); err != nil {
			return fmt.Errorf("failed to unmarshal board: %w", err)
		}

		config := formatter.AsciiFormatterConfig{
			ShowArrayIndex: false,
			Coloring:       cmd.Bool("color"),
		}

		formatter := formatter.NewAsciiFormatter(jdoc, config)
		diffString, err := formatter.Format(delta)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, diffString)
		return nil
	}

	fmt.Fprintln(w, "The boards are identical.")
	return nil
}

// explainCommandBuilder returns the cli.Command for the "explain" subcommand.
func explainCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "explain",
		Usage:     "diff two board files and show the changeset",
		UsageText: "difftable explain [options] before-board after-board",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "payloads",
				Usage:       "show a content-level JSON diff instead of edits",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "verify",
				Usage:       "replay the changeset and confirm it reproduces the after board",
				HideDefault: true,
			},
		},
		Action: explainCommandAction,
		Meta:   meta,
	}
	return cb.Build()
}
