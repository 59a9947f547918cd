// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/difftable/difftable/internal/config"
	"github.com/difftable/difftable/internal/meta"
	"github.com/difftable/difftable/internal/util"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup and then defer restoring it so we're tidy.
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	// The arg[1] immediately following the binary (arg[0]) is the difftable
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// allow short if-style local cfg; no actual outer cfg
	cfg2, _ := config.Load(ns) //nolint
	meta := meta.Meta{
		Args:        args,
		Config:      cfg2,
		Context:     ctx,
		StartingDir: sd,
	}

	// See if the arg immediately following the watch command might be a feed
	// ref. This is determined by whether or not it begins with - or --. If it
	// does, it's a flag and the feed comes from the --feed chain. The other
	// commands take plain positional arguments (board files for explain,
	// 'bash' or 'zsh' for completion) which cli parses on its own.
	if ns == "watch" && len(args) > 2 && !strings.HasPrefix(args[2], "-") {
		if feed, seed, err := util.ParseFeedRef(args[2]); err == nil {
			meta.Feed = feed
			meta.Seed = seed
		} else {
			return nil, fmt.Errorf("failed to parse feed ref (%s): %w", args[2], err)
		}
	}

	app := &cli.Command{
		Name:  "difftable",
		Usage: "Diffable data sources for table views",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "difftable version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		watchCommandBuilder(meta),
		explainCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
