// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/difftable/difftable/internal/config"
)

// FeedSpec holds the resolved feed file and simulator seed used when
// producing board snapshots.
type FeedSpec struct {
	Feed string
	Seed int64
}

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the resolved feed specification, and the
// starting working directory.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	FeedSpec
	StartingDir string
}
