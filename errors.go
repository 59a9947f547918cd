// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package difftable

import (
	"errors"

	"github.com/difftable/difftable/snapshot"
)

// InvariantError reports a broken caller or internal invariant: a
// duplicate identity, a missing anchor, or an in-range-by-construction
// lookup that missed. It is delivered by panic and is not meant to be
// recovered; a violated invariant means the displayed state can no longer
// be trusted, and continuing would desynchronize the view permanently.
type InvariantError = snapshot.InvariantError

// ErrClosed is returned by Apply after Close.
var ErrClosed = errors.New("difftable: data source closed")
