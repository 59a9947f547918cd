// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package teaview

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/difftable/difftable"
)

// UpdatesMsg carries one applied changeset into the bubbletea loop. By the
// time a program receives it, the apply has already committed; the model
// rebuilds from the applied snapshot and uses Changes only for flashes.
type UpdatesMsg[S comparable, I comparable] struct {
	Changes *difftable.Changeset[S, I]
	Animate bool
}

// Forward returns a target that marshals PerformUpdates calls into a
// bubbletea program through send, typically Program.Send. The target
// commits first and sends second, so the message loop always finds the
// snapshot the changeset led to. Messages arrive in apply order.
//
//	p := tea.NewProgram(newApp(source))
//	source.Attach(teaview.Forward[string, string](p.Send))
func Forward[S comparable, I comparable](send func(tea.Msg)) difftable.Target[S, I] {
	return difftable.TargetFunc[S, I](func(changes *difftable.Changeset[S, I], animate bool, commit func()) {
		commit()
		send(UpdatesMsg[S, I]{Changes: changes, Animate: animate})
	})
}
