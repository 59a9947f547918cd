// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import "fmt"

// InvariantError reports a broken identity invariant: a duplicate identifier
// handed to an insert, a referenced identifier that is not in the snapshot,
// or an internal lookup that missed a position known to be in range. These
// are programmer errors, so the package delivers them by panic. Hosts that
// want a crash report before aborting may recover, inspect, and re-panic,
// but must never continue past one: a snapshot that violated an invariant
// would produce a changeset that desynchronizes the view permanently.
type InvariantError struct {
	// Op is the operation that detected the violation, e.g. "AppendItems".
	Op string
	// Detail describes the offending identifier and why it was rejected.
	Detail string
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("difftable: %s: %s", e.Op, e.Detail)
}

// fail panics with an *InvariantError for the given operation.
func fail(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
