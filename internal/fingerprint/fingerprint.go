// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package fingerprint derives stable 64-bit fingerprints from item content.
// A row whose identity is unchanged but whose fingerprint differs needs a
// reload, so sources hash the displayed fields and store the result as the
// item payload.
package fingerprint

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Of returns the fingerprint of raw bytes.
func Of(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// OfString returns the fingerprint of a string without copying it.
func OfString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Fields returns the fingerprint of an ordered field list. Each field is
// length-prefixed so ("ab", "c") and ("a", "bc") hash differently.
func Fields(fields ...string) uint64 {
	d := xxhash.New()
	var pre [binary.MaxVarintLen64]byte
	for _, f := range fields {
		n := binary.PutUvarint(pre[:], uint64(len(f)))
		_, _ = d.Write(pre[:n])
		_, _ = d.WriteString(f)
	}
	return d.Sum64()
}
