// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseFeedRef parses a feed reference string and returns the absolute board
// file path and any optional ::seed override. It returns an error if the fs
// entry does not exist, is empty or is a directory. A ref without a seed
// yields seed 0, which callers treat as "seed from the clock".
func ParseFeedRef(ref string) (string, int64, error) {

	if ref == "" {
		return "", 0, os.ErrInvalid
	}

	var path string
	var seed int64

	// First, split the ref to see if there is a ::seed override.
	parts := strings.Split(ref, "::")
	if len(parts) > 1 {
		s, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return "", 0, fmt.Errorf("bad seed in feed ref (%s): %w", ref, err)
		}
		seed = s
	}

	// Now determine if the actual feed path (parts[0]) is absolute or
	// relative. If it is relative, make it absolute.
	if !strings.HasPrefix(parts[0], "/") {
		cwd, err := os.Getwd()
		if err != nil {
			return "", 0, err
		}
		path = filepath.Join(cwd, parts[0])
	} else {
		path = parts[0]
	}

	// If the feed path is a directory, return an error.
	if r, err := os.Stat(path); err != nil {
		return "", 0, err
	} else if r.IsDir() {
		return "", 0, os.ErrInvalid
	}

	return path, seed, nil
}
