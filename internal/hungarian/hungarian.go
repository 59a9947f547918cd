// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hungarian

import (
	"regexp"
	"strings"
)

// IsHungarian returns true if any component of the service kind (split by
// '_') appears in the identifier of that instance. Matching is
// case-insensitive and checks both substring containment and token equality
// when the identifier is split by non-alphanumeric chars and camelCase
// boundaries. Fleet conventions mint ids service-prefixed ("api-0001" for
// service "api"); the check flags whether an id follows that convention.
func IsHungarian(kind string, name string) bool {
	if kind == "" || name == "" {
		return false
	}

	kindLower := strings.ToLower(kind)
	nameLower := strings.ToLower(name)

	// Split the kind into a slice of tokens.
	kindTokens := strings.Split(kindLower, "_")

	// Split the identifier by:
	// 1. Non-alphanumeric separators (dashes, dots, underscores, etc.)
	// 2. CamelCase boundaries (transition from lowercase to uppercase)
	// First replace camelCase boundaries with a delimiter, then split by non-alphanumeric.
	camelCaseRe := regexp.MustCompile(`([a-z])([A-Z])`)
	nameWithDelim := camelCaseRe.ReplaceAllString(name, "${1}_${2}")

	splitRe := regexp.MustCompile(`[^a-z0-9]+`)
	nameParts := splitRe.Split(strings.ToLower(nameWithDelim), -1)

	// Iterate over each kind token and see if it matches any identifier
	// token. If so, it's Hungarian.
	for _, tok := range kindTokens {
		if tok == "" {
			continue
		}

		// If the token appears as a whole identifier part, it's Hungarian.
		for _, p := range nameParts {
			if p == tok {
				// Hungarian - bail out.
				return true
			}
		}

		// Also treat any substring occurrence as a match. Covers ids jammed
		// without separators, like "apiweb01" for service "api".
		if strings.Contains(nameLower, tok) {
			// Hungarian - bail out.
			return true
		}
	}

	// Not Hungarian.
	return false
}
