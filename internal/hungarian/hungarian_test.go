// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package hungarian

import (
	"testing"
)

func TestIsHungarian(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		id       string
		expected bool
	}{
		// Token equality tests - id part matches kind token exactly.
		{
			name:     "minted id convention",
			kind:     "api",
			id:       "api-0001",
			expected: true,
		},
		{
			name:     "billing token in id",
			kind:     "billing",
			id:       "billing_eu_7",
			expected: true,
		},
		{
			name:     "gateway token in multi-token kind",
			kind:     "api_gateway",
			id:       "gateway-edge-2",
			expected: true,
		},
		{
			name:     "first token of multi-token kind",
			kind:     "api_gateway",
			id:       "api-edge-2",
			expected: true,
		},
		// Substring tests - kind appears jammed into the id.
		{
			name:     "kind jammed without separators",
			kind:     "api",
			id:       "apiweb01",
			expected: true,
		},
		{
			name:     "kind embedded mid-id",
			kind:     "cache",
			id:       "eu-cache-warm",
			expected: true,
		},
		// Case insensitivity tests.
		{
			name:     "uppercase kind",
			kind:     "API",
			id:       "api-0001",
			expected: true,
		},
		{
			name:     "mixed case id",
			kind:     "worker",
			id:       "Worker_Batch",
			expected: true,
		},
		// CamelCase boundary tests.
		{
			name:     "camelCase id",
			kind:     "search",
			id:       "primarySearchNode",
			expected: true,
		},
		{
			name:     "camelCase no match",
			kind:     "ingest",
			id:       "PrimaryDataNode",
			expected: false,
		},
		// Non-Hungarian tests.
		{
			name:     "opaque id",
			kind:     "billing",
			id:       "node-7f3c",
			expected: false,
		},
		{
			name:     "host-style id",
			kind:     "auth",
			id:       "ip-10-0-4-17",
			expected: false,
		},
		// Edge cases.
		{
			name:     "empty kind",
			kind:     "",
			id:       "api-0001",
			expected: false,
		},
		{
			name:     "empty id",
			kind:     "api",
			id:       "",
			expected: false,
		},
		{
			name:     "both empty",
			kind:     "",
			id:       "",
			expected: false,
		},
		// Separator handling.
		{
			name:     "dot separated id",
			kind:     "cache",
			id:       "cache.local.prod",
			expected: true,
		},
		{
			name:     "mixed separators",
			kind:     "api_gateway",
			id:       "my-gateway.edge_2",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsHungarian(tt.kind, tt.id)
			if result != tt.expected {
				t.Errorf("IsHungarian(%q, %q) = %v, expected %v",
					tt.kind, tt.id, result, tt.expected)
			}
		})
	}
}

// BenchmarkIsHungarian benchmarks the IsHungarian function to ensure it
// performs well with typical instance identifiers.
func BenchmarkIsHungarian(b *testing.B) {
	tests := []struct {
		name string
		kind string
		id   string
	}{
		{"simple", "api", "api-0001"},
		{"complex", "api_gateway", "my-gateway.edge_2"},
		{"no_match", "billing", "node-7f3c-long-opaque-identifier"},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				IsHungarian(tt.kind, tt.id)
			}
		})
	}
}
