// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/difftable/difftable/internal/attrs"
)

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"id": "web-0003", "from": 3.0, "kind": "move"},
		{"id": "api-0001", "from": 1.0, "kind": "insert"},
		{"id": "db-0002", "from": 2.0, "kind": "delete"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by id",
			spec:      "id",
			wantOrder: []string{"api-0001", "db-0002", "web-0003"},
		},
		{
			name:      "descending by id",
			spec:      "-id",
			wantOrder: []string{"web-0003", "db-0002", "api-0001"},
		},
		{
			name:      "ascending by from",
			spec:      "from",
			wantOrder: []string{"api-0001", "db-0002", "web-0003"},
		},
		{
			name:      "descending by from",
			spec:      "-from",
			wantOrder: []string{"web-0003", "db-0002", "api-0001"},
		},
		{
			name:      "case sensitive",
			spec:      "!id",
			wantOrder: []string{"api-0001", "db-0002", "web-0003"},
		},
		{
			name:      "multiple fields",
			spec:      "from,id",
			wantOrder: []string{"api-0001", "db-0002", "web-0003"},
		},
		{
			name:      "empty spec",
			spec:      "",
			wantOrder: []string{"web-0003", "api-0001", "db-0002"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedID := range tt.wantOrder {
				assert.Equal(t, expectedID, data[i]["id"], "at index %d", i)
			}
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{
			name:  "string",
			value: "hello",
			want:  "hello",
		},
		{
			name:  "int",
			value: 42,
			want:  "42",
		},
		{
			name:  "float64",
			value: 42.5,
			want:  "42",
		},
		{
			name:  "float64 with decimal",
			value: 42.7,
			want:  "43",
		},
		{
			name:  "bool true",
			value: true,
			want:  "true",
		},
		{
			name:  "bool false is zero value",
			value: false,
			want:  "",
		},
		{
			name:  "nil default",
			value: nil,
			want:  "",
		},
		{
			name:     "nil custom",
			value:    nil,
			emptyVal: "-",
			want:     "-",
		},
		{
			name:  "slice",
			value: []string{"a", "b"},
			want:  `["a","b"]`,
		},
		{
			name:  "map",
			value: map[string]int{"x": 1},
			want:  `{"x":1}`,
		},
		{
			name:  "zero value int",
			value: 0,
			want:  "",
		},
		{
			name:     "zero value with custom empty",
			value:    0,
			emptyVal: "N/A",
			want:     "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTag(t *testing.T) {
	tests := []struct {
		name string
		h    string
		s    string
		want schemaTag
	}{
		{
			name: "simple name",
			s:    "id",
			want: schemaTag{Name: "id"},
		},
		{
			name: "with holder",
			h:    "record",
			s:    "id",
			want: schemaTag{Name: "record.id"},
		},
		{
			name: "with options",
			s:    "section,omitempty",
			want: schemaTag{Name: "section", Options: "omitempty"},
		},
		{
			name: "skipped field",
			s:    "-",
			want: schemaTag{},
		},
		{
			name: "empty string",
			s:    "",
			want: schemaTag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTag(tt.h, tt.s)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTag_Print(t *testing.T) {
	tests := []struct {
		name string
		tag  schemaTag
		want string
	}{
		{
			name: "with name",
			tag:  schemaTag{Name: "record.id"},
			want: "record.id",
		},
		{
			name: "empty tag",
			tag:  schemaTag{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tag.print()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDumpSchemaWalker(t *testing.T) {
	type SimpleStruct struct {
		ID      string `json:"id"`
		From    int    `json:"from"`
		Ignored string `json:"-"`
	}

	type NestedStruct struct {
		Kind   string        `json:"kind"`
		Simple SimpleStruct  `json:"simple"`
		Ptr    *SimpleStruct `json:"ptr_simple"`
	}

	tests := []struct {
		name      string
		prefix    string
		typ       reflect.Type
		wantNames []string
	}{
		{
			name:      "simple struct",
			prefix:    "",
			typ:       reflect.TypeOf(SimpleStruct{}),
			wantNames: []string{"id", "from"},
		},
		{
			name:      "nested struct",
			prefix:    "parent",
			typ:       reflect.TypeOf(NestedStruct{}),
			wantNames: []string{"parent.kind", "parent.simple", "parent.simple.id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dumpSchemaWalker(tt.prefix, tt.typ, 0)
			names := make([]string, 0, len(got))
			for _, tag := range got {
				names = append(names, tag.Name)
			}
			for _, want := range tt.wantNames {
				assert.Contains(t, names, want)
			}
		})
	}
}

func TestGetColors(t *testing.T) {
	// This test verifies that getColors returns color.Color values.
	header, even, odd := getColors("colors")

	// Should return non-nil color.Color values.
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

// spitCmd builds a minimal command carrying the flags SliceDiceSpit reads.
func spitCmd(output, filter, sortSpec string) *cli.Command {
	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: output},
			&cli.StringFlag{Name: "filter", Value: filter},
			&cli.StringFlag{Name: "sort", Value: sortSpec},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
			&cli.IntFlag{Name: "padding"},
		},
	}
	cmd.Metadata = make(map[string]interface{})
	return cmd
}

func TestSliceDiceSpit(t *testing.T) {
	records := `[
		{"scope":"item","kind":"insert","id":"web-0005","service":"web","section":"us-east-1","to":"[0, 2]"},
		{"scope":"item","kind":"delete","id":"db-0002","service":"db","section":"eu-west-1","from":"[1, 0]"},
		{"scope":"section","kind":"move","id":"ap-south-1","from":"2","to":"0"}
	]`

	t.Run("raw passes the buffer through untouched", func(t *testing.T) {
		buf := new(bytes.Buffer)
		SliceDiceSpit(*bytes.NewBufferString(records), attrs.EditAttrs(),
			spitCmd("raw", "", ""), "", buf, nil)
		assert.Equal(t, records, buf.String())
	})

	t.Run("json output honors filter and sort", func(t *testing.T) {
		buf := new(bytes.Buffer)
		SliceDiceSpit(*bytes.NewBufferString(records), attrs.EditAttrs(),
			spitCmd("json", "scope=item", "id"), "", buf, nil)

		parsed := gjson.Parse(buf.String())
		require.True(t, parsed.IsArray())
		rows := parsed.Array()
		require.Len(t, rows, 2)
		assert.Equal(t, "db-0002", rows[0].Get("id").String())
		assert.Equal(t, "web-0005", rows[1].Get("id").String())
	})

	t.Run("parent extracts a sub-document", func(t *testing.T) {
		buf := new(bytes.Buffer)
		wrapped := `{"edits":` + records + `}`
		SliceDiceSpit(*bytes.NewBufferString(wrapped), attrs.EditAttrs(),
			spitCmd("json", "kind=move", ""), "edits", buf, nil)

		rows := gjson.Parse(buf.String()).Array()
		require.Len(t, rows, 1)
		assert.Equal(t, "ap-south-1", rows[0].Get("id").String())
	})

	t.Run("text output renders a table with missing values dashed", func(t *testing.T) {
		buf := new(bytes.Buffer)
		SliceDiceSpit(*bytes.NewBufferString(records), attrs.EditAttrs(),
			spitCmd("text", "kind=insert", ""), "", buf, nil)

		out := buf.String()
		assert.Contains(t, out, "web-0005")
		// Insert edits have no source coordinate.
		assert.Contains(t, out, "-")
	})

	t.Run("postProcess runs before table rendering", func(t *testing.T) {
		buf := new(bytes.Buffer)
		var seen int
		SliceDiceSpit(*bytes.NewBufferString(records), attrs.EditAttrs(),
			spitCmd("text", "", ""), "", buf,
			func(rows []map[string]interface{}) error {
				seen = len(rows)
				return nil
			})
		assert.Equal(t, 3, seen)
	})
}

func TestTableWriter(t *testing.T) {
	tests := []struct {
		name      string
		resultSet []map[string]interface{}
		attrs     attrs.AttrList
		withColor bool
		withTitle string
		checkFunc func(*testing.T, []map[string]interface{}, attrs.AttrList)
	}{
		{
			name:      "empty result set returns early",
			resultSet: []map[string]interface{}{},
			attrs:     attrs.AttrList{},
			checkFunc: func(t *testing.T, rs []map[string]interface{}, a attrs.AttrList) {
				// Empty result set should cause early return
				assert.Empty(t, rs)
			},
		},
		{
			name: "single row preserves data",
			resultSet: []map[string]interface{}{
				{"id": "web-0001", "kind": "insert"},
			},
			attrs: attrs.AttrList{
				attrs.Attr{
					OutputKey: "id",
					Include:   true,
				},
				attrs.Attr{
					OutputKey: "kind",
					Include:   true,
				},
			},
			checkFunc: func(t *testing.T, rs []map[string]interface{}, a attrs.AttrList) {
				assert.Len(t, rs, 1)
				assert.Equal(t, "web-0001", rs[0]["id"])
				assert.Equal(t, "insert", rs[0]["kind"])
			},
		},
		{
			name: "respects include flag filtering",
			resultSet: []map[string]interface{}{
				{"id": "web-0001", "hidden": "secret"},
			},
			attrs: attrs.AttrList{
				attrs.Attr{
					OutputKey: "id",
					Include:   true,
				},
				attrs.Attr{
					OutputKey: "hidden",
					Include:   false,
				},
			},
			checkFunc: func(t *testing.T, rs []map[string]interface{}, a attrs.AttrList) {
				// Check that attributes with Include=false are skipped
				included := 0
				for _, attr := range a {
					if attr.Include {
						included++
					}
				}
				assert.Equal(t, 1, included)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)

			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "color", Value: tt.withColor},
					&cli.BoolFlag{Name: "titles", Value: true},
				},
			}
			cmd.Metadata = make(map[string]interface{})
			if tt.withTitle != "" {
				cmd.Metadata["header"] = tt.withTitle
			}

			TableWriter(tt.resultSet, tt.attrs, cmd, buf)

			// Verify data integrity through passed parameters
			tt.checkFunc(t, tt.resultSet, tt.attrs)
		})
	}
}

// TestInterfaceToStringEdgeCases covers edge cases in value-to-string conversion.
func TestInterfaceToStringEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{
			name:  "empty string",
			value: "",
			want:  "",
		},
		{
			name:     "empty string with custom empty",
			value:    "",
			emptyVal: "N/A",
			want:     "N/A",
		},
		{
			name:  "nested map",
			value: map[string]interface{}{"key": "value"},
			want:  `{"key":"value"}`,
		},
		{
			name:  "nested slice",
			value: []interface{}{1, "two", true},
			want:  `[1,"two",true]`,
		},
		{
			name:  "large number",
			value: 999999.999,
			want:  "1000000",
		},
		{
			name:  "negative number",
			value: -42.0,
			want:  "-42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func BenchmarkSortDataset(b *testing.B) {
	testData := []map[string]interface{}{
		{"id": "web-0003", "from": 3.0},
		{"id": "api-0001", "from": 1.0},
		{"id": "db-0002", "from": 2.0},
	}

	spec := "id"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data := make([]map[string]interface{}, len(testData))
		copy(data, testData)
		SortDataset(data, spec)
	}
}

func BenchmarkInterfaceToString(b *testing.B) {
	values := []interface{}{
		"string",
		42,
		42.5,
		true,
		nil,
		[]string{"a", "b"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			InterfaceToString(v)
		}
	}
}
