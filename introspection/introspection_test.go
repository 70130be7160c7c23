package introspection_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"ocm.software/open-component-model/bindings/go/map2d"
	"ocm.software/open-component-model/bindings/go/map2d/introspection"
)

func grid(t *testing.T) *map2d.Map[string, int, string] {
	t.Helper()
	m := map2d.New[string, int, string]()
	for _, e := range []struct {
		row    string
		column int
		value  string
	}{
		{"beta", 2, "b2"},
		{"alpha", 1, "a1"},
		{"alpha", 2, "a2"},
	} {
		_, _, err := m.Put(e.row, e.column, e.value)
		require.NoError(t, err)
	}
	return m
}

func TestToSnapshot(t *testing.T) {
	r := require.New(t)
	m := grid(t)

	snapshot := introspection.ToSnapshot(m)
	r.Equal(3, snapshot.Len)
	r.Equal(map[string]map[int]string{
		"alpha": {1: "a1", 2: "a2"},
		"beta":  {2: "b2"},
	}, snapshot.Rows)
	r.Equal(map[int]map[string]string{
		1: {"alpha": "a1"},
		2: {"alpha": "a2", "beta": "b2"},
	}, snapshot.Columns)
	r.NoError(snapshot.Verify())
}

func TestVerifyDetectsInconsistencies(t *testing.T) {
	tests := []struct {
		name     string
		snapshot *introspection.Snapshot[string, string, int]
		want     []string
	}{
		{
			name: "consistent",
			snapshot: &introspection.Snapshot[string, string, int]{
				Rows:    map[string]map[string]int{"a": {"x": 1}},
				Columns: map[string]map[string]int{"x": {"a": 1}},
				Len:     1,
			},
		},
		{
			name: "missing mirror",
			snapshot: &introspection.Snapshot[string, string, int]{
				Rows:    map[string]map[string]int{"a": {"x": 1, "y": 2}},
				Columns: map[string]map[string]int{"x": {"a": 1}},
				Len:     2,
			},
			want: []string{
				"entry (a, y) is missing from the column index",
				"column index holds 1 entries, length is 2",
			},
		},
		{
			name: "diverging values",
			snapshot: &introspection.Snapshot[string, string, int]{
				Rows:    map[string]map[string]int{"a": {"x": 1}},
				Columns: map[string]map[string]int{"x": {"a": 2}},
				Len:     1,
			},
			want: []string{"entry (a, x) holds 1 in the row index but 2 in the column index"},
		},
		{
			name: "unpruned inner maps",
			snapshot: &introspection.Snapshot[string, string, int]{
				Rows:    map[string]map[string]int{"a": {}},
				Columns: map[string]map[string]int{"x": {}},
			},
			want: []string{
				"row a is empty but still indexed",
				"column x is empty but still indexed",
			},
		},
		{
			name: "stale length",
			snapshot: &introspection.Snapshot[string, string, int]{
				Rows:    map[string]map[string]int{},
				Columns: map[string]map[string]int{},
				Len:     3,
			},
			want: []string{"row index holds 0 entries, length is 3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)
			err := tt.snapshot.Verify()
			if len(tt.want) == 0 {
				r.NoError(err)
				return
			}
			r.Error(err)
			for _, msg := range tt.want {
				r.Contains(err.Error(), msg)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	r := require.New(t)
	var buf bytes.Buffer

	r.NoError(introspection.RenderTable(&buf, grid(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	r.Len(lines, 4)
	r.Contains(lines[0], "1")
	r.Contains(lines[0], "2")
	r.Contains(lines[2], "alpha")
	r.Contains(lines[2], "a1")
	r.Contains(lines[2], "a2")
	r.Contains(lines[3], "beta")
	r.Contains(lines[3], "b2")
	r.NotContains(lines[3], "a1")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderTableWriteFailure(t *testing.T) {
	r := require.New(t)

	err := introspection.RenderTable(failingWriter{}, grid(t))
	r.ErrorContains(err, "disk full")
}

func TestMarshalYAML(t *testing.T) {
	r := require.New(t)

	data, err := introspection.MarshalYAML(grid(t))
	r.NoError(err)

	var decoded map[string]map[string]string
	r.NoError(yaml.Unmarshal(data, &decoded))
	r.Equal(map[string]map[string]string{
		"alpha": {"1": "a1", "2": "a2"},
		"beta":  {"2": "b2"},
	}, decoded)
}
