package introspection

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"sigs.k8s.io/yaml"

	"ocm.software/open-component-model/bindings/go/map2d"
)

// RenderTable writes m as a grid with one line per row key and one column per
// column key. Labels are the fmt.Sprint form of the keys, sorted. Pairs
// without a value are left blank. Write failures of w are returned.
func RenderTable[R, C comparable, V any](w io.Writer, m *map2d.Map[R, C, V]) error {
	rows := sortedByLabel(m.Rows())
	columns := sortedByLabel(m.Columns())

	t := table.NewWriter()

	header := make(table.Row, 0, len(columns)+1)
	header = append(header, "")
	for _, c := range columns {
		header = append(header, c.label)
	}
	t.AppendHeader(header)

	for _, r := range rows {
		line := make(table.Row, 0, len(columns)+1)
		line = append(line, r.label)
		for _, c := range columns {
			if v, ok := m.Get(r.key, c.key); ok {
				line = append(line, v)
			} else {
				line = append(line, "")
			}
		}
		t.AppendRow(line)
	}

	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	if _, err := io.WriteString(w, t.Render()+"\n"); err != nil {
		return fmt.Errorf("writing map table failed: %w", err)
	}
	return nil
}

// MarshalYAML encodes the row-major snapshot of m. Row and column keys are
// encoded by their fmt.Sprint form; keys that print identically are merged
// with an unspecified winner.
func MarshalYAML[R, C comparable, V any](m *map2d.Map[R, C, V]) ([]byte, error) {
	doc := make(map[string]map[string]V, m.Len())
	for rowKey, row := range m.RowMapView() {
		inner := make(map[string]V, len(row))
		for columnKey, v := range row {
			inner[fmt.Sprint(columnKey)] = v
		}
		doc[fmt.Sprint(rowKey)] = inner
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding map as yaml failed: %w", err)
	}
	return data, nil
}

type labeled[K comparable] struct {
	key   K
	label string
}

func sortedByLabel[K comparable](keys []K) []labeled[K] {
	out := make([]labeled[K], len(keys))
	for i, k := range keys {
		out[i] = labeled[K]{key: k, label: fmt.Sprint(k)}
	}
	slices.SortFunc(out, func(a, b labeled[K]) int {
		return strings.Compare(a.label, b.label)
	})
	return out
}
