package introspection

import (
	"errors"
	"fmt"
	"reflect"

	"ocm.software/open-component-model/bindings/go/map2d"
)

// Snapshot is a deep copy of both indexes of a map and its cached length.
type Snapshot[R, C comparable, V any] struct {
	Rows    map[R]map[C]V
	Columns map[C]map[R]V
	Len     int
}

// ToSnapshot copies the current state of m.
func ToSnapshot[R, C comparable, V any](m *map2d.Map[R, C, V]) *Snapshot[R, C, V] {
	return &Snapshot[R, C, V]{
		Rows:    m.RowMapView(),
		Columns: m.ColumnMapView(),
		Len:     m.Len(),
	}
}

// Verify checks that the row and column index of m hold the same entries,
// that neither index keeps an empty inner map and that the cached length
// matches the number of entries. Values are compared with reflect.DeepEqual.
// All violations are joined into one error.
func Verify[R, C comparable, V any](m *map2d.Map[R, C, V]) error {
	return ToSnapshot(m).Verify()
}

// Verify runs the checks of the package-level Verify on s.
func (s *Snapshot[R, C, V]) Verify() error {
	var errs []error

	rowEntries := 0
	for rowKey, row := range s.Rows {
		if len(row) == 0 {
			errs = append(errs, fmt.Errorf("row %v is empty but still indexed", rowKey))
		}
		rowEntries += len(row)
		for columnKey, v := range row {
			mirrored, ok := s.Columns[columnKey][rowKey]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("entry (%v, %v) is missing from the column index", rowKey, columnKey))
			case !reflect.DeepEqual(v, mirrored):
				errs = append(errs, fmt.Errorf("entry (%v, %v) holds %v in the row index but %v in the column index", rowKey, columnKey, v, mirrored))
			}
		}
	}

	columnEntries := 0
	for columnKey, column := range s.Columns {
		if len(column) == 0 {
			errs = append(errs, fmt.Errorf("column %v is empty but still indexed", columnKey))
		}
		columnEntries += len(column)
		for rowKey := range column {
			if _, ok := s.Rows[rowKey][columnKey]; !ok {
				errs = append(errs, fmt.Errorf("entry (%v, %v) is missing from the row index", rowKey, columnKey))
			}
		}
	}

	if rowEntries != s.Len {
		errs = append(errs, fmt.Errorf("row index holds %d entries, length is %d", rowEntries, s.Len))
	}
	if columnEntries != s.Len {
		errs = append(errs, fmt.Errorf("column index holds %d entries, length is %d", columnEntries, s.Len))
	}
	return errors.Join(errs...)
}
