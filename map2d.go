// Package map2d provides Map, an associative container keyed by a
// (row, column) pair that answers lookups by the full pair, by row alone and
// by column alone without scanning.
//
// A Map keeps two nested indexes, row -> column -> value and
// column -> row -> value, which always describe the same set of entries.
// Rows and columns that lose their last entry are pruned from their index
// immediately. The container never hands out references to its inner maps:
// every view is a freshly allocated snapshot.
//
// A Map is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access themselves.
package map2d

import (
	"log/slog"
	"maps"
	"slices"
)

// Map is a two-dimensional map from (R, C) pairs to V.
// The zero value is not usable, use New.
type Map[R, C comparable, V any] struct {
	rows    map[R]map[C]V
	columns map[C]map[R]V
	// size is the number of (row, column) pairs holding a value.
	size   int
	logger *slog.Logger
}

// New creates an empty Map.
func New[R, C comparable, V any](opts ...Option) *Map[R, C, V] {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Map[R, C, V]{
		rows:    make(map[R]map[C]V),
		columns: make(map[C]map[R]V),
		logger:  options.Logger,
	}
}

// Put stores value at (rowKey, columnKey), replacing any previous value.
// It returns the previous value and whether there was one. An invalid row or
// column key fails with an *InvalidKeyError and leaves the map untouched.
func (m *Map[R, C, V]) Put(rowKey R, columnKey C, value V) (previous V, replaced bool, err error) {
	if err := validateKeys(rowKey, columnKey); err != nil {
		return previous, false, err
	}
	row, rowOK := m.rows[rowKey]
	column, columnOK := m.columns[columnKey]
	if !rowOK {
		row = make(map[C]V)
		m.rows[rowKey] = row
	}
	if !columnOK {
		column = make(map[R]V)
		m.columns[columnKey] = column
	}

	previous, replaced = row[columnKey]
	if !replaced {
		m.size++
	}
	row[columnKey] = value
	column[rowKey] = value
	return previous, replaced, nil
}

// Get returns the value at (rowKey, columnKey) and whether it is present.
func (m *Map[R, C, V]) Get(rowKey R, columnKey C) (V, bool) {
	v, ok := m.rows[rowKey][columnKey]
	return v, ok
}

// GetOrDefault returns the value at (rowKey, columnKey), or defaultValue if
// there is none.
func (m *Map[R, C, V]) GetOrDefault(rowKey R, columnKey C, defaultValue V) V {
	if v, ok := m.Get(rowKey, columnKey); ok {
		return v
	}
	return defaultValue
}

// Remove deletes the value at (rowKey, columnKey) from both indexes and
// returns it. Rows and columns left empty are pruned.
func (m *Map[R, C, V]) Remove(rowKey R, columnKey C) (V, bool) {
	row := m.rows[rowKey]
	previous, ok := row[columnKey]
	if !ok {
		return previous, false
	}
	column := m.columns[columnKey]

	delete(row, columnKey)
	delete(column, rowKey)
	m.size--

	if len(row) == 0 {
		delete(m.rows, rowKey)
	}
	if len(column) == 0 {
		delete(m.columns, columnKey)
	}
	return previous, true
}

// RemoveRow deletes every value stored under rowKey and returns them keyed by
// column. It returns nil if the row is unknown.
func (m *Map[R, C, V]) RemoveRow(rowKey R) map[C]V {
	row, ok := m.rows[rowKey]
	if !ok {
		return nil
	}
	for columnKey := range row {
		column := m.columns[columnKey]
		delete(column, rowKey)
		if len(column) == 0 {
			delete(m.columns, columnKey)
		}
	}
	delete(m.rows, rowKey)
	m.size -= len(row)
	m.logger.Debug("removed row", "row", rowKey, "entries", len(row))
	// row is no longer referenced by either index
	return row
}

// RemoveColumn deletes every value stored under columnKey and returns them
// keyed by row. It returns nil if the column is unknown.
func (m *Map[R, C, V]) RemoveColumn(columnKey C) map[R]V {
	column, ok := m.columns[columnKey]
	if !ok {
		return nil
	}
	for rowKey := range column {
		row := m.rows[rowKey]
		delete(row, columnKey)
		if len(row) == 0 {
			delete(m.rows, rowKey)
		}
	}
	delete(m.columns, columnKey)
	m.size -= len(column)
	m.logger.Debug("removed column", "column", columnKey, "entries", len(column))
	return column
}

// IsEmpty reports whether m holds no values.
func (m *Map[R, C, V]) IsEmpty() bool {
	return m.size == 0
}

// NonEmpty reports whether m holds at least one value.
func (m *Map[R, C, V]) NonEmpty() bool {
	return m.size > 0
}

// Len returns the number of (row, column) pairs holding a value.
func (m *Map[R, C, V]) Len() int {
	return m.size
}

// Clear removes all values.
func (m *Map[R, C, V]) Clear() {
	m.size = 0
	clear(m.rows)
	clear(m.columns)
}

// RowView returns a snapshot of the values stored under rowKey, keyed by
// column. Unknown rows yield an empty map.
func (m *Map[R, C, V]) RowView(rowKey R) map[C]V {
	row, ok := m.rows[rowKey]
	if !ok {
		return map[C]V{}
	}
	return maps.Clone(row)
}

// ColumnView returns a snapshot of the values stored under columnKey, keyed
// by row. Unknown columns yield an empty map.
func (m *Map[R, C, V]) ColumnView(columnKey C) map[R]V {
	column, ok := m.columns[columnKey]
	if !ok {
		return map[R]V{}
	}
	return maps.Clone(column)
}

// ContainsValueFunc reports whether any stored value satisfies match.
func (m *Map[R, C, V]) ContainsValueFunc(match func(V) bool) bool {
	for _, row := range m.rows {
		for _, v := range row {
			if match(v) {
				return true
			}
		}
	}
	return false
}

// ContainsValue reports whether m stores a value equal to value.
func ContainsValue[R, C, V comparable](m *Map[R, C, V], value V) bool {
	return m.ContainsValueFunc(func(v V) bool {
		return v == value
	})
}

// ContainsKey reports whether a value is stored at (rowKey, columnKey).
func (m *Map[R, C, V]) ContainsKey(rowKey R, columnKey C) bool {
	_, ok := m.rows[rowKey][columnKey]
	return ok
}

// ContainsRow reports whether rowKey holds at least one value.
func (m *Map[R, C, V]) ContainsRow(rowKey R) bool {
	_, ok := m.rows[rowKey]
	return ok
}

// ContainsColumn reports whether columnKey holds at least one value.
func (m *Map[R, C, V]) ContainsColumn(columnKey C) bool {
	_, ok := m.columns[columnKey]
	return ok
}

// RowLen returns the number of values stored under rowKey.
func (m *Map[R, C, V]) RowLen(rowKey R) int {
	return len(m.rows[rowKey])
}

// ColumnLen returns the number of values stored under columnKey.
func (m *Map[R, C, V]) ColumnLen(columnKey C) int {
	return len(m.columns[columnKey])
}

// Rows returns the populated row keys in unspecified order.
func (m *Map[R, C, V]) Rows() []R {
	return slices.Collect(maps.Keys(m.rows))
}

// Columns returns the populated column keys in unspecified order.
func (m *Map[R, C, V]) Columns() []C {
	return slices.Collect(maps.Keys(m.columns))
}

// RowMapView returns a deep snapshot of the map as row -> column -> value.
func (m *Map[R, C, V]) RowMapView() map[R]map[C]V {
	return deepClone(m.rows)
}

// ColumnMapView returns a deep snapshot of the map as column -> row -> value.
func (m *Map[R, C, V]) ColumnMapView() map[C]map[R]V {
	return deepClone(m.columns)
}

func deepClone[K1, K2 comparable, V any](index map[K1]map[K2]V) map[K1]map[K2]V {
	snapshot := make(map[K1]map[K2]V, len(index))
	for k, inner := range index {
		snapshot[k] = maps.Clone(inner)
	}
	return snapshot
}

// FillMapFromRow copies every column -> value entry of rowKey into target,
// overwriting existing keys. It returns m.
func (m *Map[R, C, V]) FillMapFromRow(target map[C]V, rowKey R) *Map[R, C, V] {
	maps.Copy(target, m.rows[rowKey])
	return m
}

// FillMapFromColumn copies every row -> value entry of columnKey into target,
// overwriting existing keys. It returns m.
func (m *Map[R, C, V]) FillMapFromColumn(target map[R]V, columnKey C) *Map[R, C, V] {
	maps.Copy(target, m.columns[columnKey])
	return m
}

// PutAll puts every entry of source into m and returns m.
// source may be m itself.
func (m *Map[R, C, V]) PutAll(source *Map[R, C, V]) *Map[R, C, V] {
	for rowKey, row := range source.RowMapView() {
		for columnKey, v := range row {
			// keys were validated when they entered source
			_, _, _ = m.Put(rowKey, columnKey, v)
		}
	}
	return m
}

// PutAllToRow puts every column -> value entry of source under rowKey and
// returns m. If rowKey or any key of source is invalid, nothing is written.
func (m *Map[R, C, V]) PutAllToRow(source map[C]V, rowKey R) (*Map[R, C, V], error) {
	if invalidKey(rowKey) {
		return m, &InvalidKeyError{Axis: AxisRow}
	}
	for columnKey := range source {
		if err := validateKeys(rowKey, columnKey); err != nil {
			return m, err
		}
	}
	for columnKey, v := range source {
		_, _, _ = m.Put(rowKey, columnKey, v)
	}
	return m, nil
}

// PutAllToColumn puts every row -> value entry of source under columnKey and
// returns m. If columnKey or any key of source is invalid, nothing is written.
func (m *Map[R, C, V]) PutAllToColumn(source map[R]V, columnKey C) (*Map[R, C, V], error) {
	if invalidKey(columnKey) {
		return m, &InvalidKeyError{Axis: AxisColumn}
	}
	for rowKey := range source {
		if err := validateKeys(rowKey, columnKey); err != nil {
			return m, err
		}
	}
	for rowKey, v := range source {
		_, _, _ = m.Put(rowKey, columnKey, v)
	}
	return m, nil
}

// Clone returns an independent copy of m sharing its logger.
func (m *Map[R, C, V]) Clone() *Map[R, C, V] {
	return &Map[R, C, V]{
		rows:    deepClone(m.rows),
		columns: deepClone(m.columns),
		size:    m.size,
		logger:  m.logger,
	}
}
