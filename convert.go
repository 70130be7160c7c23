package map2d

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

type entry[R, C comparable, V any] struct {
	row    R
	column C
	value  V
}

type sourceRow[R, C comparable, V any] struct {
	key     R
	columns map[C]V
}

// CopyWithConversion builds a new Map by applying rowFn, columnFn and valueFn
// to every entry of m. m is not modified.
//
// If several source pairs convert to the same target pair, the result holds
// exactly one of their values. Which one is implementation-defined: entries
// are inserted in Go map iteration order of the source rows, and the last
// insertion wins. Collisions are logged at debug level.
//
// Source rows are converted by at most ConversionOptions.GoRoutineLimit
// goroutines; insertion into the result is always sequential. A nil key
// produced by rowFn or columnFn fails the whole conversion with an
// *InvalidKeyError.
func CopyWithConversion[R, C comparable, V any, R2, C2 comparable, V2 any](
	m *Map[R, C, V],
	rowFn func(R) R2,
	columnFn func(C) C2,
	valueFn func(V) V2,
	opts ...ConversionOption,
) (*Map[R2, C2, V2], error) {
	options := &ConversionOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.GoRoutineLimit < 1 {
		options.GoRoutineLimit = 1
	}
	if options.Logger == nil {
		options.Logger = m.logger
	}

	source := make([]sourceRow[R, C, V], 0, len(m.rows))
	for rowKey, row := range m.RowMapView() {
		source = append(source, sourceRow[R, C, V]{key: rowKey, columns: row})
	}

	converted := make([][]entry[R2, C2, V2], len(source))
	eg := errgroup.Group{}
	eg.SetLimit(options.GoRoutineLimit)
	for i, row := range source {
		eg.Go(func() error {
			r2 := rowFn(row.key)
			if invalidKey(r2) {
				return fmt.Errorf("converting row %v: %w", row.key, &InvalidKeyError{Axis: AxisRow})
			}
			entries := make([]entry[R2, C2, V2], 0, len(row.columns))
			for columnKey, v := range row.columns {
				c2 := columnFn(columnKey)
				if invalidKey(c2) {
					return fmt.Errorf("converting column %v: %w", columnKey, &InvalidKeyError{Axis: AxisColumn})
				}
				entries = append(entries, entry[R2, C2, V2]{row: r2, column: c2, value: valueFn(v)})
			}
			converted[i] = entries
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to convert map: %w", err)
	}

	result := New[R2, C2, V2](WithLogger(options.Logger))
	for i, entries := range converted {
		for _, e := range entries {
			_, replaced, err := result.Put(e.row, e.column, e.value)
			if err != nil {
				return nil, fmt.Errorf("failed to insert converted entry: %w", err)
			}
			if replaced {
				options.Logger.Debug("conversion collapsed entries onto one pair",
					"sourceRow", source[i].key, "targetRow", e.row, "targetColumn", e.column)
			}
		}
	}
	return result, nil
}
