package map2d

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidKey is wrapped by every InvalidKeyError.
var ErrInvalidKey = errors.New("invalid key")

// Axis names one of the two key components of a Map.
type Axis string

const (
	AxisRow    Axis = "row"
	AxisColumn Axis = "column"
)

// InvalidKeyError is returned when a row or column key is nil or holds a
// value that cannot be hashed. It unwraps to ErrInvalidKey.
type InvalidKeyError struct {
	Axis Axis
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("%s key must be non-nil and hashable: %v", e.Axis, ErrInvalidKey)
}

func (e *InvalidKeyError) Unwrap() error {
	return ErrInvalidKey
}

func validateKeys[R, C comparable](rowKey R, columnKey C) error {
	if invalidKey(rowKey) {
		return &InvalidKeyError{Axis: AxisRow}
	}
	if invalidKey(columnKey) {
		return &InvalidKeyError{Axis: AxisColumn}
	}
	return nil
}

// invalidKey reports whether key cannot be stored: it is nil, or it is an
// interface holding a value that panics when hashed, such as a slice.
func invalidKey[K comparable](key K) bool {
	v := reflect.ValueOf(any(key))
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		if v.IsNil() {
			return true
		}
	}
	return !v.Comparable()
}
