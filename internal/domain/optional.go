package domain

import (
	"bytes"
	"encoding/json"
)

// Optional carries a field of a partial update in one of three states:
// unset (absent from the request), null (explicitly cleared) or a value.
type Optional[T any] struct {
	set   bool
	valid bool
	value T
}

// Some returns an Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, valid: true, value: v}
}

// Null returns an Optional that clears the field
func Null[T any]() Optional[T] {
	return Optional[T]{set: true}
}

// IsSet reports whether the field was supplied at all
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was supplied as null
func (o Optional[T]) IsNull() bool { return o.set && !o.valid }

// Value returns the supplied value and whether there is one
func (o Optional[T]) Value() (T, bool) { return o.value, o.valid }

// Ptr returns the value as a pointer, nil when unset or null
func (o Optional[T]) Ptr() *T {
	if !o.valid {
		return nil
	}
	v := o.value
	return &v
}

// UnmarshalJSON is only invoked for keys present in the payload,
// so a missing key keeps the zero Optional (unset).
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.valid = false
		var zero T
		o.value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.valid = true
	return nil
}

// MarshalJSON writes null for unset and null states
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
