package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a patch field that distinguishes "not supplied" from "supplied
// as null" from "supplied with a value". Its zero value means not supplied.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns an Optional that was explicitly supplied as null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Get returns the value and true when a non-null value was supplied.
func (o Optional[T]) Get() (T, bool) {
	if !o.Set || o.Null {
		var zero T
		return zero, false
	}
	return o.Value, true
}

// UnmarshalJSON is only invoked for keys present in the payload, which is what
// marks the field as supplied.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}
