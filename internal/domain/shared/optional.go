package shared

import (
	"bytes"
	"encoding/json"
)

// Optional is a per-field update value. It distinguishes a field that was
// omitted from a request, one that was explicitly null, and one with a value.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns an Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null returns an Optional that was explicitly cleared
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the field was present, with a value or null
func (o Optional[T]) IsSet() bool {
	return o.set
}

// IsNull reports whether the field was present and explicitly null
func (o Optional[T]) IsNull() bool {
	return o.set && o.null
}

// Get returns the value and whether one is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set && !o.null
}

// ApplyTo overwrites *dst when a value is present. Absent and null leave it unchanged.
func (o Optional[T]) ApplyTo(dst *T) {
	if v, ok := o.Get(); ok {
		*dst = v
	}
}

// ApplyOrClear overwrites *dst when a value is present and resets it to the
// zero value when the field was explicitly null.
func (o Optional[T]) ApplyOrClear(dst *T) {
	if !o.set {
		return
	}
	if o.null {
		var zero T
		*dst = zero
		return
	}
	*dst = o.value
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys present in the payload.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.null = true
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON implements json.Marshaler
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if v, ok := o.Get(); ok {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}

// ValidationValue returns the wrapped value for struct validation, or nil when absent
func (o Optional[T]) ValidationValue() any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}
