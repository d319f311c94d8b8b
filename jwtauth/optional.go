package jwtauth

import "fmt"

// Optional carries a value together with an explicit presence flag.
// The zero value is empty.
type Optional[T any] struct {
	value    T
	hasValue bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, hasValue: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// HasValue reports whether the Optional holds a value.
func (o Optional[T]) HasValue() bool {
	return o.hasValue
}

// Value returns the held value, or ErrNoValue if the Optional is empty.
func (o Optional[T]) Value() (T, error) {
	if !o.hasValue {
		var zero T
		return zero, ErrNoValue
	}
	return o.value, nil
}

// Get returns the held value and whether it was present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.hasValue
}

// ValueOr returns the held value, or fallback when empty.
func (o Optional[T]) ValueOr(fallback T) T {
	if !o.hasValue {
		return fallback
	}
	return o.value
}

// IsTrue reports whether a value is present and satisfies condition.
func (o Optional[T]) IsTrue(condition func(T) bool) bool {
	return o.hasValue && condition(o.value)
}

// IsFalse reports whether a value is present and does not satisfy condition.
func (o Optional[T]) IsFalse(condition func(T) bool) bool {
	return o.hasValue && !condition(o.value)
}

func (o Optional[T]) String() string {
	if !o.hasValue {
		return "null"
	}
	return fmt.Sprint(o.value)
}

// OptionalEqual reports whether a and b are both empty, or both present with
// equal values.
func OptionalEqual[T comparable](a, b Optional[T]) bool {
	if a.hasValue != b.hasValue {
		return false
	}
	return !a.hasValue || a.value == b.value
}
