package jwtauth

import (
	"errors"
	"testing"
)

func TestOptional_Some(t *testing.T) {
	o := Some(42)

	if !o.HasValue() {
		t.Fatal("Expected value to be present")
	}
	v, err := o.Value()
	if err != nil || v != 42 {
		t.Errorf("Expected 42, got %d (err=%v)", v, err)
	}
	if got := o.ValueOr(7); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if o.String() != "42" {
		t.Errorf("Expected 42, got %s", o)
	}
}

func TestOptional_None(t *testing.T) {
	o := None[string]()

	if o.HasValue() {
		t.Fatal("Expected no value")
	}
	if _, err := o.Value(); !errors.Is(err, ErrNoValue) {
		t.Errorf("Expected ErrNoValue, got %v", err)
	}
	if _, ok := o.Get(); ok {
		t.Error("Expected Get to report absence")
	}
	if got := o.ValueOr("fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %s", got)
	}
	if o.String() != "null" {
		t.Errorf("Expected null, got %s", o)
	}

	var zero Optional[int]
	if zero.HasValue() {
		t.Error("Expected zero Optional to be empty")
	}
}

func TestOptional_Conditions(t *testing.T) {
	positive := func(n int) bool { return n > 0 }

	tests := []struct {
		name        string
		o           Optional[int]
		wantIsTrue  bool
		wantIsFalse bool
	}{
		{"empty", None[int](), false, false},
		{"satisfies", Some(1), true, false},
		{"violates", Some(-1), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.o.IsTrue(positive); got != tt.wantIsTrue {
				t.Errorf("IsTrue: expected %v, got %v", tt.wantIsTrue, got)
			}
			if got := tt.o.IsFalse(positive); got != tt.wantIsFalse {
				t.Errorf("IsFalse: expected %v, got %v", tt.wantIsFalse, got)
			}
		})
	}
}

func TestOptionalEqual(t *testing.T) {
	tests := []struct {
		a, b Optional[string]
		want bool
	}{
		{None[string](), None[string](), true},
		{Some("a"), Some("a"), true},
		{Some("a"), Some("b"), false},
		{Some(""), None[string](), false},
		{None[string](), Some(""), false},
	}

	for _, tt := range tests {
		if got := OptionalEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("OptionalEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
