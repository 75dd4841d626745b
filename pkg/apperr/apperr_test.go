package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := Conflict("slot already booked")
	kind, ok := KindOf(err)
	if !ok {
		t.Fatal("expected a classified error")
	}
	if kind != KindConflict {
		t.Errorf("expected KindConflict, got %v", kind)
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("book appointment: %w", NotFound("doctor d9 not found"))
	if !IsNotFound(err) {
		t.Error("expected not-found to survive wrapping")
	}
}

func TestKindOf_PlainError(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))
	if ok {
		t.Error("plain errors must not be classified")
	}
}

func TestWrap_Unwrap(t *testing.T) {
	inner := errors.New("duplicate key")
	err := Wrap(KindConflict, "reserve slot", inner)
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to unwrap to inner")
	}
	if !IsConflict(err) {
		t.Error("expected conflict kind")
	}
}

func TestHelpers(t *testing.T) {
	if !IsValidation(Validation("date is required")) {
		t.Error("expected validation")
	}
	if !IsUnauthorized(Unauthorized("invalid credentials")) {
		t.Error("expected unauthorized")
	}
}
