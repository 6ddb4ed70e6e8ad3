package derrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestHasCode(t *testing.T) {
	base := New(CodeNotFound, "province not found")
	wrapped := fmt.Errorf("loading: %w", base)

	if !HasCode(base, CodeNotFound) {
		t.Fatalf("expected direct error to carry code")
	}
	if !HasCode(wrapped, CodeNotFound) {
		t.Fatalf("expected wrapped error to carry code")
	}
	if HasCode(wrapped, CodeConflict) {
		t.Fatalf("did not expect conflict code")
	}
	if HasCode(nil, CodeNotFound) {
		t.Fatalf("nil error must not match")
	}
}

func TestHasCodeNested(t *testing.T) {
	inner := New(CodeConflict, "duplicate name")
	outer := Wrap(inner, CodeInternal, "create failed")

	if !HasCode(outer, CodeInternal) {
		t.Fatalf("expected outer code")
	}
	if !HasCode(outer, CodeConflict) {
		t.Fatalf("expected inner code to remain visible")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, CodeInternal, "noop") != nil {
		t.Fatalf("wrapping nil must return nil")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(CodeValidation, "bad input")); got != CodeValidation {
		t.Fatalf("CodeOf = %q, want %q", got, CodeValidation)
	}
	if got := CodeOf(errors.New("plain")); got != CodeInternal {
		t.Fatalf("uncoded error should map to internal, got %q", got)
	}
}

func TestMessageOfHidesUncoded(t *testing.T) {
	if got := MessageOf(errors.New("pq: connection refused")); got != "internal error" {
		t.Fatalf("uncoded message leaked: %q", got)
	}
	if got := MessageOf(New(CodeBadRequest, "invalid id")); got != "invalid id" {
		t.Fatalf("MessageOf = %q", got)
	}
}

func TestWithFields(t *testing.T) {
	err := New(CodeValidation, "validation failed").
		WithFields(map[string]string{"nome": "must not be empty"})
	fields := FieldsOf(err)
	if fields["nome"] != "must not be empty" {
		t.Fatalf("fields not carried: %v", fields)
	}
}
