package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUndefinedColour, "undefined colour: $%s", "gold")

	if err.Code != ErrCodeUndefinedColour {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUndefinedColour)
	}

	if err.Message != "undefined colour: $gold" {
		t.Errorf("Message = %v, want %v", err.Message, "undefined colour: $gold")
	}

	expected := "UNDEFINED_COLOUR: undefined colour: $gold"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidDocument, cause, "decode project")

	if err.Code != ErrCodeInvalidDocument {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDocument)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeMissingReference, "test"),
			code:     ErrCodeMissingReference,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeMissingReference, "test"),
			code:     ErrCodeDependencyCycle,
			expected: false,
		},
		{
			name:     "wrapped error outer code",
			err:      Wrap(ErrCodeInvalidDocument, New(ErrCodeInvalidExpression, "inner"), "outer"),
			code:     ErrCodeInvalidDocument,
			expected: true,
		},
		{
			name:     "wrapped error inner code",
			err:      Wrap(ErrCodeInvalidDocument, New(ErrCodeInvalidExpression, "inner"), "outer"),
			code:     ErrCodeInvalidExpression,
			expected: true,
		},
		{
			name:     "joined errors",
			err:      errors.Join(errors.New("plain"), New(ErrCodeUnknownEffect, "blur")),
			code:     ErrCodeUnknownEffect,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeCircularColourReference, "test"),
			expected: ErrCodeCircularColourReference,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	a := errors.New("a")
	b := New(ErrCodeNotFound, "b")
	c := errors.New("c")

	got := Flatten(errors.Join(a, errors.Join(b, c)))
	if len(got) != 3 {
		t.Fatalf("Flatten() returned %d errors, want 3", len(got))
	}
	if got[0] != a || got[2] != c {
		t.Errorf("Flatten() order = %v", got)
	}

	if Flatten(nil) != nil {
		t.Error("Flatten(nil) should be nil")
	}
}
