package errors

import (
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "file not found")
		if err.Error() != "[NOT_FOUND] file not found" {
			t.Errorf("expected [NOT_FOUND] file not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("disk full")
		err := Wrap(original, CodeStorage, "record run")
		expected := "[STORAGE_ERROR] record run: disk full"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeValidation, "bad glob")
		if !IsCode(err, CodeValidation) {
			t.Error("expected IsCode to match CodeValidation")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to reject CodeNotFound")
		}
	})

	t.Run("Unwrap", func(t *testing.T) {
		original := errors.New("inner")
		err := Wrap(original, CodeInternal, "outer")
		if !errors.Is(err, original) {
			t.Error("expected wrapped error to unwrap to original")
		}
	})

	t.Run("parse failures classify as CodeParse", func(t *testing.T) {
		err := Wrap(errors.New("language mismatch"), CodeParse, "set grammar")
		if !IsCode(err, CodeParse) {
			t.Error("expected wrapped parse failure to classify as CodeParse")
		}
	})

	t.Run("WithContext", func(t *testing.T) {
		derr := &DomainError{Code: CodeParse, Message: "bad input"}
		derr.WithContext(CtxPath, "a.py")
		if derr.Context[CtxPath] != "a.py" {
			t.Error("expected context to carry the path")
		}
	})
}
