package errors

import (
	"io"
	"testing"
)

func TestDataErrorCategory(t *testing.T) {
	// A DataError carrying a cause is still the data-unavailable category;
	// the CLI's manual-entry fallback keys off exactly this.
	err := NewDataError("request", "NVDA", "options request failed", io.EOF)
	if !Is(err, ErrDataUnavailable) {
		t.Error("wrapped DataError must match ErrDataUnavailable")
	}
	if !Is(err, io.EOF) {
		t.Error("the underlying cause must stay reachable through Unwrap")
	}

	// Without a cause the category still matches.
	bare := NewDataError("api", "NVDA", "empty result set", nil)
	if !Is(bare, ErrDataUnavailable) {
		t.Error("cause-less DataError must match ErrDataUnavailable")
	}

	// Wrapping with context must not break the chain.
	wrapped := Wrapf(err, "resolving %s leg", "long")
	if !Is(wrapped, ErrDataUnavailable) || !Is(wrapped, io.EOF) {
		t.Errorf("wrapped chain lost a link: %v", wrapped)
	}
}

func TestValidationErrorCategory(t *testing.T) {
	err := NewValidationError("underlying_price", -5.0, "must be positive")
	if !Is(err, ErrInputValidation) {
		t.Error("ValidationError must match ErrInputValidation")
	}
	if Is(err, ErrDataUnavailable) {
		t.Error("ValidationError must not match the data category")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) must stay nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) must stay nil")
	}
}
