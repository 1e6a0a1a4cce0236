//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNewWithoutOCRSupport(t *testing.T) {
	if _, err := New(); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("expected ErrOCRNotEnabled, got %v", err)
	}
}
