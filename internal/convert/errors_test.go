package convert

import (
	"errors"
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPipelineError - Wrapping, unwrapping, kind classification
// ---------------------------------------------------------------------------

func TestPipelineError(t *testing.T) {
	t.Parallel()

	t.Run("fail wraps and preserves sentinel", func(t *testing.T) {
		t.Parallel()

		err := fail(FailRendering, fmt.Errorf("%w: chrome exploded", ErrPDFGeneration))
		if !errors.Is(err, ErrPDFGeneration) {
			t.Error("sentinel lost through fail()")
		}
		if KindOf(err) != FailRendering {
			t.Errorf("KindOf() = %v, want %v", KindOf(err), FailRendering)
		}
	})

	t.Run("fail preserves inner kind", func(t *testing.T) {
		t.Parallel()

		inner := fail(FailValidation, ErrEmptyHTML)
		outer := fail(FailPostProcessing, inner)
		if KindOf(outer) != FailValidation {
			t.Errorf("KindOf() = %v, want inner kind %v", KindOf(outer), FailValidation)
		}
		if !errors.Is(outer, ErrEmptyHTML) {
			t.Error("sentinel lost through rewrap")
		}
	})

	t.Run("failf formats the message", func(t *testing.T) {
		t.Parallel()

		err := failf(FailValidation, "Cannot recognise %s image type", "header")
		if err.Error() != "Cannot recognise header image type" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("plain errors default to post-processing", func(t *testing.T) {
		t.Parallel()

		if got := KindOf(errors.New("anything")); got != FailPostProcessing {
			t.Errorf("KindOf() = %v, want %v", got, FailPostProcessing)
		}
	})
}

func TestFailureKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind FailureKind
		want string
	}{
		{FailValidation, "validation"},
		{FailRendering, "rendering"},
		{FailPostProcessing, "post-processing"},
		{FailEncryption, "encryption"},
		{FailPlatform, "platform"},
		{FailIO, "io"},
		{FailureKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("FailureKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
