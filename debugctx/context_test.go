package debugctx

import (
	"bytes"
	"context"
	"testing"
)

func TestPrintf(t *testing.T) {
	t.Parallel()

	t.Run("disabled_by_default", func(t *testing.T) {
		t.Parallel()

		buffer := &bytes.Buffer{}
		ctx := WithWriter(context.Background(), buffer)
		Printf(ctx, "hidden %d", 1)
		if buffer.Len() != 0 {
			t.Fatalf("expected no output, got %q", buffer.String())
		}
	})

	t.Run("enabled_with_writer", func(t *testing.T) {
		t.Parallel()

		buffer := &bytes.Buffer{}
		ctx := WithEnabled(WithWriter(context.Background(), buffer), true)
		Printf(ctx, "  visible %s  ", "line")
		if got, want := buffer.String(), "debug: visible line\n"; got != want {
			t.Fatalf("unexpected output: got %q want %q", got, want)
		}
	})

	t.Run("nil_context_is_safe", func(t *testing.T) {
		t.Parallel()

		if Enabled(nil) {
			t.Fatalf("nil context must not report enabled")
		}
		Printf(nil, "ignored")
	})
}
