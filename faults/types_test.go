package faults

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsCategory(t *testing.T) {
	t.Parallel()

	err := NewTypedError(AuthError, "token request failed", nil)
	if !IsCategory(err, AuthError) {
		t.Fatalf("expected auth category match")
	}
	if IsCategory(err, NotFoundError) {
		t.Fatalf("expected not-found category mismatch")
	}

	flattened := errors.New("wrap: " + err.Error())
	if IsCategory(flattened, AuthError) {
		t.Fatalf("plain string error must not match typed category")
	}

	wrapped := fmt.Errorf("sweep aborted: %w", err)
	if !IsCategory(wrapped, AuthError) {
		t.Fatalf("expected category match through fmt wrapping")
	}

	joined := errors.Join(err, errors.New("other"))
	if !IsCategory(joined, AuthError) {
		t.Fatalf("expected category match through errors.Join")
	}
}

func TestTypedErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewTypedError(TransportError, "user fetch failed", cause)
	if got, want := err.Error(), "user fetch failed: connection refused"; got != want {
		t.Fatalf("unexpected message: got %q want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}

	bare := NewTypedError(NotFoundError, "", nil)
	if got, want := bare.Error(), string(NotFoundError); got != want {
		t.Fatalf("unexpected bare message: got %q want %q", got, want)
	}
}
