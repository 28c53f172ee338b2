// Package debugctx routes optional debug narration through the context,
// so low-level providers can trace their work without holding a logger.
package debugctx

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type settingsKey struct{}

type settings struct {
	enabled bool
	writer  io.Writer
}

func WithEnabled(ctx context.Context, enabled bool) context.Context {
	current := settingsFrom(ctx)
	current.enabled = enabled
	return context.WithValue(ctx, settingsKey{}, current)
}

func WithWriter(ctx context.Context, writer io.Writer) context.Context {
	if writer == nil {
		return ctx
	}
	current := settingsFrom(ctx)
	current.writer = writer
	return context.WithValue(ctx, settingsKey{}, current)
}

func Enabled(ctx context.Context) bool {
	return settingsFrom(ctx).enabled
}

func Writer(ctx context.Context) io.Writer {
	return settingsFrom(ctx).writer
}

func Printf(ctx context.Context, format string, args ...any) {
	current := settingsFrom(ctx)
	if !current.enabled || current.writer == nil {
		return
	}

	message := strings.TrimSpace(fmt.Sprintf(format, args...))
	if message == "" {
		return
	}

	_, _ = fmt.Fprintf(current.writer, "debug: %s\n", message)
}

func settingsFrom(ctx context.Context) settings {
	if ctx == nil {
		return settings{}
	}

	current, _ := ctx.Value(settingsKey{}).(settings)
	return current
}
