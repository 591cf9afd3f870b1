package ui

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_ConfirmNonInteractive(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(WithOutput(&buf), WithInteractive(false))

	ok, err := term.Confirm(context.Background(), "remove it?")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNonInteractive)
}

func TestTerminal_ConfirmAssumeYes(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(WithOutput(&buf), WithInteractive(false), WithAssumeYes(true))

	ok, err := term.Confirm(context.Background(), "remove it?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "remove it?")
}

func TestTerminal_ConfirmCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	term := NewTerminal(WithOutput(&bytes.Buffer{}), WithAssumeYes(true))
	_, err := term.Confirm(ctx, "remove it?")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTerminal_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(WithOutput(&buf), WithInteractive(false))

	term.Intro("Generating")
	term.StartProgress("Generating parachain...")
	term.Warn("no signature")
	term.StopProgress("Generation complete")
	term.Info("Version: v1.0.0")
	term.Success("enjoy")

	out := buf.String()
	for _, want := range []string{
		"Generating",
		"Generating parachain...",
		SymbolWarn,
		"no signature",
		"Generation complete",
		SymbolInfo,
		"Version: v1.0.0",
		SymbolOK,
		"enjoy",
	} {
		assert.Contains(t, out, want)
	}
	// No spinner escape codes on a plain writer.
	assert.NotContains(t, out, "\r\033[K")
}

func TestTerminal_Cancel(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(WithOutput(&buf), WithInteractive(false))

	term.Cancel("stopped")
	assert.Contains(t, buf.String(), SymbolError)
	assert.Contains(t, buf.String(), "stopped")
}
