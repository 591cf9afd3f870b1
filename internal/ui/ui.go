// Package ui is the interactive side channel of the CLI: confirmations,
// progress, and status lines. Commands depend on the Notifier interface so
// they can run against a real terminal or a Recorder in tests.
package ui

import (
	"context"
	"errors"
)

// Notifier is everything a command needs to talk to the user.
type Notifier interface {
	// Intro opens a command session with a headline.
	Intro(msg string)

	// Confirm asks a yes/no question. The default answer is no.
	Confirm(ctx context.Context, prompt string) (bool, error)

	// Info prints an informational line.
	Info(msg string)

	// Warn prints a warning line.
	Warn(msg string)

	// Cancel reports that the command stopped without doing its work.
	Cancel(msg string)

	// StartProgress shows a progress indicator until StopProgress.
	StartProgress(msg string)

	// StopProgress removes the progress indicator and prints msg.
	StopProgress(msg string)

	// Success closes the session with a final message.
	Success(msg string)
}

// ErrNonInteractive is returned by Confirm when no terminal is available to
// ask and the caller did not pre-approve the action.
var ErrNonInteractive = errors.New("confirmation required but no interactive terminal is available (use --yes)")
