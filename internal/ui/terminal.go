package ui

import (
	"context"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/popcli/pop/internal/branding"
	"golang.org/x/term"
)

// Terminal implements Notifier on a real terminal using survey for prompts
// and lipgloss for styling.
type Terminal struct {
	out         io.Writer
	interactive bool
	assumeYes   bool
	spinner     *Spinner
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithAssumeYes answers every confirmation with yes without prompting.
func WithAssumeYes(yes bool) TerminalOption {
	return func(t *Terminal) { t.assumeYes = yes }
}

// WithInteractive overrides terminal detection.
func WithInteractive(interactive bool) TerminalOption {
	return func(t *Terminal) { t.interactive = interactive }
}

// WithOutput sends status lines to w instead of stdout. The spinner is not
// animated on writers other than a terminal.
func WithOutput(w io.Writer) TerminalOption {
	return func(t *Terminal) {
		t.out = w
		t.spinner = NewSpinner(w, isTTY(w))
	}
}

// NewTerminal returns a Notifier bound to stdout/stdin.
func NewTerminal(opts ...TerminalOption) *Terminal {
	t := &Terminal{
		out:         os.Stdout,
		interactive: !IsNonInteractive(),
		spinner:     NewSpinner(os.Stdout, isTTY(os.Stdout)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) Intro(msg string) {
	t.spinner.Println("")
	t.spinner.Println(Badge.Render(branding.DisplayName()) + " " + Bold.Render(msg))
}

func (t *Terminal) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if t.assumeYes {
		t.spinner.Println(RenderInfo(prompt + " " + Muted.Render("yes (--yes)")))
		return true, nil
	}
	if !t.interactive {
		return false, ErrNonInteractive
	}

	var ok bool
	err := survey.AskOne(&survey.Confirm{
		Message: prompt,
		Default: false,
	}, &ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (t *Terminal) Info(msg string) {
	t.spinner.Println(RenderInfo(msg))
}

func (t *Terminal) Warn(msg string) {
	t.spinner.Println(RenderWarn(msg))
}

func (t *Terminal) Cancel(msg string) {
	t.spinner.Stop()
	t.spinner.Println(RenderError(msg))
}

func (t *Terminal) StartProgress(msg string) {
	t.spinner.Start(msg)
}

func (t *Terminal) StopProgress(msg string) {
	t.spinner.Stop()
	t.spinner.Println(StatusOK.Render(SymbolStep) + " " + msg)
}

func (t *Terminal) Success(msg string) {
	t.spinner.Stop()
	t.spinner.Println(RenderOK(msg))
}

// isTTY reports whether w is a terminal file.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
