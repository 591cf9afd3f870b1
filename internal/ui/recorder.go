package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Kind names a Notifier method.
type Kind string

const (
	KindIntro         Kind = "intro"
	KindConfirm       Kind = "confirm"
	KindInfo          Kind = "info"
	KindWarn          Kind = "warn"
	KindCancel        Kind = "cancel"
	KindStartProgress Kind = "start-progress"
	KindStopProgress  Kind = "stop-progress"
	KindSuccess       Kind = "success"
)

// Call is one recorded Notifier invocation.
type Call struct {
	Kind    Kind
	Message string
}

// ErrNoScriptedAnswer is returned by Recorder.Confirm when its answers run out.
var ErrNoScriptedAnswer = errors.New("no scripted confirmation answer")

// Recorder implements Notifier without a terminal. It records every call
// and answers Confirm from a script, for use in tests.
type Recorder struct {
	mu         sync.Mutex
	answers    []bool
	confirmErr error
	calls      []Call
}

// NewRecorder creates a recorder that answers confirmations in order.
func NewRecorder(answers ...bool) *Recorder {
	return &Recorder{answers: answers}
}

// FailConfirm makes every following Confirm return err.
func (r *Recorder) FailConfirm(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirmErr = err
}

func (r *Recorder) record(kind Kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Kind: kind, Message: msg})
}

func (r *Recorder) Intro(msg string) { r.record(KindIntro, msg) }

func (r *Recorder) Confirm(ctx context.Context, prompt string) (bool, error) {
	r.record(KindConfirm, prompt)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.confirmErr != nil {
		return false, r.confirmErr
	}
	if len(r.answers) == 0 {
		return false, ErrNoScriptedAnswer
	}
	answer := r.answers[0]
	r.answers = r.answers[1:]
	return answer, nil
}

func (r *Recorder) Info(msg string)          { r.record(KindInfo, msg) }
func (r *Recorder) Warn(msg string)          { r.record(KindWarn, msg) }
func (r *Recorder) Cancel(msg string)        { r.record(KindCancel, msg) }
func (r *Recorder) StartProgress(msg string) { r.record(KindStartProgress, msg) }
func (r *Recorder) StopProgress(msg string)  { r.record(KindStopProgress, msg) }
func (r *Recorder) Success(msg string)       { r.record(KindSuccess, msg) }

// Calls returns a copy of every recorded call in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Kinds returns the kind of every recorded call in order.
func (r *Recorder) Kinds() []Kind {
	calls := r.Calls()
	kinds := make([]Kind, len(calls))
	for i, c := range calls {
		kinds[i] = c.Kind
	}
	return kinds
}

// Messages returns the messages recorded for kind.
func (r *Recorder) Messages(kind Kind) []string {
	var msgs []string
	for _, c := range r.Calls() {
		if c.Kind == kind {
			msgs = append(msgs, c.Message)
		}
	}
	return msgs
}

// Contains reports whether any call of kind has a message containing substr.
func (r *Recorder) Contains(kind Kind, substr string) bool {
	for _, m := range r.Messages(kind) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
