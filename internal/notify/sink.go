// Package notify defines the notification contract the stores report
// through. Delivery is the sink's problem: implementations must never panic
// back into a store.
package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Sink receives user-facing notifications, fire-and-forget.
type Sink interface {
	Notify(kind Kind, title, detail string)
}

// LogSink writes notifications to the structured log.
type LogSink struct {
	Log zerolog.Logger
}

// Notify implements Sink.
func (s LogSink) Notify(kind Kind, title, detail string) {
	evt := s.Log.Info()
	if kind == KindError {
		evt = s.Log.Error()
	}
	evt.Str("kind", string(kind)).Str("title", title).Str("detail", detail).Msg("notification")
}

// NopSink discards notifications.
type NopSink struct{}

// Notify implements Sink.
func (NopSink) Notify(Kind, string, string) {}

// Notification is one recorded event.
type Notification struct {
	Kind   Kind
	Title  string
	Detail string
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Notification
}

// Notify implements Sink.
func (r *Recorder) Notify(kind Kind, title, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Notification{Kind: kind, Title: title, Detail: detail})
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.events...)
}

// ByKind returns recorded events of one kind.
func (r *Recorder) ByKind(kind Kind) []Notification {
	var out []Notification
	for _, n := range r.Events() {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Reset clears recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
