// Package notify carries the short-lived messages ("toasts") shown to the
// user after an action.
package notify

import (
	"context"
	"sync"
)

// Level is the severity of a notice.
type Level string

// Levels.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Messages shown to the user.
const (
	MsgFillRequired = "Please fill all required fields"
	MsgInvalidDate  = "Please enter a valid date"
	MsgLargeImage   = "Large image; consider smaller for speed"
	MsgItemAdded    = "Item added"
	MsgReturned     = "Item marked as returned"
	MsgContactCopy  = "Contact copied"
)

// Notice is one transient message.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives notices. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notice)

func (f Func) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// Discard drops every notice.
var Discard Notifier = Func(func(context.Context, Notice) {})

// Recorder collects notices in order. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice{}, r.notices...)
}

type ctxKey struct{}

// WithNotifier returns a context whose notices go to n.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, ctxKey{}, n)
}

// From returns the Notifier stored in ctx, or Discard.
func From(ctx context.Context) Notifier {
	if n, ok := ctx.Value(ctxKey{}).(Notifier); ok && n != nil {
		return n
	}
	return Discard
}

// Send delivers a notice to the context's Notifier.
func Send(ctx context.Context, level Level, msg string) {
	From(ctx).Notify(ctx, Notice{Level: level, Message: msg})
}
