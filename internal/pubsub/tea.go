package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Listener feeds one subscription into a Bubble Tea update loop, one
// message per Listen. A nil *Listener is valid and never delivers.
type Listener[T any] struct {
	ctx    context.Context
	ch     <-chan Event[T]
	latest bool
}

// NewListener subscribes to sub until ctx is cancelled.
func NewListener[T any](ctx context.Context, sub Subscriber[T]) *Listener[T] {
	return &Listener[T]{ctx: ctx, ch: sub.Subscribe(ctx)}
}

// NewLatestListener is like NewListener but each message is the newest
// event queued at the time it is read; older queued events are skipped.
func NewLatestListener[T any](ctx context.Context, sub Subscriber[T]) *Listener[T] {
	l := NewListener(ctx, sub)
	l.latest = true
	return l
}

// Listen returns a command that waits for the next event. Call it again
// after handling each event. The command yields nil once the context is
// done or the broker closes.
func (l *Listener[T]) Listen() tea.Cmd {
	if l == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := l.next()
		if !ok {
			return nil
		}
		return event
	}
}

func (l *Listener[T]) next() (Event[T], bool) {
	var event Event[T]
	select {
	case <-l.ctx.Done():
		return event, false
	case e, ok := <-l.ch:
		if !ok {
			return event, false
		}
		event = e
	}
	if !l.latest {
		return event, true
	}
	for {
		select {
		case e, ok := <-l.ch:
			if !ok {
				return event, true
			}
			event = e
		default:
			return event, true
		}
	}
}
