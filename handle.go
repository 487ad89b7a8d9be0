package observe

import "slices"

// ListenerRemover is what a Handle unsubscribes from. *Emitter implements it.
type ListenerRemover interface {
	RemoveListener(events []string, listener *Listener) error
	IsDisposed() bool
}

// Handle is returned by subscriptions and removes them when disposed. The
// emitter doesn't own its handles; whoever subscribed does.
type Handle struct {
	Disposable

	emitter  ListenerRemover
	events   []string
	listener *Listener
}

// NewHandle creates a handle for listener on events of emitter.
func NewHandle(emitter ListenerRemover, events []string, listener *Listener) *Handle {
	h := &Handle{
		emitter:  emitter,
		events:   slices.Clone(events),
		listener: listener,
	}

	h.OnCleanup(func() {
		h.RemoveListener()
		h.emitter = nil
		h.listener = nil
	})

	return h
}

// RemoveListener unsubscribes the listener, unless the emitter is already
// disposed. Dispose calls it once.
func (h *Handle) RemoveListener() {
	if h.emitter == nil || h.emitter.IsDisposed() {
		return
	}
	_ = h.emitter.RemoveListener(h.events, h.listener)
}

// Events returns the event names the listener was subscribed to.
func (h *Handle) Events() []string {
	return slices.Clone(h.events)
}

func (h *Handle) Listener() *Listener {
	return h.listener
}
