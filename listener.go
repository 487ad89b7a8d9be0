package observe

// Listener wraps a callback so it can be identified later on. Two listeners
// are the same listener only if they are the same pointer.
type Listener struct {
	fn func(args ...any)
}

// NewListener creates a listener for fn.
func NewListener(fn func(args ...any)) *Listener {
	return &Listener{fn: fn}
}

// Call invokes the callback.
func (l *Listener) Call(args ...any) {
	l.fn(args...)
}

func validateListener(l *Listener) error {
	if l == nil || l.fn == nil {
		return ErrInvalidListener
	}
	return nil
}

type listenerKind int

const (
	// fires until removed
	listenerDirect listenerKind = iota
	// fires a fixed number of times then removes itself
	listenerCountLimited
)

// listenerRecord is one registration of a listener for one event.
type listenerRecord struct {
	kind      listenerKind
	listener  *Listener
	isDefault bool

	// countLimited only
	remaining int
	origin    *Listener
}

func (r *listenerRecord) matches(l *Listener) bool {
	return r.listener == l || (r.origin != nil && r.origin == l)
}

// take consumes one invocation. It reports false once a count-limited record
// is exhausted.
func (r *listenerRecord) take() (ok bool, last bool) {
	if r.kind != listenerCountLimited {
		return true, false
	}
	if r.remaining <= 0 {
		return false, false
	}

	r.remaining--
	return true, r.remaining == 0
}

type listenerList struct {
	records []*listenerRecord

	// the leak warning is logged once per event
	warned bool
}
