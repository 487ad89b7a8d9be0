package observe

// Handler groups handles, possibly from different emitters, so they can be
// removed together.
type Handler struct {
	Disposable

	handles []*Handle
}

func NewHandler() *Handler {
	h := &Handler{
		handles: make([]*Handle, 0),
	}

	h.OnCleanup(func() {
		h.handles = nil
	})

	return h
}

// Add appends handles to the group. Nil handles are ignored.
func (h *Handler) Add(handles ...*Handle) {
	if h.IsDisposed() {
		return
	}

	for _, handle := range handles {
		if handle != nil {
			h.handles = append(h.handles, handle)
		}
	}
}

// RemoveAllListeners disposes every handle in the group and empties it.
func (h *Handler) RemoveAllListeners() {
	for _, handle := range h.handles {
		handle.Dispose()
	}

	if !h.IsDisposed() {
		h.handles = make([]*Handle, 0)
	}
}

// Len returns the number of handles in the group.
func (h *Handler) Len() int {
	return len(h.handles)
}
