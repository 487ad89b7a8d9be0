package observe

// Disposable is the lifecycle base shared by emitters, handles, handlers,
// proxies and states.
type Disposable struct {
	disposed bool

	// teardown functions, run once on the first Dispose
	cleanups []func()
}

// Dispose runs the registered cleanups once. Later calls do nothing.
func (d *Disposable) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true

	for i := 0; i < len(d.cleanups); i++ {
		d.cleanups[i]()
	}
	d.cleanups = nil
}

// IsDisposed reports whether Dispose has been called.
func (d *Disposable) IsDisposed() bool {
	return d.disposed
}

// OnCleanup adds a teardown function. Cleanups run in registration order.
// Adding one to an already disposed value runs it immediately.
func (d *Disposable) OnCleanup(fn func()) {
	if fn == nil {
		return
	}
	if d.disposed {
		fn()
		return
	}

	d.cleanups = append(d.cleanups, fn)
}
