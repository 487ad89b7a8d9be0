package observe

// Proxy relays events from an origin emitter to a target emitter. It only
// subscribes to an origin event once the target gets a listener for it, and
// at most once per event name.
type Proxy struct {
	Disposable

	origin *Emitter
	target *Emitter

	blacklist map[string]bool
	// nil means every event not blacklisted is proxied
	whitelist map[string]bool

	proxied map[string]*Handle
	demand  *Handle
}

// NewProxy starts proxying origin's events through target.
func NewProxy(origin, target *Emitter, opts ...ProxyOption) *Proxy {
	cfg := proxyConfig{blacklist: make(map[string]bool)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := &Proxy{
		origin:    origin,
		target:    target,
		blacklist: cfg.blacklist,
		whitelist: cfg.whitelist,
		proxied:   make(map[string]*Handle),
	}

	p.demand, _ = target.On(EventNewListener, NewListener(func(args ...any) {
		if len(args) == 0 {
			return
		}
		if event, ok := args[0].(string); ok {
			p.ProxyEvent(event)
		}
	}))

	p.OnCleanup(func() {
		p.removeListeners()
		p.demand.Dispose()
		p.origin = nil
		p.target = nil
	})

	return p
}

// ProxyEvent starts relaying event, unless it is filtered out or already
// relayed.
func (p *Proxy) ProxyEvent(event string) {
	if p.IsDisposed() || !p.shouldProxyEvent(event) {
		return
	}

	p.proxied[event] = p.addListenerForEvent(event)
}

// ProxiedEvents returns the number of events currently relayed.
func (p *Proxy) ProxiedEvents() int {
	return len(p.proxied)
}

// SetOriginEmitter moves every relayed event over to a new origin.
func (p *Proxy) SetOriginEmitter(origin *Emitter) {
	if p.IsDisposed() {
		return
	}

	events := make([]string, 0, len(p.proxied))
	for event := range p.proxied {
		events = append(events, event)
	}

	p.removeListeners()
	p.origin = origin

	for _, event := range events {
		p.proxied[event] = p.addListenerForEvent(event)
	}
}

func (p *Proxy) shouldProxyEvent(event string) bool {
	if p.whitelist != nil && !p.whitelist[event] {
		return false
	}
	if p.blacklist[event] {
		return false
	}

	_, ok := p.proxied[event]
	return !ok
}

func (p *Proxy) addListenerForEvent(event string) *Handle {
	handle, _ := p.origin.On(event, NewListener(func(args ...any) {
		p.emitOnTarget(event, args...)
	}))
	return handle
}

func (p *Proxy) emitOnTarget(event string, args ...any) {
	if p.target == nil {
		return
	}
	p.target.Emit(event, args...)
}

func (p *Proxy) removeListeners() {
	for _, handle := range p.proxied {
		handle.Dispose()
	}
	p.proxied = make(map[string]*Handle)
}
