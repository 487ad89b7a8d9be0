package observe

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

const (
	// EventNewListener is emitted with (event, listener) right before a
	// listener is registered.
	EventNewListener = "newListener"
	// EventWildcard receives every event as (event, args...).
	EventWildcard = "*"
)

// Emitter keeps named event registries and delivers emitted events to them.
type Emitter struct {
	Disposable

	id     uuid.UUID
	events map[string]*listenerList

	maxListeners    int
	shouldUseFacade bool
	logger          *slog.Logger
}

// NewEmitter creates an emitter. Defaults come from the environment (see
// OBSERVE_MAX_LISTENERS and OBSERVE_USE_FACADE).
func NewEmitter(opts ...EmitterOption) *Emitter {
	cfg := defaultEmitterConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	e := &Emitter{
		id:              uuid.New(),
		events:          make(map[string]*listenerList),
		maxListeners:    cfg.maxListeners,
		shouldUseFacade: cfg.useFacade,
		logger:          cfg.logger,
	}

	e.OnCleanup(func() {
		e.events = make(map[string]*listenerList)
	})

	return e
}

// ID identifies the emitter in logs.
func (e *Emitter) ID() uuid.UUID {
	return e.id
}

// AddListener appends listener to each of events. Default listeners run
// after all regular ones, and only if none of them prevented the default.
func (e *Emitter) AddListener(events []string, listener *Listener, isDefault bool) (*Handle, error) {
	if err := validateListener(listener); err != nil {
		return nil, err
	}

	for _, event := range events {
		e.addRecord(event, &listenerRecord{
			kind:      listenerDirect,
			listener:  listener,
			isDefault: isDefault,
		})
	}

	return NewHandle(e, events, listener), nil
}

// On adds listener for a single event.
func (e *Emitter) On(event string, listener *Listener) (*Handle, error) {
	return e.AddListener([]string{event}, listener, false)
}

// OnDefault adds a default listener for a single event.
func (e *Emitter) OnDefault(event string, listener *Listener) (*Handle, error) {
	return e.AddListener([]string{event}, listener, true)
}

// Many adds a listener that is removed from each event after being invoked n
// times for it. Off still matches it by the original listener.
func (e *Emitter) Many(events []string, n int, listener *Listener) (*Handle, error) {
	if err := validateListener(listener); err != nil {
		return nil, err
	}

	if n > 0 {
		for _, event := range events {
			e.addRecord(event, &listenerRecord{
				kind:      listenerCountLimited,
				listener:  listener,
				remaining: n,
				origin:    listener,
			})
		}
	}

	return NewHandle(e, events, listener), nil
}

// Once adds a listener invoked at most one time for event.
func (e *Emitter) Once(event string, listener *Listener) (*Handle, error) {
	return e.Many([]string{event}, 1, listener)
}

func (e *Emitter) addRecord(event string, record *listenerRecord) {
	e.Emit(EventNewListener, event, record.listener)

	list, ok := e.events[event]
	if !ok {
		list = &listenerList{}
		e.events[event] = list
	}
	list.records = append(list.records, record)

	if e.maxListeners > 0 && len(list.records) > e.maxListeners && !list.warned {
		list.warned = true
		e.log().Warn("possible emitter memory leak detected, use SetMaxListeners to increase the limit",
			slog.String("emitter", e.id.String()),
			slog.String("event", event),
			slog.Int("listeners", len(list.records)),
			slog.Int("max", e.maxListeners),
		)
	}
}

// Emit calls the listeners of event with args. The listener list is copied
// first, so listeners added or removed while emitting don't affect this
// delivery. Every event is also delivered to "*" listeners as (event, args...).
// It returns true if at least one listener ran.
func (e *Emitter) Emit(event string, args ...any) bool {
	var snapshot []*listenerRecord
	if list, ok := e.events[event]; ok {
		snapshot = slices.Clone(list.records)
	}

	callArgs := args
	var facade *Facade
	if e.shouldUseFacade {
		facade = &Facade{Target: e, Type: event}
		callArgs = append(slices.Clone(args), facade)
	}

	ran := false
	defaults := make([]*listenerRecord, 0)
	for _, record := range snapshot {
		if record.isDefault {
			defaults = append(defaults, record)
			continue
		}
		if e.invoke(event, record, callArgs) {
			ran = true
		}
	}

	if facade == nil || !facade.DefaultPrevented() {
		for _, record := range defaults {
			if e.invoke(event, record, callArgs) {
				ran = true
			}
		}
	}

	if event != EventWildcard {
		e.Emit(EventWildcard, append([]any{event}, args...)...)
	}

	return ran
}

func (e *Emitter) invoke(event string, record *listenerRecord, args []any) bool {
	ok, last := record.take()
	if !ok {
		return false
	}
	if last {
		e.removeRecord(event, record)
	}

	record.listener.Call(args...)
	return true
}

func (e *Emitter) removeRecord(event string, record *listenerRecord) {
	list, ok := e.events[event]
	if !ok {
		return
	}

	list.records = slices.DeleteFunc(list.records, func(r *listenerRecord) bool {
		return r == record
	})
}

// RemoveListener removes every registration of listener from events,
// including count-limited ones added through Many or Once.
func (e *Emitter) RemoveListener(events []string, listener *Listener) error {
	if err := validateListener(listener); err != nil {
		return err
	}

	for _, event := range events {
		list, ok := e.events[event]
		if !ok {
			continue
		}
		list.records = slices.DeleteFunc(list.records, func(r *listenerRecord) bool {
			return r.matches(listener)
		})
	}

	return nil
}

// Off removes listener from a single event.
func (e *Emitter) Off(event string, listener *Listener) error {
	return e.RemoveListener([]string{event}, listener)
}

// RemoveAllListeners clears the given events, or every event if none is given.
func (e *Emitter) RemoveAllListeners(events ...string) {
	if len(events) == 0 {
		e.events = make(map[string]*listenerList)
		return
	}

	for _, event := range events {
		delete(e.events, event)
	}
}

// Listeners returns the listeners of event in registration order.
func (e *Emitter) Listeners(event string) []*Listener {
	list, ok := e.events[event]
	if !ok {
		return []*Listener{}
	}

	listeners := make([]*Listener, 0, len(list.records))
	for _, record := range list.records {
		if record.origin != nil {
			listeners = append(listeners, record.origin)
			continue
		}
		listeners = append(listeners, record.listener)
	}
	return listeners
}

// SetMaxListeners sets the leak warning threshold. Zero means unlimited.
func (e *Emitter) SetMaxListeners(n int) *Emitter {
	if n < 0 {
		n = 0
	}
	e.maxListeners = n
	return e
}

// MaxListeners returns the leak warning threshold.
func (e *Emitter) MaxListeners() int {
	return e.maxListeners
}

// SetShouldUseFacade toggles passing a *Facade as the last listener argument.
func (e *Emitter) SetShouldUseFacade(enabled bool) *Emitter {
	e.shouldUseFacade = enabled
	return e
}

func (e *Emitter) ShouldUseFacade() bool {
	return e.shouldUseFacade
}

func (e *Emitter) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}
