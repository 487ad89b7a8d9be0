package observe

import (
	"slices"
	"sort"

	"github.com/AnatoleLucet/observe/internal/runtime"
)

const (
	// EventStateKeyChanged is emitted with a Change for every key change.
	EventStateKeyChanged = "stateKeyChanged"
	// EventStateChanged is emitted once per tick with the coalesced Batch.
	EventStateChanged = "stateChanged"
)

// ChangedEvent returns the event emitted when key changes.
func ChangedEvent(key string) string {
	return key + "Changed"
}

// State is an Emitter with keyed reactive properties. Keys are initialized
// lazily on first read, can be validated and normalized on write, and report
// their changes both immediately and as one batch per tick.
type State struct {
	*Emitter

	class       string
	invalidKeys map[string]bool

	keys      map[string]*keyInfo
	order     []string
	accessors AccessorTable

	scheduled *Batch
}

// NewState creates a state for a registered class, "State" by default, and
// declares the class's merged schema on it.
func NewState(opts ...StateOption) (*State, error) {
	cfg := stateConfig{class: BaseClass}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	class, err := resolveClass(cfg.class)
	if err != nil {
		return nil, err
	}

	s := &State{
		Emitter:     NewEmitter(cfg.emitter...),
		class:       cfg.class,
		invalidKeys: class.InvalidKeys,
		keys:        make(map[string]*keyInfo),
		order:       make([]string, 0),
		accessors:   make(AccessorTable),
	}
	s.SetShouldUseFacade(true)

	s.OnCleanup(func() {
		s.keys = make(map[string]*keyInfo)
		s.order = nil
		s.accessors = make(AccessorTable)
		s.scheduled = nil
	})

	if err := s.AddToState(Schema(class.Entries), cfg.initialValues); err != nil {
		return nil, err
	}

	return s, nil
}

// Class returns the name of the class the state was built from.
func (s *State) Class() string {
	return s.class
}

// AddKeyToState declares a single key. A nil initialValue means none.
func (s *State) AddKeyToState(name string, config KeyConfig, initialValue any) error {
	if err := s.assertValidKeyName(name); err != nil {
		return err
	}

	s.buildKeyInfo(name, config, initialValue)
	s.defineAccessor(name, s)
	return nil
}

// AddToState declares every key of schema. initialValues take precedence
// over the schema's defaults. Accessors are defined on the state unless
// redirected with WithTarget or skipped with WithoutAccessors. Nothing is
// declared if any name is invalid.
func (s *State) AddToState(schema Schema, initialValues map[string]any, opts ...AddOption) error {
	cfg := addConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.assertValidKeyName(name); err != nil {
			return err
		}
	}

	for _, name := range names {
		s.buildKeyInfo(name, schema[name], initialValues[name])
		if cfg.skip {
			continue
		}
		if cfg.target != nil {
			s.defineAccessor(name, cfg.target)
			continue
		}
		s.defineAccessor(name, s)
	}

	return nil
}

func (s *State) assertValidKeyName(name string) error {
	if s.invalidKeys[name] {
		return &KeyNameError{Key: name, Class: s.class}
	}
	return nil
}

func (s *State) buildKeyInfo(name string, config KeyConfig, initialValue any) {
	if _, ok := s.keys[name]; !ok {
		s.order = append(s.order, name)
	}

	s.keys[name] = &keyInfo{
		config:       config,
		state:        KeyUninitialized,
		initialValue: initialValue,
	}
}

func (s *State) defineAccessor(name string, target AccessorTarget) {
	s.keys[name].target = target
	target.DefineAccessor(name, Accessor{
		Get: func() any { return s.Get(name) },
		Set: func(value any) { s.Set(name, value) },
	})
}

// DefineAccessor stores an accessor in the state's own table.
func (s *State) DefineAccessor(name string, accessor Accessor) {
	s.accessors.DefineAccessor(name, accessor)
}

// DeleteAccessor removes an accessor from the state's own table.
func (s *State) DeleteAccessor(name string) {
	s.accessors.DeleteAccessor(name)
}

// Accessor returns the accessor defined on the state for name.
func (s *State) Accessor(name string) (Accessor, bool) {
	return s.accessors.Lookup(name)
}

// Get returns the value of name, initializing the key on first access.
// Unknown keys read as nil.
func (s *State) Get(name string) any {
	info, ok := s.keys[name]
	if !ok {
		return nil
	}

	s.initKey(name, info)
	return info.value
}

// GetState snapshots the given keys, or every key if none are given.
func (s *State) GetState(names ...string) map[string]any {
	if len(names) == 0 {
		names = s.GetStateKeys()
	}

	state := make(map[string]any, len(names))
	for _, name := range names {
		state[name] = s.Get(name)
	}
	return state
}

// GetStateKeys returns the declared keys in declaration order.
func (s *State) GetStateKeys() []string {
	return slices.Clone(s.order)
}

// GetStateKeyConfig returns the config of name.
func (s *State) GetStateKeyConfig(name string) (KeyConfig, bool) {
	info, ok := s.keys[name]
	if !ok {
		return KeyConfig{}, false
	}
	return info.config, true
}

// KeyState returns the lifecycle state of name.
func (s *State) KeyState(name string) KeyState {
	info, ok := s.keys[name]
	if !ok {
		return KeyUninitialized
	}
	return info.state
}

// HasBeenSet reports whether name has a value without initializing it.
func (s *State) HasBeenSet(name string) bool {
	info, ok := s.keys[name]
	if !ok {
		return false
	}
	return info.state == KeyInitialized || info.initialValue != nil
}

// CanSetState reports whether name still accepts writes.
func (s *State) CanSetState(name string) bool {
	info, ok := s.keys[name]
	if !ok {
		return false
	}
	return !info.config.WriteOnce || !info.written
}

// Set writes value to name. The write is silently dropped when the key is
// unknown, write-once and already written, or when the validator rejects it.
func (s *State) Set(name string, value any) {
	info, ok := s.keys[name]
	if !ok {
		return
	}
	// a pending initial value counts as the first write
	if info.initialValue != nil {
		s.initKey(name, info)
	}
	if !s.CanSetState(name) || !s.validate(info, value) {
		return
	}

	// a write before the first read skips the default value
	if info.initialValue == nil && info.state == KeyUninitialized {
		info.state = KeyInitialized
	}

	prevVal := s.Get(name)
	s.write(name, info, value, prevVal)
}

// SetState writes every value of values.
func (s *State) SetState(values map[string]any) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s.Set(name, values[name])
	}
}

// RemoveStateKey forgets name and its accessor. The key won't report changes
// anymore.
func (s *State) RemoveStateKey(name string) {
	info, ok := s.keys[name]
	if !ok {
		return
	}

	if info.target != nil {
		info.target.DeleteAccessor(name)
	}
	delete(s.keys, name)
	s.order = slices.DeleteFunc(s.order, func(key string) bool { return key == name })
}

func (s *State) write(name string, info *keyInfo, value, prevVal any) {
	if info.config.Setter != nil {
		value = info.config.Setter(value, prevVal)
	}

	info.value = value
	info.written = true
	s.informChange(name, info, prevVal)
}

func (s *State) validate(info *keyInfo, value any) bool {
	if info.state == KeyInitializingDefault || info.config.Validator == nil {
		return true
	}
	return info.config.Validator(value)
}

func (s *State) initKey(name string, info *keyInfo) {
	if info.state != KeyUninitialized {
		return
	}

	info.state = KeyInitializing
	if info.initialValue != nil {
		initial := info.initialValue
		info.initialValue = nil
		s.write(name, info, initial, info.value)
	} else {
		info.state = KeyInitializingDefault
		s.writeDefault(name, info)
	}
	info.state = KeyInitialized
}

func (s *State) writeDefault(name string, info *keyInfo) {
	value := info.config.Value
	if value == nil && info.config.ValueFn != nil {
		value = info.config.ValueFn()
	}

	s.write(name, info, value, info.value)
}

func (s *State) shouldInformChange(info *keyInfo, prevVal any) bool {
	if info.state != KeyInitialized {
		return false
	}
	return isComposite(prevVal) || isComposite(info.value) || prevVal != info.value
}

func (s *State) informChange(name string, info *keyInfo, prevVal any) {
	if !s.shouldInformChange(info, prevVal) {
		return
	}

	change := Change{
		Key:     name,
		NewVal:  info.value,
		PrevVal: prevVal,
	}
	s.Emit(ChangedEvent(name), change)
	s.Emit(EventStateKeyChanged, change)
	s.scheduleBatch(change)
}

// scheduleBatch records change in the pending batch. The first change of a
// batch schedules its flush on the writing goroutine's runtime; later changes
// to the same key keep the first PrevVal so the entry spans the whole tick.
func (s *State) scheduleBatch(change Change) {
	if s.scheduled == nil {
		s.scheduled = &Batch{Changes: make(map[string]Change)}
		runtime.Get().Schedule(s.emitBatch)
	}

	if existing, ok := s.scheduled.Changes[change.Key]; ok {
		existing.NewVal = change.NewVal
		s.scheduled.Changes[change.Key] = existing
		return
	}
	s.scheduled.Changes[change.Key] = change
}

func (s *State) emitBatch() {
	if s.IsDisposed() || s.scheduled == nil {
		return
	}

	batch := s.scheduled
	s.scheduled = nil
	s.Emit(EventStateChanged, *batch)
}

// PendingBatch returns a copy of the changes waiting to be flushed.
func (s *State) PendingBatch() (Batch, bool) {
	if s.scheduled == nil {
		return Batch{}, false
	}

	changes := make(map[string]Change, len(s.scheduled.Changes))
	for key, change := range s.scheduled.Changes {
		changes[key] = change
	}
	return Batch{Changes: changes}, true
}
