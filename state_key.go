package observe

import "reflect"

// KeyState is the lifecycle of a single state key. It only moves forward.
type KeyState int

const (
	KeyUninitialized KeyState = iota
	KeyInitializing
	KeyInitializingDefault
	KeyInitialized
)

func (s KeyState) String() string {
	switch s {
	case KeyUninitialized:
		return "uninitialized"
	case KeyInitializing:
		return "initializing"
	case KeyInitializingDefault:
		return "initializing_default"
	case KeyInitialized:
		return "initialized"
	default:
		return "unknown"
	}
}

// KeyConfig configures a state key.
type KeyConfig struct {
	// Setter normalizes a value before it is stored. It receives the new
	// value and the current one.
	Setter func(value, current any) any
	// Validator rejects values when it returns false. Default values skip it.
	Validator func(value any) bool
	// Value is the default value. Composite values are shared by every state
	// using this config; use ValueFn for a fresh value per state.
	Value any
	// ValueFn computes the default value when Value is nil.
	ValueFn func() any
	// WriteOnce ignores writes once the key has been written.
	WriteOnce bool
}

// Schema maps key names to their configs.
type Schema map[string]KeyConfig

type keyInfo struct {
	config       KeyConfig
	state        KeyState
	initialValue any
	value        any
	written      bool

	// where the accessor was defined, nil if none
	target AccessorTarget
}

// Change describes one key's transition.
type Change struct {
	Key     string
	NewVal  any
	PrevVal any
}

// Batch carries the changes coalesced over one tick, keyed by key name.
type Batch struct {
	Changes map[string]Change
}

// isComposite reports whether v may be mutated through a reference, in which
// case comparing it with a previous value says nothing about a change.
func isComposite(v any) bool {
	if v == nil {
		return false
	}

	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Interface:
		return true
	case reflect.Struct, reflect.Array:
		return !value.Comparable()
	default:
		return false
	}
}
