package observe

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Key is a typed accessor for one key of a State.
type Key[T any] struct {
	state *State
	name  string
}

// KeyOf returns a typed accessor for name on s. The key must hold values of
// type T; reading any other type panics.
func KeyOf[T any](s *State, name string) Key[T] {
	return Key[T]{state: s, name: name}
}

func (k Key[T]) Name() string {
	return k.name
}

// Get reads the key, initializing it if needed.
func (k Key[T]) Get() T {
	return as[T](k.state.Get(k.name))
}

// Set writes the key.
func (k Key[T]) Set(v T) {
	k.state.Set(k.name, v)
}

// OnChange subscribes fn to the key's change event.
func (k Key[T]) OnChange(fn func(newVal, prevVal T)) (*Handle, error) {
	if fn == nil {
		return nil, ErrInvalidListener
	}

	return k.state.On(ChangedEvent(k.name), NewListener(func(args ...any) {
		if len(args) == 0 {
			return
		}
		if change, ok := args[0].(Change); ok {
			fn(as[T](change.NewVal), as[T](change.PrevVal))
		}
	}))
}
