package observe

// Accessor routes reads and writes of one key through its state.
type Accessor struct {
	Get func() any
	Set func(value any)
}

// AccessorTarget receives the accessors of declared keys.
type AccessorTarget interface {
	DefineAccessor(name string, accessor Accessor)
	DeleteAccessor(name string)
}

// AccessorTable is a plain AccessorTarget.
type AccessorTable map[string]Accessor

func (t AccessorTable) DefineAccessor(name string, accessor Accessor) {
	t[name] = accessor
}

func (t AccessorTable) DeleteAccessor(name string) {
	delete(t, name)
}

// Lookup returns the accessor for name.
func (t AccessorTable) Lookup(name string) (Accessor, bool) {
	accessor, ok := t[name]
	return accessor, ok
}
