package observe

// Facade is appended to the listener arguments of a single emit when facade
// mode is on.
type Facade struct {
	Target *Emitter
	Type   string

	prevented bool
}

// PreventDefault stops the default listeners of the current emit from running.
func (f *Facade) PreventDefault() {
	f.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (f *Facade) DefaultPrevented() bool {
	return f.prevented
}

// FacadeOf returns the facade passed as the last listener argument, if any.
func FacadeOf(args []any) (*Facade, bool) {
	if len(args) == 0 {
		return nil, false
	}
	facade, ok := args[len(args)-1].(*Facade)
	return facade, ok
}
