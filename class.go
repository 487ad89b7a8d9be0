package observe

import (
	"github.com/AnatoleLucet/observe/internal/classes"
)

// BaseClass is the class every other class extends unless told otherwise.
const BaseClass = "State"

// DefaultInvalidKeys are rejected as key names by every class.
var DefaultInvalidKeys = []string{"state", "stateKey"}

// ClassDef is a class's own contribution to the merged schema.
type ClassDef struct {
	// Extends names the parent class. Empty means BaseClass.
	Extends string
	// State holds this class's key defaults. Keys override the parent's.
	State Schema
	// InvalidKeys are added to the parent's.
	InvalidKeys []string
}

// registry is shared by the whole process. Classes are meant to be registered
// during initialization; resolution is memoized per class on first use.
var registry = newClassRegistry()

func newClassRegistry() *classes.Registry[KeyConfig] {
	r := classes.NewRegistry[KeyConfig]()
	_ = r.Register(classes.Definition[KeyConfig]{
		Name:        BaseClass,
		InvalidKeys: DefaultInvalidKeys,
	})
	return r
}

// RegisterClass adds a named class to the process-wide registry.
func RegisterClass(name string, def ClassDef) error {
	extends := def.Extends
	if extends == "" && name != BaseClass {
		extends = BaseClass
	}

	return registry.Register(classes.Definition[KeyConfig]{
		Name:        name,
		Extends:     extends,
		Entries:     def.State,
		InvalidKeys: def.InvalidKeys,
	})
}

// ClassSchema returns the merged schema of name and its ancestors.
func ClassSchema(name string) (Schema, error) {
	resolved, err := resolveClass(name)
	if err != nil {
		return nil, err
	}

	schema := make(Schema, len(resolved.Entries))
	for key, config := range resolved.Entries {
		schema[key] = config
	}
	return schema, nil
}

// ClassInvalidKeys returns the merged invalid key set of name.
func ClassInvalidKeys(name string) (map[string]bool, error) {
	resolved, err := resolveClass(name)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]bool, len(resolved.InvalidKeys))
	for key := range resolved.InvalidKeys {
		keys[key] = true
	}
	return keys, nil
}

func resolveClass(name string) (*classes.Resolved[KeyConfig], error) {
	return registry.Resolve(name)
}
