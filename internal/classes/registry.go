// Package classes is an explicit class-metadata table. Each class registers
// its own fragment of defaults plus an optional parent; resolving a class walks
// the parent links and merges the fragments child-over-parent, once per class.
package classes

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrUnknownClass = errors.New("classes: unknown class")
	ErrClassExists  = errors.New("classes: class already registered")
	ErrCycle        = errors.New("classes: inheritance cycle")
)

// Definition is one class's own contribution.
type Definition[V any] struct {
	Name    string
	Extends string

	// Entries are merged by key, the most specific class winning.
	Entries map[string]V
	// InvalidKeys are merged by union.
	InvalidKeys []string
}

// Resolved is the memoized merge of a class and all of its ancestors.
type Resolved[V any] struct {
	Entries     map[string]V
	InvalidKeys map[string]bool
	// Chain lists class names from the class itself up to the root.
	Chain []string
}

type class[V any] struct {
	def      Definition[V]
	resolved *Resolved[V]
}

type Registry[V any] struct {
	mu      sync.Mutex
	classes map[string]*class[V]
	merges  int
}

func NewRegistry[V any]() *Registry[V] {
	return &Registry[V]{
		classes: make(map[string]*class[V]),
	}
}

// Register adds a class. The parent, if any, may be registered later but must
// exist by the time the class is resolved.
func (r *Registry[V]) Register(def Definition[V]) error {
	if def.Name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownClass)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.classes[def.Name]; ok {
		return fmt.Errorf("%w: %s", ErrClassExists, def.Name)
	}

	r.classes[def.Name] = &class[V]{def: cloneDefinition(def)}
	return nil
}

// Has reports whether name is registered.
func (r *Registry[V]) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.classes[name]
	return ok
}

// Resolve returns the merged view of name. The result is computed on first
// call and shared afterwards; callers must not mutate it.
func (r *Registry[V]) Resolve(name string) (*Resolved[V], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	if c.resolved != nil {
		return c.resolved, nil
	}

	chain, err := r.chain(c)
	if err != nil {
		return nil, err
	}

	resolved := &Resolved[V]{
		Entries:     make(map[string]V),
		InvalidKeys: make(map[string]bool),
		Chain:       make([]string, 0, len(chain)),
	}

	// weakest (root) first so more specific classes override
	for i := len(chain) - 1; i >= 0; i-- {
		for key, value := range chain[i].def.Entries {
			resolved.Entries[key] = value
		}
		for _, key := range chain[i].def.InvalidKeys {
			if key != "" {
				resolved.InvalidKeys[key] = true
			}
		}
	}
	for _, link := range chain {
		resolved.Chain = append(resolved.Chain, link.def.Name)
	}

	c.resolved = resolved
	r.merges++
	return resolved, nil
}

// Merges counts how many resolutions actually ran a merge.
func (r *Registry[V]) Merges() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.merges
}

// chain returns c followed by its ancestors, most specific first.
func (r *Registry[V]) chain(c *class[V]) ([]*class[V], error) {
	seen := make(map[string]bool)
	chain := []*class[V]{}

	for link := c; link != nil; {
		if seen[link.def.Name] {
			return nil, fmt.Errorf("%w: %s", ErrCycle, link.def.Name)
		}
		seen[link.def.Name] = true
		chain = append(chain, link)

		if link.def.Extends == "" {
			break
		}
		parent, ok := r.classes[link.def.Extends]
		if !ok {
			return nil, fmt.Errorf("%w: %s (parent of %s)", ErrUnknownClass, link.def.Extends, link.def.Name)
		}
		link = parent
	}

	return chain, nil
}

func cloneDefinition[V any](def Definition[V]) Definition[V] {
	clone := def
	clone.Entries = make(map[string]V, len(def.Entries))
	for key, value := range def.Entries {
		clone.Entries[key] = value
	}
	clone.InvalidKeys = append([]string{}, def.InvalidKeys...)
	return clone
}
