package classes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	newRegistry := func(t *testing.T) *Registry[int] {
		r := NewRegistry[int]()
		require.NoError(t, r.Register(Definition[int]{
			Name:        "Base",
			Entries:     map[string]int{"a": 1, "b": 1},
			InvalidKeys: []string{"state", "stateKey"},
		}))
		require.NoError(t, r.Register(Definition[int]{
			Name:        "Child",
			Extends:     "Base",
			Entries:     map[string]int{"b": 2, "c": 2},
			InvalidKeys: []string{"element"},
		}))
		require.NoError(t, r.Register(Definition[int]{
			Name:    "GrandChild",
			Extends: "Child",
			Entries: map[string]int{"c": 3},
		}))
		return r
	}

	t.Run("merges child over parent", func(t *testing.T) {
		r := newRegistry(t)

		resolved, err := r.Resolve("GrandChild")

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, resolved.Entries)
		assert.Equal(t, []string{"GrandChild", "Child", "Base"}, resolved.Chain)
	})

	t.Run("unions invalid keys", func(t *testing.T) {
		r := newRegistry(t)

		resolved, err := r.Resolve("GrandChild")

		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"state": true, "stateKey": true, "element": true}, resolved.InvalidKeys)
	})

	t.Run("memoizes per class", func(t *testing.T) {
		r := newRegistry(t)

		first, err := r.Resolve("Child")
		require.NoError(t, err)
		second, err := r.Resolve("Child")
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, r.Merges())

		_, err = r.Resolve("Base")
		require.NoError(t, err)
		assert.Equal(t, 2, r.Merges())
	})

	t.Run("definitions are copied on registration", func(t *testing.T) {
		r := NewRegistry[int]()
		entries := map[string]int{"a": 1}
		require.NoError(t, r.Register(Definition[int]{Name: "Base", Entries: entries}))

		entries["a"] = 100

		resolved, err := r.Resolve("Base")
		require.NoError(t, err)
		assert.Equal(t, 1, resolved.Entries["a"])
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		r := newRegistry(t)

		err := r.Register(Definition[int]{Name: "Child"})

		assert.ErrorIs(t, err, ErrClassExists)
	})

	t.Run("unknown class and missing parent", func(t *testing.T) {
		r := NewRegistry[int]()
		require.NoError(t, r.Register(Definition[int]{Name: "Orphan", Extends: "Nobody"}))

		_, err := r.Resolve("Missing")
		assert.ErrorIs(t, err, ErrUnknownClass)

		_, err = r.Resolve("Orphan")
		assert.ErrorIs(t, err, ErrUnknownClass)
	})

	t.Run("detects cycles", func(t *testing.T) {
		r := NewRegistry[int]()
		require.NoError(t, r.Register(Definition[int]{Name: "A", Extends: "B"}))
		require.NoError(t, r.Register(Definition[int]{Name: "B", Extends: "A"}))

		_, err := r.Resolve("A")

		assert.ErrorIs(t, err, ErrCycle)
	})
}
