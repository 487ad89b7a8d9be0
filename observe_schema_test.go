package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	t.Run("parses yaml schemas", func(t *testing.T) {
		schema, err := ParseSchema([]byte(`
count:
  value: 0
  validator: value >= 0 && value <= 10
id:
  writeOnce: true
`))
		require.NoError(t, err)

		s := newTestState(t, schema, nil)
		changes := recordChanges(t, s, EventStateKeyChanged)

		assert.Equal(t, 0, s.Get("count"))
		s.Set("count", 11)
		s.Set("count", 5)
		s.Set("id", "first")
		s.Set("id", "second")

		assert.Equal(t, 5, s.Get("count"))
		assert.Equal(t, "first", s.Get("id"))
		assert.Len(t, *changes, 2)
	})

	t.Run("validators see the key name", func(t *testing.T) {
		schema, err := ParseSchema([]byte(`
title:
  value: untitled
  validator: 'key == "title" && len(value) > 0'
`))
		require.NoError(t, err)

		s := newTestState(t, schema, nil)
		s.Set("title", "")
		assert.Equal(t, "untitled", s.Get("title"))

		s.Set("title", "hello")
		assert.Equal(t, "hello", s.Get("title"))
	})

	t.Run("rejects malformed documents", func(t *testing.T) {
		_, err := ParseSchema([]byte("count: [1, 2"))
		assert.ErrorIs(t, err, ErrInvalidSchema)

		_, err = ParseSchema([]byte("count:\n  validator: 'value >'\n"))
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("registers classes from yaml", func(t *testing.T) {
		require.NoError(t, RegisterClassYAML([]byte(`
name: TestYAMLCounter
invalidKeys: [element]
state:
  count:
    value: 1
`)))
		require.NoError(t, RegisterClassYAML([]byte(`
name: TestYAMLDouble
extends: TestYAMLCounter
state:
  double:
    value: 2
`)))

		s, err := NewState(WithClass("TestYAMLDouble"))
		require.NoError(t, err)
		defer s.Dispose()

		assert.Equal(t, map[string]any{"count": 1, "double": 2}, s.GetState())
		assert.ErrorIs(t, s.AddKeyToState("element", KeyConfig{}, nil), ErrInvalidKeyName)
	})

	t.Run("yaml classes need a name", func(t *testing.T) {
		err := RegisterClassYAML([]byte("state: {}"))

		assert.ErrorIs(t, err, ErrInvalidSchema)
	})
}
