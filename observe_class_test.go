package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClass(t *testing.T) {
	require.NoError(t, RegisterClass("TestWidget", ClassDef{
		State: Schema{
			"visible": {Value: true},
			"title":   {Value: "widget"},
		},
		InvalidKeys: []string{"element"},
	}))
	require.NoError(t, RegisterClass("TestButton", ClassDef{
		Extends: "TestWidget",
		State: Schema{
			"title":   {Value: "button"},
			"pressed": {Value: false},
		},
	}))

	t.Run("merges schemas child over parent", func(t *testing.T) {
		schema, err := ClassSchema("TestButton")
		require.NoError(t, err)

		assert.Len(t, schema, 3)
		assert.Equal(t, "button", schema["title"].Value)
		assert.Equal(t, true, schema["visible"].Value)
		assert.Equal(t, false, schema["pressed"].Value)
	})

	t.Run("merges invalid keys by union", func(t *testing.T) {
		keys, err := ClassInvalidKeys("TestButton")
		require.NoError(t, err)

		assert.Equal(t, map[string]bool{"state": true, "stateKey": true, "element": true}, keys)
	})

	t.Run("builds states from the merged schema", func(t *testing.T) {
		s, err := NewState(WithClass("TestButton"), WithInitialValues(map[string]any{"pressed": true}))
		require.NoError(t, err)
		defer s.Dispose()

		assert.Equal(t, "TestButton", s.Class())
		assert.Equal(t, []string{"pressed", "title", "visible"}, s.GetStateKeys())
		assert.Equal(t, map[string]any{"pressed": true, "title": "button", "visible": true}, s.GetState())

		assert.ErrorIs(t, s.AddKeyToState("element", KeyConfig{}, nil), ErrInvalidKeyName)
	})

	t.Run("merges once per class", func(t *testing.T) {
		_, err := NewState(WithClass("TestButton"))
		require.NoError(t, err)
		before := registry.Merges()

		for i := 0; i < 3; i++ {
			s, err := NewState(WithClass("TestButton"))
			require.NoError(t, err)
			s.Dispose()
		}

		assert.Equal(t, before, registry.Merges())
	})

	t.Run("shares defaults but not values", func(t *testing.T) {
		first, err := NewState(WithClass("TestWidget"))
		require.NoError(t, err)
		second, err := NewState(WithClass("TestWidget"))
		require.NoError(t, err)

		first.Set("title", "changed")

		assert.Equal(t, "changed", first.Get("title"))
		assert.Equal(t, "widget", second.Get("title"))
	})

	t.Run("rejects reserved keys in class schemas", func(t *testing.T) {
		require.NoError(t, RegisterClass("TestBroken", ClassDef{
			Extends: "TestWidget",
			State:   Schema{"element": {}},
		}))

		_, err := NewState(WithClass("TestBroken"))

		assert.ErrorIs(t, err, ErrInvalidKeyName)
	})

	t.Run("unknown and duplicate classes", func(t *testing.T) {
		_, err := NewState(WithClass("TestMissing"))
		assert.ErrorIs(t, err, ErrUnknownClass)

		err = RegisterClass("TestWidget", ClassDef{})
		assert.ErrorIs(t, err, ErrClassExists)
	})
}
