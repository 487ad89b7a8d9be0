package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule(t *testing.T) {
	t.Run("evaluates against the candidate value", func(t *testing.T) {
		rule, err := Compile("value >= 0 && value <= 10")
		require.NoError(t, err)

		assert.True(t, rule.Eval("count", 3))
		assert.False(t, rule.Eval("count", 11))
		assert.Equal(t, "value >= 0 && value <= 10", rule.Source())
	})

	t.Run("sees the key name", func(t *testing.T) {
		rule, err := Compile(`key == "title" && len(value) > 0`)
		require.NoError(t, err)

		assert.True(t, rule.Eval("title", "hello"))
		assert.False(t, rule.Eval("title", ""))
		assert.False(t, rule.Eval("other", "hello"))
	})

	t.Run("runtime errors reject", func(t *testing.T) {
		rule, err := Compile("value > 0")
		require.NoError(t, err)

		assert.False(t, rule.Eval("count", "not a number"))
	})

	t.Run("empty expressions are refused", func(t *testing.T) {
		_, err := Compile("   ")

		assert.ErrorContains(t, err, "must not be empty")
	})

	t.Run("syntax errors are refused", func(t *testing.T) {
		_, err := Compile("value >")

		assert.Error(t, err)
	})
}
