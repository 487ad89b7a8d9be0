package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Run("reads and writes typed values", func(t *testing.T) {
		s := newTestState(t, Schema{"count": {Value: 1}, "name": {}}, nil)
		count := KeyOf[int](s, "count")
		name := KeyOf[string](s, "name")

		assert.Equal(t, 1, count.Get())
		assert.Equal(t, "", name.Get())

		count.Set(5)
		name.Set("five")

		assert.Equal(t, 5, s.Get("count"))
		assert.Equal(t, "five", name.Get())
		assert.Equal(t, "count", count.Name())
	})

	t.Run("subscribes to typed changes", func(t *testing.T) {
		log := [][2]int{}
		s := newTestState(t, Schema{"count": {Value: 1}}, nil)
		count := KeyOf[int](s, "count")

		handle, err := count.OnChange(func(newVal, prevVal int) {
			log = append(log, [2]int{newVal, prevVal})
		})
		require.NoError(t, err)

		count.Set(2)
		count.Set(3)
		handle.Dispose()
		count.Set(4)

		assert.Equal(t, [][2]int{{2, 1}, {3, 2}}, log)
	})

	t.Run("rejects nil callbacks", func(t *testing.T) {
		s := newTestState(t, Schema{"count": {}}, nil)

		_, err := KeyOf[int](s, "count").OnChange(nil)

		assert.ErrorIs(t, err, ErrInvalidListener)
	})
}
