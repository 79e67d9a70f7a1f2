package revue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewSignal(0)
		assert.Equal(t, 0, count.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
	})

	t.Run("versions increase with every write", func(t *testing.T) {
		name := NewSignal("a")
		v0 := name.Version()

		name.Write("b")
		name.Write("b")

		assert.Equal(t, v0+2, name.Version())
	})

	t.Run("equality drops identical writes", func(t *testing.T) {
		runs := 0

		count := NewSignal(1, WithEqual(func(a, b int) bool { return a == b }))
		NewEffect(func() {
			count.Read()
			runs++
		})

		v0 := count.Version()
		count.Write(1)
		require.NoError(t, Flush())

		assert.Equal(t, v0, count.Version())
		assert.Equal(t, 1, runs)
	})

	t.Run("update is atomic across goroutines", func(t *testing.T) {
		var wg sync.WaitGroup

		count := NewSignal(0)

		for range 10 {
			wg.Go(func() {
				for range 100 {
					count.Update(func(v int) int { return v + 1 })
				}
			})
		}

		wg.Wait()

		assert.Equal(t, 1000, count.Peek())
	})

	t.Run("nil values read as zero", func(t *testing.T) {
		err := NewSignal[error](nil)
		assert.Nil(t, err.Read())
	})

	t.Run("subscribers are the current dependents", func(t *testing.T) {
		count := NewSignal(0)
		assert.Empty(t, count.Subscribers())

		e := NewEffect(func() { count.Read() })
		assert.Equal(t, []NodeID{e.ID()}, count.Subscribers())

		e.Dispose()
		assert.Empty(t, count.Subscribers())
	})
}
