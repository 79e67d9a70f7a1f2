package revue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlush(t *testing.T) {
	t.Run("observes only the latest write", func(t *testing.T) {
		log := []int{}

		a := NewSignal(1)
		NewEffect(func() { log = append(log, a.Read()) })

		a.Write(2)
		a.Write(3)
		require.NoError(t, Flush())

		assert.Equal(t, []int{1, 3}, log)
	})

	t.Run("runs effects in creation order", func(t *testing.T) {
		log := []string{}

		a := NewSignal(0)
		b := NewSignal(0)

		NewEffect(func() {
			b.Read()
			log = append(log, "first")
		})
		NewEffect(func() {
			a.Read()
			log = append(log, "second")
		})
		log = log[:0]

		a.Write(1)
		b.Write(1)
		require.NoError(t, Flush())

		assert.Equal(t, []string{"first", "second"}, log)
	})

	t.Run("reports divergence", func(t *testing.T) {
		quiet(t)
		Configure(Options{MaxFlushIterations: 5})
		t.Cleanup(func() { Configure(Options{MaxFlushIterations: 100}) })

		a := NewSignal(0)
		loop := NewEffect(func() {
			a.Write(a.Read() + 1)
		})

		err := Flush()
		require.Error(t, err)

		var divergence *DivergenceError
		require.ErrorAs(t, err, &divergence)
		assert.Equal(t, 5, divergence.Iterations)
		assert.Equal(t, []NodeID{loop.ID()}, divergence.Pending)
		assert.Equal(t, 6, a.Peek())

		// pending runs were dropped, the effect is still subscribed
		require.NoError(t, Flush())
		assert.Equal(t, 0, LastFlush().Runs)
		assert.Equal(t, []NodeID{loop.ID()}, a.Subscribers())

		loop.Dispose()
	})

	t.Run("flush from an effect is absorbed", func(t *testing.T) {
		runs := 0

		a := NewSignal(0)
		NewEffect(func() {
			a.Read()
			runs++
			require.NoError(t, Flush())
		})

		a.Write(1)
		require.NoError(t, Flush())

		assert.Equal(t, 2, runs)
	})

	t.Run("wakes on writes from other goroutines", func(t *testing.T) {
		log := []int{}

		count := NewSignal(0)
		NewEffect(func() { log = append(log, count.Read()) })

		go func() {
			for i := 1; i <= 5; i++ {
				count.Write(i)
			}
		}()

		for {
			select {
			case <-Pending():
			case <-time.After(5 * time.Second):
				t.Fatal("no wake up")
			}

			require.NoError(t, Flush())
			if count.Peek() == 5 && log[len(log)-1] == 5 {
				break
			}
		}

		assert.Equal(t, 0, log[0])
		assert.IsNonDecreasing(t, log)
	})

	t.Run("wakes when a computed turns dirty", func(t *testing.T) {
		count := NewSignal(0)
		double := NewComputed(func() int { return count.Read() * 2 })
		assert.Equal(t, 0, double.Read())

		go count.Write(4)

		select {
		case <-Pending():
		case <-time.After(5 * time.Second):
			t.Fatal("no wake up")
		}

		assert.True(t, double.Dirty())
		assert.Equal(t, 8, double.Read())
	})

	t.Run("concurrent writers", func(t *testing.T) {
		var wg sync.WaitGroup

		a := NewSignal(0)
		b := NewSignal(0)

		sum := 0
		NewEffect(func() { sum = a.Read() + b.Read() })

		wg.Go(func() {
			for i := 1; i <= 100; i++ {
				a.Write(i)
			}
		})
		wg.Go(func() {
			for i := 1; i <= 100; i++ {
				b.Write(i)
			}
		})

		wg.Wait()
		require.NoError(t, Flush())

		assert.Equal(t, 200, sum)
		assert.Equal(t, 1, LastFlush().Runs)
	})

	t.Run("runtimes are per goroutine", func(t *testing.T) {
		a := NewSignal(0)

		var inner []NodeID
		outer := Tracked(func() {
			done := make(chan struct{})
			go func() {
				defer close(done)
				defer Release()

				inner = Tracked(func() {})
				a.Read()
			}()
			<-done
		})

		assert.Empty(t, outer)
		assert.Empty(t, inner)
	})
}
