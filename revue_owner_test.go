package revue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwner(t *testing.T) {
	t.Run("runs function and disposes", func(t *testing.T) {
		log := []string{}

		o := NewOwner()

		o.Run(func() error {
			NewEffect(func() {
				log = append(log, "effect")

				OnCleanup(func() { log = append(log, "cleanup") })
			})

			return nil
		})

		log = append(log, "ran")
		o.Dispose()
		log = append(log, "disposed")

		assert.Equal(t, []string{
			"effect",
			"ran",
			"cleanup",
			"disposed",
		}, log)
	})

	t.Run("returns the function error", func(t *testing.T) {
		boom := errors.New("boom")

		err := NewOwner().Run(func() error { return boom })

		assert.ErrorIs(t, err, boom)
	})

	t.Run("nested owners", func(t *testing.T) {
		log := []string{}

		o := NewOwner()
		o.OnDispose(func() {
			log = append(log, "parent disposed")
		})

		o.Run(func() error {
			NewOwner().OnDispose(func() {
				log = append(log, "child disposed")
			})

			return nil
		})

		o.Dispose()

		assert.Equal(t, []string{
			"child disposed",
			"parent disposed",
		}, log)
	})

	t.Run("sibling effects disposal order", func(t *testing.T) {
		log := []string{}

		o := NewOwner()

		o.Run(func() error {
			OnCleanup(func() {
				log = append(log, "cleanup")
			})

			NewEffect(func() {
				log = append(log, "running first")

				NewEffect(func() {
					log = append(log, "running nested")
					OnCleanup(func() { log = append(log, "cleanup nested") })
				})

				OnCleanup(func() { log = append(log, "cleanup first") })
			})

			NewEffect(func() {
				log = append(log, "running second")
				OnCleanup(func() { log = append(log, "cleanup second") })
			})

			return nil
		})

		log = append(log, "ran")
		o.Dispose()
		log = append(log, "disposed")

		assert.Equal(t, []string{
			"running first",
			"running nested",
			"running second",
			"ran",
			"cleanup second",
			"cleanup nested",
			"cleanup first",
			"cleanup",
			"disposed",
		}, log)
	})

	t.Run("catches panics in run", func(t *testing.T) {
		var caught any

		o := NewOwner()
		o.OnError(func(err any) { caught = err })

		err := o.Run(func() error { panic("oops") })
		require.NoError(t, err)

		var panicErr *PanicError
		require.ErrorAs(t, caught.(error), &panicErr)
		assert.Equal(t, "oops", panicErr.Value)
	})

	t.Run("panics propagate without error handlers", func(t *testing.T) {
		assert.PanicsWithValue(t, "oops", func() {
			NewOwner().Run(func() error { panic("oops") })
		})
	})

	t.Run("catches effect failures with OnError", func(t *testing.T) {
		quiet(t)
		caught := []error{}

		o := NewOwner()
		o.OnError(func(err any) {
			caught = append(caught, err.(error))
		})

		var errSignal *Signal[error]
		var effect *Effect

		o.Run(func() error {
			// no handler here, the failure goes up to o
			return NewOwner().Run(func() error {
				errSignal = NewSignal[error](nil)

				effect = NewEffect(func() {
					if e := errSignal.Read(); e != nil {
						panic(e)
					}
				})

				return nil
			})
		})

		oops := errors.New("oops")
		errSignal.Write(oops)
		require.NoError(t, Flush())

		require.Len(t, caught, 1)

		var effectErr *EffectError
		require.ErrorAs(t, caught[0], &effectErr)
		assert.Equal(t, effect.ID(), effectErr.Node)
		assert.ErrorIs(t, caught[0], oops)
	})

	t.Run("disposal prevents effect re-runs", func(t *testing.T) {
		log := []int{}

		o := NewOwner()

		count := NewSignal(0)

		o.Run(func() error {
			NewEffect(func() {
				log = append(log, count.Read())
			})

			return nil
		})

		count.Write(1)
		require.NoError(t, Flush())
		o.Dispose()

		// this should not trigger the effect
		count.Write(2)
		require.NoError(t, Flush())

		assert.Equal(t, []int{0, 1}, log)
		assert.Empty(t, count.Subscribers())
	})

	t.Run("disposal during effect execution", func(t *testing.T) {
		log := []int{}

		o := NewOwner()

		count := NewSignal(0)

		NewEffect(func() {
			if count.Read() > 0 {
				o.Dispose()
			}
		})

		o.Run(func() error {
			NewEffect(func() {
				log = append(log, count.Read())
			})

			return nil
		})

		count.Write(1)
		require.NoError(t, Flush())

		assert.Equal(t, []int{0}, log)
	})

	t.Run("disposes computeds", func(t *testing.T) {
		count := NewSignal(1)

		o := NewOwner()
		var double *Computed[int]
		o.Run(func() error {
			double = NewComputed(func() int { return count.Read() * 2 })
			return nil
		})

		assert.Equal(t, 2, double.Read())
		o.Dispose()

		assert.Empty(t, count.Subscribers())
	})
}
