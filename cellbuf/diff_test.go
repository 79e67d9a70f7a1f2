package cellbuf

import (
	"math/rand/v2"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	glyphs = []string{"a", "b", " ", "é", "世", "界", "👍", "é", "│"}
	styles = []Style{
		DefaultStyle,
		DefaultStyle.Bold(true),
		DefaultStyle.Foreground(tcell.ColorRed),
		DefaultStyle.Background(tcell.ColorBlue).Underline(true),
	}
)

func randomBuffer(r *rand.Rand, width, height int) *Buffer {
	b := NewBuffer(width, height)

	for range r.IntN(width * height * 2) {
		x, y := r.IntN(width), r.IntN(height)
		b.SetString(x, y, glyphs[r.IntN(len(glyphs))], styles[r.IntN(len(styles))])
	}

	return b
}

func TestDiff(t *testing.T) {
	t.Run("identical buffers produce nothing", func(t *testing.T) {
		r := rand.New(rand.NewPCG(1, 2))

		for range 50 {
			a := randomBuffer(r, 12, 4)
			assert.Empty(t, Diff(a, a))
			assert.Empty(t, Diff(a, a.Clone()))
		}
	})

	t.Run("replay reproduces the next buffer", func(t *testing.T) {
		r := rand.New(rand.NewPCG(3, 4))

		for range 500 {
			w, h := 1+r.IntN(16), 1+r.IntN(6)
			a := randomBuffer(r, w, h)
			b := randomBuffer(r, w, h)

			got := a.Clone()
			got.Apply(Diff(a, b))

			require.True(t, got.Equal(b), "replay mismatch\nwant:\n%s\ngot:\n%s", b, got)
		}
	})

	t.Run("commands never split wide cells", func(t *testing.T) {
		r := rand.New(rand.NewPCG(5, 6))

		for range 200 {
			a := randomBuffer(r, 10, 3)
			b := randomBuffer(r, 10, 3)

			for _, cmd := range Diff(a, b) {
				require.NotEmpty(t, cmd.Cells)
				assert.False(t, cmd.Cells[0].IsContinuation(), "starts inside a wide cell")

				last := cmd.Cells[len(cmd.Cells)-1]
				assert.False(t, last.IsWide(), "ends inside a wide cell")

				for _, c := range cmd.Cells {
					assert.Equal(t, cmd.Style, c.Style)
				}
			}
		}
	})

	t.Run("coalesces a changed run", func(t *testing.T) {
		a := NewBuffer(8, 2)
		b := a.Clone()
		b.SetString(2, 1, "hey", DefaultStyle)

		want := []Command{{
			X: 2, Y: 1,
			Style: DefaultStyle,
			Cells: []Cell{
				{Content: "h", Style: DefaultStyle, Width: 1},
				{Content: "e", Style: DefaultStyle, Width: 1},
				{Content: "y", Style: DefaultStyle, Width: 1},
			},
		}}

		if diff := cmp.Diff(want, Diff(a, b)); diff != "" {
			t.Errorf("Diff mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("breaks runs on style and gaps", func(t *testing.T) {
		bold := DefaultStyle.Bold(true)

		a := NewBuffer(8, 1)
		b := a.Clone()
		b.SetString(0, 0, "ab", DefaultStyle)
		b.SetString(2, 0, "c", bold)
		b.SetString(5, 0, "d", bold)

		cmds := Diff(a, b)

		require.Len(t, cmds, 3)
		assert.Equal(t, "ab", cmds[0].Text())
		assert.Equal(t, "c", cmds[1].Text())
		assert.Equal(t, uint16(2), cmds[1].X)
		assert.Equal(t, "d", cmds[2].Text())
		assert.Equal(t, uint16(5), cmds[2].X)
	})

	t.Run("wide cells are written whole", func(t *testing.T) {
		a := NewBuffer(4, 1)
		a.SetString(0, 0, "世", DefaultStyle)
		b := NewBuffer(4, 1)
		b.SetString(0, 0, "界", DefaultStyle)

		cmds := Diff(a, b)

		require.Len(t, cmds, 1)
		assert.Equal(t, uint16(0), cmds[0].X)
		assert.Equal(t, 2, cmds[0].Columns())
		assert.Equal(t, "界", cmds[0].Text())
	})

	t.Run("resizes repaint everything", func(t *testing.T) {
		a := NewBuffer(2, 1)
		b := NewBuffer(3, 2)
		b.SetString(0, 1, "x", DefaultStyle)

		cmds := Diff(a, b)
		require.Len(t, cmds, 2)

		got := NewBuffer(3, 2)
		got.SetString(0, 0, "zzz", DefaultStyle.Bold(true))
		got.Apply(cmds)
		assert.True(t, got.Equal(b))
	})
}
