package term

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/revue/cellbuf"
)

func frames() (*cellbuf.Buffer, *cellbuf.Buffer) {
	prev := cellbuf.NewBuffer(6, 2)
	next := cellbuf.NewBuffer(6, 2)

	next.SetString(0, 0, "hi", cellbuf.DefaultStyle.Bold(true))
	next.SetString(1, 1, "世x", cellbuf.DefaultStyle.Foreground(tcell.ColorRed))

	return prev, next
}

func TestMemorySink(t *testing.T) {
	prev, next := frames()
	sink := NewMemorySink(6, 2)

	require.NoError(t, sink.Write(cellbuf.Diff(prev, next)))

	assert.True(t, sink.Screen().Equal(next))

	commands, cells := sink.Written()
	assert.Equal(t, 2, commands)
	assert.Equal(t, 5, cells)
}

func TestScreenSink(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(6, 2)

	sink := NewScreenSink(screen)
	w, h := sink.Size()
	assert.Equal(t, 6, w)
	assert.Equal(t, 2, h)

	prev, next := frames()
	require.NoError(t, sink.Write(cellbuf.Diff(prev, next)))

	r, _, style, _ := screen.GetContent(1, 0)
	assert.Equal(t, 'i', r)
	assert.Equal(t, next.Cell(1, 0).Style, cellbuf.FromTcell(style))

	r, _, style, width := screen.GetContent(1, 1)
	assert.Equal(t, '世', r)
	assert.Equal(t, 2, width)
	assert.Equal(t, tcell.ColorRed, cellbuf.FromTcell(style).Fg)

	r, _, _, _ = screen.GetContent(3, 1)
	assert.Equal(t, 'x', r)
}

func TestANSISink(t *testing.T) {
	t.Run("positions and styles each run", func(t *testing.T) {
		var out bytes.Buffer
		sink := NewANSISink(&out, 6, 2)

		prev, next := frames()
		require.NoError(t, sink.Write(cellbuf.Diff(prev, next)))

		want := ansi.CursorPosition(1, 1) +
			ansi.Style{}.Reset().Bold().String() + "hi" +
			ansi.CursorPosition(2, 2) +
			ansi.Style{}.Reset().ForegroundColor(ansi.BasicColor(9)).String() + "世x" +
			ansi.ResetStyle

		assert.Equal(t, want, out.String())
	})

	t.Run("skips redundant cursor moves and styles", func(t *testing.T) {
		var out bytes.Buffer
		sink := NewANSISink(&out, 4, 1)

		style := cellbuf.DefaultStyle.Background(tcell.NewRGBColor(1, 2, 3))
		cmds := []cellbuf.Command{
			{X: 0, Y: 0, Style: style, Cells: []cellbuf.Cell{cellbuf.NewCell("a", style)}},
			{X: 1, Y: 0, Style: style, Cells: []cellbuf.Cell{cellbuf.NewCell("b", style)}},
		}
		require.NoError(t, sink.Write(cmds))

		want := ansi.CursorPosition(1, 1) +
			ansi.Style{}.Reset().BackgroundColor(ansi.RGBColor{R: 1, G: 2, B: 3}).String() +
			"ab" + ansi.ResetStyle

		assert.Equal(t, want, out.String())
	})

	t.Run("clears the screen", func(t *testing.T) {
		var out bytes.Buffer
		sink := NewANSISink(&out, 4, 1)

		require.NoError(t, sink.Clear())

		assert.Equal(t, ansi.ResetStyle+ansi.EraseEntireScreen+ansi.CursorHomePosition, out.String())
	})

	t.Run("writes nothing for no commands", func(t *testing.T) {
		var out bytes.Buffer
		sink := NewANSISink(&out, 4, 1)

		require.NoError(t, sink.Write(nil))
		assert.Zero(t, out.Len())
	})
}
