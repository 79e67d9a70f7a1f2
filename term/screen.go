package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/AnatoleLucet/revue/cellbuf"
)

// ScreenSink draws commands on a tcell screen. The screen must be
// initialized by the caller.
type ScreenSink struct {
	screen tcell.Screen
}

func NewScreenSink(screen tcell.Screen) *ScreenSink {
	return &ScreenSink{screen: screen}
}

func (s *ScreenSink) Size() (int, int) {
	return s.screen.Size()
}

func (s *ScreenSink) Clear() error {
	s.screen.Clear()
	return nil
}

// Write sets the cells of every command, then shows the screen once.
// Continuation cells are skipped: tcell draws a wide rune over both columns.
func (s *ScreenSink) Write(cmds []cellbuf.Command) error {
	for _, cmd := range cmds {
		y := int(cmd.Y)

		for i, cell := range cmd.Cells {
			if cell.IsContinuation() {
				continue
			}

			runes := []rune(cell.Content)
			if len(runes) == 0 {
				runes = []rune{' '}
			}

			s.screen.SetContent(int(cmd.X)+i, y, runes[0], runes[1:], cell.Style.Tcell())
		}
	}

	s.screen.Show()
	return nil
}
