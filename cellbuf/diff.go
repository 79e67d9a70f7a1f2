package cellbuf

// Diff returns the writes turning prev into next, in row-major order.
// Unchanged cells are skipped and changed cells are coalesced into runs that
// break on unchanged cells, on style changes and at row ends. A wide cell is
// compared and written together with its continuation, so no command starts
// or ends inside one.
//
// Buffers of different sizes cannot be compared; every cell of next is then
// written, which is what a terminal needs after a resize.
func Diff(prev, next *Buffer) []Command {
	full := prev == nil || prev.width != next.width || prev.height != next.height

	var cmds []Command

	for y := range next.height {
		row := next.Row(y)

		var before []Cell
		if !full {
			before = prev.Row(y)
		}

		var run *Command
		flush := func() {
			if run != nil {
				cmds = append(cmds, *run)
				run = nil
			}
		}

		for x := 0; x < len(row); {
			n := unitWidth(row, x)
			unit := row[x : x+n]

			if !full && unitEqual(before[x:x+n], unit) {
				flush()
				x += n
				continue
			}

			if run != nil && run.Style != unit[0].Style {
				flush()
			}
			if run == nil {
				run = &Command{X: uint16(x), Y: uint16(y), Style: unit[0].Style}
			}

			run.Cells = append(run.Cells, unit...)
			x += n
		}

		flush()
	}

	return cmds
}

// unitWidth is the number of cells of the unit starting at x: two for a
// complete wide cell, one otherwise.
func unitWidth(row []Cell, x int) int {
	if row[x].IsWide() && x+1 < len(row) && row[x+1].IsContinuation() {
		return 2
	}
	return 1
}

func unitEqual(a, b []Cell) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
