package cellbuf

import (
	"iter"
	"sync/atomic"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var condition atomic.Pointer[runewidth.Condition]

func init() {
	SetAmbiguousWide(false)
}

// SetAmbiguousWide selects whether East Asian ambiguous characters take two
// columns. It affects cells measured afterwards.
func SetAmbiguousWide(wide bool) {
	c := runewidth.NewCondition()
	c.EastAsianWidth = wide
	condition.Store(c)
}

// StringWidth is the number of columns s takes on the terminal.
func StringWidth(s string) int {
	return condition.Load().StringWidth(s)
}

// Graphemes yields the user-perceived characters of s with their widths.
// Zero-width clusters, such as stray control characters, are dropped.
func Graphemes(s string) iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		state := -1
		for len(s) > 0 {
			var cluster string
			cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)

			w := StringWidth(cluster)
			if w == 0 {
				continue
			}
			if w > 2 {
				w = 2
			}

			if !yield(cluster, w) {
				return
			}
		}
	}
}
