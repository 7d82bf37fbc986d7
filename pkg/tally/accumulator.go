package tally

import "github.com/fanac/conlog/pkg/parser"

// Accumulator sums one editor's (or everyone's) reported activity.
type Accumulator struct {
	Tally *Tally
	Pages int
	Bytes int64
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{Tally: NewTally()}
}

// Add folds one event into the accumulator. Pages and bytes always count,
// even when the event lacks a series, instance or item name.
func (a *Accumulator) Add(ev *parser.Event) {
	a.Pages += ev.Pages
	a.Bytes += ev.Bytes
	a.Tally.Add(ev.Series, ev.Instance, ev.Item)
}

// ItemCount is the number of tallied items.
func (a *Accumulator) ItemCount() int {
	return a.Tally.ItemCount()
}
