package tally

import "github.com/fanac/conlog/pkg/parser"

// Result is the aggregated state of one run.
type Result struct {
	// Editors lists display names in the order each editor first appeared.
	Editors []string

	// ByEditor holds one accumulator per display name.
	ByEditor map[string]*Accumulator

	// Total merges every editor.
	Total *Accumulator

	// Events is the number of events folded.
	Events int
}

// Editor returns the accumulator for a display name, or nil.
func (r *Result) Editor(name string) *Accumulator {
	return r.ByEditor[name]
}

// Aggregator folds events into per-editor and total accumulators.
type Aggregator struct {
	names EditorNames
}

// NewAggregator creates an aggregator that labels editors using names.
// A nil table leaves every id unchanged.
func NewAggregator(names EditorNames) *Aggregator {
	return &Aggregator{names: names}
}

// Aggregate folds events in order. Every event counts once toward its
// editor and once toward the total.
func (a *Aggregator) Aggregate(events []parser.Event) *Result {
	r := &Result{
		ByEditor: make(map[string]*Accumulator),
		Total:    NewAccumulator(),
	}

	for i := range events {
		ev := &events[i]
		name := a.names.Name(ev.EditorID)

		acc, ok := r.ByEditor[name]
		if !ok {
			acc = NewAccumulator()
			r.ByEditor[name] = acc
			r.Editors = append(r.Editors, name)
		}
		acc.Add(ev)
		r.Total.Add(ev)
		r.Events++
	}
	return r
}
