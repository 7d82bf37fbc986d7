// Package tally groups reported files by convention series and instance and
// folds events into per-editor and grand-total accumulators.
package tally

import "sort"

// Tally maps series -> instance -> items added. Items keep the order they were
// added and may repeat; each add is one file.
type Tally struct {
	series map[string]map[string][]string
	count  int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{series: make(map[string]map[string][]string)}
}

// Add records item under series/instance. Nothing is recorded when any of the
// three names is empty; the return value reports whether the add happened.
func (t *Tally) Add(series, instance, item string) bool {
	if series == "" || instance == "" || item == "" {
		return false
	}

	instances, ok := t.series[series]
	if !ok {
		instances = make(map[string][]string)
		t.series[series] = instances
	}
	instances[instance] = append(instances[instance], item)
	t.count++
	return true
}

// ItemCount is the number of items ever added.
func (t *Tally) ItemCount() int {
	return t.count
}

// Empty reports whether nothing has been added.
func (t *Tally) Empty() bool {
	return t.count == 0
}

// SeriesNames returns the series names in lexicographic order.
func (t *Tally) SeriesNames() []string {
	names := make([]string, 0, len(t.series))
	for name := range t.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InstanceNames returns the instances recorded for series in lexicographic order.
func (t *Tally) InstanceNames(series string) []string {
	instances := t.series[series]
	names := make([]string, 0, len(instances))
	for name := range instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Items returns a copy of the items recorded for series/instance in add order.
func (t *Tally) Items(series, instance string) []string {
	items := t.series[series][instance]
	out := make([]string, len(items))
	copy(out, items)
	return out
}
