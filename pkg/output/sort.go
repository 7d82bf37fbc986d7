package output

import (
	"sort"
	"strconv"
	"strings"
)

// instanceKey orders "<word> <number>" names by word, then numerically.
// Names of any other shape use their whole text as the word.
type instanceKey struct {
	word     string
	num      int
	numbered bool
}

func keyOf(name string) instanceKey {
	fields := strings.Fields(name)
	if len(fields) == 2 {
		if n, err := strconv.Atoi(fields[1]); err == nil {
			return instanceKey{word: fields[0], num: n, numbered: true}
		}
	}
	return instanceKey{word: name}
}

// SortInstances orders instance names so that "Boskone 2" precedes
// "Boskone 11". It sorts in place and returns names.
func SortInstances(names []string) []string {
	sort.SliceStable(names, func(i, j int) bool {
		a, b := keyOf(names[i]), keyOf(names[j])
		if a.word != b.word {
			return a.word < b.word
		}
		if a.numbered != b.numbered {
			return !a.numbered
		}
		if a.numbered && a.num != b.num {
			return a.num < b.num
		}
		return names[i] < names[j]
	})
	return names
}

// SortFeaturedFirst orders series names lexicographically except that
// featured, when present, comes first. It sorts in place and returns names.
func SortFeaturedFirst(names []string, featured string) []string {
	sort.SliceStable(names, func(i, j int) bool {
		a, b := names[i], names[j]
		if featured != "" && (a == featured) != (b == featured) {
			return a == featured
		}
		return a < b
	})
	return names
}

// IsSandbox reports whether series starts with one of prefixes, ignoring case.
func IsSandbox(series string, prefixes []string) bool {
	lower := strings.ToLower(series)
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
