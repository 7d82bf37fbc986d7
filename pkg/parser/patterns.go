package parser

import "regexp"

// Line prefixes recognised by the parser.
const (
	headerPrefix = "Uploaded ConInstance: "
	startPrefix  = "ConEditor starting.   "
	deltaPrefix  = "^^deltas by "
	addPrefix    = ">>add: "
)

var (
	// Uploaded ConInstance: <series>:<instance> [<editor>@<domain> <date>]
	headerPattern = regexp.MustCompile(`^Uploaded ConInstance: (.+?):(.+?)\s+\[[a-zA-Z\-]+@[^\s\]]+\s+(.+?)\]\s*$`)

	// ConEditor starting.   [<editor>@<domain> <date>]
	startPattern = regexp.MustCompile(`^ConEditor starting\.\s+\[([^\s@\]]+)@[^\s\]]+\s`)

	// ^^deltas by <editor>@<domain>:
	deltaPattern = regexp.MustCompile(`^\^\^deltas by\s+([^\s@]+)@[^\s:]+:`)
)

// addPattern is one shape of ">>add:" line. Shapes are tried in order and
// the first one that matches wins.
type addPattern struct {
	name string
	re   *regexp.Regexp
}

const (
	addLead   = `^>>add: Source=.+?;\s*Sitename=.+?;\s*Display=(?P<display>.+?);\s*`
	urlField  = `URL=.+?;\s*`
	sizeField = `Size=(?P<size>\d*(?:\.\d*)?);\s*`
	pageField = `Pages=(?P<pages>\d*);`
)

var addPatterns = []addPattern{
	{name: "url-size-pages", re: regexp.MustCompile(addLead + urlField + sizeField + pageField)},
	{name: "size-pages", re: regexp.MustCompile(addLead + sizeField + pageField)},
	{name: "url-size", re: regexp.MustCompile(addLead + urlField + sizeField)},
	{name: "size", re: regexp.MustCompile(addLead + sizeField)},
	{name: "pages", re: regexp.MustCompile(addLead + `(?:` + urlField + `)?` + pageField)},
}

// addFields holds what an add line carried.
type addFields struct {
	display  string
	size     string
	hasSize  bool
	pages    string
	hasPages bool
}

// match applies the pattern to line, reporting whether it matched.
func (p addPattern) match(line string) (addFields, bool) {
	m := p.re.FindStringSubmatch(line)
	if m == nil {
		return addFields{}, false
	}

	var f addFields
	f.display = m[p.re.SubexpIndex("display")]
	if i := p.re.SubexpIndex("size"); i > 0 {
		f.size, f.hasSize = m[i], true
	}
	if i := p.re.SubexpIndex("pages"); i > 0 {
		f.pages, f.hasPages = m[i], true
	}
	return f, true
}
