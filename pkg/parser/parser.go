package parser

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parser extracts file-added events from upload-log lines. A Parser holds no
// scan state of its own; each call to Parse or ParseLines starts from an
// empty ParseContext.
type Parser struct {
	patterns []addPattern
}

// NewParser creates a parser using the known add-line shapes.
func NewParser() *Parser {
	return &Parser{patterns: addPatterns}
}

// ParseLines parses an in-memory sequence of lines.
func (p *Parser) ParseLines(lines []string) ([]Event, Stats) {
	var (
		pc     ParseContext
		stats  Stats
		events []Event
	)
	for i, raw := range lines {
		line := LogLine{Content: strings.TrimSuffix(raw, "\r"), LineNum: i + 1}
		if ev, ok := p.parseLine(&pc, &line, &stats); ok {
			events = append(events, ev)
		}
	}
	return events, stats
}

// Parse reads every line from src and returns the events in log order.
func (p *Parser) Parse(ctx context.Context, src LineSource) ([]Event, Stats, error) {
	var (
		pc     ParseContext
		stats  Stats
		events []Event
	)
	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading log: %w", err)
		}
		if ev, ok := p.parseLine(&pc, line, &stats); ok {
			events = append(events, ev)
		}
	}
	return events, stats, nil
}

// parseLine updates pc from a header line or builds an event from an add line.
func (p *Parser) parseLine(pc *ParseContext, line *LogLine, stats *Stats) (Event, bool) {
	stats.LinesRead++
	text := line.Content

	switch {
	case strings.HasPrefix(text, headerPrefix):
		stats.Headers++
		if !applyHeader(pc, text) {
			stats.MalformedHeaders++
		}
		return Event{}, false

	case strings.HasPrefix(text, startPrefix):
		if pc.sawDelta {
			return Event{}, false
		}
		if m := startPattern.FindStringSubmatch(text); m != nil {
			pc.EditorID = m[1]
			stats.EditorMarkers++
		}
		return Event{}, false

	case strings.HasPrefix(text, deltaPrefix):
		if m := deltaPattern.FindStringSubmatch(text); m != nil {
			pc.EditorID = m[1]
			pc.sawDelta = true
			stats.EditorMarkers++
		}
		return Event{}, false

	case strings.HasPrefix(text, addPrefix):
		stats.AddLines++
		ev, ok := p.parseAdd(pc, text)
		if !ok {
			stats.UnmatchedAdds++
			return Event{}, false
		}
		ev.LineNum = line.LineNum
		stats.Events++
		return ev, true
	}

	return Event{}, false
}

// applyHeader sets series, instance and timestamp from an instance header.
// A header that does not match, or whose date does not parse, changes nothing.
func applyHeader(pc *ParseContext, text string) bool {
	m := headerPattern.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	ts, err := ParseHeaderTime(m[3])
	if err != nil {
		return false
	}
	pc.Series = m[1]
	pc.Instance = m[2]
	pc.Timestamp = ts
	return true
}

func (p *Parser) parseAdd(pc *ParseContext, text string) (Event, bool) {
	for _, pat := range p.patterns {
		f, ok := pat.match(text)
		if !ok {
			continue
		}

		pages := -1
		if f.hasPages {
			pages = atoiOrZero(f.pages)
		}

		ev := Event{
			Timestamp: pc.Timestamp,
			EditorID:  pc.EditorID,
			Series:    pc.Series,
			Instance:  pc.Instance,
			Item:      f.display,
		}
		if pages > 0 {
			ev.Pages = pages
		}
		if f.hasSize {
			ev.Bytes = InterpretSize(f.size, pages)
		}
		return ev, true
	}
	return Event{}, false
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
