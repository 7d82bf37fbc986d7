package parser

import (
	"strconv"
	"strings"
)

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
