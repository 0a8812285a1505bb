package tabular

import (
	"strings"
)

const DefaultSeparator = ','

// ParseDelimitedText splits raw text into rows of trimmed cells. Blank lines are
// dropped, a separator inside double quotes is kept as text and rows may differ in
// length.
func ParseDelimitedText(raw string, separator rune) [][]string {
	if separator == 0 {
		separator = DefaultSeparator
	}

	var rows [][]string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line, separator))
	}
	return rows
}

// splitLine scans one line keeping an inside-quotes flag. Quote characters toggle the
// flag and are not copied, except an escaped pair ("") inside quotes, which yields one
// literal quote.
func splitLine(line string, separator rune) []string {
	var (
		cells    []string
		current  strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == separator && !inQuotes:
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}

	return append(cells, strings.TrimSpace(current.String()))
}
