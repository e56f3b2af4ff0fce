package app

import "strings"

const maxTracedQueryLength = 512

// formatDBQueryForTrace flattens a query onto one line for span attributes,
// dropping "--" comments and cutting very long statements.
func formatDBQueryForTrace(query string) string {
	var b strings.Builder
	for _, line := range strings.Split(query, "\n") {
		if i := strings.Index(line, "--"); i >= 0 {
			line = line[:i]
		}
		for _, word := range strings.Fields(line) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(word)
		}
	}

	out := b.String()
	if len(out) <= maxTracedQueryLength {
		return out
	}
	return out[:maxTracedQueryLength] + "..."
}
