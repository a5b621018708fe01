package utils

import "strings"

// ParseCSVLine splits one CSV line on commas that are outside double quotes.
// A quote toggles the quoted state and is dropped from the output. Escaped quotes ("")
// are not recognized, and malformed quoting yields a best-effort split rather than an error.
// Empty fields, including trailing ones, are preserved.
func ParseCSVLine(line string) []string {
	fields := make([]string, 0, 24)
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// SplitCSVLines breaks CSV text into lines, dropping blank ones and carriage returns.
func SplitCSVLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
