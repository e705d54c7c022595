package ingestion

import (
	"bufio"
	"strings"
)

// SegmentMarkdown splits markdown into one chunk per heading-delimited
// section. The heading line stays with its section so the chunk text is
// self-describing. Content before the first heading becomes an implicit
// leading chunk. Whitespace-only sections are dropped; empty input yields
// an empty slice.
func SegmentMarkdown(raw string) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		section := strings.TrimSpace(current.String())
		if section != "" {
			chunks = append(chunks, section)
		}
		current.Reset()
	}

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if isHeading(line) {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	return chunks
}

// isHeading matches ATX headings: one to six '#' followed by a space or
// end of line. Avoids treating hashtags or #! lines as boundaries.
func isHeading(line string) bool {
	trimmed := strings.TrimLeft(line, "#")
	level := len(line) - len(trimmed)
	if level < 1 || level > 6 {
		return false
	}
	return trimmed == "" || strings.HasPrefix(trimmed, " ")
}
