package yamldoc

import (
	"fmt"
	"strings"
)

// Position is a location in a YAML source file.
type Position struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	File   string `json:"file,omitempty"`
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LocateKey finds the first occurrence of a mapping key in the source. It is
// a line scan rather than a full path resolution, which is enough to point an
// editor at the offending entry in the small documents this tool reads.
func LocateKey(source []byte, key string) Position {
	for i, line := range strings.Split(string(source), "\n") {
		trimmed := strings.TrimLeft(line, " \t-")
		if strings.HasPrefix(trimmed, key+":") {
			return Position{Line: i + 1, Column: strings.Index(line, key) + 1}
		}
	}
	return Position{Line: 1, Column: 1}
}

// ExtractContext extracts contextual lines around a position for error
// reporting, marking the error line and column.
func ExtractContext(source []byte, position Position, contextLines int) string {
	lines := strings.Split(string(source), "\n")

	if position.Line <= 0 || position.Line > len(lines) {
		return ""
	}

	start := max(0, position.Line-contextLines-1)
	end := min(len(lines), position.Line+contextLines)

	var context strings.Builder
	for i := start; i < end; i++ {
		lineNum := i + 1
		prefix := "   "
		if lineNum == position.Line {
			prefix = ">> "
		}

		context.WriteString(fmt.Sprintf("%s%4d | %s\n", prefix, lineNum, lines[i]))

		if lineNum == position.Line && position.Column > 0 {
			pointer := strings.Repeat(" ", 8+min(position.Column-1, len(lines[i]))) + "^"
			context.WriteString(pointer + "\n")
		}
	}

	return context.String()
}
