package parser

import (
	"regexp"
	"strings"

	"github.com/dgallion1/mdchunk/internal/doctree"
)

var (
	headingRe   = regexp.MustCompile(`^(#+)\s+(.*)$`)
	alignCellRe = regexp.MustCompile(`^\s*:?-+:?\s*$`)
)

// SplitLines splits text into lines, accepting both \n and \r\n endings.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ParseHeading reports whether line is an ATX heading and returns its level
// and title. Runs of more than MaxHeadingLevel '#' characters are not headings.
func ParseHeading(line string) (level int, title string, ok bool) {
	m := headingRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil || len(m[1]) > doctree.MaxHeadingLevel {
		return 0, "", false
	}
	return len(m[1]), m[2], true
}

// IsPipeRow reports whether the trimmed line starts and ends with '|'.
func IsPipeRow(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= 2 && t[0] == '|' && t[len(t)-1] == '|'
}

// IsAlignmentRow reports whether line is a table separator such as
// |---|:---:|---:|. At least one '|' is required so that a bare "---"
// under a pipe row stays a thematic break.
func IsAlignmentRow(line string) bool {
	t := strings.TrimSpace(line)
	if !strings.Contains(t, "|") {
		return false
	}
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")
	for _, cell := range strings.Split(t, "|") {
		if !alignCellRe.MatchString(cell) {
			return false
		}
	}
	return true
}

// SplitRow strips one outer pipe on each side, splits on '|' and trims the cells.
func SplitRow(line string) []string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")
	cells := strings.Split(t, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// fitCells pads cells with "" or truncates them to n columns.
func fitCells(cells []string, n int) []string {
	out := make([]string, n)
	copy(out, cells)
	return out
}

// startsTable reports whether lines[i] is a header row followed by a separator.
func startsTable(lines []string, i int) bool {
	return i+1 < len(lines) && IsPipeRow(lines[i]) && IsAlignmentRow(lines[i+1])
}
