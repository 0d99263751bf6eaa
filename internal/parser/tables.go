package parser

import "github.com/dgallion1/mdchunk/internal/doctree"

// ParseTables returns every pipe table in text, in order of appearance.
// A table is a pipe row followed by an alignment row, then zero or more
// pipe rows; consumption stops at the first line that is not a pipe row.
func ParseTables(text string) []doctree.Table {
	lines := SplitLines(text)
	tables := []doctree.Table{}

	for i := 0; i < len(lines); {
		if !startsTable(lines, i) {
			i++
			continue
		}

		headers := SplitRow(lines[i])
		rows := []map[string]string{}
		for i += 2; i < len(lines) && IsPipeRow(lines[i]); i++ {
			cells := fitCells(SplitRow(lines[i]), len(headers))
			row := make(map[string]string, len(headers))
			for k, h := range headers {
				row[h] = cells[k]
			}
			rows = append(rows, row)
		}
		tables = append(tables, doctree.Table{Headers: headers, Rows: rows})
	}

	return tables
}
