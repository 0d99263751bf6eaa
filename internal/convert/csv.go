package convert

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVConverter renders a CSV file as a single pipe table under a title heading.
// The first record is the header row.
type CSVConverter struct{}

func (c *CSVConverter) Convert(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	return "# " + title(filename) + "\n\n" + pipeTable(records[0], records[1:]), nil
}
