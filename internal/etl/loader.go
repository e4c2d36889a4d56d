package etl

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"certificados-etl/internal/model"
)

// RawTable is the input file exactly as read: the full column set, every
// cell as text.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Load reads the raw CSV export. Every column stays text so DNIs keep their
// leading zeros. Returns a LoadError if the file is missing, unreadable or
// has no data rows.
func Load(path string) (*RawTable, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, "", &LoadError{Path: path, Err: fmt.Errorf("failed to read header: %w", err)}
	}

	columns := make([]string, len(header))
	for i, h := range header {
		// Clean header names: trim whitespace and remove stray quotes
		clean := strings.TrimSpace(h)
		clean = strings.ReplaceAll(clean, `"`, "")
		columns[i] = clean
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, "", &LoadError{Path: path, Err: fmt.Errorf("failed to read rows: %w", err)}
	}
	if len(rows) == 0 {
		return nil, "", &LoadError{Path: path, Err: ErrEmptyFile}
	}

	table := &RawTable{Columns: columns, Rows: rows}
	return table, fmt.Sprintf("file loaded (%d records)", len(rows)), nil
}

// Validate checks that every required column exists in the table.
func Validate(t *RawTable) (string, error) {
	present := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		present[c] = true
	}

	var missing []string
	for _, c := range model.RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return "", &SchemaError{Missing: missing}
	}
	return "data structure validated", nil
}

// Narrow keeps only the required columns, in their canonical order, and
// reports how many extraneous columns were dropped.
func Narrow(t *RawTable) ([]model.RawRecord, int, string, error) {
	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		index[c] = i
	}

	var missing []string
	for _, c := range model.RequiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, 0, "", &SchemaError{Missing: missing}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]model.RawRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, model.RawRecord{
			DNI:      cell(row, model.ColDNI),
			FullName: cell(row, model.ColFullName),
			Start:    cell(row, model.ColStart),
			End:      cell(row, model.ColEnd),
			Client:   cell(row, model.ColClient),
			Role:     cell(row, model.ColRole),
		})
	}

	dropped := len(t.Columns) - len(model.RequiredColumns)
	return records, dropped, fmt.Sprintf("%d unnecessary columns dropped", dropped), nil
}
