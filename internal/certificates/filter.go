// Package certificates selects rows from a clean file for the certificate
// generator. Filtering is optional and cascades DNI → client → month, with
// multi-select at every level: OR inside a category, AND between categories.
package certificates

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"certificados-etl/internal/model"
)

// Filter holds the selections to apply. Empty slices mean "no filter" for
// that category.
type Filter struct {
	DNIs    []string `json:"dnis,omitempty"`
	Clients []string `json:"clients,omitempty"`
	Months  []string `json:"months,omitempty"`
}

// Summary describes what a filter kept.
type Summary struct {
	TotalOriginal int     `json:"total_original"`
	TotalFiltered int     `json:"total_filtered"`
	Percentage    float64 `json:"percentage"`
	DNICount      int     `json:"dni_count"`
	ClientCount   int     `json:"client_count"`
	MonthCount    int     `json:"month_count"`
}

// LoadClean reads a clean CSV produced by the pipeline, with the DNI kept as
// text. Fails if the file is empty or lacks the clean-file columns.
func LoadClean(path string) ([]model.CertificateRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open clean file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, c := range model.OutputColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("clean file %s is empty", path)
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]model.CertificateRecord, 0, len(rows))
	for _, row := range rows {
		days, _ := strconv.Atoi(strings.TrimSpace(cell(row, model.ColWorkedDays)))
		records = append(records, model.CertificateRecord{
			DNI:              cell(row, model.ColDNI),
			FullName:         cell(row, model.ColFullName),
			Client:           cell(row, model.ColClient),
			Role:             cell(row, model.ColRole),
			AnalyzedMonth:    cell(row, model.ColAnalyzedMonth),
			CertificateDates: cell(row, model.ColCertificateDates),
			WorkedDays:       days,
			GenerationDate:   cell(row, model.ColGenerationDate),
		})
	}
	return records, nil
}

// UniqueDNIs returns the sorted distinct DNIs in the table.
func UniqueDNIs(rows []model.CertificateRecord) []string {
	return uniqueSorted(rows, func(r model.CertificateRecord) string { return r.DNI })
}

// UniqueClients returns the sorted distinct clients, restricted to the
// selected DNIs when any are given.
func UniqueClients(rows []model.CertificateRecord, dnis []string) []string {
	rows = Apply(rows, Filter{DNIs: dnis})
	return uniqueSorted(rows, func(r model.CertificateRecord) string { return r.Client })
}

// UniqueMonths returns the sorted distinct analyzed months (chronological,
// given the YYYY-MM format), restricted to the selected DNIs and clients.
func UniqueMonths(rows []model.CertificateRecord, dnis, clients []string) []string {
	rows = Apply(rows, Filter{DNIs: dnis, Clients: clients})
	return uniqueSorted(rows, func(r model.CertificateRecord) string { return r.AnalyzedMonth })
}

func uniqueSorted(rows []model.CertificateRecord, get func(model.CertificateRecord) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, r := range rows {
		v := get(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Apply keeps the rows matching every non-empty category of the filter.
func Apply(rows []model.CertificateRecord, f Filter) []model.CertificateRecord {
	dnis := toSet(f.DNIs)
	clients := toSet(f.Clients)
	months := toSet(f.Months)

	kept := make([]model.CertificateRecord, 0, len(rows))
	for _, r := range rows {
		if dnis != nil && !dnis[r.DNI] {
			continue
		}
		if clients != nil && !clients[r.Client] {
			continue
		}
		if months != nil && !months[r.AnalyzedMonth] {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Summarize reports how much of the table the filter kept.
func Summarize(original, filtered []model.CertificateRecord, f Filter) Summary {
	pct := 0.0
	if len(original) > 0 {
		pct = float64(len(filtered)) / float64(len(original)) * 100
		pct = float64(int(pct*100+0.5)) / 100
	}
	return Summary{
		TotalOriginal: len(original),
		TotalFiltered: len(filtered),
		Percentage:    pct,
		DNICount:      len(f.DNIs),
		ClientCount:   len(f.Clients),
		MonthCount:    len(f.Months),
	}
}

// Export writes a filtered subset as CSV for the certificate generator.
func Export(rows []model.CertificateRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(model.OutputColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.DNI, r.FullName, r.Client, r.Role, r.AnalyzedMonth,
			r.CertificateDates, strconv.Itoa(r.WorkedDays), r.GenerationDate,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
