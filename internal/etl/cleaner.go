package etl

import (
	"fmt"
	"strings"
	"time"

	"certificados-etl/internal/model"
)

// AnnulledMarkers are the name values that mark an administratively voided
// contract entry. Matching is exact after trim + uppercase.
var AnnulledMarkers = []string{
	"ANULACION ADENDA DE RESOLUCION",
	"ANULACION RESOLUCION",
	"ANULADO",
	"ANULADO RESOLUCION",
}

// dateLayouts are tried in order when parsing contract dates. Day-first,
// as the source spreadsheets are filled in that locale.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2006-1-2",
	"2006-1-2 15:04:05",
}

// RemoveNullRows drops rows whose DNI or full name is missing or blank
// after trimming.
func RemoveNullRows(rows []model.RawRecord) ([]model.RawRecord, string) {
	kept := make([]model.RawRecord, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.DNI) == "" || strings.TrimSpace(r.FullName) == "" {
			continue
		}
		kept = append(kept, r)
	}
	return kept, fmt.Sprintf("%d null rows removed", len(rows)-len(kept))
}

// RemoveAnnulled normalizes names to trimmed uppercase and drops rows whose
// name exactly matches one of the annulment markers. The normalized name is
// kept on the surviving rows.
func RemoveAnnulled(rows []model.RawRecord) ([]model.RawRecord, string) {
	markers := make(map[string]bool, len(AnnulledMarkers))
	for _, m := range AnnulledMarkers {
		markers[m] = true
	}

	kept := make([]model.RawRecord, 0, len(rows))
	for _, r := range rows {
		r.FullName = strings.ToUpper(strings.TrimSpace(r.FullName))
		if markers[r.FullName] {
			continue
		}
		kept = append(kept, r)
	}
	return kept, fmt.Sprintf("%d annulled records removed", len(rows)-len(kept))
}

// FormatColumns trims every text column and parses the contract dates.
// Unparseable or empty dates become nil rather than failing the stage.
func FormatColumns(rows []model.RawRecord) ([]model.ParsedRecord, string) {
	parsed := make([]model.ParsedRecord, 0, len(rows))
	for _, r := range rows {
		parsed = append(parsed, model.ParsedRecord{
			DNI:      strings.TrimSpace(r.DNI),
			FullName: strings.TrimSpace(r.FullName),
			Start:    parseDate(r.Start),
			End:      parseDate(r.End),
			Client:   strings.TrimSpace(r.Client),
			Role:     strings.TrimSpace(r.Role),
		})
	}
	return parsed, "columns formatted"
}

// parseDate parses a contract date permissively. Empty, dash and NaN-like
// tokens are null; anything unparseable is null too.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "-", "—", "nan", "nat":
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}
	return nil
}

// RemoveInvalidDates drops rows with a null start or end date, or where the
// end precedes the start.
func RemoveInvalidDates(rows []model.ParsedRecord) ([]model.ContractRecord, string) {
	kept := make([]model.ContractRecord, 0, len(rows))
	for _, r := range rows {
		if r.Start == nil || r.End == nil || r.End.Before(*r.Start) {
			continue
		}
		kept = append(kept, model.ContractRecord{
			DNI:      r.DNI,
			FullName: r.FullName,
			Start:    *r.Start,
			End:      *r.End,
			Client:   r.Client,
			Role:     r.Role,
		})
	}
	return kept, fmt.Sprintf("%d records with invalid dates removed", len(rows)-len(kept))
}

// RemoveDuplicates drops exact full-row duplicates, keeping the first
// occurrence.
func RemoveDuplicates(rows []model.ContractRecord) ([]model.ContractRecord, string) {
	seen := make(map[model.ContractRecord]bool, len(rows))
	kept := make([]model.ContractRecord, 0, len(rows))
	for _, r := range rows {
		if seen[r] {
			continue
		}
		seen[r] = true
		kept = append(kept, r)
	}
	return kept, fmt.Sprintf("%d duplicates removed", len(rows)-len(kept))
}
