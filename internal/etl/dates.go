package etl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"certificados-etl/internal/model"
)

// monthNames maps zero-padded month numbers to their Spanish names.
var monthNames = map[string]string{
	"01": "enero", "02": "febrero", "03": "marzo", "04": "abril",
	"05": "mayo", "06": "junio", "07": "julio", "08": "agosto",
	"09": "septiembre", "10": "octubre", "11": "noviembre", "12": "diciembre",
}

var datePattern = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

// AddAnalyzedMonth tags every segment with the year-month of its start date.
func AddAnalyzedMonth(rows []model.ContractRecord) ([]model.MonthSegment, string) {
	segs := make([]model.MonthSegment, 0, len(rows))
	for _, r := range rows {
		segs = append(segs, model.MonthSegment{
			ContractRecord: r,
			AnalyzedMonth:  r.Start.Format("2006-01"),
		})
	}
	return segs, model.ColAnalyzedMonth + " column added"
}

// CountWorkedDays sums the inclusive day count of every "start al end" pair
// in an interval list. Fragments without the "al" separator or with
// unparseable dates are skipped and contribute zero days; callers get a
// best-effort total rather than an error. Known data-quality gap: a
// malformed fragment silently disappears from the count.
func CountWorkedDays(intervals string) int {
	total := 0
	for _, part := range strings.Split(intervals, "|") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, "al") {
			continue
		}
		pieces := strings.SplitN(part, "al", 2)
		start := parseDMY(strings.TrimSpace(pieces[0]))
		end := parseDMY(strings.TrimSpace(pieces[1]))
		if start == nil || end == nil {
			continue
		}
		total += int(end.Sub(*start).Hours()/24) + 1
	}
	return total
}

func parseDMY(s string) *time.Time {
	t, err := time.Parse("2/1/2006", s)
	if err != nil {
		return nil
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}

// ComputeWorkedDays fills WorkedDays from each row's interval list.
func ComputeWorkedDays(rows []model.CertificateRecord) ([]model.CertificateRecord, string) {
	for i := range rows {
		rows[i].WorkedDays = CountWorkedDays(rows[i].CertificateDates)
	}
	return rows, model.ColWorkedDays + " calculated"
}

// StampGenerationDate sets every row's generation date to today, numeric
// "dd/mm/yyyy" for now; localization happens afterwards.
func StampGenerationDate(rows []model.CertificateRecord) ([]model.CertificateRecord, string) {
	today := time.Now().Format(dmyLayout)
	for i := range rows {
		rows[i].GenerationDate = today
	}
	return rows, model.ColGenerationDate + " added"
}

// LocalizeDate converts "dd/mm/yyyy" into "d de <mes> de yyyy", stripping
// the leading zero on the day only. Anything that does not split into three
// parts is returned untouched.
func LocalizeDate(s string) string {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return s
	}
	day, month, year := parts[0], parts[1], parts[2]

	name, ok := monthNames[month]
	if !ok {
		name = month
	}
	if n, err := strconv.Atoi(day); err == nil {
		day = strconv.Itoa(n)
	}
	return fmt.Sprintf("%s de %s de %s", day, name, year)
}

// LocalizeIntervals replaces every numeric date inside an interval list with
// its Spanish text form and swaps the interval separator for "; ".
// Substitution goes through the unique set of matched dates so identical
// substrings are only rewritten once.
func LocalizeIntervals(s string) string {
	found := datePattern.FindAllString(s, -1)
	unique := make(map[string]bool, len(found))
	for _, d := range found {
		unique[d] = true
	}
	for d := range unique {
		s = strings.ReplaceAll(s, d, LocalizeDate(d))
	}
	return strings.ReplaceAll(s, IntervalSeparator, "; ")
}

// LocalizeDates rewrites interval lists and generation dates as Spanish
// text on every row.
func LocalizeDates(rows []model.CertificateRecord) ([]model.CertificateRecord, string) {
	for i := range rows {
		rows[i].CertificateDates = LocalizeIntervals(rows[i].CertificateDates)
		rows[i].GenerationDate = LocalizeDate(rows[i].GenerationDate)
	}
	return rows, "dates converted to Spanish text"
}
