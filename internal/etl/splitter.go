package etl

import (
	"fmt"
	"time"

	"certificados-etl/internal/model"
)

// SplitByMonth splits every contract spanning more than one calendar month
// into one row per month touched. The first segment starts at the original
// start, the last ends at the original end, interior segments cover full
// months. Single-month contracts pass through unchanged. The returned count
// is how many original contracts produced more than one segment.
func SplitByMonth(rows []model.ContractRecord) ([]model.ContractRecord, int, string) {
	segments := make([]model.ContractRecord, 0, len(rows))
	split := 0

	for _, r := range rows {
		if r.Start.Month() != r.End.Month() || r.Start.Year() != r.End.Year() {
			split++
		}

		cur := r.Start
		for !cur.After(r.End) {
			end := endOfMonth(cur)
			if end.After(r.End) {
				end = r.End
			}

			seg := r
			seg.Start = cur
			seg.End = end
			segments = append(segments, seg)

			cur = end.AddDate(0, 0, 1)
		}
	}

	msg := fmt.Sprintf("%d contracts split (%d records)", split, len(segments))
	return segments, split, msg
}

// endOfMonth is the last day of d's month: first day of the next month
// minus one day.
func endOfMonth(d time.Time) time.Time {
	firstOfNext := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
