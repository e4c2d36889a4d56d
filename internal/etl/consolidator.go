package etl

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"certificados-etl/internal/model"
)

// IntervalSeparator joins the formatted intervals of one certificate.
const IntervalSeparator = " | "

const dmyLayout = "02/01/2006"

// intervalKey identifies one maximal run of contiguous segments.
type intervalKey struct {
	DNI      string
	FullName string
	Client   string
	Role     string
	Month    string
	Group    int
}

type interval struct {
	key   intervalKey
	start time.Time
	end   time.Time
}

// Consolidate re-merges calendar-contiguous month segments within each
// (DNI, client, role, analyzed month) partition and collapses every
// certificate group into one row listing its date ranges.
//
// A segment continues the previous run only when DNI, client, analyzed
// month and role all match and its start is exactly the previous end plus
// one day; any other transition is a break. Since a key change always
// breaks adjacency, the running break count yields maximal contiguous runs
// per partition.
func Consolidate(segs []model.MonthSegment) ([]model.CertificateRecord, string) {
	sorted := make([]model.MonthSegment, len(segs))
	copy(sorted, segs)

	// Stable, so rows equal on the whole key keep their source order.
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.DNI != b.DNI {
			return a.DNI < b.DNI
		}
		if a.Client != b.Client {
			return a.Client < b.Client
		}
		if a.AnalyzedMonth != b.AnalyzedMonth {
			return a.AnalyzedMonth < b.AnalyzedMonth
		}
		if a.Role != b.Role {
			return a.Role < b.Role
		}
		return a.Start.Before(b.Start)
	})

	// Break detection + group ids, then min/max per interval key.
	byKey := make(map[intervalKey]int, len(sorted))
	var intervals []interval
	group := 0
	for i, s := range sorted {
		isBreak := true
		if i > 0 {
			prev := sorted[i-1]
			isBreak = !(s.DNI == prev.DNI &&
				s.Client == prev.Client &&
				s.AnalyzedMonth == prev.AnalyzedMonth &&
				s.Role == prev.Role &&
				s.Start.Equal(prev.End.AddDate(0, 0, 1)))
		}
		if isBreak {
			group++
		}

		key := intervalKey{
			DNI:      s.DNI,
			FullName: s.FullName,
			Client:   s.Client,
			Role:     s.Role,
			Month:    s.AnalyzedMonth,
			Group:    group,
		}
		if idx, ok := byKey[key]; ok {
			if s.Start.Before(intervals[idx].start) {
				intervals[idx].start = s.Start
			}
			if s.End.After(intervals[idx].end) {
				intervals[idx].end = s.End
			}
		} else {
			byKey[key] = len(intervals)
			intervals = append(intervals, interval{key: key, start: s.Start, end: s.End})
		}
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		a, b := intervals[i].key, intervals[j].key
		if a.DNI != b.DNI {
			return a.DNI < b.DNI
		}
		if a.FullName != b.FullName {
			return a.FullName < b.FullName
		}
		if a.Client != b.Client {
			return a.Client < b.Client
		}
		if a.Role != b.Role {
			return a.Role < b.Role
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Group < b.Group
	})

	// Collapse group ids: one certificate row per (DNI, name, client, role,
	// month), joining its interval strings in order.
	var out []model.CertificateRecord
	for _, iv := range intervals {
		formatted := FormatInterval(iv.start, iv.end)

		n := len(out)
		if n > 0 && sameCertificate(out[n-1], iv.key) {
			out[n-1].CertificateDates += IntervalSeparator + formatted
			continue
		}
		out = append(out, model.CertificateRecord{
			DNI:              iv.key.DNI,
			FullName:         iv.key.FullName,
			Client:           iv.key.Client,
			Role:             iv.key.Role,
			AnalyzedMonth:    iv.key.Month,
			CertificateDates: formatted,
		})
	}

	return out, fmt.Sprintf("%d certificates consolidated", len(out))
}

func sameCertificate(c model.CertificateRecord, k intervalKey) bool {
	return c.DNI == k.DNI &&
		c.FullName == k.FullName &&
		c.Client == k.Client &&
		c.Role == k.Role &&
		c.AnalyzedMonth == k.Month
}

// FormatInterval renders a single date range the way certificates list them.
func FormatInterval(start, end time.Time) string {
	return strings.Join([]string{start.Format(dmyLayout), end.Format(dmyLayout)}, " al ")
}
