package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certificados-etl/internal/model"
)

func segment(dni string, start, end time.Time) model.MonthSegment {
	return model.MonthSegment{
		ContractRecord: model.ContractRecord{
			DNI:      dni,
			FullName: "PEREZ JUAN",
			Start:    start,
			End:      end,
			Client:   "ACME",
			Role:     "OPERARIO",
		},
		AnalyzedMonth: start.Format("2006-01"),
	}
}

func TestConsolidateSingleSegment(t *testing.T) {
	segs := []model.MonthSegment{segment("1", date(2025, 8, 5), date(2025, 8, 20))}

	out, msg := Consolidate(segs)

	require.Len(t, out, 1)
	assert.Equal(t, "05/08/2025 al 20/08/2025", out[0].CertificateDates)
	assert.Equal(t, "2025-08", out[0].AnalyzedMonth)
	assert.Equal(t, "1 certificates consolidated", msg)
}

func TestConsolidateMergesAdjacentSegments(t *testing.T) {
	// Two back-to-back contracts within the same month become one range.
	segs := []model.MonthSegment{
		segment("1", date(2025, 8, 1), date(2025, 8, 10)),
		segment("1", date(2025, 8, 11), date(2025, 8, 25)),
	}

	out, _ := Consolidate(segs)

	require.Len(t, out, 1)
	assert.Equal(t, "01/08/2025 al 25/08/2025", out[0].CertificateDates)
}

func TestConsolidateGapProducesTwoIntervals(t *testing.T) {
	segs := []model.MonthSegment{
		segment("1", date(2025, 8, 1), date(2025, 8, 10)),
		segment("1", date(2025, 8, 12), date(2025, 8, 25)),
	}

	out, _ := Consolidate(segs)

	require.Len(t, out, 1)
	assert.Equal(t, "01/08/2025 al 10/08/2025 | 12/08/2025 al 25/08/2025", out[0].CertificateDates)
}

func TestConsolidateNoMergeAcrossClients(t *testing.T) {
	a := segment("1", date(2025, 8, 1), date(2025, 8, 10))
	b := segment("1", date(2025, 8, 11), date(2025, 8, 25))
	b.Client = "GLOBEX"

	out, _ := Consolidate([]model.MonthSegment{a, b})

	require.Len(t, out, 2)
	assert.Equal(t, "01/08/2025 al 10/08/2025", out[0].CertificateDates)
	assert.Equal(t, "11/08/2025 al 25/08/2025", out[1].CertificateDates)
}

func TestConsolidateNoMergeAcrossRoles(t *testing.T) {
	a := segment("1", date(2025, 8, 1), date(2025, 8, 10))
	b := segment("1", date(2025, 8, 11), date(2025, 8, 25))
	b.Role = "SUPERVISOR"

	out, _ := Consolidate([]model.MonthSegment{a, b})

	require.Len(t, out, 2)
}

func TestConsolidateNoMergeAcrossMonths(t *testing.T) {
	// Adjacent in calendar terms, but different analyzed months.
	a := segment("1", date(2025, 7, 20), date(2025, 7, 31))
	b := segment("1", date(2025, 8, 1), date(2025, 8, 5))

	out, _ := Consolidate([]model.MonthSegment{a, b})

	require.Len(t, out, 2)
	assert.Equal(t, "2025-07", out[0].AnalyzedMonth)
	assert.Equal(t, "2025-08", out[1].AnalyzedMonth)
}

func TestConsolidateUnsortedInput(t *testing.T) {
	segs := []model.MonthSegment{
		segment("1", date(2025, 8, 11), date(2025, 8, 25)),
		segment("1", date(2025, 8, 1), date(2025, 8, 10)),
	}

	out, _ := Consolidate(segs)

	require.Len(t, out, 1)
	assert.Equal(t, "01/08/2025 al 25/08/2025", out[0].CertificateDates)
}

func TestConsolidateSplitThenConsolidateRoundTrip(t *testing.T) {
	// One clean full-coverage contract per month comes back as one
	// certificate per month spanning the whole month.
	in := []model.ContractRecord{{
		DNI:      "1",
		FullName: "PEREZ JUAN",
		Start:    date(2025, 7, 1),
		End:      date(2025, 9, 30),
		Client:   "ACME",
		Role:     "OPERARIO",
	}}

	segs, _, _ := SplitByMonth(in)
	tagged, _ := AddAnalyzedMonth(segs)
	out, _ := Consolidate(tagged)

	require.Len(t, out, 3)
	assert.Equal(t, "01/07/2025 al 31/07/2025", out[0].CertificateDates)
	assert.Equal(t, "01/08/2025 al 31/08/2025", out[1].CertificateDates)
	assert.Equal(t, "01/09/2025 al 30/09/2025", out[2].CertificateDates)
}

func TestConsolidateOrderedByPersonThenClient(t *testing.T) {
	segs := []model.MonthSegment{
		segment("2", date(2025, 8, 1), date(2025, 8, 31)),
		segment("1", date(2025, 8, 1), date(2025, 8, 31)),
	}

	out, _ := Consolidate(segs)

	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].DNI)
	assert.Equal(t, "2", out[1].DNI)
}

func TestFormatInterval(t *testing.T) {
	got := FormatInterval(date(2025, 8, 1), date(2025, 8, 31))
	assert.Equal(t, "01/08/2025 al 31/08/2025", got)
}
