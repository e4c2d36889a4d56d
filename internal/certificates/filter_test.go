package certificates

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certificados-etl/internal/model"
)

func cert(dni, client, month string) model.CertificateRecord {
	return model.CertificateRecord{
		DNI:           dni,
		FullName:      "NOMBRE " + dni,
		Client:        client,
		Role:          "OPERARIO",
		AnalyzedMonth: month,
		WorkedDays:    30,
	}
}

var sample = []model.CertificateRecord{
	cert("1", "ACME", "2025-07"),
	cert("1", "ACME", "2025-08"),
	cert("1", "GLOBEX", "2025-08"),
	cert("2", "ACME", "2025-08"),
	cert("3", "INITECH", "2025-09"),
}

func TestApplyNoFilterKeepsEverything(t *testing.T) {
	kept := Apply(sample, Filter{})
	assert.Len(t, kept, len(sample))
}

func TestApplySingleDNI(t *testing.T) {
	kept := Apply(sample, Filter{DNIs: []string{"1"}})
	require.Len(t, kept, 3)
	for _, r := range kept {
		assert.Equal(t, "1", r.DNI)
	}
}

func TestApplyOrWithinCategory(t *testing.T) {
	kept := Apply(sample, Filter{DNIs: []string{"2", "3"}})
	assert.Len(t, kept, 2)
}

func TestApplyAndBetweenCategories(t *testing.T) {
	kept := Apply(sample, Filter{DNIs: []string{"1"}, Clients: []string{"ACME"}, Months: []string{"2025-08"}})
	require.Len(t, kept, 1)
	assert.Equal(t, "2025-08", kept[0].AnalyzedMonth)
}

func TestApplyNoMatches(t *testing.T) {
	kept := Apply(sample, Filter{DNIs: []string{"99"}})
	assert.Empty(t, kept)
}

func TestUniqueDNIs(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, UniqueDNIs(sample))
}

func TestUniqueClientsCascadesFromDNIs(t *testing.T) {
	assert.Equal(t, []string{"ACME", "GLOBEX", "INITECH"}, UniqueClients(sample, nil))
	assert.Equal(t, []string{"ACME", "GLOBEX"}, UniqueClients(sample, []string{"1"}))
	assert.Equal(t, []string{"INITECH"}, UniqueClients(sample, []string{"3"}))
}

func TestUniqueMonthsCascadesFromBoth(t *testing.T) {
	assert.Equal(t, []string{"2025-07", "2025-08", "2025-09"}, UniqueMonths(sample, nil, nil))
	assert.Equal(t, []string{"2025-07", "2025-08"}, UniqueMonths(sample, []string{"1"}, []string{"ACME"}))
	assert.Equal(t, []string{"2025-08"}, UniqueMonths(sample, []string{"1"}, []string{"GLOBEX"}))
}

func TestSummarize(t *testing.T) {
	f := Filter{DNIs: []string{"1"}, Months: []string{"2025-08"}}
	filtered := Apply(sample, f)

	s := Summarize(sample, filtered, f)

	assert.Equal(t, 5, s.TotalOriginal)
	assert.Equal(t, 2, s.TotalFiltered)
	assert.Equal(t, 40.0, s.Percentage)
	assert.Equal(t, 1, s.DNICount)
	assert.Equal(t, 0, s.ClientCount)
	assert.Equal(t, 1, s.MonthCount)
}

func TestSummarizeEmptyOriginal(t *testing.T) {
	s := Summarize(nil, nil, Filter{})
	assert.Equal(t, 0.0, s.Percentage)
}

func TestLoadCleanRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean_export.csv")
	rows := []model.CertificateRecord{
		{
			DNI:              "00123456",
			FullName:         "PEREZ JUAN",
			Client:           "ACME",
			Role:             "OPERARIO",
			AnalyzedMonth:    "2025-08",
			CertificateDates: "1 de agosto de 2025 al 31 de agosto de 2025",
			WorkedDays:       31,
			GenerationDate:   "5 de septiembre de 2025",
		},
	}
	require.NoError(t, Export(rows, path))

	loaded, err := LoadClean(path)

	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, rows[0], loaded[0])
}

func TestLoadCleanMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("DNI,CLIENTE\n1,ACME\n"), 0o644))

	_, err := LoadClean(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestLoadCleanEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	header := strings.Join(model.OutputColumns, ",") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(header), 0o644))

	_, err := LoadClean(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestExportWritesOutputColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, Export(Apply(sample, Filter{DNIs: []string{"2"}}), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.OutputColumns, records[0])
	assert.Equal(t, "2", records[1][0])
}
