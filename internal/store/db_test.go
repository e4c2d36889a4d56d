package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certificados-etl/internal/model"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "test.db")))
}

func TestSaveAndGetJob(t *testing.T) {
	setupDB(t)

	spec := model.RunSpec{Input: "/data/contracts.csv", OutputDir: "/data/clean"}
	require.NoError(t, SaveJob("job-1", spec))

	job, err := GetJob("job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", job["id"])
	assert.Equal(t, "pending", job["status"])
	assert.Equal(t, spec, job["spec"])
	assert.NotContains(t, job, "stats")
}

func TestUpdateJobStatus(t *testing.T) {
	setupDB(t)
	require.NoError(t, SaveJob("job-1", model.RunSpec{Input: "a.csv"}))

	require.NoError(t, UpdateJobStatus("job-1", "completed"))

	job, err := GetJob("job-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", job["status"])
}

func TestListJobs(t *testing.T) {
	setupDB(t)
	require.NoError(t, SaveJob("job-1", model.RunSpec{Input: "a.csv"}))
	require.NoError(t, SaveJob("job-2", model.RunSpec{Input: "b.csv"}))

	jobs, err := ListJobs()

	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestProgressUpsert(t *testing.T) {
	setupDB(t)

	require.NoError(t, SaveProgress("job-1", 13, "🧹 Removing null rows..."))
	require.NoError(t, SaveProgress("job-1", 55, "📋 Consolidating contiguous periods..."))

	percent, message, err := GetProgress("job-1")
	require.NoError(t, err)
	assert.Equal(t, 55, percent)
	assert.Equal(t, "📋 Consolidating contiguous periods...", message)
}

func TestGetProgressUnknownJob(t *testing.T) {
	setupDB(t)

	percent, message, err := GetProgress("missing")

	require.NoError(t, err)
	assert.Equal(t, 0, percent)
	assert.Empty(t, message)
}

func TestSaveAndGetStats(t *testing.T) {
	setupDB(t)
	require.NoError(t, SaveJob("job-1", model.RunSpec{Input: "a.csv"}))

	stats := model.Statistics{
		OriginalRecords: 100,
		FinalRecords:    82,
		SplitContracts:  12,
		OutputFile:      "/data/clean/clean_01.08.2025_10.00.00.csv",
	}
	require.NoError(t, SaveStats("job-1", stats))

	got, err := GetStats("job-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stats, *got)

	job, err := GetJob("job-1")
	require.NoError(t, err)
	assert.Contains(t, job, "stats")
}

func TestGetStatsAbsent(t *testing.T) {
	setupDB(t)

	got, err := GetStats("missing")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestJobErrors(t *testing.T) {
	setupDB(t)
	require.NoError(t, SaveJob("job-1", model.RunSpec{Input: "a.csv"}))

	require.NoError(t, SaveJobError("job-1", errors.New("missing required columns: DNI")))
	require.NoError(t, SaveJobError("job-1", nil))

	errs, err := ListJobErrors("job-1")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "missing required columns: DNI", errs[0]["message"])
}
