package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"certificados-etl/internal/model"
)

var db *sql.DB

// InitDB opens the job database and creates the schema if needed.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS job_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS job_progress (
			job_id TEXT PRIMARY KEY,
			percent INTEGER,
			message TEXT,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS job_stats (
			job_id TEXT PRIMARY KEY,
			stats TEXT,
			created_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveJob stores a new run.
func SaveJob(jobID string, spec model.RunSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO jobs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		jobID, specJSON, "pending", now, now)
	return err
}

// UpdateJobStatus updates a run's status.
func UpdateJobStatus(jobID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?`, status, now, jobID)
	return err
}

// SaveJobError records an error for a run.
func SaveJobError(jobID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO job_errors (job_id, error_message, created_at) VALUES (?, ?, ?)`,
		jobID, err.Error(), now)
	return e
}

// SaveProgress upserts the latest progress milestone for a run.
func SaveProgress(jobID string, percent int, message string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO job_progress (job_id, percent, message, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(job_id) DO UPDATE SET percent = excluded.percent, message = excluded.message, updated_at = excluded.updated_at`,
		jobID, percent, message, now)
	return err
}

// GetProgress returns the latest milestone for a run.
func GetProgress(jobID string) (int, string, error) {
	var percent int
	var message string
	err := db.QueryRow(`SELECT percent, message FROM job_progress WHERE job_id = ?`, jobID).
		Scan(&percent, &message)
	if err == sql.ErrNoRows {
		return 0, "", nil
	}
	return percent, message, err
}

// SaveStats stores the final statistics of a run.
func SaveStats(jobID string, stats model.Statistics) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO job_stats (job_id, stats, created_at) VALUES (?, ?, ?)
		ON CONFLICT(job_id) DO UPDATE SET stats = excluded.stats, created_at = excluded.created_at`,
		jobID, statsJSON, now)
	return err
}

// GetStats returns the stored statistics of a run, or nil when the run has
// not produced any yet.
func GetStats(jobID string) (*model.Statistics, error) {
	var statsJSON string
	err := db.QueryRow(`SELECT stats FROM job_stats WHERE job_id = ?`, jobID).Scan(&statsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats model.Statistics
	if err := json.Unmarshal([]byte(statsJSON), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListJobs returns all runs with basic info, newest first.
func ListJobs() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return jobs, rows.Err()
}

// GetJob fetches a run's spec, status and stored statistics.
func GetJob(jobID string) (map[string]interface{}, error) {
	var specJSON, status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM jobs WHERE id = ?`, jobID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.RunSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	job := map[string]interface{}{
		"id":        jobID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}
	if stats, err := GetStats(jobID); err == nil && stats != nil {
		job["stats"] = stats
	}
	return job, nil
}

// ListJobErrors returns the recorded errors for a run.
func ListJobErrors(jobID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM job_errors WHERE job_id = ? ORDER BY created_at`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []map[string]interface{}
	for rows.Next() {
		var message string
		var createdAt time.Time
		if err := rows.Scan(&message, &createdAt); err != nil {
			return nil, err
		}
		errs = append(errs, map[string]interface{}{
			"message":   message,
			"createdAt": createdAt,
		})
	}
	return errs, rows.Err()
}
