package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"certificados-etl/internal/certificates"
	"certificados-etl/internal/etl"
	"certificados-etl/internal/model"
	"certificados-etl/internal/store"
	"certificados-etl/pkg/utils"
)

var (
	outputs = utils.NewOutputManager("outputs")
	logger  = zap.NewNop()
)

// Configure injects the output manager and logger used by the handlers.
func Configure(om *utils.OutputManager, log *zap.Logger) {
	if om != nil {
		outputs = om
	}
	if log != nil {
		logger = log
	}
}

// CreateRun starts a new ETL run
// @Summary Start an ETL run
// @Description Start processing a raw contract file into a clean certificate file
// @Tags etl
// @Accept json
// @Produce json
// @Param run body model.RunSpec true "Run configuration"
// @Success 200 {object} map[string]interface{} "Run created"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /etl [post]
func CreateRun(w http.ResponseWriter, r *http.Request) {
	var spec model.RunSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if spec.Input == "" {
		http.Error(w, "An input file is required", http.StatusBadRequest)
		return
	}

	jobID := uuid.New().String()
	if err := store.SaveJob(jobID, spec); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	go runPipeline(jobID, spec)

	writeJSON(w, map[string]interface{}{
		"message":     "Run created successfully",
		"jobID":       jobID,
		"status":      "pending",
		"downloadURL": outputs.DownloadURL(jobID),
	})
}

// runPipeline executes one run in the background, persisting progress and
// the final result. The run either completes or fails; no retries.
func runPipeline(jobID string, spec model.RunSpec) {
	dir := spec.OutputDir
	if dir == "" {
		d, err := outputs.JobDir(jobID)
		if err != nil {
			store.UpdateJobStatus(jobID, "failed")
			store.SaveJobError(jobID, err)
			return
		}
		dir = d
	}

	p := etl.New(dir, logger.With(zap.String("job_id", jobID)))
	p.SetProgress(func(percent int, message string) {
		store.SaveProgress(jobID, percent, message)
	})

	store.UpdateJobStatus(jobID, "running")
	res := p.Run(spec.Input)

	store.SaveStats(jobID, res.Stats)
	if res.Success {
		store.UpdateJobStatus(jobID, "completed")
	} else {
		store.UpdateJobStatus(jobID, "failed")
		store.SaveJobError(jobID, errors.New(res.Message))
	}
}

// ListRuns lists all runs
// @Summary List runs
// @Description List all ETL runs with their current status
// @Tags etl
// @Produce json
// @Success 200 {array} map[string]interface{} "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /etl [get]
func ListRuns(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListJobs()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, jobs)
}

// GetRun returns one run
// @Summary Get run
// @Description Retrieve status and statistics of one ETL run
// @Tags etl
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run details"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /etl/{id} [get]
func GetRun(w http.ResponseWriter, r *http.Request) {
	jobID := pathSegment(r.URL.Path, 3)
	if jobID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	job, err := store.GetJob(jobID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	writeJSON(w, job)
}

// GetRunProgress returns the latest progress milestone
// @Summary Get run progress
// @Description Latest progress percentage and message for a run
// @Tags etl
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Progress"
// @Router /etl/{id}/progress [get]
func GetRunProgress(w http.ResponseWriter, r *http.Request) {
	jobID := pathSegment(r.URL.Path, 3)
	percent, message, err := store.GetProgress(jobID)
	if err != nil {
		http.Error(w, "Failed to fetch progress", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"jobID":   jobID,
		"percent": percent,
		"message": message,
	})
}

// GetRunErrors returns the recorded errors of a run
// @Summary Get run errors
// @Tags etl
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} map[string]interface{} "Errors"
// @Router /etl/{id}/errors [get]
func GetRunErrors(w http.ResponseWriter, r *http.Request) {
	jobID := pathSegment(r.URL.Path, 3)
	errs, err := store.ListJobErrors(jobID)
	if err != nil {
		http.Error(w, "Failed to fetch errors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, errs)
}

// DownloadRun serves the clean file of a completed run
// @Summary Download clean file
// @Tags etl
// @Produce text/csv
// @Param id path string true "Run ID"
// @Success 200 {file} file "Clean CSV"
// @Failure 404 {object} map[string]interface{} "No output for this run"
// @Router /etl/{id}/download [get]
func DownloadRun(w http.ResponseWriter, r *http.Request) {
	jobID := pathSegment(r.URL.Path, 3)
	stats, err := store.GetStats(jobID)
	if err != nil || stats == nil || stats.OutputFile == "" {
		http.Error(w, "No output for this run", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, stats.OutputFile)
}

// filterRequest is the payload for the certificate filter endpoint.
type filterRequest struct {
	File    string   `json:"file"`
	DNIs    []string `json:"dnis,omitempty"`
	Clients []string `json:"clients,omitempty"`
	Months  []string `json:"months,omitempty"`
}

// FilterCertificates filters a clean file for certificate generation
// @Summary Filter certificate records
// @Description Apply cascading DNI/client/month filters to a clean file and return the matching records with the remaining filter options
// @Tags certificates
// @Accept json
// @Produce json
// @Param filter body filterRequest true "Filter"
// @Success 200 {object} map[string]interface{} "Filtered records"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /certificates/filter [post]
func FilterCertificates(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.File == "" {
		http.Error(w, "A clean file is required", http.StatusBadRequest)
		return
	}

	rows, err := certificates.LoadClean(req.File)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := certificates.Filter{DNIs: req.DNIs, Clients: req.Clients, Months: req.Months}
	filtered := certificates.Apply(rows, filter)

	writeJSON(w, map[string]interface{}{
		"summary": certificates.Summarize(rows, filtered, filter),
		"options": map[string]interface{}{
			"dnis":    certificates.UniqueDNIs(rows),
			"clients": certificates.UniqueClients(rows, req.DNIs),
			"months":  certificates.UniqueMonths(rows, req.DNIs, req.Clients),
		},
		"records": filtered,
	})
}

// pathSegment returns the n-th segment of a path (0-based), or "".
func pathSegment(path string, n int) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if n >= len(segments) {
		return ""
	}
	return segments[n]
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
