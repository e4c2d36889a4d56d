package model

// ProgressFunc receives progress notifications while a run advances.
// Percentages are informative only; callers must not depend on spacing.
type ProgressFunc func(percent int, message string)

// Statistics accumulates per-stage counters for one pipeline run.
type Statistics struct {
	OriginalRecords   int     `json:"original_records"`
	ColumnsDropped    int     `json:"columns_dropped"`
	NullRowsRemoved   int     `json:"null_rows_removed"`
	AnnulledRemoved   int     `json:"annulled_removed"`
	InvalidDates      int     `json:"invalid_dates"`
	DuplicatesRemoved int     `json:"duplicates_removed"`
	SplitContracts    int     `json:"split_contracts"`
	Certificates      int     `json:"certificates"`
	FinalRecords      int     `json:"final_records"`
	OutputFile        string  `json:"output_file,omitempty"`
	ElapsedSeconds    float64 `json:"elapsed_seconds"`
	Elapsed           string  `json:"elapsed,omitempty"`
}

// Result is the outcome of a full pipeline run. On failure Stats holds
// whatever was accumulated before the failing stage.
type Result struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Stats   Statistics `json:"stats"`
}

// RunSpec is the payload for starting a run through the API.
type RunSpec struct {
	Input     string `json:"input"`
	OutputDir string `json:"outputDir,omitempty"`
}
