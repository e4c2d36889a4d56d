package etl

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"certificados-etl/internal/model"
)

// Pipeline runs the full contract-to-certificate process on one input file.
// Each call to Run gets its own table and statistics; a Pipeline holds no
// state between runs beyond configuration.
type Pipeline struct {
	outputDir string
	logger    *zap.Logger
	progress  model.ProgressFunc
}

// New creates a pipeline writing clean files into outputDir.
func New(outputDir string, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{outputDir: outputDir, logger: logger}
}

// SetProgress installs the progress callback. Notifications are
// fire-and-forget and carry nothing later stages depend on.
func (p *Pipeline) SetProgress(fn model.ProgressFunc) {
	p.progress = fn
}

func (p *Pipeline) report(percent int, message string) {
	if p.progress != nil {
		p.progress(percent, message)
	}
}

// Run executes the whole pipeline over the file at inputPath. It never
// returns an error: load and schema failures, and any panic inside a stage,
// come back as a failed Result carrying whatever statistics were gathered
// before the failing step.
func (p *Pipeline) Run(inputPath string) (res model.Result) {
	start := time.Now()
	stats := model.Statistics{}

	defer func() {
		if r := recover(); r != nil {
			err := &TransformError{Stage: "pipeline", Err: fmt.Errorf("%v", r)}
			p.logger.Error("pipeline panicked", zap.String("input", inputPath), zap.Error(err))
			p.report(0, "❌ "+err.Error())
			res = model.Result{Success: false, Message: err.Error(), Stats: stats}
		}
	}()

	fail := func(err error) model.Result {
		p.logger.Error("pipeline failed", zap.String("input", inputPath), zap.Error(err))
		p.report(0, "❌ "+err.Error())
		return model.Result{Success: false, Message: err.Error(), Stats: stats}
	}

	p.report(0, "🚀 Starting ETL processing...")
	p.logger.Info("starting run", zap.String("input", inputPath))

	// Load and validate
	p.report(2, "📂 Loading input file...")
	table, msg, err := Load(inputPath)
	if err != nil {
		return fail(err)
	}
	p.logger.Info("loaded", zap.String("detail", msg))
	stats.OriginalRecords = len(table.Rows)

	p.report(5, "🔍 Filtering required columns...")
	rows, dropped, msg, err := Narrow(table)
	if err != nil {
		return fail(err)
	}
	stats.ColumnsDropped = dropped
	p.logger.Info("columns narrowed", zap.String("detail", msg))

	p.report(9, "🔍 Validating data structure...")
	if _, err := Validate(table); err != nil {
		return fail(err)
	}

	// Cleaning
	p.report(13, "🧹 Removing null rows...")
	rows, msg = RemoveNullRows(rows)
	stats.NullRowsRemoved = stats.OriginalRecords - len(rows)
	p.logger.Info("nulls removed", zap.String("detail", msg))

	p.report(17, "🚫 Removing annulled records...")
	rows, msg = RemoveAnnulled(rows)
	stats.AnnulledRemoved = stats.OriginalRecords - len(rows) - stats.NullRowsRemoved
	p.logger.Info("annulled removed", zap.String("detail", msg))

	p.report(21, "🔧 Formatting columns...")
	parsed, msg := FormatColumns(rows)
	p.logger.Info("columns formatted", zap.String("detail", msg))

	p.report(25, "📅 Detecting invalid dates...")
	contracts, msg := RemoveInvalidDates(parsed)
	stats.InvalidDates = stats.OriginalRecords - len(contracts) -
		stats.NullRowsRemoved - stats.AnnulledRemoved
	p.logger.Info("invalid dates removed", zap.String("detail", msg))

	p.report(29, "♻️ Removing duplicate records...")
	contracts, msg = RemoveDuplicates(contracts)
	stats.DuplicatesRemoved = stats.OriginalRecords - len(contracts) -
		stats.NullRowsRemoved - stats.AnnulledRemoved - stats.InvalidDates
	p.logger.Info("duplicates removed", zap.String("detail", msg))
	cleanCount := len(contracts)

	// Contract processing
	p.report(33, "📅 Splitting contracts by month...")
	segments, split, msg := SplitByMonth(contracts)
	stats.SplitContracts = split
	p.logger.Info("contracts split", zap.String("detail", msg),
		zap.Int("segments", len(segments)), zap.Int("clean_records", cleanCount))

	p.report(45, "📆 Adding "+model.ColAnalyzedMonth+"...")
	tagged, msg := AddAnalyzedMonth(segments)
	p.logger.Info("month tagged", zap.String("detail", msg))

	// Consolidation and certificate fields
	p.report(55, "📋 Consolidating contiguous periods...")
	certs, msg := Consolidate(tagged)
	stats.Certificates = len(certs)
	p.logger.Info("periods consolidated", zap.String("detail", msg))

	p.report(70, "⏱️ Calculating worked days...")
	certs, msg = ComputeWorkedDays(certs)
	p.logger.Info("worked days", zap.String("detail", msg))

	p.report(80, "🗓️ Adding "+model.ColGenerationDate+"...")
	certs, msg = StampGenerationDate(certs)
	p.logger.Info("generation date", zap.String("detail", msg))

	p.report(87, "🔤 Converting dates to Spanish text...")
	certs, msg = LocalizeDates(certs)
	p.logger.Info("dates localized", zap.String("detail", msg))

	// Final save
	p.report(95, "💾 Saving processed file...")
	outPath, msg, err := Save(certs, p.outputDir)
	if err != nil {
		return fail(err)
	}
	p.logger.Info("saved", zap.String("detail", msg), zap.String("path", outPath))

	elapsed := time.Since(start)
	stats.OutputFile = outPath
	stats.FinalRecords = len(certs)
	stats.ElapsedSeconds = elapsed.Seconds()
	stats.Elapsed = FormatElapsed(elapsed)

	p.report(100, "✅ Processing completed successfully")
	p.logger.Info("run completed",
		zap.Int("final_records", stats.FinalRecords),
		zap.String("elapsed", stats.Elapsed))

	return model.Result{Success: true, Message: "processing completed successfully", Stats: stats}
}

// FormatElapsed renders a duration as "1h 2m 3s", omitting leading zero
// parts.
func FormatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}
