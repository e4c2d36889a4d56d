package etl

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"certificados-etl/internal/model"
)

// Save writes the certificate table as a fresh timestamped CSV inside
// outDir, creating the directory if needed. Every run gets its own file, so
// concurrent runs never collide.
func Save(rows []model.CertificateRecord, outDir string) (string, string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("clean_%s.csv", time.Now().Format("02.01.2006_15.04.05"))
	path := filepath.Join(outDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(model.OutputColumns); err != nil {
		return "", "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.DNI,
			r.FullName,
			r.Client,
			r.Role,
			r.AnalyzedMonth,
			r.CertificateDates,
			strconv.Itoa(r.WorkedDays),
			r.GenerationDate,
		}
		if err := writer.Write(record); err != nil {
			return "", "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", "", fmt.Errorf("failed to flush output: %w", err)
	}

	return path, fmt.Sprintf("file saved: %s", name), nil
}
