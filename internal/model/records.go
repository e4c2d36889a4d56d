package model

import "time"

// Column names as they appear in the spreadsheet export.
const (
	ColDNI      = "DNI"
	ColFullName = "APELLIDOS Y NOMBRES"
	ColStart    = "INICIO CONTRATO"
	ColEnd      = "FIN CONTRATO"
	ColClient   = "CLIENTE"
	ColRole     = "CARGO"

	ColAnalyzedMonth    = "MES_ANALIZADO"
	ColCertificateDates = "FECHAS_CERTIFICADO"
	ColWorkedDays       = "DÍAS_LABORADOS"
	ColGenerationDate   = "FECHA_GENERAR"
)

// RequiredColumns are the input columns the pipeline needs; everything else
// is dropped during loading.
var RequiredColumns = []string{
	ColDNI,
	ColFullName,
	ColStart,
	ColEnd,
	ColClient,
	ColRole,
}

// OutputColumns is the column order of the clean file.
var OutputColumns = []string{
	ColDNI,
	ColFullName,
	ColClient,
	ColRole,
	ColAnalyzedMonth,
	ColCertificateDates,
	ColWorkedDays,
	ColGenerationDate,
}

// RawRecord is one input row with every cell kept as text, so identifiers
// preserve their leading zeros.
type RawRecord struct {
	DNI      string `json:"dni"`
	FullName string `json:"full_name"`
	Start    string `json:"contract_start"`
	End      string `json:"contract_end"`
	Client   string `json:"client"`
	Role     string `json:"role"`
}

// ParsedRecord is a RawRecord after column formatting: text trimmed and
// contract dates parsed. A nil date means the cell was empty or unparseable.
type ParsedRecord struct {
	DNI      string
	FullName string
	Start    *time.Time
	End      *time.Time
	Client   string
	Role     string
}

// ContractRecord is a row whose dates passed validation (End >= Start).
type ContractRecord struct {
	DNI      string    `json:"dni"`
	FullName string    `json:"full_name"`
	Start    time.Time `json:"contract_start"`
	End      time.Time `json:"contract_end"`
	Client   string    `json:"client"`
	Role     string    `json:"role"`
}

// MonthSegment is a contract clipped to a single calendar month, tagged with
// the month it belongs to.
type MonthSegment struct {
	ContractRecord
	AnalyzedMonth string `json:"analyzed_month"` // "YYYY-MM", from Start
}

// CertificateRecord is one row of the clean file: one certificate per
// person, client, role and analyzed month.
type CertificateRecord struct {
	DNI              string `json:"dni"`
	FullName         string `json:"full_name"`
	Client           string `json:"client"`
	Role             string `json:"role"`
	AnalyzedMonth    string `json:"analyzed_month"`
	CertificateDates string `json:"certificate_dates"`
	WorkedDays       int    `json:"worked_days"`
	GenerationDate   string `json:"generation_date"`
}
