package models

// ErrorCode classifies a row-level validation failure.
type ErrorCode string

const (
	ErrDuplicateID          ErrorCode = "DUPLICATE_ID"
	ErrMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrInvalidReference     ErrorCode = "INVALID_REFERENCE"
	ErrInvalidFormat        ErrorCode = "INVALID_FORMAT"
)

// RowError represents a validation error for a specific row. Row numbers are
// spreadsheet-visible: 1-based with the header on row 1, so the first data
// row reports as row 2.
type RowError struct {
	Row     int       `json:"row"`
	Field   string    `json:"field,omitempty"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Report is the validation outcome for one kind's dataset.
type Report struct {
	Kind       Kind       `json:"kind"`
	Provided   bool       `json:"provided"`
	TotalRows  int        `json:"totalRows"`
	CleanRows  int        `json:"cleanRows"`
	ValidIDs   int        `json:"validIds"`
	Errors     []RowError `json:"errors"`
	DatasetErr string     `json:"datasetError,omitempty"`
}

// Valid reports whether the dataset passed without a single row or
// dataset-level error.
func (r *Report) Valid() bool {
	return r.DatasetErr == "" && len(r.Errors) == 0
}

// PipelineReport aggregates the per-kind reports of one validation run.
type PipelineReport struct {
	Reports    []*Report `json:"reports"`
	AllValid   bool      `json:"allValid"`
	ReadyKinds []Kind    `json:"readyKinds"`
}

// ReportFor returns the report for a kind, or nil if the stage never ran
// (strict mode aborts downstream stages).
func (p *PipelineReport) ReportFor(kind Kind) *Report {
	for _, r := range p.Reports {
		if r.Kind == kind {
			return r
		}
	}
	return nil
}

// ValidationResponse is the HTTP envelope for a pipeline run.
type ValidationResponse struct {
	Success bool            `json:"success"`
	Data    *PipelineReport `json:"data"`
}
