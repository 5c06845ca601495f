package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the lifecycle state of one dataset submission.
// pending -> uploading -> success | error. Terminal states never transition;
// a new file for the same kind starts a fresh Submission.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "PENDING"
	SubmissionUploading SubmissionStatus = "UPLOADING"
	SubmissionSuccess   SubmissionStatus = "SUCCESS"
	SubmissionError     SubmissionStatus = "ERROR"
)

// Terminal reports whether the status is one of the two end states.
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionSuccess || s == SubmissionError
}

// Submission is one user-initiated transfer of a raw dataset to the remote
// ingestion endpoint for a given kind.
type Submission struct {
	ID               uuid.UUID        `json:"id"`
	Kind             Kind             `json:"kind"`
	FileName         string           `json:"fileName"`
	Status           SubmissionStatus `json:"status"`
	Message          string           `json:"message,omitempty"`
	RecordsProcessed int              `json:"recordsProcessed"`
	RedirectTo       string           `json:"redirectTo,omitempty"`
	StartedAt        time.Time        `json:"startedAt"`
	FinishedAt       *time.Time       `json:"finishedAt,omitempty"`
}

// IngestAck is the structured acknowledgment returned by a kind's ingestion
// endpoint. The wire shape is owned by the ingestion backend.
type IngestAck struct {
	Success          bool   `json:"success"`
	Message          string `json:"message,omitempty"`
	RecordsProcessed int    `json:"recordsProcessed,omitempty"`
}

// SubmissionResponse is the HTTP envelope for a single submission.
type SubmissionResponse struct {
	Success bool        `json:"success"`
	Data    *Submission `json:"data"`
}

// SubmissionListResponse is the HTTP envelope for the submission history.
type SubmissionListResponse struct {
	Success bool          `json:"success"`
	Data    []*Submission `json:"data"`
}
