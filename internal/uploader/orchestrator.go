// Package uploader sequences raw dataset submissions to the remote
// ingestion backend and tracks per-submission status. It is independent of
// the validation pipeline: a user may submit a single corrected kind without
// re-running full cross-kind validation.
package uploader

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catalog-ingest-service/internal/models"
)

// ErrSubmissionInFlight is returned when a kind already has an upload in
// progress. At most one submission per kind is in flight at a time;
// different kinds do not block one another.
var ErrSubmissionInFlight = errors.New("a submission for this kind is already uploading")

// IngestClient is the transport used to deliver a dataset to the backend.
type IngestClient interface {
	SubmitDataset(ctx context.Context, tenantID string, kind models.Kind, filename string, dataset io.Reader) (*models.IngestAck, error)
}

// NavigateFunc is invoked after a successful submission, once the
// confirmation delay has elapsed, with the kind's management view path.
type NavigateFunc func(kind models.Kind, path string)

// Orchestrator owns the per-submission status list. The list is created at
// construction, mutated only by submission lifecycle events, and cleared
// only through ClearHistory.
type Orchestrator struct {
	client          IngestClient
	logger          *logrus.Entry
	navigationDelay time.Duration
	onNavigate      NavigateFunc

	mu          sync.Mutex
	submissions []*models.Submission
	inflight    map[models.Kind]bool
}

// New creates an orchestrator with an empty submission history.
func New(client IngestClient, logger *logrus.Logger, navigationDelay time.Duration, onNavigate NavigateFunc) *Orchestrator {
	return &Orchestrator{
		client:          client,
		logger:          logger.WithField("component", "uploader"),
		navigationDelay: navigationDelay,
		onNavigate:      onNavigate,
		submissions:     make([]*models.Submission, 0),
		inflight:        make(map[models.Kind]bool),
	}
}

// Submit transfers one raw dataset to the kind's ingestion endpoint and
// records the outcome. The submission transitions pending -> uploading ->
// success|error; terminal records are never mutated afterwards and failed
// submissions are not retried.
func (o *Orchestrator) Submit(ctx context.Context, tenantID string, kind models.Kind, filename string, dataset io.Reader) (*models.Submission, error) {
	sub := &models.Submission{
		ID:        uuid.New(),
		Kind:      kind,
		FileName:  filename,
		Status:    models.SubmissionPending,
		StartedAt: time.Now().UTC(),
	}

	o.mu.Lock()
	if o.inflight[kind] {
		o.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	o.inflight[kind] = true
	sub.Status = models.SubmissionUploading
	o.submissions = append([]*models.Submission{sub}, o.submissions...)
	o.mu.Unlock()

	ack, err := o.client.SubmitDataset(ctx, tenantID, kind, filename, dataset)

	now := time.Now().UTC()
	o.mu.Lock()
	o.inflight[kind] = false
	sub.FinishedAt = &now
	if err != nil {
		sub.Status = models.SubmissionError
		sub.Message = err.Error()
		if sub.Message == "" {
			sub.Message = "network failure while uploading dataset"
		}
		o.mu.Unlock()
		o.logger.WithFields(logrus.Fields{
			"kind":     kind,
			"file":     filename,
			"tenantId": tenantID,
		}).WithError(err).Warn("Dataset submission failed")
		return sub, nil
	}

	sub.Status = models.SubmissionSuccess
	sub.Message = ack.Message
	sub.RecordsProcessed = ack.RecordsProcessed
	sub.RedirectTo = kind.ManagementPath()
	o.mu.Unlock()

	o.logger.WithFields(logrus.Fields{
		"kind":     kind,
		"file":     filename,
		"tenantId": tenantID,
		"records":  ack.RecordsProcessed,
	}).Info("Dataset submission succeeded")

	if o.onNavigate != nil {
		// Let the user read the confirmation before moving them on.
		time.AfterFunc(o.navigationDelay, func() {
			o.onNavigate(kind, kind.ManagementPath())
		})
	}

	return sub, nil
}

// History returns a snapshot of all submission records, newest first.
func (o *Orchestrator) History() []*models.Submission {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]*models.Submission, 0, len(o.submissions))
	for _, sub := range o.submissions {
		copied := *sub
		out = append(out, &copied)
	}
	return out
}

// ClearHistory discards completed submission records. In-flight submissions
// are kept and keep reporting their eventual outcome.
func (o *Orchestrator) ClearHistory() {
	o.mu.Lock()
	defer o.mu.Unlock()

	kept := o.submissions[:0]
	for _, sub := range o.submissions {
		if !sub.Status.Terminal() {
			kept = append(kept, sub)
		}
	}
	o.submissions = kept
}

// InFlight reports whether a kind currently has a submission uploading.
func (o *Orchestrator) InFlight(kind models.Kind) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inflight[kind]
}
