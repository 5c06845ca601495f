package events

import (
	"context"
	"os"
	"time"

	"github.com/Tesseract-Nexus/go-shared/events"
	"github.com/sirupsen/logrus"

	"catalog-ingest-service/internal/models"
)

// Catalog event types
const (
	CatalogValidated = "catalog.validated"
	CatalogSubmitted = "catalog.submitted"
)

// CatalogEvent represents a catalog ingestion event
type CatalogEvent struct {
	events.BaseEvent
	Kind             string `json:"kind,omitempty"`
	FileName         string `json:"fileName,omitempty"`
	AllValid         bool   `json:"allValid,omitempty"`
	ErrorCount       int    `json:"errorCount,omitempty"`
	RecordsProcessed int    `json:"recordsProcessed,omitempty"`
	Status           string `json:"status,omitempty"`
	ActorID          string `json:"actorId,omitempty"`
}

func (e *CatalogEvent) GetSubject() string {
	return e.EventType
}

func (e *CatalogEvent) GetStream() string {
	return "CATALOG_EVENTS"
}

// Publisher wraps the shared events publisher for catalog ingestion events
type Publisher struct {
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewPublisher creates a new catalog events publisher
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://nats.nats.svc.cluster.local:4222"
	}

	config := events.DefaultPublisherConfig(natsURL)
	config.Name = "catalog-ingest-service"

	publisher, err := events.NewPublisher(config, logger)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := publisher.EnsureStream(ctx, "CATALOG_EVENTS", []string{"catalog.>"}); err != nil {
		logger.WithError(err).Warn("Failed to ensure CATALOG_EVENTS stream")
	}

	return &Publisher{
		publisher: publisher,
		logger:    logger.WithField("component", "events.publisher"),
	}, nil
}

// PublishCatalogValidated publishes the outcome of a validation run
func (p *Publisher) PublishCatalogValidated(ctx context.Context, tenantID, actorID string, report *models.PipelineReport) error {
	errorCount := 0
	for _, r := range report.Reports {
		errorCount += len(r.Errors)
	}

	event := &CatalogEvent{
		BaseEvent: events.BaseEvent{
			EventType: CatalogValidated,
			TenantID:  tenantID,
			Timestamp: time.Now().UTC(),
		},
		AllValid:   report.AllValid,
		ErrorCount: errorCount,
		ActorID:    actorID,
	}

	return p.publisher.Publish(ctx, event)
}

// PublishCatalogSubmitted publishes the terminal outcome of one submission
func (p *Publisher) PublishCatalogSubmitted(ctx context.Context, tenantID, actorID string, sub *models.Submission) error {
	event := &CatalogEvent{
		BaseEvent: events.BaseEvent{
			EventType: CatalogSubmitted,
			TenantID:  tenantID,
			SourceID:  sub.ID.String(),
			Timestamp: time.Now().UTC(),
		},
		Kind:             string(sub.Kind),
		FileName:         sub.FileName,
		RecordsProcessed: sub.RecordsProcessed,
		Status:           string(sub.Status),
		ActorID:          actorID,
	}

	return p.publisher.Publish(ctx, event)
}

// IsConnected returns true if connected to NATS
func (p *Publisher) IsConnected() bool {
	return p.publisher.IsConnected()
}

// Close closes the publisher connection
func (p *Publisher) Close() {
	p.publisher.Close()
}
