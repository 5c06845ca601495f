package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"catalog-ingest-service/internal/models"
)

// IngestClient handles communication with the catalog ingestion backend.
// Each kind has its own ingestion endpoint; the backend owns persistence and
// the business-rule layer of validation.
type IngestClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewIngestClient creates a new ingestion backend client. No client-side
// timeout is configured beyond the transport default; a hung upload stays
// in flight until the server or transport gives up.
func NewIngestClient() *IngestClient {
	baseURL := os.Getenv("INGEST_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://catalog-backend:8080"
	}

	return &IngestClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// endpointPath maps a kind to its ingestion endpoint.
func endpointPath(kind models.Kind) string {
	switch kind {
	case models.KindCategory:
		return "/api/v1/ingest/categories"
	case models.KindSubcategory:
		return "/api/v1/ingest/subcategories"
	case models.KindSubSubcategory:
		return "/api/v1/ingest/subsubcategories"
	case models.KindProduct:
		return "/api/v1/ingest/products"
	}
	return "/api/v1/ingest"
}

// SubmitDataset uploads one raw dataset as a multipart form to the kind's
// ingestion endpoint and decodes the backend acknowledgment. A non-success
// ack or an undecodable body is returned as an error carrying the backend
// message when one is present.
func (c *IngestClient) SubmitDataset(ctx context.Context, tenantID string, kind models.Kind, filename string, dataset io.Reader) (*models.IngestAck, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}
	if _, err := io.Copy(part, dataset); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart request: %w", err)
	}

	url := c.baseURL + endpointPath(kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Tenant-ID", tenantID)

	log.Printf("[IngestClient] Submitting %s dataset '%s' for tenant %s", kind, filename, tenantID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var ack models.IngestAck
	if err := json.Unmarshal(respBody, &ack); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, fmt.Errorf("ingestion endpoint returned an unreadable acknowledgment: %w", err)
		}
		return nil, fmt.Errorf("ingestion failed: %d - %s", resp.StatusCode, string(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !ack.Success {
		if ack.Message != "" {
			return nil, fmt.Errorf("%s", ack.Message)
		}
		return nil, fmt.Errorf("ingestion failed: %d", resp.StatusCode)
	}

	log.Printf("[IngestClient] %s dataset accepted (%d records processed)", kind, ack.RecordsProcessed)
	return &ack, nil
}
