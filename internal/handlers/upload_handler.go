package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-ingest-service/internal/events"
	"catalog-ingest-service/internal/middleware"
	"catalog-ingest-service/internal/models"
	"catalog-ingest-service/internal/uploader"
)

// UploadHandler exposes the upload orchestrator over HTTP: per-kind dataset
// submission, submission history, and history clearing.
type UploadHandler struct {
	orchestrator *uploader.Orchestrator
	publisher    *events.Publisher
	logger       *logrus.Entry
}

func NewUploadHandler(orchestrator *uploader.Orchestrator, publisher *events.Publisher, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		orchestrator: orchestrator,
		publisher:    publisher,
		logger:       logger.WithField("component", "upload_handler"),
	}
}

// SubmitDataset submits one raw dataset to the kind's ingestion endpoint
// POST /api/v1/catalog/:kind/submissions
//
// Submission is not gated on validation: a user may submit a single
// corrected kind in isolation. The recommended parent-before-child order is
// workflow guidance, not a server-side rule.
func (h *UploadHandler) SubmitDataset(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	kind, err := models.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_KIND",
				Message: err.Error(),
			},
		})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_REQUIRED",
				Message: "Please upload a CSV or Excel file",
			},
		})
		return
	}
	defer file.Close()

	sub, err := h.orchestrator.Submit(c.Request.Context(), tenantID, kind, header.Filename, file)
	if err != nil {
		if errors.Is(err, uploader.ErrSubmissionInFlight) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "SUBMISSION_IN_FLIGHT",
					Message: err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SUBMISSION_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	if h.publisher != nil {
		userID := c.GetString("user_id")
		if perr := h.publisher.PublishCatalogSubmitted(c.Request.Context(), tenantID, userID, sub); perr != nil {
			h.logger.WithError(perr).Warn("Failed to publish catalog.submitted event")
		}
	}

	// A failed upload is still a completed request: the submission record
	// carries the error state.
	c.JSON(http.StatusOK, models.SubmissionResponse{Success: sub.Status == models.SubmissionSuccess, Data: sub})
}

// GetSubmissions returns the submission history, newest first
// GET /api/v1/catalog/submissions
func (h *UploadHandler) GetSubmissions(c *gin.Context) {
	c.JSON(http.StatusOK, models.SubmissionListResponse{
		Success: true,
		Data:    h.orchestrator.History(),
	})
}

// ClearSubmissions discards completed submission records
// DELETE /api/v1/catalog/submissions
func (h *UploadHandler) ClearSubmissions(c *gin.Context) {
	h.orchestrator.ClearHistory()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission history cleared",
	})
}
