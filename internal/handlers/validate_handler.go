package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-ingest-service/internal/cache"
	"catalog-ingest-service/internal/events"
	"catalog-ingest-service/internal/middleware"
	"catalog-ingest-service/internal/models"
	"catalog-ingest-service/internal/rowsource"
	"catalog-ingest-service/internal/validation"
)

// ValidateHandler runs the cross-kind validation pipeline over uploaded
// datasets. Nothing here persists catalog records; the report tells the
// client which kinds are safe to submit.
type ValidateHandler struct {
	pipeline    *validation.Pipeline
	reportCache *cache.ReportCache
	publisher   *events.Publisher
	logger      *logrus.Entry
}

func NewValidateHandler(pipeline *validation.Pipeline, reportCache *cache.ReportCache, publisher *events.Publisher, logger *logrus.Logger) *ValidateHandler {
	return &ValidateHandler{
		pipeline:    pipeline,
		reportCache: reportCache,
		publisher:   publisher,
		logger:      logger.WithField("component", "validate_handler"),
	}
}

// ValidateCatalog validates up to four datasets in dependency order
// POST /api/v1/catalog/validate
//
// Multipart form fields named after the kinds: category, subcategory,
// subsubcategory, product. Any subset may be provided; kinds without a file
// contribute an empty identifier set, so child references against them
// report as invalid.
func (h *ValidateHandler) ValidateCatalog(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_FORM",
				Message: "Request must be a multipart form with one file per kind",
			},
		})
		return
	}

	datasets := make(map[models.Kind]*validation.Dataset)
	provided := 0

	for _, kind := range models.KindOrder {
		file, header, err := c.Request.FormFile(string(kind))
		if err != nil {
			continue
		}
		provided++

		format, ferr := rowsource.DetectFormat(header.Filename)
		if ferr != nil {
			datasets[kind] = &validation.Dataset{Err: ferr}
			file.Close()
			continue
		}

		rows, rerr := rowsource.Read(file, format, kind)
		file.Close()
		if rerr != nil {
			// Kind-level failure; other kinds still validate.
			datasets[kind] = &validation.Dataset{Err: rerr}
			continue
		}
		datasets[kind] = &validation.Dataset{Rows: rows}
	}

	if provided == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_REQUIRED",
				Message: "Upload at least one dataset (category, subcategory, subsubcategory or product)",
			},
		})
		return
	}

	report := h.pipeline.Run(datasets)

	h.reportCache.Set(c.Request.Context(), tenantID, report)

	if h.publisher != nil {
		userID := c.GetString("user_id")
		if err := h.publisher.PublishCatalogValidated(c.Request.Context(), tenantID, userID, report); err != nil {
			h.logger.WithError(err).Warn("Failed to publish catalog.validated event")
		}
	}

	h.logger.WithFields(logrus.Fields{
		"tenantId": tenantID,
		"datasets": provided,
		"allValid": report.AllValid,
	}).Info("Catalog validation run completed")

	c.JSON(http.StatusOK, models.ValidationResponse{Success: true, Data: report})
}

// GetLatestReport returns the tenant's most recent validation report
// GET /api/v1/catalog/validate/latest
func (h *ValidateHandler) GetLatestReport(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	report := h.reportCache.Get(c.Request.Context(), tenantID)
	if report == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "REPORT_NOT_FOUND",
				Message: "No recent validation report for this tenant",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ValidationResponse{Success: true, Data: report})
}
