package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"catalog-ingest-service/internal/cache"
	"catalog-ingest-service/internal/middleware"
	"catalog-ingest-service/internal/models"
	"catalog-ingest-service/internal/validation"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func validateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewValidateHandler(validation.NewPipeline(validation.Options{}), cache.NewReportCache(nil), nil, testLogger())

	router := gin.New()
	api := router.Group("/api/v1", middleware.TenantMiddleware())
	api.POST("/catalog/validate", handler.ValidateCatalog)
	api.GET("/catalog/validate/latest", handler.GetLatestReport)
	return router
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for field, content := range files {
		part, err := writer.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestValidateCatalogFullRun(t *testing.T) {
	router := validateRouter()

	body, contentType := multipartBody(t, map[string]string{
		"category":    "id,name,slug,status\nc1,Shoes,shoes,TRUE\n",
		"subcategory": "id,name,category_id\ns1,Sneakers,c1\ns2,Boots,c9\n",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/validate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Tenant-ID", "tenant-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.False(t, resp.Data.AllValid)

	catReport := resp.Data.ReportFor(models.KindCategory)
	require.True(t, catReport.Provided)
	require.Empty(t, catReport.Errors)

	subReport := resp.Data.ReportFor(models.KindSubcategory)
	require.Len(t, subReport.Errors, 1)
	require.Equal(t, 3, subReport.Errors[0].Row)
	require.Equal(t, models.ErrInvalidReference, subReport.Errors[0].Code)

	require.Equal(t, []models.Kind{models.KindCategory}, resp.Data.ReadyKinds)
}

func TestValidateCatalogUnreadableDatasetIsIsolated(t *testing.T) {
	router := validateRouter()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// An .xlsx that is not a real workbook fails at read time for its kind
	// only.
	part, err := writer.CreateFormFile("category", "categories.xlsx")
	require.NoError(t, err)
	part.Write([]byte("not an xlsx"))

	part, err = writer.CreateFormFile("product", "products.csv")
	require.NoError(t, err)
	part.Write([]byte("id,name,price,category_id\np1,Runner,10,c1\n"))

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/validate", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Tenant-ID", "tenant-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Data.AllValid)

	catReport := resp.Data.ReportFor(models.KindCategory)
	require.NotEmpty(t, catReport.DatasetErr)

	prodReport := resp.Data.ReportFor(models.KindProduct)
	require.Len(t, prodReport.Errors, 1)
	require.Equal(t, models.ErrInvalidReference, prodReport.Errors[0].Code)
}

func TestValidateCatalogRequiresAFile(t *testing.T) {
	router := validateRouter()

	body, contentType := multipartBody(t, map[string]string{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/validate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Tenant-ID", "tenant-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "FILE_REQUIRED", resp.Error.Code)
}

func TestValidateCatalogRequiresTenant(t *testing.T) {
	router := validateRouter()

	body, contentType := multipartBody(t, map[string]string{
		"category": "id,name,slug\nc1,Shoes,shoes\n",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/validate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetLatestReportNotFoundWithoutCache(t *testing.T) {
	router := validateRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/validate/latest", nil)
	req.Header.Set("X-Tenant-ID", "tenant-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "REPORT_NOT_FOUND", resp.Error.Code)
}
