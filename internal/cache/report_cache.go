package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog-ingest-service/internal/models"
)

// ReportCacheTTL bounds how long a pipeline report stays retrievable after a
// validation run.
const ReportCacheTTL = 10 * time.Minute

// ReportCache keeps the most recent validation report per tenant in Redis so
// a client can re-fetch it without re-uploading the datasets. The cache is
// best-effort: with no Redis client every operation is a silent no-op.
type ReportCache struct {
	redis *redis.Client
}

// NewReportCache wraps an optional Redis client.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{redis: client}
}

func reportKey(tenantID string) string {
	return fmt.Sprintf("catalog:validation:%s:latest", tenantID)
}

// Set stores a tenant's latest pipeline report.
func (c *ReportCache) Set(ctx context.Context, tenantID string, report *models.PipelineReport) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, reportKey(tenantID), data, ReportCacheTTL).Err()
}

// Get returns a tenant's latest pipeline report, or nil when none is cached
// or Redis is unavailable.
func (c *ReportCache) Get(ctx context.Context, tenantID string) *models.PipelineReport {
	if c.redis == nil {
		return nil
	}
	data, err := c.redis.Get(ctx, reportKey(tenantID)).Bytes()
	if err != nil {
		return nil
	}
	var report models.PipelineReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil
	}
	return &report
}

// Health pings Redis, for the extended health endpoint.
func (c *ReportCache) Health(ctx context.Context) error {
	if c.redis == nil {
		return fmt.Errorf("redis not configured")
	}
	return c.redis.Ping(ctx).Err()
}
