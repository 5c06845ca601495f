package uploader

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"catalog-ingest-service/internal/models"
)

type fakeIngestClient struct {
	mu      sync.Mutex
	calls   int
	ack     *models.IngestAck
	err     error
	release chan struct{}
}

func (f *fakeIngestClient) SubmitDataset(ctx context.Context, tenantID string, kind models.Kind, filename string, dataset io.Reader) (*models.IngestAck, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	return f.ack, f.err
}

func (f *fakeIngestClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSubmitSuccess(t *testing.T) {
	client := &fakeIngestClient{
		ack: &models.IngestAck{Success: true, Message: "Imported", RecordsProcessed: 12},
	}
	o := New(client, testLogger(), 0, nil)

	sub, err := o.Submit(context.Background(), "tenant-1", models.KindCategory, "categories.csv", strings.NewReader("id,name,slug\n"))
	require.NoError(t, err)

	require.Equal(t, models.SubmissionSuccess, sub.Status)
	require.Equal(t, 12, sub.RecordsProcessed)
	require.Equal(t, "Imported", sub.Message)
	require.Equal(t, "/admin/categories", sub.RedirectTo)
	require.NotNil(t, sub.FinishedAt)
	require.False(t, o.InFlight(models.KindCategory))

	history := o.History()
	require.Len(t, history, 1)
	require.Equal(t, sub.ID, history[0].ID)
}

func TestSubmitFailureIsRecordedNotReturned(t *testing.T) {
	client := &fakeIngestClient{err: errors.New("ingestion failed: 502")}
	o := New(client, testLogger(), 0, nil)

	sub, err := o.Submit(context.Background(), "tenant-1", models.KindProduct, "products.csv", strings.NewReader("id\n"))
	require.NoError(t, err)

	require.Equal(t, models.SubmissionError, sub.Status)
	require.Equal(t, "ingestion failed: 502", sub.Message)
	require.Empty(t, sub.RedirectTo)
	require.NotNil(t, sub.FinishedAt)

	// Failed submissions are terminal; nothing retries behind the caller's
	// back.
	require.Equal(t, 1, client.callCount())
	require.False(t, o.InFlight(models.KindProduct))
}

func TestSubmitRejectsSecondInFlightForSameKind(t *testing.T) {
	client := &fakeIngestClient{
		ack:     &models.IngestAck{Success: true},
		release: make(chan struct{}),
	}
	o := New(client, testLogger(), 0, nil)

	done := make(chan *models.Submission, 1)
	go func() {
		sub, _ := o.Submit(context.Background(), "tenant-1", models.KindCategory, "a.csv", strings.NewReader("id\n"))
		done <- sub
	}()

	require.Eventually(t, func() bool {
		return o.InFlight(models.KindCategory)
	}, time.Second, time.Millisecond)

	_, err := o.Submit(context.Background(), "tenant-1", models.KindCategory, "b.csv", strings.NewReader("id\n"))
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	// Other kinds are not blocked by the category upload.
	require.False(t, o.InFlight(models.KindProduct))

	close(client.release)
	sub := <-done
	require.Equal(t, models.SubmissionSuccess, sub.Status)

	// With the first upload finished the gate reopens.
	sub2, err := o.Submit(context.Background(), "tenant-1", models.KindCategory, "b.csv", strings.NewReader("id\n"))
	require.NoError(t, err)
	require.Equal(t, models.SubmissionSuccess, sub2.Status)
}

func TestClearHistoryKeepsInFlightRecords(t *testing.T) {
	client := &fakeIngestClient{
		ack:     &models.IngestAck{Success: true},
		release: make(chan struct{}),
	}
	o := New(client, testLogger(), 0, nil)

	done := make(chan struct{})
	go func() {
		o.Submit(context.Background(), "tenant-1", models.KindSubcategory, "subs.csv", strings.NewReader("id\n"))
		close(done)
	}()
	require.Eventually(t, func() bool {
		return o.InFlight(models.KindSubcategory)
	}, time.Second, time.Millisecond)

	// Clearing while the upload is running keeps the in-flight record.
	o.ClearHistory()
	history := o.History()
	require.Len(t, history, 1)
	require.Equal(t, models.SubmissionUploading, history[0].Status)

	close(client.release)
	<-done

	history = o.History()
	require.Len(t, history, 1)
	require.Equal(t, models.SubmissionSuccess, history[0].Status)

	o.ClearHistory()
	require.Empty(t, o.History())
}

func TestHistoryIsNewestFirstSnapshot(t *testing.T) {
	client := &fakeIngestClient{ack: &models.IngestAck{Success: true}}
	o := New(client, testLogger(), 0, nil)

	first, err := o.Submit(context.Background(), "tenant-1", models.KindCategory, "first.csv", strings.NewReader("id\n"))
	require.NoError(t, err)
	second, err := o.Submit(context.Background(), "tenant-1", models.KindSubcategory, "second.csv", strings.NewReader("id\n"))
	require.NoError(t, err)

	history := o.History()
	require.Len(t, history, 2)
	require.Equal(t, second.ID, history[0].ID)
	require.Equal(t, first.ID, history[1].ID)

	// Mutating the snapshot must not reach the orchestrator's records.
	history[0].Status = models.SubmissionError
	require.Equal(t, models.SubmissionSuccess, o.History()[0].Status)
}

func TestNavigationHookFiresAfterSuccess(t *testing.T) {
	client := &fakeIngestClient{ack: &models.IngestAck{Success: true}}

	navigated := make(chan string, 1)
	o := New(client, testLogger(), 5*time.Millisecond, func(kind models.Kind, path string) {
		navigated <- path
	})

	_, err := o.Submit(context.Background(), "tenant-1", models.KindProduct, "products.csv", strings.NewReader("id\n"))
	require.NoError(t, err)

	select {
	case path := <-navigated:
		require.Equal(t, "/admin/products", path)
	case <-time.After(time.Second):
		t.Fatal("navigation hook never fired")
	}
}

func TestNavigationHookSkippedOnFailure(t *testing.T) {
	client := &fakeIngestClient{err: errors.New("boom")}

	navigated := make(chan string, 1)
	o := New(client, testLogger(), time.Millisecond, func(kind models.Kind, path string) {
		navigated <- path
	})

	_, err := o.Submit(context.Background(), "tenant-1", models.KindProduct, "products.csv", strings.NewReader("id\n"))
	require.NoError(t, err)

	select {
	case <-navigated:
		t.Fatal("navigation hook fired for a failed submission")
	case <-time.After(50 * time.Millisecond):
	}
}
