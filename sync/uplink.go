// ABOUTME: Uplink boundary for shipping pending record batches to the backend
// ABOUTME: HTTP implementation over resty plus an in-process stub for offline development
package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/harperreed/mobitec/models"
)

// Uplink is the remote side of a reconciliation pass. One UploadBatch
// call covers all pending records of a single category; categories
// succeed or fail independently.
type Uplink interface {
	// Online reports whether the backend is reachable right now.
	Online(ctx context.Context) bool

	// UploadBatch ships one category's pending records. An error leaves
	// every record of the batch pending.
	UploadBatch(ctx context.Context, category models.RecordType, records []models.Record) error
}

// HTTPUplink talks to the record backend over HTTP.
type HTTPUplink struct {
	client *resty.Client
}

// NewHTTPUplink creates an uplink against baseURL. The token, when set,
// is sent as a bearer credential on every request.
func NewHTTPUplink(baseURL, token string) *HTTPUplink {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	if token != "" {
		client.SetAuthToken(token)
	}
	return &HTTPUplink{client: client}
}

// Online probes the backend health endpoint with a short deadline.
func (u *HTTPUplink) Online(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := u.client.R().SetContext(probeCtx).Get("/health")
	return err == nil && !resp.IsError()
}

type batchRequest struct {
	Category models.RecordType `json:"category"`
	Records  []models.Record   `json:"records"`
}

// UploadBatch posts the category's pending records as one batch.
func (u *HTTPUplink) UploadBatch(ctx context.Context, category models.RecordType, records []models.Record) error {
	resp, err := u.client.R().
		SetContext(ctx).
		SetBody(batchRequest{Category: category, Records: records}).
		Post(fmt.Sprintf("/v1/records/%s/batch", category))
	if err != nil {
		return fmt.Errorf("upload of %s batch failed: %w", category, err)
	}
	if resp.IsError() {
		return fmt.Errorf("upload of %s batch rejected: %s", category, resp.Status())
	}
	return nil
}

// StubUplink is an in-process uplink for tests and offline development.
// Connectivity, per-category failures, and upload latency are all
// configurable; uploads are recorded for inspection.
type StubUplink struct {
	mu       gosync.Mutex
	offline  bool
	failures map[models.RecordType]error
	latency  time.Duration
	uploads  map[models.RecordType][][]string
}

// NewStubUplink creates an online stub with no failures and no latency.
func NewStubUplink() *StubUplink {
	return &StubUplink{
		failures: make(map[models.RecordType]error),
		uploads:  make(map[models.RecordType][][]string),
	}
}

// SetOffline toggles simulated connectivity.
func (u *StubUplink) SetOffline(offline bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.offline = offline
}

// FailCategory makes UploadBatch fail for one category with err.
func (u *StubUplink) FailCategory(t models.RecordType, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failures[t] = err
}

// SetLatency adds a fixed delay to every upload.
func (u *StubUplink) SetLatency(d time.Duration) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.latency = d
}

// Online reports the simulated connectivity state.
func (u *StubUplink) Online(_ context.Context) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return !u.offline
}

// UploadBatch records the batch, honoring configured latency, failures,
// and context cancellation.
func (u *StubUplink) UploadBatch(ctx context.Context, category models.RecordType, records []models.Record) error {
	u.mu.Lock()
	latency := u.latency
	failure := u.failures[category]
	offline := u.offline
	u.mu.Unlock()

	if offline {
		return fmt.Errorf("upload of %s batch failed: no connectivity", category)
	}

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	if failure != nil {
		return failure
	}

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.Base().ID
	}

	u.mu.Lock()
	u.uploads[category] = append(u.uploads[category], ids)
	u.mu.Unlock()
	return nil
}

// Uploads returns the recorded batches for a category, one id slice per
// UploadBatch call.
func (u *StubUplink) Uploads(category models.RecordType) [][]string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploads[category]
}
