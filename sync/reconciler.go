// ABOUTME: Sync reconciler - transitions pending records to synced against the uplink
// ABOUTME: Single pass in flight, snapshot isolation, per-category commit
package sync

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/store"
)

// Report summarizes one reconciliation pass.
type Report struct {
	// PassID identifies the pass in the journal.
	PassID string

	// Synced maps each category to the number of records committed.
	Synced map[models.RecordType]int

	// Failed maps each category whose upload failed to its error; those
	// records stay pending for the next pass.
	Failed map[models.RecordType]error
}

// TotalSynced returns the aggregate committed count across categories.
func (r *Report) TotalSynced() int {
	total := 0
	for _, n := range r.Synced {
		total += n
	}
	return total
}

// Reconciler runs the pending -> synced transition. The flag is
// monotonic: a synced record never reverts, and a record appended after
// a pass snapshots its category is left for the next pass.
type Reconciler struct {
	store    *store.Store
	uplink   Uplink
	journal  *Journal // optional
	timeout  time.Duration
	inFlight atomic.Bool
}

// NewReconciler creates a reconciler. journal may be nil when pass
// history is not wanted.
func NewReconciler(s *store.Store, uplink Uplink, journal *Journal) *Reconciler {
	return &Reconciler{
		store:   s,
		uplink:  uplink,
		journal: journal,
		timeout: 2 * time.Minute,
	}
}

// SetTimeout bounds a whole pass. On expiry, categories not yet
// committed stay pending.
func (r *Reconciler) SetTimeout(d time.Duration) {
	r.timeout = d
}

// Reconcile runs one pass:
//
//  1. Reject when another pass is in flight (ErrSyncInFlight) or the
//     uplink is offline (ErrOffline); in both cases nothing changes.
//  2. Snapshot the pending subsequence of every category. Zero pending
//     overall returns ErrNothingToSync.
//  3. Upload one batch per category. Success commits exactly the
//     snapshotted ids; failure leaves the whole category pending.
//
// Categories commit independently: a failed category never rolls back a
// committed one, and within a category the commit is all-or-nothing.
func (r *Reconciler) Reconcile(ctx context.Context) (*Report, error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSyncInFlight
	}
	defer r.inFlight.Store(false)

	if !r.uplink.Online(ctx) {
		return nil, ErrOffline
	}

	// Snapshot before any upload: records appended from here on belong
	// to the next pass.
	type batch struct {
		records []models.Record
		ids     []string
	}
	snapshot := make(map[models.RecordType]batch)
	total := 0
	for _, t := range models.RecordTypes() {
		pending, err := r.store.Pending(t)
		if err != nil {
			return nil, err
		}
		if len(pending) == 0 {
			continue
		}
		ids := make([]string, len(pending))
		for i, rec := range pending {
			ids[i] = rec.Base().ID
		}
		snapshot[t] = batch{records: pending, ids: ids}
		total += len(pending)
	}
	if total == 0 {
		return nil, ErrNothingToSync
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	report := &Report{
		PassID: uuid.New().String(),
		Synced: make(map[models.RecordType]int),
		Failed: make(map[models.RecordType]error),
	}

	for _, t := range models.RecordTypes() {
		b, ok := snapshot[t]
		if !ok {
			continue
		}

		r.setStatus(t, StatusSyncing, nil)

		if err := r.uplink.UploadBatch(ctx, t, b.records); err != nil {
			msg := err.Error()
			r.setStatus(t, StatusError, &msg)
			report.Failed[t] = err
			continue
		}

		if err := r.store.MarkSynced(t, b.ids); err != nil {
			msg := err.Error()
			r.setStatus(t, StatusError, &msg)
			report.Failed[t] = err
			continue
		}

		report.Synced[t] = len(b.ids)
		r.markCompleted(report.PassID, t, len(b.ids))
	}

	return report, nil
}

// PendingCounts returns the number of unsynced records per category.
func (r *Reconciler) PendingCounts() (map[models.RecordType]int, error) {
	counts := make(map[models.RecordType]int)
	for _, t := range models.RecordTypes() {
		pending, err := r.store.Pending(t)
		if err != nil {
			return nil, err
		}
		counts[t] = len(pending)
	}
	return counts, nil
}

// Watch polls connectivity and reconciles whenever the uplink comes back
// online (and once at startup if already online). It returns when ctx is
// cancelled.
func (r *Reconciler) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	wasOnline := false
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		online := r.uplink.Online(ctx)
		if online && !wasOnline {
			report, err := r.Reconcile(ctx)
			switch err {
			case nil:
				log.Printf("sync: reconciled %d record(s)", report.TotalSynced())
				for t, ferr := range report.Failed {
					log.Printf("sync: %s batch failed: %v", t, ferr)
				}
			case ErrNothingToSync, ErrSyncInFlight:
				// Nothing to do this round.
			default:
				log.Printf("sync: pass failed: %v", err)
			}
		}
		wasOnline = online

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Reconciler) setStatus(t models.RecordType, status string, errMsg *string) {
	if r.journal == nil {
		return
	}
	if err := r.journal.SetStatus(t, status, errMsg); err != nil {
		log.Printf("warning: journal update failed: %v", err)
	}
}

func (r *Reconciler) markCompleted(passID string, t models.RecordType, count int) {
	if r.journal == nil {
		return
	}
	if err := r.journal.MarkCompleted(passID, t, count); err != nil {
		log.Printf("warning: journal update failed: %v", err)
	}
}
