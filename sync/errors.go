// ABOUTME: Error taxonomy for the sync reconciler
// ABOUTME: Sentinel errors for offline, empty, and in-flight reconciliation triggers
package sync

import "errors"

var (
	// ErrOffline is returned when a reconciliation is requested while
	// the uplink is unreachable. No record state changes.
	ErrOffline = errors.New("cannot sync while offline")

	// ErrNothingToSync is informational: a pass was requested with zero
	// pending records across every category.
	ErrNothingToSync = errors.New("no pending records to sync")

	// ErrSyncInFlight is returned when a pass is requested while another
	// is still running. The new trigger is dropped, not queued.
	ErrSyncInFlight = errors.New("a reconciliation pass is already in flight")
)
