// ABOUTME: Sync CLI commands
// ABOUTME: Runs reconciliation passes, reports status, and watches connectivity
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/store"
	"github.com/harperreed/mobitec/sync"
)

// newReconciler wires the reconciler from the uplink config. The journal
// is optional; a failure to open it degrades to no pass history.
func newReconciler(s *store.Store) (*sync.Reconciler, *sync.Journal, error) {
	cfg, err := sync.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load uplink config: %w", err)
	}

	journal, err := sync.OpenJournal(sync.DefaultJournalPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: sync journal unavailable: %v\n", err)
		journal = nil
	}

	return sync.NewReconciler(s, cfg.NewUplink(), journal), journal, nil
}

// SyncNowCommand runs one reconciliation pass.
func SyncNowCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("sync-now", flag.ExitOnError)
	timeout := fs.Duration("timeout", 2*time.Minute, "Maximum duration of the pass")
	_ = fs.Parse(args)

	reconciler, journal, err := newReconciler(s)
	if err != nil {
		return err
	}
	if journal != nil {
		defer func() { _ = journal.Close() }()
	}
	reconciler.SetTimeout(*timeout)

	report, err := reconciler.Reconcile(context.Background())
	switch {
	case errors.Is(err, sync.ErrNothingToSync):
		fmt.Println("✓ Nothing to sync")
		return nil
	case errors.Is(err, sync.ErrOffline):
		return fmt.Errorf("cannot sync while offline")
	case errors.Is(err, sync.ErrSyncInFlight):
		return fmt.Errorf("a sync pass is already running")
	case err != nil:
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("✓ Synced %d record(s)\n", report.TotalSynced())
	for t, n := range report.Synced {
		fmt.Printf("  %s: %d\n", t, n)
	}
	for t, ferr := range report.Failed {
		fmt.Printf("✗ %s batch failed: %v\n", t, ferr)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d categor(ies) failed to sync", len(report.Failed))
	}
	return nil
}

// SyncStatusCommand prints per-category sync state and pending counts.
func SyncStatusCommand(s *store.Store, args []string) error {
	reconciler, journal, err := newReconciler(s)
	if err != nil {
		return err
	}
	if journal != nil {
		defer func() { _ = journal.Close() }()
	}

	counts, err := reconciler.PendingCounts()
	if err != nil {
		return fmt.Errorf("failed to count pending records: %w", err)
	}

	states := make(map[models.RecordType]sync.State)
	if journal != nil {
		all, err := journal.GetAllStates()
		if err != nil {
			return fmt.Errorf("failed to read sync state: %w", err)
		}
		for _, st := range all {
			states[st.Category] = st
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tSTATUS\tPENDING\tLAST SYNC")
	total := 0
	for _, t := range models.RecordTypes() {
		status := sync.StatusIdle
		lastSync := "never"
		if st, ok := states[t]; ok {
			status = st.Status
			if st.LastSyncTime != nil {
				lastSync = st.LastSyncTime.Format("2006-01-02 15:04")
			}
			if st.ErrorMessage != nil {
				status = fmt.Sprintf("%s (%s)", st.Status, *st.ErrorMessage)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", t, status, counts[t], lastSync)
		total += counts[t]
	}
	w.Flush()

	fmt.Printf("\n%d record(s) pending sync\n", total)
	return nil
}

// SyncWatchCommand runs the connectivity watcher until interrupted.
func SyncWatchCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("sync-watch", flag.ExitOnError)
	interval := fs.Duration("interval", 30*time.Second, "Connectivity poll interval")
	_ = fs.Parse(args)

	reconciler, journal, err := newReconciler(s)
	if err != nil {
		return err
	}
	if journal != nil {
		defer func() { _ = journal.Close() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching connectivity every %s (Ctrl+C to stop)\n", *interval)
	reconciler.Watch(ctx, *interval)
	fmt.Println("\n✓ Watcher stopped")
	return nil
}
