// ABOUTME: Sync MCP tool handlers
// ABOUTME: Implements sync_now and sync_status over the reconciler and journal
package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/sync"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type SyncHandlers struct {
	reconciler *sync.Reconciler
	journal    *sync.Journal
}

// NewSyncHandlers creates the sync tool handlers. journal may be nil
// when pass history is not kept.
func NewSyncHandlers(r *sync.Reconciler, j *sync.Journal) *SyncHandlers {
	return &SyncHandlers{reconciler: r, journal: j}
}

type SyncNowInput struct{}

type SyncNowOutput struct {
	PassID      string         `json:"pass_id,omitempty"`
	TotalSynced int            `json:"total_synced"`
	Synced      map[string]int `json:"synced,omitempty"`
	Failed      map[string]string `json:"failed,omitempty"`
	Message     string         `json:"message,omitempty"`
}

func (h *SyncHandlers) SyncNow(ctx context.Context, request *mcp.CallToolRequest, input SyncNowInput) (*mcp.CallToolResult, SyncNowOutput, error) {
	report, err := h.reconciler.Reconcile(ctx)
	switch {
	case errors.Is(err, sync.ErrNothingToSync):
		return nil, SyncNowOutput{Message: "nothing to sync"}, nil
	case errors.Is(err, sync.ErrOffline):
		return nil, SyncNowOutput{}, fmt.Errorf("cannot sync while offline")
	case errors.Is(err, sync.ErrSyncInFlight):
		return nil, SyncNowOutput{}, fmt.Errorf("a sync pass is already running")
	case err != nil:
		return nil, SyncNowOutput{}, fmt.Errorf("sync failed: %w", err)
	}

	out := SyncNowOutput{
		PassID:      report.PassID,
		TotalSynced: report.TotalSynced(),
	}
	if len(report.Synced) > 0 {
		out.Synced = make(map[string]int, len(report.Synced))
		for t, n := range report.Synced {
			out.Synced[string(t)] = n
		}
	}
	if len(report.Failed) > 0 {
		out.Failed = make(map[string]string, len(report.Failed))
		for t, ferr := range report.Failed {
			out.Failed[string(t)] = ferr.Error()
		}
	}
	return nil, out, nil
}

type SyncStatusInput struct{}

type CategoryStatusOutput struct {
	Category     string `json:"category"`
	Status       string `json:"status"`
	LastSyncTime string `json:"last_sync_time,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	PendingCount int    `json:"pending_count"`
}

type SyncStatusOutput struct {
	Categories   []CategoryStatusOutput `json:"categories"`
	TotalPending int                    `json:"total_pending"`
}

func (h *SyncHandlers) SyncStatus(_ context.Context, request *mcp.CallToolRequest, input SyncStatusInput) (*mcp.CallToolResult, SyncStatusOutput, error) {
	counts, err := h.reconciler.PendingCounts()
	if err != nil {
		return nil, SyncStatusOutput{}, fmt.Errorf("failed to count pending records: %w", err)
	}

	states := make(map[string]sync.State)
	if h.journal != nil {
		all, err := h.journal.GetAllStates()
		if err != nil {
			return nil, SyncStatusOutput{}, fmt.Errorf("failed to read sync state: %w", err)
		}
		for _, s := range all {
			states[string(s.Category)] = s
		}
	}

	out := SyncStatusOutput{}
	for _, t := range models.RecordTypes() {
		entry := CategoryStatusOutput{
			Category:     string(t),
			Status:       sync.StatusIdle,
			PendingCount: counts[t],
		}
		if s, ok := states[string(t)]; ok {
			entry.Status = s.Status
			if s.LastSyncTime != nil {
				entry.LastSyncTime = s.LastSyncTime.Format(time.RFC3339)
			}
			if s.ErrorMessage != nil {
				entry.ErrorMessage = *s.ErrorMessage
			}
		}
		out.Categories = append(out.Categories, entry)
		out.TotalPending += counts[t]
	}

	return nil, out, nil
}
