// ABOUTME: Tests for sync MCP tool handlers
// ABOUTME: Validates sync_now outcomes and the per-category status report
package handlers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncNowHandler(t *testing.T) {
	s := newTestStore(t)
	r := sync.NewReconciler(s, sync.NewStubUplink(), nil)
	h := NewSyncHandlers(r, nil)

	require.NoError(t, s.Append(models.NewVisit("Escola A", "Rua Um, 1", "")))

	_, out, err := h.SyncNow(context.Background(), nil, SyncNowInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalSynced)
	assert.Equal(t, 1, out.Synced["visit"])
	assert.NotEmpty(t, out.PassID)
}

func TestSyncNowNothingPending(t *testing.T) {
	s := newTestStore(t)
	r := sync.NewReconciler(s, sync.NewStubUplink(), nil)
	h := NewSyncHandlers(r, nil)

	_, out, err := h.SyncNow(context.Background(), nil, SyncNowInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalSynced)
	assert.Equal(t, "nothing to sync", out.Message)
}

func TestSyncNowOffline(t *testing.T) {
	s := newTestStore(t)
	uplink := sync.NewStubUplink()
	uplink.SetOffline(true)
	h := NewSyncHandlers(sync.NewReconciler(s, uplink, nil), nil)

	require.NoError(t, s.Append(models.NewVisit("Escola A", "Rua Um, 1", "")))

	_, _, err := h.SyncNow(context.Background(), nil, SyncNowInput{})
	assert.Error(t, err)
}

func TestSyncStatusHandler(t *testing.T) {
	s := newTestStore(t)
	j, err := sync.OpenJournal(filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	r := sync.NewReconciler(s, sync.NewStubUplink(), j)
	h := NewSyncHandlers(r, j)

	require.NoError(t, s.Append(models.NewDelivery("Escola A", "", "Notebooks", "Maria", "Diretora", "11999990000", "", "")))
	require.NoError(t, s.Append(models.NewVisit("Escola B", "Rua Dois, 2", "")))

	_, out, err := h.SyncStatus(context.Background(), nil, SyncStatusInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalPending)
	require.Len(t, out.Categories, len(models.RecordTypes()))

	// One pass drains everything and stamps the journal.
	_, _, err = h.SyncNow(context.Background(), nil, SyncNowInput{})
	require.NoError(t, err)

	_, out, err = h.SyncStatus(context.Background(), nil, SyncStatusInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalPending)
	for _, c := range out.Categories {
		if c.Category == "delivery" || c.Category == "visit" {
			assert.Equal(t, sync.StatusIdle, c.Status)
			assert.NotEmpty(t, c.LastSyncTime)
		}
	}
}
