// ABOUTME: Tests for the TUI model
// ABOUTME: Covers view switching, filter cycling, and sync completion handling
package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/store"
	"github.com/harperreed/mobitec/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	kv, err := store.OpenKV(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	s := store.NewStore(kv)
	require.NoError(t, s.Append(models.NewDelivery("Escola A", "", "Notebooks", "Maria", "Diretora", "11999990000", "", "")))
	require.NoError(t, s.Append(models.NewVisit("Escola B", "Rua Dois, 2", "")))

	return NewModel(s, sync.NewReconciler(s, sync.NewStubUplink(), nil), nil)
}

func TestTabSwitchesViews(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, ViewFeed, m.viewMode)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, ViewSync, m.viewMode)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, ViewFeed, m.viewMode)
}

func TestFeedViewShowsRecords(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "Escola A")
	assert.Contains(t, view, "Escola B")
	assert.Contains(t, view, "pending sync")
}

func TestFilterCycle(t *testing.T) {
	assert.Equal(t, models.TypeDelivery, nextFilter(""))
	assert.Equal(t, models.TypeCollection, nextFilter(models.TypeDelivery))
	assert.Equal(t, models.RecordType(""), nextFilter(models.TypeShipment))
}

func TestFilterKeyNarrowsFeed(t *testing.T) {
	m := newTestModel(t)
	assert.Len(t, m.visibleFeed(), 2)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = updated.(Model)
	assert.Equal(t, models.TypeDelivery, m.typeFilter)
	assert.Len(t, m.visibleFeed(), 1)
}

func TestSyncCompleteRefreshesState(t *testing.T) {
	m := newTestModel(t)
	m.syncInProgress = true

	report := &sync.Report{Synced: map[models.RecordType]int{models.TypeDelivery: 1}}
	updated, _ := m.Update(SyncCompleteMsg{Report: report})
	m = updated.(Model)

	assert.False(t, m.syncInProgress)
	assert.Equal(t, report, m.lastReport)
	assert.NoError(t, m.syncErr)
}

func TestSyncCompleteWithError(t *testing.T) {
	m := newTestModel(t)
	m.syncInProgress = true

	syncErr := errors.New("backend unreachable")
	updated, _ := m.Update(SyncCompleteMsg{Err: syncErr})
	m = updated.(Model)

	assert.False(t, m.syncInProgress)
	m.viewMode = ViewSync
	assert.Contains(t, m.View(), "backend unreachable")
}

func TestFeedDetail(t *testing.T) {
	d := models.NewDelivery("Escola A", "", "Notebooks", "Maria", "Diretora", "11999990000", "", "")
	assert.Equal(t, "Notebooks para Maria", feedDetail(d))

	sh := models.NewShipment("Escola B", "", "Livros", "Almoxarifado", "Correios", models.ShippingInTransit, "", "")
	assert.Equal(t, "Livros (in_transit)", feedDetail(sh))
}
