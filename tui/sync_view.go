// ABOUTME: TUI view for sync state and manual reconciliation
// ABOUTME: Shows per-category pending counts and runs passes asynchronously
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/sync"
)

// SyncCompleteMsg is sent when a reconciliation pass finishes.
type SyncCompleteMsg struct {
	Report *sync.Report
	Err    error
}

func (m Model) renderSyncView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SYNC"))
	s.WriteString("\n\n")

	counts, err := m.reconciler.PendingCounts()
	if err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		s.WriteString("\n")
		return s.String()
	}

	states := make(map[models.RecordType]sync.State)
	if m.journal != nil {
		if all, err := m.journal.GetAllStates(); err == nil {
			for _, st := range all {
				states[st.Category] = st
			}
		}
	}

	total := 0
	for _, t := range models.RecordTypes() {
		line := fmt.Sprintf("%-12s", t)
		switch {
		case m.syncInProgress:
			line += pendingStyle.Render("⟳ syncing...")
		case counts[t] > 0:
			line += pendingStyle.Render(fmt.Sprintf("%d pending", counts[t]))
		default:
			line += syncedStyle.Render("✓ up to date")
		}
		if st, ok := states[t]; ok {
			if st.ErrorMessage != nil {
				line += errorStyle.Render("  ✗ " + *st.ErrorMessage)
			} else if st.LastSyncTime != nil {
				line += helpStyle.Render("  last " + st.LastSyncTime.Format("2006-01-02 15:04"))
			}
		}
		s.WriteString(line)
		s.WriteString("\n")
		total += counts[t]
	}

	s.WriteString("\n")
	switch {
	case m.syncInProgress:
		s.WriteString(pendingStyle.Render("Sync in progress..."))
	case m.syncErr != nil:
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", m.syncErr)))
	case m.lastReport != nil:
		s.WriteString(syncedStyle.Render(fmt.Sprintf("✓ Last pass synced %d record(s)", m.lastReport.TotalSynced())))
		for t, ferr := range m.lastReport.Failed {
			s.WriteString(errorStyle.Render(fmt.Sprintf("\n✗ %s: %v", t, ferr)))
		}
	case total == 0:
		s.WriteString(syncedStyle.Render("Nothing to sync"))
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("s sync now · tab feed view · q quit"))

	return s.String()
}

func (m Model) handleSyncKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if m.syncInProgress {
			return m, nil
		}
		m.syncInProgress = true
		m.syncErr = nil
		return m, m.runSync()
	}
	return m, nil
}

// runSync reconciles in the background and reports back as a message.
func (m Model) runSync() tea.Cmd {
	reconciler := m.reconciler
	return func() tea.Msg {
		report, err := reconciler.Reconcile(context.Background())
		if errors.Is(err, sync.ErrNothingToSync) {
			return SyncCompleteMsg{Report: &sync.Report{}, Err: nil}
		}
		return SyncCompleteMsg{Report: report, Err: err}
	}
}
