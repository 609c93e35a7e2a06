// ABOUTME: TUI view for the merged record history feed
// ABOUTME: Table of records newest first, with type filter cycling
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/mobitec/history"
	"github.com/harperreed/mobitec/models"
)

// feedFilters is the filter cycle: everything, then each category.
var feedFilters = []models.RecordType{"", models.TypeDelivery, models.TypeCollection, models.TypeVisit, models.TypeShipment}

func (m Model) renderFeedView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("MOBITEC RECORDS"))
	s.WriteString("\n\n")

	filterLabel := "all"
	if m.typeFilter != "" {
		filterLabel = string(m.typeFilter)
	}
	s.WriteString(fmt.Sprintf("Filter: %s\n\n", filterLabel))

	if m.feedErr != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.feedErr)))
		s.WriteString("\n")
		return s.String()
	}

	visible := m.visibleFeed()
	if len(visible) == 0 {
		s.WriteString("No records yet\n")
	} else {
		s.WriteString(m.renderFeedTable(visible))
		s.WriteString("\n")
	}

	pending := history.PendingCount(m.feed)
	if pending > 0 {
		s.WriteString(pendingStyle.Render(fmt.Sprintf("\n%d record(s) pending sync", pending)))
	} else if len(m.feed) > 0 {
		s.WriteString(syncedStyle.Render("\nAll records synced"))
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓ select · f filter · tab sync view · q quit"))

	return s.String()
}

func (m Model) renderFeedTable(visible []models.Record) string {
	columns := []table.Column{
		{Title: "Created", Width: 16},
		{Title: "Type", Width: 10},
		{Title: "School", Width: 28},
		{Title: "Detail", Width: 30},
		{Title: "Sync", Width: 4},
	}

	var rows []table.Row
	for _, r := range visible {
		base := r.Base()
		synced := "✗"
		if base.Synced {
			synced = "✓"
		}
		rows = append(rows, table.Row{
			base.CreatedAt.Format("2006-01-02 15:04"),
			string(base.Type),
			base.SchoolName,
			feedDetail(r),
			synced,
		})
	}

	height := m.height - 12
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

// feedDetail gives the category-specific column for a feed row.
func feedDetail(r models.Record) string {
	switch rec := r.(type) {
	case *models.Delivery:
		return fmt.Sprintf("%s para %s", rec.Item, rec.ResponsibleParty)
	case *models.Collection:
		return fmt.Sprintf("%s de %s", rec.Item, rec.ResponsibleParty)
	case *models.Visit:
		return rec.SchoolAddress
	case *models.Shipment:
		return fmt.Sprintf("%s (%s)", rec.Item, rec.ShippingStatus)
	}
	return ""
}

func (m Model) handleFeedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.visibleFeed())-1 {
			m.selectedRow++
		}
	case "f":
		m.typeFilter = nextFilter(m.typeFilter)
		m.selectedRow = 0
	case "r":
		m.reloadFeed()
	}
	return m, nil
}

// nextFilter advances the type filter cycle.
func nextFilter(current models.RecordType) models.RecordType {
	for i, f := range feedFilters {
		if f == current {
			return feedFilters[(i+1)%len(feedFilters)]
		}
	}
	return ""
}
