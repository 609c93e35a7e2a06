// ABOUTME: Terminal user interface using bubbletea
// ABOUTME: Two views: the record history feed and the sync panel
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/mobitec/history"
	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/store"
	"github.com/harperreed/mobitec/sync"
)

// ViewMode represents the current TUI view.
type ViewMode int

const (
	ViewFeed ViewMode = iota
	ViewSync
)

// Model is the main bubbletea model.
type Model struct {
	store      *store.Store
	reconciler *sync.Reconciler
	journal    *sync.Journal

	viewMode ViewMode

	// Feed view state
	feed        []models.Record
	feedErr     error
	typeFilter  models.RecordType
	selectedRow int

	// Sync view state
	syncInProgress bool
	lastReport     *sync.Report
	syncErr        error

	// UI state
	width  int
	height int
}

// NewModel creates the TUI model. journal may be nil.
func NewModel(s *store.Store, r *sync.Reconciler, j *sync.Journal) Model {
	m := Model{
		store:      s,
		reconciler: r,
		journal:    j,
		viewMode:   ViewFeed,
		width:      80,
		height:     24,
	}
	m.reloadFeed()
	return m
}

// Run starts the TUI program.
func Run(s *store.Store, r *sync.Reconciler, j *sync.Journal) error {
	p := tea.NewProgram(NewModel(s, r, j), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) reloadFeed() {
	feed, err := history.NewAggregator(m.store).Feed()
	m.feed = feed
	m.feedErr = err
	if m.selectedRow >= len(m.visibleFeed()) {
		m.selectedRow = 0
	}
}

func (m Model) visibleFeed() []models.Record {
	return history.Filter(m.feed, m.typeFilter)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case SyncCompleteMsg:
		m.syncInProgress = false
		m.lastReport = msg.Report
		m.syncErr = msg.Err
		m.reloadFeed()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewFeed:
		return m.renderFeedView()
	case ViewSync:
		return m.renderSyncView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.viewMode == ViewFeed {
			m.viewMode = ViewSync
		} else {
			m.viewMode = ViewFeed
		}
		return m, nil
	}

	switch m.viewMode {
	case ViewFeed:
		return m.handleFeedKeys(msg)
	case ViewSync:
		return m.handleSyncKeys(msg)
	}
	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	syncedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
