// Package tui implements the interactive terminal flow: capture a first
// snapshot, wait while the user changes settings, capture a second one,
// then browse the diff and copy generated defaults commands.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"prefdiff/internal/config"
	"prefdiff/internal/diff"
	"prefdiff/internal/prefs"
)

// screen is the current step of the capture/diff flow.
type screen uint8

const (
	screenInitial screen = iota
	screenLoadingFirst
	screenWaitingForChanges
	screenLoadingSecond
	screenDiffView
	screenError
)

// focus selects which pane receives navigation keys.
type focus uint8

const (
	focusDomains focus = iota
	focusChanges
)

// Snapshotter is the capture dependency; faked in tests.
type Snapshotter interface {
	Capture(ctx context.Context) (*prefs.Snapshot, error)
}

// captureDoneMsg reports an asynchronous capture result.
type captureDoneMsg struct {
	snapshot *prefs.Snapshot
	err      error
}

// statusTickMsg triggers a redraw after a status message expires.
type statusTickMsg struct{}

// Model is the bubbletea model. All state lives here; Update never blocks.
type Model struct {
	capturer Snapshotter
	cfg      config.UIConfig
	logger   *zap.Logger

	screen  screen
	focus   focus
	errText string

	before *prefs.Snapshot
	after  *prefs.Snapshot
	result *diff.Result

	domainIdx int
	changeIdx int

	status *statusMessage

	width  int
	height int
}

// NewModel builds the initial model.
func NewModel(capturer Snapshotter, cfg config.UIConfig, logger *zap.Logger) Model {
	return Model{
		capturer: capturer,
		cfg:      cfg,
		logger:   logger,
		screen:   screenInitial,
		focus:    focusDomains,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// captureCmd runs a capture off the update loop.
func (m Model) captureCmd() tea.Cmd {
	capturer := m.capturer
	return func() tea.Msg {
		snapshot, err := capturer.Capture(context.Background())
		return captureDoneMsg{snapshot: snapshot, err: err}
	}
}

// setStatus records a status message and schedules the redraw that will
// clear it once the TTL elapses.
func (m *Model) setStatus(kind statusKind, text string) tea.Cmd {
	m.status = newStatus(kind, text)
	ttl := m.cfg.StatusTTL
	return tea.Tick(ttl+100*time.Millisecond, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

// selectedDomain returns the currently selected domain diff, if any.
func (m Model) selectedDomain() *diff.DomainDiff {
	if m.result == nil || m.domainIdx >= len(m.result.Diffs) {
		return nil
	}
	return &m.result.Diffs[m.domainIdx]
}

// selectedChange returns the currently selected change, if any.
func (m Model) selectedChange() *diff.Change {
	dd := m.selectedDomain()
	if dd == nil || m.changeIdx >= len(dd.Changes) {
		return nil
	}
	return &dd.Changes[m.changeIdx]
}

// reset drops all captured state and returns to the initial screen.
func (m *Model) reset() {
	m.screen = screenInitial
	m.focus = focusDomains
	m.errText = ""
	m.before = nil
	m.after = nil
	m.result = nil
	m.domainIdx = 0
	m.changeIdx = 0
}
