package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"prefdiff/internal/command"
	"prefdiff/internal/diff"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case captureDoneMsg:
		return m.handleCaptureDone(msg)

	case statusTickMsg:
		// Redraw only; the view drops expired statuses on its own.
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		m.reset()
		cmd := m.setStatus(statusInfo, "Reset complete")
		return m, cmd

	case "enter":
		return m.handleEnter()

	case "up", "k":
		m.moveUp()
		return m, nil

	case "down", "j":
		m.moveDown()
		return m, nil

	case "tab":
		if m.screen == screenDiffView {
			if m.focus == focusDomains {
				m.focus = focusChanges
			} else {
				m.focus = focusDomains
			}
		}
		return m, nil

	case "y":
		return m.handleCopy()
	}

	return m, nil
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenInitial:
		m.screen = screenLoadingFirst
		status := m.setStatus(statusInfo, "Capturing defaults... This may take a few seconds")
		return m, tea.Batch(status, m.captureCmd())

	case screenWaitingForChanges:
		m.screen = screenLoadingSecond
		status := m.setStatus(statusInfo, "Capturing defaults and detecting changes...")
		return m, tea.Batch(status, m.captureCmd())

	case screenError:
		m.reset()
		return m, nil
	}

	return m, nil
}

func (m Model) handleCaptureDone(msg captureDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("Snapshot capture failed", zap.Error(msg.err))
		m.screen = screenError
		m.errText = fmt.Sprintf("Failed to capture snapshot: %v", msg.err)
		return m, nil
	}

	switch m.screen {
	case screenLoadingFirst:
		m.before = msg.snapshot
		m.screen = screenWaitingForChanges
		cmd := m.setStatus(statusSuccess,
			fmt.Sprintf("Captured %d domains successfully", msg.snapshot.DomainCount()))
		return m, cmd

	case screenLoadingSecond:
		m.after = msg.snapshot
		result := diff.Detect(m.before, m.after)
		m.result = &result
		m.screen = screenDiffView
		m.domainIdx = 0
		m.changeIdx = 0

		if result.TotalChanges == 0 {
			cmd := m.setStatus(statusWarning, "No changes detected")
			return m, cmd
		}
		plural := "s"
		if result.TotalChanges == 1 {
			plural = ""
		}
		cmd := m.setStatus(statusSuccess,
			fmt.Sprintf("Found %d change%s", result.TotalChanges, plural))
		return m, cmd
	}

	return m, nil
}

// handleCopy copies the generated command for the selected change. Only
// meaningful with the changes pane focused in the diff view.
func (m Model) handleCopy() (tea.Model, tea.Cmd) {
	if m.screen != screenDiffView || m.focus != focusChanges {
		return m, nil
	}
	change := m.selectedChange()
	if change == nil {
		return m, nil
	}

	text := command.Generate(*change)
	if err := clipboard.WriteAll(text); err != nil {
		m.logger.Warn("Clipboard copy failed", zap.Error(err))
		cmd := m.setStatus(statusWarning, "Failed to copy to clipboard")
		return m, cmd
	}

	cmd := m.setStatus(statusSuccess, "Command copied to clipboard")
	return m, cmd
}

func (m *Model) moveUp() {
	if m.screen != screenDiffView {
		return
	}
	switch m.focus {
	case focusDomains:
		if m.domainIdx > 0 {
			m.domainIdx--
			m.changeIdx = 0
		}
	case focusChanges:
		if m.changeIdx > 0 {
			m.changeIdx--
		}
	}
}

func (m *Model) moveDown() {
	if m.screen != screenDiffView || m.result == nil {
		return
	}
	switch m.focus {
	case focusDomains:
		if m.domainIdx < len(m.result.Diffs)-1 {
			m.domainIdx++
			m.changeIdx = 0
		}
	case focusChanges:
		if dd := m.selectedDomain(); dd != nil && m.changeIdx < len(dd.Changes)-1 {
			m.changeIdx++
		}
	}
}
