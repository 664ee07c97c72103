package tui

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"prefdiff/internal/command"
	"prefdiff/internal/diff"
	"prefdiff/internal/prefs"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.Color("6"))

	selectedStyle = lipgloss.NewStyle().Reverse(true)

	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	statusStyles = map[statusKind]lipgloss.Style{
		statusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		statusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		statusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenInitial:
		body = m.viewInitial()
	case screenLoadingFirst:
		body = "Capturing first snapshot..."
	case screenWaitingForChanges:
		body = m.viewWaiting()
	case screenLoadingSecond:
		body = "Capturing second snapshot and detecting changes..."
	case screenDiffView:
		body = m.viewDiff()
	case screenError:
		body = errStyle.Render(m.errText) + "\n\n" + helpStyle.Render("enter: reset  q: quit")
	}

	out := titleStyle.Render("prefdiff") + "\n\n" + body
	if line := m.statusLine(); line != "" {
		out += "\n" + line
	}
	return out
}

func (m Model) viewInitial() string {
	lines := []string{
		"Diff your macOS defaults in four steps:",
		"",
		"  1. Press Enter to capture the first snapshot",
		"  2. Change settings in System Settings or any app",
		"  3. Press Enter again to capture the second snapshot",
		"  4. Browse the changes and copy defaults commands",
		"",
		helpStyle.Render("enter: capture  q: quit"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewWaiting() string {
	captured := ""
	if m.before != nil {
		captured = fmt.Sprintf("First snapshot captured (%d domains, %d keys).",
			m.before.DomainCount(), m.before.KeyCount())
	}
	return captured + "\n\nMake your changes, then press Enter to capture the second snapshot.\n\n" +
		helpStyle.Render("enter: capture  r: reset  q: quit")
}

func (m Model) viewDiff() string {
	if m.result == nil || len(m.result.Diffs) == 0 {
		return "No changes detected between the two snapshots.\n\n" +
			helpStyle.Render("r: reset  q: quit")
	}

	width := m.width
	if width <= 0 {
		width = 100
	}
	domainsWidth := width / 3
	changesWidth := width - domainsWidth - 6

	domains := m.renderDomains(domainsWidth)
	changes := m.renderChanges(changesWidth)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, domains, changes)
	preview := m.renderPreview(width - 4)
	help := helpStyle.Render("j/k: move  tab: switch pane  y: copy command  r: reset  q: quit")

	return panes + "\n" + preview + "\n" + help
}

func (m Model) renderDomains(width int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Domains (%d)\n", len(m.result.Diffs)))

	for i, dd := range m.result.Diffs {
		line := fmt.Sprintf("%s (%d)", dd.Domain, len(dd.Changes))
		line = runewidth.Truncate(line, width-2, "…")
		if i == m.domainIdx {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	style := paneStyle
	if m.focus == focusDomains {
		style = focusedPaneStyle
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderChanges(width int) string {
	var b strings.Builder
	b.WriteString("Changes (y to copy)\n")

	if dd := m.selectedDomain(); dd != nil {
		for i, c := range dd.Changes {
			line := changeLine(c, width-2)
			if i == m.changeIdx && m.focus == focusChanges {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	style := paneStyle
	if m.focus == focusChanges {
		style = focusedPaneStyle
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// changeLine formats one change row: a type marker, the key, and a short
// value preview. Truncation counts display cells, never splitting a rune.
func changeLine(c diff.Change, width int) string {
	var marker, detail string
	switch c.Type {
	case diff.Added:
		marker = addedStyle.Render("+")
		detail = previewValue(c.New)
	case diff.Removed:
		marker = removedStyle.Render("-")
		detail = previewValue(c.Old)
	case diff.Modified:
		marker = modifiedStyle.Render("~")
		detail = previewValue(c.Old) + " → " + previewValue(c.New)
	}
	return marker + " " + runewidth.Truncate(c.Key+" = "+detail, width, "…")
}

// previewValue renders a short single-line form of a value for list rows.
func previewValue(v prefs.Value) string {
	switch t := v.(type) {
	case prefs.Boolean:
		if t {
			return "true"
		}
		return "false"
	case prefs.Integer:
		return strconv.FormatInt(int64(t), 10)
	case prefs.Real:
		return strconv.FormatFloat(float64(t), 'f', -1, 64)
	case prefs.Text:
		return strconv.Quote(runewidth.Truncate(string(t), 40, "…"))
	case prefs.Binary:
		if len(t) > 8 {
			return fmt.Sprintf("<%d bytes>", len(t))
		}
		return "0x" + hex.EncodeToString(t)
	case prefs.Array:
		return fmt.Sprintf("[%d items]", len(t))
	case prefs.Dictionary:
		return fmt.Sprintf("{%d keys}", len(t))
	case prefs.Timestamp:
		return time.Time(t).UTC().Format("2006-01-02 15:04:05")
	case prefs.Reference:
		return fmt.Sprintf("uid(%d)", uint64(t))
	default:
		return "<unsupported>"
	}
}

func (m Model) renderPreview(width int) string {
	var text string
	if c := m.selectedChange(); c != nil {
		text = runewidth.Truncate(command.Generate(*c), min(width, m.cfg.PreviewMaxWidth), "…")
	}
	return paneStyle.Width(width).Render("Command Preview (y to copy)\n" + text)
}

func (m Model) statusLine() string {
	if !m.status.active(m.cfg.StatusTTL) {
		return ""
	}
	return statusStyles[m.status.kind].Render(m.status.text)
}
