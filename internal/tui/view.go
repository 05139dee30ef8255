package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pushchain/ghapk/internal/deploy"
	"github.com/pushchain/ghapk/internal/selection"
	"github.com/pushchain/ghapk/internal/ui"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	busyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63"))
	statusStyles = map[statusKind]lipgloss.Style{
		statusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		statusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		statusWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		statusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

const (
	minListWidth = 24
	headerLines  = 1
	statusLines  = 1
)

// View renders the session (Bubble Tea lifecycle)
func (m *Model) View() string {
	// Guard against zero-size render before first WindowSizeMsg
	if m.width <= 0 || m.height <= 1 {
		return ""
	}

	header := titleStyle.Render("ghapk") + " " +
		dimStyle.Render(fmt.Sprintf("%s · %d releases", m.opts.Title, m.list.Len()))

	bodyH := m.bodyHeight()
	listW := m.listWidth()
	notesW := m.width - listW
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderList(listW, bodyH),
		m.renderNotes(notesW, bodyH),
	)

	rows := []string{header, body}
	if m.run != nil {
		rows = append(rows, m.renderRun())
	}
	rows = append(rows, m.renderStatus(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) footerLines() int {
	return lipgloss.Height(m.help.View(m.keys))
}

func (m *Model) bodyHeight() int {
	h := m.height - headerLines - statusLines - m.footerLines()
	if m.run != nil {
		h--
	}
	if h < 3 {
		h = 3
	}
	return h
}

// listRows is the number of list entries visible inside the bordered pane.
func (m *Model) listRows() int {
	if rows := m.bodyHeight() - 2; rows > 0 {
		return rows
	}
	return 1
}

func (m *Model) listWidth() int {
	w := m.width / 3
	if w < minListWidth {
		w = minListWidth
	}
	if w > m.width {
		w = m.width
	}
	return w
}

func (m *Model) renderList(w, h int) string {
	innerW, rows := w-2, h-2
	if innerW < 1 {
		innerW = 1
	}
	cursor, hasCursor := m.list.Cursor()

	var b strings.Builder
	end := m.offset + rows
	if end > m.list.Len() {
		end = m.list.Len()
	}
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteString("\n")
		}
		b.WriteString(m.renderRow(m.list.Item(i), hasCursor && i == cursor, innerW))
	}
	if m.list.Len() == 0 {
		b.WriteString(dimStyle.Render("no releases"))
	}

	return paneStyle.Width(innerW).Height(rows).Render(b.String())
}

func (m *Model) renderRow(it selection.Item, selected bool, w int) string {
	marker := "  "
	if selected {
		marker = cursorStyle.Render("▸ ")
	}

	state := "  "
	if it.Status == selection.InProgress {
		state = busyStyle.Render(m.spinner.View() + " ")
	}

	title := it.Title
	if !it.HasAsset() {
		title = dimStyle.Render(title)
	} else if selected {
		title = cursorStyle.Render(title)
	}

	badge := ""
	if m.opts.Latest != "" && it.Tag == m.opts.Latest {
		badge = " " + badgeStyle.Render("latest")
	}

	return ansi.Truncate(marker+state+title+badge, w, "…")
}

func (m *Model) renderNotes(w, h int) string {
	innerW, innerH := w-2, h-2
	if innerW < 1 {
		innerW = 1
	}

	it, ok := m.list.Current()
	content := ""
	if ok {
		content = it.Title + "\x00" + it.Notes
	}

	return m.notes.render(content, innerW, innerH, func() string {
		var text string
		switch {
		case !ok:
			text = dimStyle.Render("Select a release to read its notes")
		case strings.TrimSpace(it.Notes) == "":
			text = titleStyle.Render(it.Title) + "\n\n" + dimStyle.Render("No release notes")
		default:
			text = titleStyle.Render(it.Title) + "\n\n" + it.Notes
		}
		wrapped := lipgloss.NewStyle().Width(innerW).Render(text)
		lines := strings.Split(wrapped, "\n")
		if len(lines) > innerH {
			lines = lines[:innerH]
		}
		return paneStyle.Width(innerW).Height(innerH).Render(strings.Join(lines, "\n"))
	})
}

func (m *Model) renderRun() string {
	r := m.run
	line := m.spinner.View() + " " + stageLabel(r.stage) + " " + r.title
	if r.stage == deploy.StageDownload {
		if r.total > 0 {
			m.progress.Width = m.width / 3
			pct := float64(r.downloaded) / float64(r.total)
			line += "  " + m.progress.ViewAs(pct) + "  " +
				dimStyle.Render(ui.FormatBytes(r.downloaded)+" / "+ui.FormatBytes(r.total))
		} else if r.downloaded > 0 {
			line += "  " + dimStyle.Render(ui.FormatBytes(r.downloaded))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func stageLabel(s deploy.Stage) string {
	switch s {
	case deploy.StageResolve:
		return "Resolving"
	case deploy.StageDownload:
		return "Downloading"
	case deploy.StageTransfer:
		return "Pushing"
	case deploy.StageInstall:
		return "Installing"
	default:
		return "Finishing"
	}
}

func (m *Model) renderStatus() string {
	if m.status.kind == statusNone {
		return ""
	}
	return statusStyles[m.status.kind].MaxWidth(m.width).Render(m.status.text)
}
