package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gamecrate/gamecrate/internal/models"
	"github.com/gamecrate/gamecrate/internal/view"
)

// View renders the full screen.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m *Model) renderHeader() string {
	title := fmt.Sprintf("GAMECRATE  %s/%s", m.cfg.Registry.Owner, m.cfg.Registry.Repo)

	extras := []string{}
	if m.newBadge > 0 {
		extras = append(extras, m.styles.Badge.Render(fmt.Sprintf("NEW %d", m.newBadge)))
	}
	if m.lib.Gate().IsAdmin() {
		extras = append(extras, m.styles.Status.Render("ADMIN"))
	}
	if m.syncing || m.lib.Syncing() {
		extras = append(extras, m.styles.Muted.Render("syncing…"))
	}

	line := m.styles.Header.Render(title)
	if len(extras) > 0 {
		line += "  " + strings.Join(extras, "  ")
	}
	return line
}

func (m *Model) renderTabs() string {
	active := m.activeTab()
	parts := make([]string, 0, len(m.tabs)+1)

	for _, id := range m.tabIDs() {
		label := fmt.Sprintf("%s (%d)", tabName(id, m.tabs), m.counts[id])
		style := m.styles.TabIdle
		if m.hidden[id] {
			style = m.styles.TabHidden
		}
		if id == active {
			style = m.styles.TabActive
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderList() string {
	if len(m.visible) == 0 {
		return m.styles.Muted.Render("  no entries — press s to sync")
	}

	rows := make([]string, 0, len(m.visible))
	maxRows := m.height - 8
	if maxRows < 5 {
		maxRows = len(m.visible)
	}

	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(m.visible) && i < start+maxRows; i++ {
		entry := m.visible[i]

		marks := " "
		if m.installed[entry.Key()] {
			marks = "✓"
		}
		sel := " "
		if m.lib.IsSelected(entry.ID) {
			sel = "●"
		}

		row := fmt.Sprintf(" %s%s %-32s %-12s %10s %8s  %s",
			sel, marks,
			truncate(entry.DisplayName, 32),
			truncate(categoryLabel(entry), 12),
			sizeLabel(entry.SizeGB),
			hoursLabel(entry.Hours),
			dateLabel(entry.DateAdded))

		style := m.styles.Row
		if i == m.cursor {
			style = m.styles.RowFocused
		} else if m.lib.IsSelected(entry.ID) {
			style = m.styles.RowSelected
		}
		rows = append(rows, style.Render(row))
	}

	return strings.Join(rows, "\n")
}

func (m *Model) renderFooter() string {
	if m.mode != modeBrowse {
		return m.styles.Prompt.Render(m.input.View())
	}

	left := fmt.Sprintf("%d/%d  sort: %s %s", len(m.visible), m.total, m.filter.SortKey, directionArrow(m.filter.SortDirection))
	if m.filter.InstalledOnly {
		left += "  [installed]"
	}
	if q := m.filter.SearchQuery; q != "" {
		left += fmt.Sprintf("  search: %q", q)
	}
	if sel := len(m.lib.SelectedIDs()); sel > 0 {
		left += fmt.Sprintf("  selected: %d", sel)
	}

	lines := m.styles.Muted.Render(left) + "\n" + m.styles.Muted.Render(m.keys.HelpText())
	if m.status != "" && time.Since(m.statusAt) < 5*time.Second {
		lines += "\n" + m.status
	}
	return lines
}

func tabName(id string, tabs []models.Tab) string {
	for _, tab := range tabs {
		if tab.ID == id {
			if tab.Icon != "" {
				return tab.Icon + " " + tab.Name
			}
			return tab.Name
		}
	}
	if id == models.TabAll {
		return "All"
	}
	return id
}

func categoryLabel(entry models.Entry) string {
	if entry.Category == "" {
		return "-"
	}
	return entry.Category
}

func sizeLabel(size *float64) string {
	if size == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f GB", *size)
}

func hoursLabel(hours *float64) string {
	if hours == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f h", *hours)
}

func dateLabel(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02")
}

func directionArrow(d view.Direction) string {
	if d == view.Descending {
		return "↓"
	}
	return "↑"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
