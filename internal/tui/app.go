// Package tui implements the interactive catalog browser. The model
// follows the unidirectional update loop: all state lives on Model,
// I/O happens in commands, and the pure catalog/view functions do the
// actual work.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gamecrate/gamecrate/internal/config"
	"github.com/gamecrate/gamecrate/internal/db"
	"github.com/gamecrate/gamecrate/internal/library"
	"github.com/gamecrate/gamecrate/internal/models"
	"github.com/gamecrate/gamecrate/internal/script"
	"github.com/gamecrate/gamecrate/internal/view"
)

// inputMode says which text prompt, if any, owns the keyboard.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modePassword
	modeMove
)

// Model is the root TUI model.
type Model struct {
	lib *library.Library
	db  *db.DB
	cfg *config.Config

	keys   Keymap
	styles Styles

	tabs      []models.Tab
	hidden    map[string]bool
	installed map[string]bool
	counts    map[string]int
	visible   []models.Entry
	filter    view.FilterState
	total     int

	cursor   int
	tabIdx   int
	mode     inputMode
	input    textinput.Model
	status   string
	statusAt time.Time
	newBadge int
	syncing  bool

	width  int
	height int
}

// New creates the TUI model.
func New(lib *library.Library, database *db.DB, cfg *config.Config) *Model {
	input := textinput.New()
	input.CharLimit = 64

	m := &Model{
		lib:    lib,
		db:     database,
		cfg:    cfg,
		keys:   DefaultKeymap(),
		styles: DefaultStyles(),
		filter: view.DefaultFilterState(),
		input:  input,
	}

	if state, err := database.GetUserState(); err == nil {
		m.filter.SortKey = view.SortKey(state.SortKey)
		m.filter.SortDirection = view.Direction(state.SortDir)
	}

	m.refresh()
	return m
}

type syncDoneMsg struct {
	result *library.SyncResult
	err    error
}

type tickMsg time.Time

func (m *Model) syncCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.lib.Sync(context.Background())
		return syncDoneMsg{result: result, err: err}
	}
}

func (m *Model) tickCmd() tea.Cmd {
	interval := m.cfg.SyncInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the first sync and the periodic sync timer.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.syncCmd(), m.tickCmd())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// The library's guard makes an overlapping sync a no-op.
		return m, tea.Batch(m.syncCmd(), m.tickCmd())

	case syncDoneMsg:
		m.syncing = false
		m.handleSyncDone(msg)
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m *Model) handleSyncDone(msg syncDoneMsg) {
	if msg.err != nil {
		m.setStatus(m.styles.Error.Render(fmt.Sprintf("sync failed: %v", msg.err)))
		return
	}
	result := msg.result
	switch {
	case result.Skipped:
		// Another sync was already running.
	case result.FetchFailed:
		m.setStatus(m.styles.Error.Render("registry unreachable, showing cached catalog"))
	default:
		if len(result.NewlyAdded) > 0 {
			m.setStatus(m.styles.Status.Render(fmt.Sprintf("%d new entries", len(result.NewlyAdded))))
		}
		m.refresh()
	}
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		_ = m.db.UpdateSortDefaults(string(m.filter.SortKey), string(m.filter.SortDirection))
		_ = m.lib.AcknowledgeNew()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)

	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)

	case key.Matches(msg, m.keys.Toggle):
		if entry, ok := m.focused(); ok {
			m.lib.ToggleSelection(entry.ID)
		}

	case key.Matches(msg, m.keys.SelectAll):
		m.lib.SelectAllVisible(m.visible)

	case key.Matches(msg, m.keys.ClearSel):
		m.lib.DeselectAll()

	case key.Matches(msg, m.keys.Move):
		if len(m.lib.SelectedIDs()) == 0 {
			m.setStatus("nothing selected")
			break
		}
		m.openInput(modeMove, "Move selection to category: ")

	case key.Matches(msg, m.keys.Installed):
		if entry, ok := m.focused(); ok {
			if state, err := m.lib.ToggleInstalled(entry.ID); err == nil {
				if state {
					m.setStatus(fmt.Sprintf("%s marked installed", entry.DisplayName))
				} else {
					m.setStatus(fmt.Sprintf("%s unmarked", entry.DisplayName))
				}
				m.refresh()
			}
		}

	case key.Matches(msg, m.keys.OnlyInst):
		m.filter.InstalledOnly = !m.filter.InstalledOnly
		m.refresh()

	case key.Matches(msg, m.keys.Hide):
		m.toggleHiddenTab()

	case key.Matches(msg, m.keys.Unlock):
		if m.lib.Gate().IsAdmin() {
			m.lib.Gate().Logout()
			m.setStatus("admin session ended")
			m.refresh()
		} else {
			m.openInput(modePassword, "Admin password: ")
			m.input.EchoMode = textinput.EchoPassword
		}

	case key.Matches(msg, m.keys.Search):
		m.openInput(modeSearch, "Search: ")
		m.input.SetValue(m.filter.SearchQuery)

	case key.Matches(msg, m.keys.Sort):
		m.filter.SortKey = nextSortKey(m.filter.SortKey)
		m.refresh()

	case key.Matches(msg, m.keys.Direction):
		if m.filter.SortDirection == view.Ascending {
			m.filter.SortDirection = view.Descending
		} else {
			m.filter.SortDirection = view.Ascending
		}
		m.refresh()

	case key.Matches(msg, m.keys.Sync):
		if !m.syncing {
			m.syncing = true
			m.setStatus("syncing…")
			return m, m.syncCmd()
		}

	case key.Matches(msg, m.keys.CopyScript):
		m.copyScript()

	case key.Matches(msg, m.keys.Back):
		if m.filter.SearchQuery != "" {
			m.filter.SearchQuery = ""
			m.refresh()
		}
	}

	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.closeInput()
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.closeInput()
		m.submitInput(mode, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Live search narrows as you type.
	if m.mode == modeSearch {
		m.filter.SearchQuery = m.input.Value()
		m.refresh()
	}
	return m, cmd
}

func (m *Model) submitInput(mode inputMode, value string) {
	switch mode {
	case modeSearch:
		m.filter.SearchQuery = value
		m.refresh()

	case modePassword:
		if m.lib.Gate().Authenticate(value) {
			m.setStatus(m.styles.Status.Render("admin mode enabled"))
		} else {
			m.setStatus(m.styles.Error.Render("authentication rejected"))
		}
		m.refresh()

	case modeMove:
		if value == "" {
			return
		}
		changed, err := m.lib.MoveSelectedToCategory(value)
		switch {
		case err != nil:
			m.setStatus(m.styles.Error.Render(fmt.Sprintf("move failed: %v", err)))
		case changed == 0:
			m.setStatus("already in that category")
		default:
			m.setStatus(m.styles.Status.Render(fmt.Sprintf("moved %d entries to %s", changed, value)))
			m.lib.DeselectAll()
		}
		m.refresh()
	}
}

func (m *Model) openInput(mode inputMode, prompt string) {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.EchoMode = textinput.EchoNormal
	m.input.SetValue("")
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) toggleHiddenTab() {
	tab := m.activeTab()
	if tab == models.TabAll {
		m.setStatus("the all tab cannot be hidden")
		return
	}
	hidden, err := m.lib.ToggleHidden(tab)
	if err != nil {
		m.setStatus(m.styles.Error.Render(err.Error()))
		return
	}
	if hidden {
		m.setStatus(fmt.Sprintf("%s hidden", tab))
	} else {
		m.setStatus(fmt.Sprintf("%s visible", tab))
	}
	m.refresh()
}

func (m *Model) copyScript() {
	ids := m.lib.SelectedIDs()
	if len(ids) == 0 {
		if entry, ok := m.focused(); ok {
			ids = []string{entry.ID}
		}
	}
	if len(ids) == 0 {
		m.setStatus("nothing selected")
		return
	}

	opts := script.DefaultOptions()
	opts.EntryIDs = ids
	opts.DockerUser = m.cfg.Registry.Owner
	opts.RepoName = m.cfg.Registry.Repo

	text, err := script.Emit(opts)
	if err != nil {
		m.setStatus(m.styles.Error.Render(fmt.Sprintf("script: %v", err)))
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.setStatus(m.styles.Error.Render(fmt.Sprintf("clipboard: %v", err)))
		return
	}
	m.setStatus(m.styles.Status.Render(fmt.Sprintf("pull script for %d entries copied", len(ids))))
}

// refresh reloads persistent state and re-projects the visible list.
func (m *Model) refresh() {
	catalog, err := m.lib.Catalog()
	if err != nil {
		m.setStatus(m.styles.Error.Render(fmt.Sprintf("load catalog: %v", err)))
		return
	}

	m.tabs, _ = m.db.ListTabs()
	m.hidden, _ = m.db.GetHiddenCategories()
	m.installed, _ = m.db.GetInstalled()

	isAdmin := m.lib.Gate().IsAdmin()
	m.filter.ActiveTab = m.activeTab()
	m.counts = view.CountByCategory(catalog, m.hidden, isAdmin)

	p := view.Project(catalog, m.filter, m.hidden, isAdmin, m.installed)
	m.visible = p.Entries
	m.total = p.TotalCount

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	if badge, err := m.lib.NewSinceLastSeen(); err == nil {
		m.newBadge = badge
	}
}

// tabIDs returns the navigable tab ids: "all" first, then stored tabs,
// hidden ones included only for admins.
func (m *Model) tabIDs() []string {
	isAdmin := m.lib.Gate().IsAdmin()
	ids := []string{models.TabAll}
	for _, tab := range m.tabs {
		if !isAdmin && m.hidden[tab.ID] {
			continue
		}
		ids = append(ids, tab.ID)
	}
	return ids
}

func (m *Model) activeTab() string {
	ids := m.tabIDs()
	if m.tabIdx >= len(ids) {
		m.tabIdx = 0
	}
	return ids[m.tabIdx]
}

func (m *Model) cycleTab(delta int) {
	ids := m.tabIDs()
	m.tabIdx = (m.tabIdx + delta + len(ids)) % len(ids)
	m.cursor = 0
	m.refresh()
}

func (m *Model) focused() (models.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return models.Entry{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusAt = time.Now()
}

// nextSortKey cycles through the sort keys in a fixed order.
func nextSortKey(key view.SortKey) view.SortKey {
	order := []view.SortKey{view.SortByName, view.SortByTime, view.SortByCategory, view.SortBySize, view.SortByDate}
	for i, k := range order {
		if k == key {
			return order[(i+1)%len(order)]
		}
	}
	return view.SortByName
}
