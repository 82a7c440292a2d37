package ui

import (
	"github.com/atomicstack/gallery-tui/internal/logging/events"
	uistate "github.com/atomicstack/gallery-tui/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	switch m.focus {
	case focusQuery:
		return m.handleQueryKey(keyMsg)
	case focusUpload:
		return m.handleUploadKey(keyMsg)
	}
	return m.handleGridKey(keyMsg)
}

func (m *Model) handleQueryKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		cmd := m.submitSearch()
		m.setFocus(focusGrid)
		return cmd
	case tea.KeyEsc:
		if _, searching := m.session.Active().(uistate.Searching); searching {
			m.clearSearch()
		}
		m.setFocus(focusGrid)
		return nil
	}
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return cmd
}

func (m *Model) handleUploadKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.setFocus(focusGrid)
		return m.submitUpload()
	case tea.KeyEsc:
		m.uploadInput.SetValue("")
		m.setFocus(focusGrid)
		return nil
	}
	var cmd tea.Cmd
	m.uploadInput, cmd = m.uploadInput.Update(msg)
	return cmd
}

func (m *Model) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.setFocus(focusQuery)
	case key.Matches(msg, m.keys.Clear):
		if _, searching := m.session.Active().(uistate.Searching); searching {
			m.clearSearch()
		}
	case key.Matches(msg, m.keys.Upload):
		if m.upload.InFlight() {
			m.setInfo("upload in progress")
			return nil
		}
		m.setFocus(focusUpload)
	case key.Matches(msg, m.keys.Reload):
		return m.loadCatalog()
	case key.Matches(msg, m.keys.LimitUp):
		m.changeLimit(1)
	case key.Matches(msg, m.keys.LimitDown):
		m.changeLimit(-1)
	case key.Matches(msg, m.keys.PrevPage):
		m.setPage(m.pager.Page() - 1)
	case key.Matches(msg, m.keys.NextPage):
		m.setPage(m.pager.Page() + 1)
	case key.Matches(msg, m.keys.FirstPage):
		m.setPage(1)
	case key.Matches(msg, m.keys.LastPage):
		m.setPage(m.pager.TotalPages(m.catalog.Len()))
	case key.Matches(msg, m.keys.JumpPage):
		if runes := msg.Runes; len(runes) == 1 {
			m.setPage(int(runes[0] - '0'))
		}
	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.ScrollBy(-1, len(m.gridRows()), m.visibleRows())
	case key.Matches(msg, m.keys.ScrollDn):
		m.viewport.ScrollBy(1, len(m.gridRows()), m.visibleRows())
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return nil
}

func (m *Model) setFocus(target focusTarget) {
	if m.focus == target {
		return
	}
	m.query.Blur()
	m.uploadInput.Blur()
	switch target {
	case focusQuery:
		m.query.Focus()
	case focusUpload:
		m.uploadInput.Focus()
	}
	m.focus = target
	events.UI.Focus(target.String())
}

// setPage moves the browse list to page n and scrolls to the top. Search
// results are not paginated, so page changes are ignored while searching.
func (m *Model) setPage(n int) bool {
	if _, browsing := m.session.Active().(uistate.Browsing); !browsing {
		return false
	}
	total := m.catalog.Len()
	if !m.pager.SetPage(n, total) {
		events.Page.Rejected(n, m.pager.TotalPages(total))
		return false
	}
	events.Page.Set(n, m.pager.TotalPages(total))
	m.viewport.Home()
	return true
}

// resetPage re-clamps to page 1 whenever the active list changes identity.
func (m *Model) resetPage(reason string) {
	m.pager.Reset()
	m.viewport.Home()
	events.Page.Reset(reason)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	m.query.Width = m.inputWidth(m.query.Prompt)
	m.uploadInput.Width = m.inputWidth(m.uploadInput.Prompt)
	m.viewport.Clamp(len(m.gridRows()), m.visibleRows())
	events.UI.Resize(m.width, m.height)
	return nil
}

func (m *Model) inputWidth(prompt string) int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - len([]rune(prompt)) - 1
	if w < 1 {
		return 1
	}
	return w
}
