package browse

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chantv/domain"
	"github.com/CrestNiraj12/chantv/feed"
)

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.dispatch(msg)
}

// dispatch hands msg to the controller, then reconciles the cursors and the
// controller's idea of the selection with the new rows.
func (m Model) dispatch(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.feed, cmd = m.feed.Update(msg)
	m.clamp()
	var sync tea.Cmd
	m.feed, sync = m.feed.Update(m.selectionMsg())
	return m, tea.Batch(cmd, sync)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showAllHints {
		if key.Matches(msg, m.keys.ToggleHints) || key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Select) {
			m.showAllHints = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showAllHints = true
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.cursors[m.row] > 0 {
			m.cursors[m.row]--
		}
		return m.dispatch(nil)

	case key.Matches(msg, m.keys.Right):
		if m.cursors[m.row] < m.rowLen(m.row)-1 {
			m.cursors[m.row]++
		}
		return m.dispatch(nil)

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
		return m.dispatch(nil)

	case key.Matches(msg, m.keys.Down):
		if m.row < rowCount-1 {
			m.row++
		}
		return m.dispatch(nil)

	case key.Matches(msg, m.keys.Select):
		if m.row == rowSettings {
			return m.runSetting(setting(m.cursors[rowSettings]))
		}
		if t, ok := m.focusedThread(); ok {
			return m.dispatch(feed.ActivateMsg{Thread: t})
		}

	case key.Matches(msg, m.keys.Favourite):
		if t, ok := m.focusedThread(); ok {
			return m.dispatch(feed.ToggleFavouriteMsg{Thread: t})
		}

	case key.Matches(msg, m.keys.Hide):
		if m.row != rowThreads {
			return m, nil
		}
		if t, ok := m.focusedThread(); ok {
			return m.dispatch(feed.HideMsg{Thread: t})
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.feed.Loading() {
			return m, nil
		}
		m.cursors[rowThreads] = 0
		return m.dispatch(feed.RefreshMsg{})

	case key.Matches(msg, m.keys.LoadMore):
		return m.dispatch(feed.LoadMoreMsg{})

	case key.Matches(msg, m.keys.Open):
		if t, ok := m.focusedThread(); ok && m.launcher != nil && m.linker != nil {
			return m, m.launcher.Open(m.linker.ThreadURL(t.No))
		}

	case key.Matches(msg, m.keys.Thumbnail):
		t, ok := m.focusedThread()
		if ok && t.HasThumbnail() && m.launcher != nil && m.linker != nil {
			return m, m.launcher.Open(m.linker.ThumbnailURL(t.Tim))
		}
	}
	return m, nil
}

func (m Model) runSetting(s setting) (Model, tea.Cmd) {
	switch s {
	case settingRestoreHidden:
		return m.dispatch(feed.RestoreHiddenMsg{})
	case settingClearFavourites:
		return m.dispatch(feed.ClearFavouritesMsg{})
	case settingCloseApp:
		return m, func() tea.Msg { return QuitMsg{} }
	}
	return m, nil
}

// focusedThread is the thread card under the cursor in the threads or
// favourites row. The placeholder is not a thread.
func (m Model) focusedThread() (domain.Thread, bool) {
	switch m.row {
	case rowThreads:
		items := m.feed.Displayed()
		if len(items) == 0 {
			return domain.Thread{}, false
		}
		it := items[m.cursors[rowThreads]]
		return it.Thread, !it.Placeholder
	case rowFavourites:
		favs := m.feed.Favourites()
		if len(favs) == 0 {
			return domain.Thread{}, false
		}
		return favs[m.cursors[rowFavourites]], true
	}
	return domain.Thread{}, false
}
