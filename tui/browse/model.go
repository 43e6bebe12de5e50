// Package browse is the home view: a row of feed threads, a row of
// favourites and a row of settings.
package browse

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/chantv/app"
	"github.com/CrestNiraj12/chantv/feed"
	"github.com/CrestNiraj12/chantv/infra/launcher"
	"github.com/CrestNiraj12/chantv/tui/common"
)

type row int

const (
	rowThreads row = iota
	rowFavourites
	rowSettings
	rowCount
)

type setting int

const (
	settingRestoreHidden setting = iota
	settingClearFavourites
	settingCloseApp
	settingCount
)

// QuitMsg asks the root model to shut down.
type QuitMsg struct{}

// Model holds the browse view state. The feed controller is owned here and
// receives every non-key message.
type Model struct {
	feed     feed.Controller
	linker   app.Linker
	launcher *launcher.Launcher
	board    string

	keys    common.KeyMap
	spinner spinner.Model

	row          row
	cursors      [rowCount]int
	width        int
	height       int
	showAllHints bool
}

// New wraps a controller in a browse view.
func New(ctrl feed.Controller, linker app.Linker, l *launcher.Launcher, board string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	return Model{
		feed:     ctrl,
		linker:   linker,
		launcher: l,
		board:    board,
		keys:     common.DefaultKeyMap(),
		spinner:  s,
		width:    80,
	}
}

// Init starts the controller and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.feed.Init(), m.spinner.Tick)
}

// Controller exposes the feed controller for the root model and tests.
func (m Model) Controller() feed.Controller {
	return m.feed
}

// Close releases the controller's store subscriptions.
func (m Model) Close() {
	m.feed.Close()
}

// SetSize records the terminal size used by View.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Notice is the controller's latest status line message. isErr marks
// failures so the root model can style them.
func (m Model) Notice() (text string, isErr bool) {
	text = m.feed.Notice()
	isErr = m.feed.State() == feed.StateError || text == feed.NoticeMediaError
	return text, isErr
}

func (m Model) rowLen(r row) int {
	switch r {
	case rowThreads:
		return len(m.feed.Displayed())
	case rowFavourites:
		return len(m.feed.Favourites())
	case rowSettings:
		return int(settingCount)
	}
	return 0
}

// clamp keeps every row cursor inside its row after the rows changed.
func (m *Model) clamp() {
	for r := row(0); r < rowCount; r++ {
		n := m.rowLen(r)
		m.cursors[r] = max(0, min(m.cursors[r], n-1))
	}
}

// selectionMsg describes the focused feed item, or the zero value when focus
// is outside the threads row.
func (m Model) selectionMsg() feed.SelectMsg {
	if m.row != rowThreads {
		return feed.SelectMsg{}
	}
	items := m.feed.Displayed()
	if len(items) == 0 {
		return feed.SelectMsg{}
	}
	it := items[m.cursors[rowThreads]]
	if it.Placeholder {
		return feed.SelectMsg{Placeholder: true}
	}
	return feed.SelectMsg{No: it.Thread.No}
}

// Rebuild swaps in a fresh controller, keeping the row cursors where they
// were. The caller closes the previous controller.
func (m Model) Rebuild(ctrl feed.Controller) (Model, tea.Cmd) {
	m.feed = ctrl
	start := m.Init()
	m, sync := m.dispatch(nil)
	return m, tea.Batch(start, sync)
}
