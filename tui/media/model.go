// Package media steps through one thread's media list and hands the
// current item to the launcher.
package media

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chantv/app"
	"github.com/CrestNiraj12/chantv/domain"
	"github.com/CrestNiraj12/chantv/feed"
	"github.com/CrestNiraj12/chantv/infra/launcher"
	"github.com/CrestNiraj12/chantv/store"
	"github.com/CrestNiraj12/chantv/tui/common"
)

// ClosedMsg is sent when the user leaves the media view.
type ClosedMsg struct {
	ThreadNo int64
	Index    int
}

type Model struct {
	thread    domain.Thread
	items     []domain.Media
	index     int
	positions *store.ThreadPositions
	linker    app.Linker
	launcher  *launcher.Launcher
	keys      common.KeyMap
	width     int
}

// New opens the media list announced by open at its start index.
func New(open feed.OpenMediaMsg, positions *store.ThreadPositions, linker app.Linker, l *launcher.Launcher) Model {
	index := 0
	if len(open.Media) > 0 {
		index = max(0, min(open.Start, len(open.Media)-1))
	}
	return Model{
		thread:    open.Thread,
		items:     open.Media,
		index:     index,
		positions: positions,
		linker:    linker,
		launcher:  l,
		keys:      common.DefaultKeyMap(),
		width:     80,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Index is the current position in the media list.
func (m Model) Index() int { return m.index }

func (m Model) Thread() domain.Thread { return m.thread }

func (m Model) SetSize(width int) Model {
	m.width = width
	return m
}

// SavePosition remembers the current index for the thread.
func (m Model) SavePosition() {
	if m.positions == nil {
		return
	}
	m.positions.Save(m.thread.No, m.index)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Left), key.Matches(keyMsg, m.keys.Up):
		if m.index > 0 {
			m.index--
		}
	case key.Matches(keyMsg, m.keys.Right), key.Matches(keyMsg, m.keys.Down):
		if m.index < len(m.items)-1 {
			m.index++
		}
	case key.Matches(keyMsg, m.keys.Select):
		if len(m.items) == 0 || m.launcher == nil {
			return m, nil
		}
		return m, m.launcher.Play(m.linker.MediaURL(m.items[m.index]))
	case key.Matches(keyMsg, m.keys.Open):
		if m.launcher == nil {
			return m, nil
		}
		return m, m.launcher.Open(m.linker.ThreadURL(m.thread.No))
	case key.Matches(keyMsg, m.keys.Back), key.Matches(keyMsg, m.keys.Quit):
		m.SavePosition()
		closed := ClosedMsg{ThreadNo: m.thread.No, Index: m.index}
		return m, func() tea.Msg { return closed }
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render(common.Truncate(common.CardTitle(m.thread), max(m.width-4, 10))))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString("  " + common.DimStyle.Render(feed.NoticeNoMedia) + "\n")
	} else {
		cur := m.items[m.index]
		b.WriteString(fmt.Sprintf("  %s %s\n",
			common.CardTitleStyle.Render(fmt.Sprintf("%d/%d", m.index+1, len(m.items))),
			common.Truncate(cur.Name(), max(m.width-12, 10))))
		if cur.Width > 0 && cur.Height > 0 {
			b.WriteString(fmt.Sprintf("  %s\n", common.ContentStyle.Render(fmt.Sprintf("%dx%d", cur.Width, cur.Height))))
		}
		if m.linker != nil {
			b.WriteString("  " + common.DimStyle.Render(common.Truncate(m.linker.MediaURL(cur), max(m.width-4, 10))) + "\n")
		}
	}

	hints := []key.Binding{m.keys.Left, m.keys.Right, m.keys.Select, m.keys.Open, m.keys.Back}
	b.WriteString(common.StatusBarStyle.Width(max(m.width-2, 16)).Render("  " + common.HelpLine(hints)))
	return b.String()
}
