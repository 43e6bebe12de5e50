package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chantv/app"
	"github.com/CrestNiraj12/chantv/feed"
	"github.com/CrestNiraj12/chantv/infra/launcher"
	"github.com/CrestNiraj12/chantv/store"
	"github.com/CrestNiraj12/chantv/tui/browse"
	"github.com/CrestNiraj12/chantv/tui/common"
	"github.com/CrestNiraj12/chantv/tui/media"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Source     app.ThreadSource
	Linker     app.Linker
	Favourites *store.Favourites
	Hidden     *store.HiddenThreads
	Positions  *store.ThreadPositions
	Launcher   *launcher.Launcher
	Feed       feed.Config
	Board      string
}

type activeView int

const (
	browseView activeView = iota
	mediaView
)

// App is the root Bubble Tea model. It routes between sub-views and owns the
// session cache that outlives each feed controller.
type App struct {
	deps    Deps
	session *feed.SessionCache
	active  activeView
	browse  browse.Model
	media   media.Model
	keys    common.KeyMap
	status  string // Transient launcher outcome
	isErr   bool
	width   int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	a := App{
		deps:    deps,
		session: feed.NewSessionCache(),
		active:  browseView,
		keys:    common.DefaultKeyMap(),
	}
	a.browse = browse.New(a.newController(), deps.Linker, deps.Launcher, deps.Board)
	return a
}

func (a App) newController() feed.Controller {
	return feed.New(feed.Deps{
		Source:     a.deps.Source,
		Favourites: a.deps.Favourites,
		Hidden:     a.deps.Hidden,
		Positions:  a.deps.Positions,
		Session:    a.session,
	}, a.deps.Feed)
}

func (a App) Init() tea.Cmd {
	return a.browse.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		a.status = ""
		if key.Matches(msg, a.keys.ForceQuit) {
			return a.quit()
		}
		if a.active == mediaView {
			var cmd tea.Cmd
			a.media, cmd = a.media.Update(msg)
			return a, cmd
		}
		if key.Matches(msg, a.keys.Quit) {
			return a.quit()
		}
		var cmd tea.Cmd
		a.browse, cmd = a.browse.Update(msg)
		return a, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.media = a.media.SetSize(msg.Width)
		var cmd tea.Cmd
		a.browse, cmd = a.browse.Update(msg)
		return a, cmd

	case browse.QuitMsg:
		return a.quit()

	case feed.OpenMediaMsg:
		a.media = media.New(msg, a.deps.Positions, a.deps.Linker, a.deps.Launcher).SetSize(a.width)
		a.active = mediaView
		a.status = ""
		return a, a.media.Init()

	case media.ClosedMsg:
		a.active = browseView
		// A fresh controller restores from the session cache, or refetches
		// once the cache has gone stale while the media view was open.
		a.browse.Close()
		var cmd tea.Cmd
		a.browse, cmd = a.browse.Rebuild(a.newController())
		return a, cmd

	case launcher.FinishedMsg:
		if msg.Err != nil {
			a.status = "Error: " + msg.Err.Error()
			a.isErr = true
		} else {
			a.status = "Opened " + msg.URL
			a.isErr = false
		}
		return a, nil
	}

	// The controller keeps receiving fetch results and timers while the
	// media view is on top.
	var cmd tea.Cmd
	a.browse, cmd = a.browse.Update(msg)
	return a, cmd
}

func (a App) quit() (tea.Model, tea.Cmd) {
	if a.active == mediaView {
		a.media.SavePosition()
	}
	a.browse.Close()
	return a, tea.Quit
}

// View renders the active sub-model.
func (a App) View() string {
	var s string
	switch a.active {
	case browseView:
		s = a.browse.View()
	case mediaView:
		s = a.media.View()
	}

	text, isErr := a.status, a.isErr
	if text == "" {
		text, isErr = a.browse.Notice()
	}
	if text != "" {
		style := common.SuccessStyle
		if isErr {
			style = common.ErrorStyle
		}
		s += "\n" + common.StatusBarStyle.Render("  "+style.Render(text))
	}
	return s
}
