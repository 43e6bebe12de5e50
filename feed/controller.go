package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chantv/domain"
)

// New builds a controller. When the session cache is fresh the feed is
// restored from it without fetching; otherwise the first page is requested
// by Init.
func New(deps Deps, cfg Config) Controller {
	cfg = cfg.withDefaults()
	c := Controller{
		deps: deps,
		cfg:  cfg,
		log:  cfg.Logger.With("component", "feed"),
		gen:  generations.Add(1),
	}
	if deps.Favourites != nil {
		c.favSub = deps.Favourites.Subscribe()
	}
	if deps.Hidden != nil {
		c.hiddenSub = deps.Hidden.Subscribe()
	}

	if deps.Session.IsFresh(cfg.Now(), cfg.SessionTTL) {
		c.threads, c.cursor = deps.Session.Snapshot()
		c.state = StateIdle
		c.log.Debug("restored feed from session", "threads", len(c.threads), "cursor", c.cursor)
	} else {
		deps.Session.Clear()
		c.cursor = 0
		c.state = StateLoadingInitial
		c.reqSeq++
	}
	c.refreshFavourites()
	c.refilter()
	return c
}

// Init issues the first page fetch, if one is needed, and starts listening
// for store changes.
func (c Controller) Init() tea.Cmd {
	return tea.Batch(
		c.pendingFetch(),
		listen(c.favSub, c.gen),
		listen(c.hiddenSub, c.gen),
	)
}

// Close stops the store subscriptions opened by New.
func (c Controller) Close() {
	if c.favSub != nil {
		c.deps.Favourites.Unsubscribe(c.favSub)
	}
	if c.hiddenSub != nil {
		c.deps.Hidden.Unsubscribe(c.hiddenSub)
	}
}

// Displayed returns the visible threads, followed by the loading placeholder
// while a further page is being fetched.
func (c Controller) Displayed() []Item {
	items := make([]Item, 0, len(c.visible)+1)
	for _, t := range c.visible {
		items = append(items, Item{Thread: t})
	}
	if c.state == StateLoadingMore {
		items = append(items, Item{Placeholder: true})
	}
	return items
}

// Favourites returns favourite threads, newest first.
func (c Controller) Favourites() []domain.Thread {
	return c.favourites
}

func (c Controller) HiddenCount() int { return c.hiddenCount }

func (c Controller) State() State { return c.state }

// NoMore reports whether the feed is exhausted for this session.
func (c Controller) NoMore() bool { return c.noMore }

// Cursor is the offset of the next page request.
func (c Controller) Cursor() int { return c.cursor }

// Notice is the latest one-line message for the status bar.
func (c Controller) Notice() string { return c.notice }

func (c Controller) Loading() bool { return c.loading() }

func (c Controller) IsFavourite(no int64) bool {
	return c.deps.Favourites != nil && c.deps.Favourites.IsFavourite(no)
}

func (c Controller) loading() bool {
	return c.state == StateLoadingInitial || c.state == StateLoadingMore
}

// refilter recomputes the displayed threads from the authoritative
// collection. The collection and cursor are left untouched.
func (c *Controller) refilter() {
	c.visible = Visible(c.threads, c.hiddenSet())
	c.hiddenCount = 0
	if c.deps.Hidden != nil {
		c.hiddenCount = c.deps.Hidden.Count()
	}
	c.onLast = c.selectionIsLast()
}

func (c Controller) hiddenSet() HiddenSet {
	if c.deps.Hidden == nil {
		return nil
	}
	return c.deps.Hidden
}

func (c *Controller) refreshFavourites() {
	if c.deps.Favourites == nil {
		c.favourites = nil
		return
	}
	c.favourites = c.deps.Favourites.Threads()
}

func (c Controller) selectionIsLast() bool {
	if !c.selected.valid || c.selected.placeholder || len(c.visible) == 0 {
		return false
	}
	return c.visible[len(c.visible)-1].No == c.selected.no
}
