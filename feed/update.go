package feed

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chantv/store"
)

func (c Controller) Update(msg tea.Msg) (Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case SelectMsg:
		return c.handleSelect(msg)

	case autoLoadMsg:
		if msg.gen != c.gen || msg.id == 0 || msg.id != c.autoLoad.id {
			return c, nil
		}
		c.autoLoad = autoLoadTask{}
		if !c.onLast || c.loading() || c.noMore {
			return c, nil
		}
		return c.beginLoadMore()

	case LoadMoreMsg:
		if c.loading() {
			return c, nil
		}
		if c.noMore {
			c.notice = NoticeNoMore
			return c, nil
		}
		c.cancelAutoLoad()
		return c.beginLoadMore()

	case RefreshMsg:
		if c.loading() {
			return c, nil
		}
		c.cancelAutoLoad()
		c.deps.Session.Clear()
		c.threads = nil
		c.cursor = 0
		c.noMore = false
		c.notice = ""
		c.state = StateLoadingInitial
		c.reqSeq++
		c.refilter()
		return c, c.pendingFetch()

	case PageLoadedMsg, PageErrorMsg:
		return c.handlePageMsg(msg)

	case ActivateMsg:
		return c, c.fetchMedia(msg.Thread)

	case MediaLoadedMsg:
		return c.handleMediaLoaded(msg)

	case ToggleFavouriteMsg:
		if c.deps.Favourites == nil {
			return c, nil
		}
		if c.deps.Favourites.Toggle(msg.Thread) {
			c.notice = "Added to favourites"
		} else {
			c.notice = "Removed from favourites"
		}
		c.refreshFavourites()
		return c, nil

	case ClearFavouritesMsg:
		if c.deps.Favourites == nil {
			return c, nil
		}
		if c.deps.Favourites.Clear() {
			c.notice = "Favourites cleared"
		} else {
			c.notice = "No favourites to clear"
		}
		c.refreshFavourites()
		return c, nil

	case HideMsg:
		if c.deps.Hidden == nil {
			return c, nil
		}
		if c.deps.Hidden.Hide(msg.Thread) {
			c.notice = "Thread hidden"
		}
		c.refilter()
		return c, nil

	case RestoreHiddenMsg:
		if c.deps.Hidden == nil {
			return c, nil
		}
		n := c.deps.Hidden.Count()
		if c.deps.Hidden.RestoreAll() {
			c.notice = fmt.Sprintf("Restored %d hidden threads", n)
		} else {
			c.notice = NoticeNothingHidden
		}
		c.refilter()
		return c, nil

	case StoreChangedMsg:
		// A closed controller's listener must not be re-armed.
		if msg.Gen != c.gen {
			return c, nil
		}
		switch msg.Change.Namespace {
		case store.NamespaceFavourites:
			c.refreshFavourites()
			return c, listen(c.favSub, c.gen)
		case store.NamespaceHidden:
			c.refilter()
			return c, listen(c.hiddenSub, c.gen)
		}
		return c, nil
	}
	return c, nil
}

func (c Controller) handleSelect(msg SelectMsg) (Controller, tea.Cmd) {
	sel := selection{no: msg.No, placeholder: msg.Placeholder, valid: true}
	if sel == c.selected {
		return c, nil
	}
	c.selected = sel
	c.cancelAutoLoad()

	wasOnLast := c.onLast
	c.onLast = c.selectionIsLast()
	if c.onLast && !wasOnLast {
		return c, c.startAutoLoad()
	}
	return c, nil
}

// startAutoLoad replaces any pending auto-load task with a new one.
func (c *Controller) startAutoLoad() tea.Cmd {
	c.autoLoadID++
	c.autoLoad = autoLoadTask{id: c.autoLoadID}
	return autoLoadAfter(c.cfg.AutoLoadDelay, c.gen, c.autoLoad.id)
}

func (c *Controller) cancelAutoLoad() {
	c.autoLoad = autoLoadTask{}
}

// AutoLoadPending reports whether an auto-load task is waiting to fire.
func (c Controller) AutoLoadPending() bool {
	return c.autoLoad.id != 0
}

func (c Controller) beginLoadMore() (Controller, tea.Cmd) {
	c.state = StateLoadingMore
	c.reqSeq++
	c.log.Debug("loading more", "offset", c.cursor, "limit", c.cfg.PageSize)
	return c, c.pendingFetch()
}

func (c Controller) handlePageMsg(msg tea.Msg) (Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		if msg.Gen != c.gen || msg.ReqSeq != c.reqSeq || !c.loading() {
			return c, nil
		}
		if len(msg.Threads) == 0 {
			c.noMore = true
			c.notice = NoticeNoMore
			c.state = StateIdle
			c.log.Info("feed exhausted", "cursor", c.cursor)
			c.refilter()
			return c, nil
		}
		c.threads = append(c.threads, msg.Threads...)
		c.cursor += len(msg.Threads)
		c.deps.Session.Update(c.threads, c.cursor, c.cfg.Now())
		c.state = StateIdle
		c.log.Debug("page loaded", "offset", msg.Offset, "count", len(msg.Threads), "cursor", c.cursor)
		c.refilter()
		return c, nil

	case PageErrorMsg:
		if msg.Gen != c.gen || msg.ReqSeq != c.reqSeq || !c.loading() {
			return c, nil
		}
		c.noMore = true
		c.notice = NoticeLoadError
		c.state = StateError
		c.log.Error("page fetch failed", "offset", msg.Offset, "err", msg.Err)
		c.refilter()
		return c, nil
	}
	return c, nil
}

func (c Controller) handleMediaLoaded(msg MediaLoadedMsg) (Controller, tea.Cmd) {
	if msg.Gen != c.gen {
		return c, nil
	}
	if msg.Err != nil {
		c.notice = NoticeMediaError
		c.log.Error("media fetch failed", "thread", msg.Thread.No, "err", msg.Err)
		return c, nil
	}
	if len(msg.Media) == 0 {
		c.notice = NoticeNoMedia
		return c, nil
	}
	start := 0
	if c.deps.Positions != nil {
		if idx, ok := c.deps.Positions.Position(msg.Thread.No); ok {
			start = idx
		}
	}
	start = max(0, min(start, len(msg.Media)-1))
	open := OpenMediaMsg{Thread: msg.Thread, Media: msg.Media, Start: start}
	return c, func() tea.Msg { return open }
}
