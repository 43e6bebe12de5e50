package feed

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chantv/domain"
	"github.com/CrestNiraj12/chantv/store"
)

// pendingFetch returns the page request for the current generation, or nil
// when nothing is loading.
func (c Controller) pendingFetch() tea.Cmd {
	if !c.loading() || c.deps.Source == nil {
		return nil
	}
	source := c.deps.Source
	gen := c.gen
	reqSeq := c.reqSeq
	offset := c.cursor
	limit := c.cfg.PageSize
	return func() tea.Msg {
		threads, err := source.FetchThreads(context.Background(), offset, limit)
		if err != nil {
			return PageErrorMsg{Err: err, Offset: offset, Gen: gen, ReqSeq: reqSeq}
		}
		return PageLoadedMsg{Threads: threads, Offset: offset, Gen: gen, ReqSeq: reqSeq}
	}
}

func (c Controller) fetchMedia(t domain.Thread) tea.Cmd {
	if c.deps.Source == nil {
		return nil
	}
	source := c.deps.Source
	gen := c.gen
	return func() tea.Msg {
		media, err := source.FetchMedia(context.Background(), t.No)
		return MediaLoadedMsg{Thread: t, Media: media, Gen: gen, Err: err}
	}
}

func autoLoadAfter(d time.Duration, gen int64, id int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return autoLoadMsg{gen: gen, id: id}
	})
}

// listen waits for the next change on ch. A closed channel ends the loop.
func listen(ch <-chan store.Change, gen int64) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return StoreChangedMsg{Change: change, Gen: gen}
	}
}
