package feed

import (
	"testing"
	"time"

	"github.com/CrestNiraj12/chantv/domain"
)

func TestController_PagesTenTenZero(t *testing.T) {
	f := newFixture(makeThreads(1, 10), makeThreads(11, 10), nil)
	c := f.controller()
	if c.State() != StateLoadingInitial {
		t.Fatalf("expected initial loading state, got %v", c.State())
	}

	c = run(t, c, c.pendingFetch())
	if c.State() != StateIdle || c.Cursor() != 10 {
		t.Fatalf("after first page: state=%v cursor=%d", c.State(), c.Cursor())
	}

	c, cmd := c.Update(LoadMoreMsg{})
	if c.State() != StateLoadingMore {
		t.Fatalf("expected loading more, got %v", c.State())
	}
	if items := c.Displayed(); !items[len(items)-1].Placeholder {
		t.Fatalf("expected loading placeholder at the end")
	}
	c = run(t, c, cmd)
	if c.Cursor() != 20 || c.NoMore() {
		t.Fatalf("after second page: cursor=%d noMore=%v", c.Cursor(), c.NoMore())
	}

	c, cmd = c.Update(LoadMoreMsg{})
	c = run(t, c, cmd)

	if len(c.threads) != 20 {
		t.Fatalf("expected 20 threads, got %d", len(c.threads))
	}
	if c.Cursor() != 20 {
		t.Fatalf("expected cursor 20, got %d", c.Cursor())
	}
	if !c.NoMore() {
		t.Fatalf("expected no more threads after empty page")
	}
	if c.Notice() != NoticeNoMore {
		t.Fatalf("expected no-more notice, got %q", c.Notice())
	}
	for _, it := range c.Displayed() {
		if it.Placeholder {
			t.Fatalf("placeholder must be removed after completion")
		}
	}
	want := []int{0, 10, 20}
	for i, off := range want {
		if f.source.calls[i] != off {
			t.Fatalf("call %d: expected offset %d, got %d", i, off, f.source.calls[i])
		}
	}

	c, cmd = c.Update(LoadMoreMsg{})
	if cmd != nil || c.State() != StateIdle {
		t.Fatalf("no fetch may follow an exhausted feed")
	}
}

func TestController_FetchWhileLoadingIgnored(t *testing.T) {
	f := newFixture(makeThreads(1, 10))
	c := f.controller()

	c, cmd := c.Update(LoadMoreMsg{})
	if cmd != nil {
		t.Fatalf("expected load more to be ignored during initial load")
	}
	c, cmd = c.Update(RefreshMsg{})
	if cmd != nil || c.State() != StateLoadingInitial {
		t.Fatalf("expected refresh to be ignored during initial load")
	}
}

func TestController_StalePageIgnoredByReqSeq(t *testing.T) {
	f := newFixture()
	c := f.controller()
	seq := c.reqSeq

	c, _ = c.Update(PageLoadedMsg{Threads: makeThreads(1, 3), ReqSeq: seq - 1})
	if len(c.threads) != 0 || c.State() != StateLoadingInitial {
		t.Fatalf("stale response should not mutate feed")
	}
	c, _ = c.Update(PageErrorMsg{Err: errBoom, ReqSeq: seq - 1})
	if c.State() != StateLoadingInitial || c.NoMore() {
		t.Fatalf("stale error should not change state")
	}
}

func TestController_FetchErrorStopsPaging(t *testing.T) {
	f := newFixture()
	f.source.err = errBoom
	c := f.controller()
	c = run(t, c, c.pendingFetch())

	if c.State() != StateError {
		t.Fatalf("expected error state, got %v", c.State())
	}
	if !c.NoMore() || c.Notice() != NoticeLoadError {
		t.Fatalf("expected sticky stop and error notice, got noMore=%v notice=%q", c.NoMore(), c.Notice())
	}

	_, cmd := c.Update(LoadMoreMsg{})
	if cmd != nil {
		t.Fatalf("expected no retry after a failed fetch")
	}
}

func TestController_AutoLoadStartsOncePerTransition(t *testing.T) {
	f := newFixture(makeThreads(1, 10), makeThreads(11, 10))
	c := f.loaded(t)

	c, cmd := c.Update(SelectMsg{No: lastNo(c)})
	if cmd == nil || !c.AutoLoadPending() {
		t.Fatalf("expected auto-load timer after reaching the last item")
	}
	id := c.autoLoad.id

	c, cmd = c.Update(SelectMsg{No: lastNo(c)})
	if cmd != nil {
		t.Fatalf("re-selecting the last item must not start a second timer")
	}
	if c.autoLoad.id != id {
		t.Fatalf("pending timer must be kept on repeated selection")
	}

	c, cmd = c.Update(autoLoadMsg{gen: c.gen, id: id})
	if c.State() != StateLoadingMore || cmd == nil {
		t.Fatalf("expected timer to begin loading more, got %v", c.State())
	}
	if c.AutoLoadPending() {
		t.Fatalf("fired timer must clear the handle")
	}
	c = run(t, c, cmd)
	if c.Cursor() != 20 {
		t.Fatalf("expected cursor 20, got %d", c.Cursor())
	}
}

func TestController_AutoLoadTickDeliversMessage(t *testing.T) {
	f := newFixture(makeThreads(1, 10), makeThreads(11, 5))
	c := f.loaded(t)

	c, cmd := c.Update(SelectMsg{No: 10})
	c = run(t, c, cmd)
	if c.State() != StateLoadingMore {
		t.Fatalf("expected tick to start loading more, got %v", c.State())
	}
}

func TestController_SelectionChangeCancelsAutoLoad(t *testing.T) {
	f := newFixture(makeThreads(1, 10), makeThreads(11, 10))
	c := f.loaded(t)

	c, _ = c.Update(SelectMsg{No: 10})
	fired := autoLoadMsg{gen: c.gen, id: c.autoLoad.id}

	c, cmd := c.Update(SelectMsg{No: 9})
	if cmd != nil || c.AutoLoadPending() {
		t.Fatalf("moving away from the last item must cancel the timer")
	}
	c, cmd = c.Update(fired)
	if cmd != nil || c.State() != StateIdle {
		t.Fatalf("cancelled timer must do nothing when it fires")
	}
}

func TestController_NewTimerReplacesOld(t *testing.T) {
	f := newFixture(makeThreads(1, 10), makeThreads(11, 10))
	c := f.loaded(t)

	c, _ = c.Update(SelectMsg{No: 10})
	first := autoLoadMsg{gen: c.gen, id: c.autoLoad.id}
	c, _ = c.Update(SelectMsg{No: 9})
	c, _ = c.Update(SelectMsg{No: 10})
	second := autoLoadMsg{gen: c.gen, id: c.autoLoad.id}
	if first.id == second.id {
		t.Fatalf("expected a fresh timer handle")
	}

	c, cmd := c.Update(first)
	if cmd != nil {
		t.Fatalf("superseded timer must be ignored")
	}
	c, cmd = c.Update(second)
	if cmd == nil || c.State() != StateLoadingMore {
		t.Fatalf("current timer should load more")
	}
}

func TestController_AutoLoadSkippedWhenExhausted(t *testing.T) {
	f := newFixture(makeThreads(1, 10))
	c := f.loaded(t)
	c.noMore = true

	c, _ = c.Update(SelectMsg{No: 10})
	c, cmd := c.Update(autoLoadMsg{gen: c.gen, id: c.autoLoad.id})
	if cmd != nil || c.State() != StateIdle {
		t.Fatalf("exhausted feed must not auto-load")
	}
}

func TestController_SelectingPlaceholderCancels(t *testing.T) {
	f := newFixture(makeThreads(1, 10))
	c := f.loaded(t)
	c, _ = c.Update(SelectMsg{No: 10})
	c, _ = c.Update(SelectMsg{Placeholder: true})
	if c.AutoLoadPending() {
		t.Fatalf("selecting the placeholder is a selection change")
	}
}

func TestController_HideAndRestore(t *testing.T) {
	f := newFixture(makeThreads(1, 5))
	c := f.loaded(t)
	target := c.threads[2]

	c, _ = c.Update(HideMsg{Thread: target})
	for _, no := range displayedNos(c) {
		if no == target.No {
			t.Fatalf("hidden thread still displayed")
		}
	}
	if len(c.threads) != 5 || c.Cursor() != 5 {
		t.Fatalf("hiding must not alter collection or cursor")
	}
	if c.HiddenCount() != 1 {
		t.Fatalf("expected hidden count 1, got %d", c.HiddenCount())
	}

	c, _ = c.Update(RestoreHiddenMsg{})
	if len(displayedNos(c)) != 5 {
		t.Fatalf("expected restored thread to reappear")
	}
	if c.Notice() != "Restored 1 hidden threads" {
		t.Fatalf("unexpected notice %q", c.Notice())
	}

	c, _ = c.Update(RestoreHiddenMsg{})
	if c.Notice() != NoticeNothingHidden {
		t.Fatalf("unexpected notice %q", c.Notice())
	}
}

func TestController_HiddenThreadsExcludedFromNewPages(t *testing.T) {
	f := newFixture(makeThreads(1, 10), makeThreads(11, 10))
	f.deps.Hidden.Hide(domain.Thread{No: 15})
	c := f.loaded(t)

	c, cmd := c.Update(LoadMoreMsg{})
	c = run(t, c, cmd)
	if len(c.Displayed()) != 19 || c.Cursor() != 20 {
		t.Fatalf("expected 19 displayed and cursor 20, got %d and %d", len(c.Displayed()), c.Cursor())
	}
}

func TestController_LastItemUsesDisplayedThreads(t *testing.T) {
	f := newFixture(makeThreads(1, 10))
	c := f.loaded(t)

	c, _ = c.Update(SelectMsg{No: 10})
	c, _ = c.Update(HideMsg{Thread: domain.Thread{No: 10}})
	c, cmd := c.Update(SelectMsg{No: 9})
	if cmd == nil {
		t.Fatalf("selecting the new last item should start auto-load")
	}
}

func TestController_StoreChangeRefilters(t *testing.T) {
	f := newFixture(makeThreads(1, 3))
	c := f.loaded(t)
	defer c.Close()

	f.deps.Hidden.Hide(domain.Thread{No: 2})
	msg := listen(c.hiddenSub, c.gen)()
	c, cmd := c.Update(msg)
	if len(c.Displayed()) != 2 {
		t.Fatalf("expected store change to refilter, got %v", displayedNos(c))
	}
	if cmd == nil {
		t.Fatalf("expected to keep listening")
	}

	f.deps.Favourites.Favourite(domain.Thread{No: 3})
	c, _ = c.Update(listen(c.favSub, c.gen)())
	if len(c.Favourites()) != 1 {
		t.Fatalf("expected favourites pane refresh")
	}
}

func TestController_CloseEndsListening(t *testing.T) {
	f := newFixture()
	c := f.controller()
	cmd := listen(c.favSub, c.gen)
	c.Close()
	if msg := cmd(); msg != nil {
		t.Fatalf("expected nil message after close, got %T", msg)
	}
}

func TestController_StoreChangeFromClosedControllerStopsListening(t *testing.T) {
	f := newFixture(makeThreads(1, 3))
	old := f.loaded(t)
	f.deps.Favourites.Favourite(domain.Thread{No: 2})
	stale := listen(old.favSub, old.gen)()
	old.Close()
	if _, ok := stale.(StoreChangedMsg); !ok {
		t.Fatalf("expected a buffered change, got %T", stale)
	}

	c := f.loaded(t)
	defer c.Close()
	c, cmd := c.Update(stale)
	if cmd != nil {
		t.Fatalf("a change heard by a closed controller must not re-arm a listener")
	}
	if len(c.Favourites()) != 1 {
		t.Fatalf("expected the new controller to read favourites itself")
	}
}

func TestController_FavouriteToggle(t *testing.T) {
	f := newFixture(makeThreads(40, 5))
	c := f.loaded(t)
	th := domain.Thread{No: 42}

	c, _ = c.Update(ToggleFavouriteMsg{Thread: th})
	if len(c.Favourites()) != 1 || !c.IsFavourite(42) {
		t.Fatalf("expected favourite added")
	}
	c, _ = c.Update(ToggleFavouriteMsg{Thread: th})
	if len(c.Favourites()) != 0 || c.IsFavourite(42) {
		t.Fatalf("expected favourite removed")
	}
	if len(f.deps.Favourites.List()) != 0 {
		t.Fatalf("expected empty favourites store")
	}

	c, _ = c.Update(ToggleFavouriteMsg{Thread: th})
	c, _ = c.Update(ClearFavouritesMsg{})
	if len(c.Favourites()) != 0 || c.Notice() != "Favourites cleared" {
		t.Fatalf("expected favourites cleared, notice %q", c.Notice())
	}
}

func TestController_SessionRestoreKeepsCursor(t *testing.T) {
	f := newFixture(makeThreads(1, 10), makeThreads(11, 10))
	first := f.loaded(t)
	first.Close()

	f.now = f.now.Add(time.Minute)
	c := f.controller()
	if c.State() != StateIdle || c.Cursor() != 10 || len(c.Displayed()) != 10 {
		t.Fatalf("expected restore from session, got state=%v cursor=%d", c.State(), c.Cursor())
	}
	if c.pendingFetch() != nil {
		t.Fatalf("restore must not fetch")
	}

	c, cmd := c.Update(LoadMoreMsg{})
	c = run(t, c, cmd)
	if got := f.source.calls[len(f.source.calls)-1]; got != 10 {
		t.Fatalf("expected next page at offset 10, got %d", got)
	}
}

func TestController_StaleSessionRefetches(t *testing.T) {
	f := newFixture(makeThreads(1, 10), makeThreads(1, 10))
	f.loaded(t)

	f.now = f.now.Add(DefaultSessionTTL)
	c := f.controller()
	if c.State() != StateLoadingInitial || c.Cursor() != 0 {
		t.Fatalf("expected fresh load, got state=%v cursor=%d", c.State(), c.Cursor())
	}
}

func TestController_RefreshClearsSession(t *testing.T) {
	f := newFixture(makeThreads(1, 10), makeThreads(1, 10))
	c := f.loaded(t)

	c, cmd := c.Update(RefreshMsg{})
	if c.State() != StateLoadingInitial || c.Cursor() != 0 || len(c.Displayed()) != 0 {
		t.Fatalf("expected reset to initial load")
	}
	if f.deps.Session.IsFresh(f.now, time.Hour) {
		t.Fatalf("expected session cleared")
	}
	c = run(t, c, cmd)
	if c.Cursor() != 10 {
		t.Fatalf("expected reload, cursor %d", c.Cursor())
	}
}

func TestController_ActivateResumesClampedPosition(t *testing.T) {
	f := newFixture(makeThreads(1, 3))
	f.source.media = map[int64][]domain.Media{
		2: {{Tim: 1, Ext: ".webm"}, {Tim: 2, Ext: ".webm"}, {Tim: 3, Ext: ".webm"}},
	}
	f.deps.Positions.Save(2, 9)
	c := f.loaded(t)

	c, cmd := c.Update(ActivateMsg{Thread: domain.Thread{No: 2}})
	c, cmd = c.Update(cmd())
	if cmd == nil {
		t.Fatalf("expected open media command")
	}
	open, ok := cmd().(OpenMediaMsg)
	if !ok {
		t.Fatalf("expected OpenMediaMsg")
	}
	if open.Start != 2 || len(open.Media) != 3 {
		t.Fatalf("expected start 2 of 3, got %d of %d", open.Start, len(open.Media))
	}
}

func TestController_ActivateWithoutMedia(t *testing.T) {
	f := newFixture(makeThreads(1, 3))
	c := f.loaded(t)

	c, cmd := c.Update(ActivateMsg{Thread: domain.Thread{No: 1}})
	c, cmd = c.Update(cmd())
	if cmd != nil || c.Notice() != NoticeNoMedia {
		t.Fatalf("expected no-media notice, got %q", c.Notice())
	}

	f.source.mediaErr = errBoom
	c, cmd = c.Update(ActivateMsg{Thread: domain.Thread{No: 1}})
	c, _ = c.Update(cmd())
	if c.Notice() != NoticeMediaError {
		t.Fatalf("expected media error notice, got %q", c.Notice())
	}
}

func TestController_IgnoresOtherGeneration(t *testing.T) {
	f := newFixture(makeThreads(1, 10))
	old := f.controller()
	stale := old.pendingFetch()()
	old.Close()

	c := f.controller()
	if c.gen == old.gen {
		t.Fatalf("expected distinct generations")
	}
	c, _ = c.Update(stale)
	if len(c.threads) != 0 || c.State() != StateLoadingInitial {
		t.Fatalf("result for a discarded controller must be dropped")
	}
	c, _ = c.Update(MediaLoadedMsg{Thread: domain.Thread{No: 1}, Media: []domain.Media{{Tim: 1}}, Gen: old.gen})
	if c.Notice() != "" {
		t.Fatalf("media for a discarded controller must be dropped")
	}
}
