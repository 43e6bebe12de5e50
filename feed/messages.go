package feed

import (
	"github.com/CrestNiraj12/chantv/domain"
	"github.com/CrestNiraj12/chantv/store"
)

// SelectMsg reports that the presentation layer moved the selection onto a
// thread, or onto the loading placeholder. The zero value means the selection
// left the feed.
type SelectMsg struct {
	No          int64
	Placeholder bool
}

// ActivateMsg asks for the media list of a thread.
type ActivateMsg struct {
	Thread domain.Thread
}

type ToggleFavouriteMsg struct {
	Thread domain.Thread
}

type HideMsg struct {
	Thread domain.Thread
}

type RestoreHiddenMsg struct{}

type ClearFavouritesMsg struct{}

// RefreshMsg drops the session cache and reloads from the first page.
type RefreshMsg struct{}

// LoadMoreMsg requests the next page without waiting for auto-load.
type LoadMoreMsg struct{}

// StoreChangedMsg is delivered when a subscribed store was mutated. Gen is
// the controller that was listening.
type StoreChangedMsg struct {
	Change store.Change
	Gen    int64
}

// PageLoadedMsg is sent when a page fetch completes successfully.
type PageLoadedMsg struct {
	Threads []domain.Thread
	Offset  int
	Gen     int64
	ReqSeq  int
}

// PageErrorMsg is sent when a page fetch fails.
type PageErrorMsg struct {
	Err    error
	Offset int
	Gen    int64
	ReqSeq int
}

// MediaLoadedMsg carries the result of a media fetch for an activated thread.
type MediaLoadedMsg struct {
	Thread domain.Thread
	Media  []domain.Media
	Gen    int64
	Err    error
}

// OpenMediaMsg tells the presentation layer to show a thread's media,
// starting at Start.
type OpenMediaMsg struct {
	Thread domain.Thread
	Media  []domain.Media
	Start  int
}

type autoLoadMsg struct {
	gen int64
	id  int
}
