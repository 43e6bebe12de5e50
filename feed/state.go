package feed

import (
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/CrestNiraj12/chantv/app"
	"github.com/CrestNiraj12/chantv/domain"
	"github.com/CrestNiraj12/chantv/store"
)

const (
	DefaultPageSize      = 30
	DefaultAutoLoadDelay = 300 * time.Millisecond

	NoticeNoMore        = "No more threads available"
	NoticeLoadError     = "Error loading threads"
	NoticeNothingHidden = "No hidden threads to restore"
	NoticeNoMedia       = "No media in this thread"
	NoticeMediaError    = "Error loading media"
)

// State is the pagination state of the controller.
type State int

const (
	StateIdle State = iota
	StateLoadingInitial
	StateLoadingMore
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingInitial:
		return "loading"
	case StateLoadingMore:
		return "loading-more"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Item is one entry of the displayed feed: a thread or the loading placeholder.
type Item struct {
	Thread      domain.Thread
	Placeholder bool
}

// Config holds the tunables of a Controller. Zero values take defaults.
type Config struct {
	PageSize      int
	AutoLoadDelay time.Duration
	SessionTTL    time.Duration
	Now           func() time.Time
	Logger        *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.AutoLoadDelay <= 0 {
		c.AutoLoadDelay = DefaultAutoLoadDelay
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Deps are the collaborators a Controller reads and mutates.
type Deps struct {
	Source     app.ThreadSource
	Favourites *store.Favourites
	Hidden     *store.HiddenThreads
	Positions  *store.ThreadPositions
	Session    *SessionCache
}

type selection struct {
	no          int64
	placeholder bool
	valid       bool
}

// autoLoadTask is the handle of the pending auto-load tick. id 0 means none.
type autoLoadTask struct {
	id int
}

type pagingState struct {
	state   State
	threads []domain.Thread // authoritative, in fetch order
	cursor  int
	noMore  bool
	reqSeq  int
}

type viewState struct {
	visible     []domain.Thread
	favourites  []domain.Thread
	hiddenCount int
	selected    selection
	onLast      bool
	notice      string
}

// generations tells apart controllers sharing one program, so results
// addressed to a discarded controller are dropped by its replacement.
var generations atomic.Int64

// Controller drives feed pagination. It is a Bubble Tea model: every state
// change happens inside Update on the program's event loop.
type Controller struct {
	deps Deps
	cfg  Config
	log  *slog.Logger
	gen  int64

	pagingState
	viewState

	autoLoad   autoLoadTask
	autoLoadID int

	favSub    <-chan store.Change
	hiddenSub <-chan store.Change
}
