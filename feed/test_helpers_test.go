package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chantv/domain"
	"github.com/CrestNiraj12/chantv/store"
)

type stubSource struct {
	mu       sync.Mutex
	pages    [][]domain.Thread
	calls    []int // offsets requested
	err      error
	media    map[int64][]domain.Media
	mediaErr error
}

func (s *stubSource) FetchThreads(_ context.Context, offset, limit int) ([]domain.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, offset)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.pages) == 0 {
		return nil, nil
	}
	page := s.pages[0]
	s.pages = s.pages[1:]
	if len(page) > limit {
		page = page[:limit]
	}
	return page, nil
}

func (s *stubSource) FetchMedia(_ context.Context, threadNo int64) ([]domain.Media, error) {
	if s.mediaErr != nil {
		return nil, s.mediaErr
	}
	return s.media[threadNo], nil
}

var errBoom = errors.New("boom")

type memStorage struct {
	blobs map[string]string
}

func (m *memStorage) ReadBlob(ns string) (string, bool, error) {
	d, ok := m.blobs[ns]
	return d, ok, nil
}

func (m *memStorage) WriteBlob(ns, data string) error {
	m.blobs[ns] = data
	return nil
}

// makeThreads returns n threads numbered from first.
func makeThreads(first int64, n int) []domain.Thread {
	out := make([]domain.Thread, n)
	for i := range out {
		out[i] = domain.Thread{No: first + int64(i), Subject: "thread"}
	}
	return out
}

type fixture struct {
	source *stubSource
	deps   Deps
	now    time.Time
	cfg    Config
}

func newFixture(pages ...[]domain.Thread) *fixture {
	storage := &memStorage{blobs: map[string]string{}}
	f := &fixture{
		source: &stubSource{pages: pages},
		now:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	opts := store.Options{Now: func() time.Time { return f.now }}
	favs := store.NewFavourites(opts)
	favs.Initialize(storage)
	hidden := store.NewHiddenThreads(opts)
	hidden.Initialize(storage)
	positions := store.NewThreadPositions(opts)
	positions.Initialize(storage)
	f.deps = Deps{
		Source:     f.source,
		Favourites: favs,
		Hidden:     hidden,
		Positions:  positions,
		Session:    NewSessionCache(),
	}
	f.cfg = Config{
		PageSize:      10,
		AutoLoadDelay: time.Millisecond,
		Now:           func() time.Time { return f.now },
	}
	return f
}

func (f *fixture) controller() Controller {
	return New(f.deps, f.cfg)
}

// run executes cmd synchronously and feeds its message back into c.
func run(t *testing.T, c Controller, cmd tea.Cmd) Controller {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	c, _ = c.Update(cmd())
	return c
}

// loaded returns a controller whose first page has been delivered.
func (f *fixture) loaded(t *testing.T) Controller {
	t.Helper()
	c := f.controller()
	return run(t, c, c.pendingFetch())
}

func displayedNos(c Controller) []int64 {
	var out []int64
	for _, it := range c.Displayed() {
		if it.Placeholder {
			out = append(out, -1)
			continue
		}
		out = append(out, it.Thread.No)
	}
	return out
}

func lastNo(c Controller) int64 {
	items := c.Displayed()
	return items[len(items)-1].Thread.No
}
