package browse

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chantv/domain"
	"github.com/CrestNiraj12/chantv/feed"
	"github.com/CrestNiraj12/chantv/infra/launcher"
	"github.com/CrestNiraj12/chantv/store"
)

type stubSource struct {
	pages [][]domain.Thread
	media map[int64][]domain.Media
}

func (s *stubSource) FetchThreads(context.Context, int, int) ([]domain.Thread, error) {
	if len(s.pages) == 0 {
		return nil, nil
	}
	page := s.pages[0]
	s.pages = s.pages[1:]
	return page, nil
}

func (s *stubSource) FetchMedia(_ context.Context, no int64) ([]domain.Media, error) {
	return s.media[no], nil
}

type memStorage map[string]string

func (m memStorage) ReadBlob(ns string) (string, bool, error) {
	d, ok := m[ns]
	return d, ok, nil
}

func (m memStorage) WriteBlob(ns, data string) error {
	m[ns] = data
	return nil
}

type stubLinker struct{}

func (stubLinker) ThreadURL(no int64) string       { return fmt.Sprintf("https://example.org/t/%d", no) }
func (stubLinker) MediaURL(md domain.Media) string { return fmt.Sprintf("https://example.org/m/%d%s", md.Tim, md.Ext) }
func (stubLinker) ThumbnailURL(tim int64) string   { return fmt.Sprintf("https://example.org/m/%ds.jpg", tim) }

type fixture struct {
	source *stubSource
	deps   feed.Deps
	now    time.Time
}

// newFixture seeds the session with threads so the controller starts idle.
func newFixture(threads []domain.Thread, pages ...[]domain.Thread) *fixture {
	storage := memStorage{}
	f := &fixture{
		source: &stubSource{pages: pages, media: map[int64][]domain.Media{}},
		now:    time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	}
	opts := store.Options{Now: func() time.Time { return f.now }}
	favs := store.NewFavourites(opts)
	favs.Initialize(storage)
	hidden := store.NewHiddenThreads(opts)
	hidden.Initialize(storage)
	positions := store.NewThreadPositions(opts)
	positions.Initialize(storage)
	session := feed.NewSessionCache()
	if len(threads) > 0 {
		session.Update(threads, len(threads), f.now)
	}
	f.deps = feed.Deps{
		Source:     f.source,
		Favourites: favs,
		Hidden:     hidden,
		Positions:  positions,
		Session:    session,
	}
	return f
}

func (f *fixture) model() Model {
	ctrl := feed.New(f.deps, feed.Config{
		PageSize:      10,
		AutoLoadDelay: time.Millisecond,
		Now:           func() time.Time { return f.now },
	})
	return New(ctrl, stubLinker{}, launcher.New(""), "wsg").SetSize(120, 40)
}

func threads(subjects ...string) []domain.Thread {
	out := make([]domain.Thread, len(subjects))
	for i, s := range subjects {
		out[i] = domain.Thread{No: int64(i + 1), Subject: s, Replies: i}
	}
	return out
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(keyMsg(k))
	}
	return m, cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// run executes cmd and feeds its message back into m.
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	return m.Update(cmd())
}
