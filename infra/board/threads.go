package board

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"github.com/CrestNiraj12/chantv/domain"
)

const (
	DefaultBoard       = "wsg"
	DefaultSiteURL     = "https://boards.4chan.org"
	DefaultMediaURL    = "https://i.4cdn.org"
	DefaultEnrichLimit = 10

	defaultConcurrency = 4
	defaultCacheSize   = 256
	defaultCacheTTL    = time.Minute
)

// --- Wire types (internal) ---

type catalogPage struct {
	Page    int          `json:"page"`
	Threads []wireThread `json:"threads"`
}

type wireThread struct {
	No           int64 `json:"no"`
	Replies      int   `json:"replies"`
	LastModified int64 `json:"last_modified"`
}

type threadResponse struct {
	Posts []wirePost `json:"posts"`
}

type wirePost struct {
	No          int64  `json:"no"`
	Sub         string `json:"sub"`
	Com         string `json:"com"`
	SemanticURL string `json:"semantic_url"`
	Tim         int64  `json:"tim"`
	Filename    string `json:"filename"`
	Ext         string `json:"ext"`
	W           int    `json:"w"`
	H           int    `json:"h"`
}

// Options configures a ThreadService. Zero values take defaults, except
// EnrichLimit where 0 means no enrichment and a negative value means all.
type Options struct {
	Board       string
	SiteURL     string
	MediaURL    string
	EnrichLimit int
	Concurrency int
	CacheTTL    time.Duration
	Logger      *slog.Logger
}

// ThreadService implements app.ThreadSource and app.Linker for one board.
type ThreadService struct {
	client      *Client
	board       string
	siteURL     string
	mediaURL    string
	enrichLimit int
	concurrency int
	posts       *expirable.LRU[int64, []wirePost]
	logger      *slog.Logger
}

// NewThreadService creates a service reading from client.
func NewThreadService(client *Client, opts Options) *ThreadService {
	if opts.Board == "" {
		opts.Board = DefaultBoard
	}
	if opts.SiteURL == "" {
		opts.SiteURL = DefaultSiteURL
	}
	if opts.MediaURL == "" {
		opts.MediaURL = DefaultMediaURL
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ThreadService{
		client:      client,
		board:       opts.Board,
		siteURL:     opts.SiteURL,
		mediaURL:    opts.MediaURL,
		enrichLimit: opts.EnrichLimit,
		concurrency: opts.Concurrency,
		posts:       expirable.NewLRU[int64, []wirePost](defaultCacheSize, nil, opts.CacheTTL),
		logger:      opts.Logger.With("component", "board", "board", opts.Board),
	}
}

// FetchThreads slices the board's thread list to [offset, offset+limit) and
// enriches the leading threads of the slice with their opening post.
func (s *ThreadService) FetchThreads(ctx context.Context, offset, limit int) ([]domain.Thread, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []domain.Thread{}, nil
	}

	data, err := s.client.Get(ctx, "/"+s.board+"/threads.json")
	if err != nil {
		return nil, fmt.Errorf("fetching thread list: %w", err)
	}
	var pages []catalogPage
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("decoding thread list: %w", err)
	}

	var all []domain.Thread
	for _, p := range pages {
		for _, t := range p.Threads {
			all = append(all, domain.Thread{No: t.No, Replies: t.Replies})
		}
	}
	if offset >= len(all) {
		return []domain.Thread{}, nil
	}
	page := append([]domain.Thread(nil), all[offset:min(offset+limit, len(all))]...)

	n := s.enrichCount(len(page))
	if n == 0 {
		return page, nil
	}
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			enriched, err := s.enrich(ctx, page[i])
			if err != nil {
				s.logger.Warn("thread detail unavailable, using basic data", "thread", page[i].No, "err", err)
				return nil
			}
			page[i] = enriched
			return nil
		})
	}
	_ = g.Wait()
	return page, nil
}

func (s *ThreadService) enrichCount(n int) int {
	if s.enrichLimit < 0 {
		return n
	}
	return min(s.enrichLimit, n)
}

func (s *ThreadService) enrich(ctx context.Context, basic domain.Thread) (domain.Thread, error) {
	posts, err := s.threadPosts(ctx, basic.No)
	if err != nil {
		return basic, err
	}
	if len(posts) == 0 {
		return basic, fmt.Errorf("thread %d: %w", basic.No, domain.ErrThreadNotFound)
	}
	op := posts[0]
	return domain.Thread{
		No:          basic.No,
		Subject:     textFromHTML(op.Sub),
		Comment:     textFromHTML(op.Com),
		SemanticURL: op.SemanticURL,
		Replies:     len(posts) - 1,
		Tim:         op.Tim,
	}, nil
}

// FetchMedia returns the files attached to the posts of a thread.
func (s *ThreadService) FetchMedia(ctx context.Context, threadNo int64) ([]domain.Media, error) {
	posts, err := s.threadPosts(ctx, threadNo)
	if err != nil {
		return nil, fmt.Errorf("fetching media for %d: %w", threadNo, err)
	}
	media := make([]domain.Media, 0, len(posts))
	for _, p := range posts {
		if p.Tim == 0 || p.Filename == "" || p.Ext == "" {
			continue
		}
		media = append(media, domain.Media{
			Tim:      p.Tim,
			Filename: p.Filename,
			Ext:      p.Ext,
			Width:    p.W,
			Height:   p.H,
		})
	}
	return media, nil
}

func (s *ThreadService) threadPosts(ctx context.Context, no int64) ([]wirePost, error) {
	if posts, ok := s.posts.Get(no); ok {
		return posts, nil
	}
	data, err := s.client.Get(ctx, "/"+s.board+"/thread/"+strconv.FormatInt(no, 10)+".json")
	if err != nil {
		return nil, err
	}
	var resp threadResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding thread %d: %w", no, err)
	}
	s.posts.Add(no, resp.Posts)
	return resp.Posts, nil
}

func (s *ThreadService) ThreadURL(threadNo int64) string {
	return s.siteURL + "/" + s.board + "/thread/" + strconv.FormatInt(threadNo, 10)
}

func (s *ThreadService) MediaURL(m domain.Media) string {
	return s.mediaURL + "/" + s.board + "/" + strconv.FormatInt(m.Tim, 10) + m.Ext
}

func (s *ThreadService) ThumbnailURL(tim int64) string {
	return s.mediaURL + "/" + s.board + "/" + strconv.FormatInt(tim, 10) + "s.jpg"
}
