package board

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

type handlerRoundTripper struct {
	h http.Handler
}

func (rt handlerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := newResponseRecorder()
	rt.h.ServeHTTP(rec, req)
	return rec.response(req), nil
}

type responseRecorder struct {
	header http.Header
	body   strings.Builder
	code   int
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{header: make(http.Header), code: http.StatusOK}
}

func (r *responseRecorder) Header() http.Header         { return r.header }
func (r *responseRecorder) Write(p []byte) (int, error) { return r.body.Write(p) }
func (r *responseRecorder) WriteHeader(statusCode int)  { r.code = statusCode }

func (r *responseRecorder) response(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: r.code,
		Header:     r.header.Clone(),
		Body:       io.NopCloser(strings.NewReader(r.body.String())),
		Request:    req,
	}
}

// fakeBoard serves canned JSON by path and counts requests.
type fakeBoard struct {
	mu     sync.Mutex
	routes map[string]string
	hits   map[string]int
}

func newFakeBoard(routes map[string]string) *fakeBoard {
	return &fakeBoard{routes: routes, hits: map[string]int{}}
}

func (f *fakeBoard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	body, ok := f.routes[r.URL.Path]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if strings.HasPrefix(body, "!") {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(body[1:]))
		return
	}
	_, _ = w.Write([]byte(body))
}

func (f *fakeBoard) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func newTestService(h http.Handler, opts Options) *ThreadService {
	client := NewClient("http://api.test", &http.Client{Transport: handlerRoundTripper{h: h}}, nil)
	return NewThreadService(client, opts)
}
