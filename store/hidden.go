package store

import (
	"time"

	"github.com/CrestNiraj12/chantv/domain"
)

// NamespaceHidden is the blob namespace of the hidden threads store.
const NamespaceHidden = "hidden_threads"

// HiddenThreads holds threads the user removed from the feed.
type HiddenThreads struct {
	*KeyedStore[int64, domain.HiddenEntry]
	now func() time.Time
}

// NewHiddenThreads creates an uninitialized hidden threads store.
func NewHiddenThreads(opts Options) *HiddenThreads {
	return &HiddenThreads{
		KeyedStore: NewKeyedStore(
			NamespaceHidden,
			JSONCodec[domain.HiddenEntry]{},
			func(e domain.HiddenEntry) int64 { return e.Thread.No },
			func(e domain.HiddenEntry) time.Time { return e.HiddenAt },
			opts,
		),
		now: opts.clock(),
	}
}

func (h *HiddenThreads) Hide(t domain.Thread) bool {
	return h.Add(domain.HiddenEntry{Thread: t, HiddenAt: h.now()})
}

func (h *HiddenThreads) Unhide(no int64) bool {
	return h.Remove(no)
}

// IsHidden is safe on a nil store, which hides nothing.
func (h *HiddenThreads) IsHidden(no int64) bool {
	if h == nil {
		return false
	}
	return h.Contains(no)
}

// Threads returns hidden threads, most recently hidden first.
func (h *HiddenThreads) Threads() []domain.Thread {
	entries := h.List()
	threads := make([]domain.Thread, len(entries))
	for i, e := range entries {
		threads[i] = e.Thread
	}
	return threads
}

func (h *HiddenThreads) Count() int {
	return h.Len()
}

// RestoreAll unhides every thread and reports whether any were hidden.
func (h *HiddenThreads) RestoreAll() bool {
	return h.Clear()
}
