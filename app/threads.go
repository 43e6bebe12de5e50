package app

import (
	"context"

	"github.com/CrestNiraj12/chantv/domain"
)

// ThreadSource fetches threads and their media from a remote board.
type ThreadSource interface {
	// FetchThreads returns up to limit threads starting at offset in feed order.
	// An offset past the end of the feed yields an empty slice and no error.
	FetchThreads(ctx context.Context, offset, limit int) ([]domain.Thread, error)

	// FetchMedia returns the files posted in a thread, in post order.
	FetchMedia(ctx context.Context, threadNo int64) ([]domain.Media, error)
}

// Linker builds browsable URLs for threads and media.
type Linker interface {
	ThreadURL(threadNo int64) string
	MediaURL(m domain.Media) string
	ThumbnailURL(tim int64) string
}
