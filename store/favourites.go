package store

import (
	"time"

	"github.com/CrestNiraj12/chantv/domain"
)

// NamespaceFavourites is the blob namespace of the favourites store.
const NamespaceFavourites = "favourites"

// Favourites holds the user's favourite threads.
type Favourites struct {
	*KeyedStore[int64, domain.FavouriteEntry]
	now func() time.Time
}

// NewFavourites creates an uninitialized favourites store.
func NewFavourites(opts Options) *Favourites {
	return &Favourites{
		KeyedStore: NewKeyedStore(
			NamespaceFavourites,
			JSONCodec[domain.FavouriteEntry]{},
			func(e domain.FavouriteEntry) int64 { return e.Thread.No },
			func(e domain.FavouriteEntry) time.Time { return e.AddedAt },
			opts,
		),
		now: opts.clock(),
	}
}

// Favourite stores t stamped with the current time.
func (f *Favourites) Favourite(t domain.Thread) bool {
	return f.Add(domain.FavouriteEntry{Thread: t, AddedAt: f.now()})
}

// Unfavourite removes thread no.
func (f *Favourites) Unfavourite(no int64) bool {
	return f.Remove(no)
}

// Toggle flips membership of t and reports whether it is now a favourite.
func (f *Favourites) Toggle(t domain.Thread) bool {
	if f.Unfavourite(t.No) {
		return false
	}
	return f.Favourite(t)
}

// IsFavourite reports whether thread no is a favourite.
func (f *Favourites) IsFavourite(no int64) bool {
	return f.Contains(no)
}

// Threads returns favourite threads, most recently added first.
func (f *Favourites) Threads() []domain.Thread {
	entries := f.List()
	threads := make([]domain.Thread, len(entries))
	for i, e := range entries {
		threads[i] = e.Thread
	}
	return threads
}

// Count returns the number of favourites.
func (f *Favourites) Count() int {
	return f.Len()
}
