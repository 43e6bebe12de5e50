package feed

import (
	"time"

	"github.com/CrestNiraj12/chantv/domain"
)

// DefaultSessionTTL is how long a loaded feed survives a controller rebuild.
const DefaultSessionTTL = 5 * time.Minute

// SessionCache keeps the last loaded feed so a rebuilt controller can resume
// without refetching. The snapshot is either empty or has count equal to the
// number of threads.
//
// It is used from the Bubble Tea event loop only and is not synchronized.
type SessionCache struct {
	threads   []domain.Thread
	count     int
	updatedAt time.Time
}

func NewSessionCache() *SessionCache {
	return &SessionCache{}
}

// IsFresh reports whether a non-empty snapshot was updated less than ttl ago.
func (c *SessionCache) IsFresh(now time.Time, ttl time.Duration) bool {
	if c == nil || len(c.threads) == 0 {
		return false
	}
	return now.Sub(c.updatedAt) < ttl
}

// Update replaces the snapshot with a copy of threads. A count that does not
// match len(threads) clears the snapshot instead and returns false.
func (c *SessionCache) Update(threads []domain.Thread, count int, now time.Time) bool {
	if c == nil {
		return false
	}
	if count != len(threads) {
		c.Clear()
		return false
	}
	c.threads = append([]domain.Thread(nil), threads...)
	c.count = count
	c.updatedAt = now
	return true
}

// Snapshot returns a copy of the cached threads and the pagination cursor.
func (c *SessionCache) Snapshot() ([]domain.Thread, int) {
	if c == nil {
		return nil, 0
	}
	return append([]domain.Thread(nil), c.threads...), c.count
}

func (c *SessionCache) Clear() {
	if c == nil {
		return
	}
	c.threads = nil
	c.count = 0
	c.updatedAt = time.Time{}
}
