// Package store keeps small keyed collections in memory and writes them
// through to durable blob storage on every mutation.
package store

import (
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/CrestNiraj12/chantv/app"
	"github.com/CrestNiraj12/chantv/domain"
)

// Op names the mutation that produced a Change.
type Op int

const (
	OpAdded Op = iota
	OpUpdated
	OpRemoved
	OpCleared
)

func (o Op) String() string {
	switch o {
	case OpAdded:
		return "added"
	case OpUpdated:
		return "updated"
	case OpRemoved:
		return "removed"
	case OpCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after a successful mutation.
type Change struct {
	Namespace string
	Op        Op
}

// Codec converts a store's records to the durable blob and back.
type Codec[V any] interface {
	Encode(values []V) (string, error)
	Decode(data string) ([]V, error)
}

// Options configures ambient collaborators shared by all stores.
type Options struct {
	Logger *slog.Logger
	Now    func() time.Time
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func (o Options) clock() func() time.Time {
	if o.Now == nil {
		return time.Now
	}
	return o.Now
}

// KeyedStore is a durable mapping from K to V with at most one record per key.
// The in-memory copy is authoritative for the life of the process.
type KeyedStore[K comparable, V any] struct {
	namespace string
	codec     Codec[V]
	keyOf     func(V) K
	stampOf   func(V) time.Time
	logger    *slog.Logger

	mu          sync.Mutex
	storage     app.BlobStorage
	initialized bool
	items       []V
	subs        []chan Change
}

// NewKeyedStore creates an empty, uninitialized store. stampOf orders List;
// it may be nil when ordering does not matter.
func NewKeyedStore[K comparable, V any](namespace string, codec Codec[V], keyOf func(V) K, stampOf func(V) time.Time, opts Options) *KeyedStore[K, V] {
	return &KeyedStore[K, V]{
		namespace: namespace,
		codec:     codec,
		keyOf:     keyOf,
		stampOf:   stampOf,
		logger:    opts.logger().With("store", namespace),
	}
}

// Initialize attaches durable storage and loads the persisted collection.
// Only the first call loads. Later calls swap in a non-nil storage but leave
// the in-memory collection untouched.
func (s *KeyedStore[K, V]) Initialize(storage app.BlobStorage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		if storage != nil {
			s.storage = storage
		}
		s.logger.Debug("already initialized", "count", len(s.items), "attached", storage != nil)
		return
	}
	s.storage = storage
	s.initialized = true
	s.items = s.load()
	s.logger.Debug("initialized", "count", len(s.items))
}

func (s *KeyedStore[K, V]) load() []V {
	if s.storage == nil {
		s.logger.Error("load skipped", "err", domain.ErrStoreNotInitialized)
		return nil
	}
	data, ok, err := s.storage.ReadBlob(s.namespace)
	if err != nil {
		s.logger.Error("reading blob failed, starting empty", "err", err)
		return nil
	}
	if !ok || strings.TrimSpace(data) == "" {
		return nil
	}
	values, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Error("decoding blob failed, starting empty", "err", err)
		return nil
	}
	return values
}

// Add inserts value unless a record with the same key exists.
func (s *KeyedStore[K, V]) Add(value V) bool {
	s.mu.Lock()
	key := s.keyOf(value)
	if s.indexLocked(key) >= 0 {
		s.mu.Unlock()
		s.logger.Debug("add rejected, key present", "key", key)
		return false
	}
	s.items = append(s.items, value)
	s.saveLocked()
	s.mu.Unlock()

	s.notify(OpAdded)
	return true
}

// Put inserts value or replaces the record stored under its key.
func (s *KeyedStore[K, V]) Put(value V) {
	s.mu.Lock()
	key := s.keyOf(value)
	op := OpAdded
	if i := s.indexLocked(key); i >= 0 {
		s.items[i] = value
		s.items = s.dropAfterLocked(key, i)
		op = OpUpdated
	} else {
		s.items = append(s.items, value)
	}
	s.saveLocked()
	s.mu.Unlock()

	s.notify(op)
}

// Remove deletes every record stored under key.
func (s *KeyedStore[K, V]) Remove(key K) bool {
	s.mu.Lock()
	kept := s.items[:0]
	removed := 0
	for _, v := range s.items {
		if s.keyOf(v) == key {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	s.items = kept
	if removed == 0 {
		s.mu.Unlock()
		return false
	}
	if removed > 1 {
		s.logger.Warn("removed duplicate records", "key", key, "count", removed)
	}
	s.saveLocked()
	s.mu.Unlock()

	s.notify(OpRemoved)
	return true
}

// Contains reports whether a record is stored under key.
func (s *KeyedStore[K, V]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(key) >= 0
}

// Get returns the record stored under key.
func (s *KeyedStore[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(key); i >= 0 {
		return s.items[i], true
	}
	var zero V
	return zero, false
}

// Len returns the number of records.
func (s *KeyedStore[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// List returns a copy of the records, newest timestamp first.
func (s *KeyedStore[K, V]) List() []V {
	s.mu.Lock()
	out := make([]V, len(s.items))
	copy(out, s.items)
	s.mu.Unlock()

	if s.stampOf != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return s.stampOf(out[i]).After(s.stampOf(out[j]))
		})
	}
	return out
}

// Clear removes all records and persists the empty collection.
func (s *KeyedStore[K, V]) Clear() bool {
	s.mu.Lock()
	had := len(s.items) > 0
	s.items = nil
	s.saveLocked()
	s.mu.Unlock()

	if had {
		s.notify(OpCleared)
	}
	return had
}

// Subscribe returns a channel receiving a Change after each mutation.
// Delivery never blocks the writer: an unread change absorbs newer ones.
func (s *KeyedStore[K, V]) Subscribe() <-chan Change {
	ch := make(chan Change, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Unsubscribe stops delivery to ch and closes it.
func (s *KeyedStore[K, V]) Unsubscribe(ch <-chan Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub == ch {
			close(sub)
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *KeyedStore[K, V]) notify(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Change{Namespace: s.namespace, Op: op}
	for _, ch := range s.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

func (s *KeyedStore[K, V]) indexLocked(key K) int {
	for i, v := range s.items {
		if s.keyOf(v) == key {
			return i
		}
	}
	return -1
}

// dropAfterLocked removes records under key that follow index keep.
func (s *KeyedStore[K, V]) dropAfterLocked(key K, keep int) []V {
	out := s.items[:keep+1]
	for _, v := range s.items[keep+1:] {
		if s.keyOf(v) == key {
			continue
		}
		out = append(out, v)
	}
	return out
}

// saveLocked writes the whole collection. Failures are logged only.
func (s *KeyedStore[K, V]) saveLocked() {
	if s.storage == nil {
		s.logger.Error("save skipped", "err", domain.ErrStoreNotInitialized)
		return
	}
	values := s.items
	if values == nil {
		values = []V{}
	}
	data, err := s.codec.Encode(values)
	if err != nil {
		s.logger.Error("encoding blob failed", "err", err)
		return
	}
	if err := s.storage.WriteBlob(s.namespace, data); err != nil {
		s.logger.Error("writing blob failed", "err", err)
		return
	}
	s.logger.Debug("saved", "count", len(s.items))
}
