package store

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

type memStorage struct {
	blobs    map[string]string
	writes   int
	readErr  error
	writeErr error
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: map[string]string{}}
}

func (m *memStorage) ReadBlob(namespace string) (string, bool, error) {
	if m.readErr != nil {
		return "", false, m.readErr
	}
	data, ok := m.blobs[namespace]
	return data, ok, nil
}

func (m *memStorage) WriteBlob(namespace, data string) error {
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.blobs[namespace] = data
	return nil
}

var errDisk = errors.New("disk full")

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

// jsonEqual reports whether a and b decode to the same JSON value.
func jsonEqual(t *testing.T, a, b string) bool {
	t.Helper()
	var av, bv any
	if err := json.Unmarshal([]byte(a), &av); err != nil {
		t.Fatalf("decode %q: %v", a, err)
	}
	if err := json.Unmarshal([]byte(b), &bv); err != nil {
		t.Fatalf("decode %q: %v", b, err)
	}
	return reflect.DeepEqual(av, bv)
}
