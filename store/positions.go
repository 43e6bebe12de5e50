package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/CrestNiraj12/chantv/domain"
)

// NamespacePositions is the blob namespace of the media position store.
const NamespacePositions = "thread_positions"

// ThreadPositions remembers the last viewed media index of each thread.
type ThreadPositions struct {
	*KeyedStore[int64, domain.PositionEntry]
}

// NewThreadPositions creates an uninitialized position store.
func NewThreadPositions(opts Options) *ThreadPositions {
	return &ThreadPositions{
		KeyedStore: NewKeyedStore(
			NamespacePositions,
			positionCodec{},
			func(e domain.PositionEntry) int64 { return e.ThreadNo },
			nil,
			opts,
		),
	}
}

// Save records index for thread no. Negative indices are stored as 0.
func (p *ThreadPositions) Save(no int64, index int) {
	if index < 0 {
		index = 0
	}
	p.Put(domain.PositionEntry{ThreadNo: no, Index: index})
	p.logger.Debug("saved position", "thread", no, "index", index)
}

// Position returns the saved index for thread no.
func (p *ThreadPositions) Position(no int64) (int, bool) {
	e, ok := p.Get(no)
	if !ok {
		return 0, false
	}
	return e.Index, true
}

// Forget drops the saved index for thread no.
func (p *ThreadPositions) Forget(no int64) bool {
	return p.Remove(no)
}

// positionCodec persists positions as {"map":{"<threadNo>":<index>}}.
type positionCodec struct{}

type positionsBlob struct {
	Map map[string]int `json:"map"`
}

func (positionCodec) Encode(values []domain.PositionEntry) (string, error) {
	blob := positionsBlob{Map: make(map[string]int, len(values))}
	for _, v := range values {
		blob.Map[strconv.FormatInt(v.ThreadNo, 10)] = v.Index
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return "", fmt.Errorf("marshal positions: %w", err)
	}
	return string(data), nil
}

func (positionCodec) Decode(data string) ([]domain.PositionEntry, error) {
	var blob positionsBlob
	if err := json.Unmarshal([]byte(data), &blob); err != nil {
		return nil, fmt.Errorf("unmarshal positions: %w", err)
	}
	values := make([]domain.PositionEntry, 0, len(blob.Map))
	for k, idx := range blob.Map {
		no, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("position key %q: %w", k, err)
		}
		if idx < 0 {
			idx = 0
		}
		values = append(values, domain.PositionEntry{ThreadNo: no, Index: idx})
	}
	sort.Slice(values, func(i, j int) bool { return values[i].ThreadNo < values[j].ThreadNo })
	return values, nil
}
