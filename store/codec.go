package store

import (
	"encoding/json"
	"fmt"
)

// JSONCodec stores records as a JSON array.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(values []V) (string, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("marshal records: %w", err)
	}
	return string(data), nil
}

func (JSONCodec[V]) Decode(data string) ([]V, error) {
	var values []V
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	return values, nil
}
