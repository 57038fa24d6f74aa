package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/acadmate/internal/kvstore"
)

// loadJSON decodes the document stored under key into dst. A missing or empty
// value leaves dst untouched and reports false.
func loadJSON[T any](ctx context.Context, store kvstore.Store, key string, dst *T) (bool, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, store kvstore.Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
