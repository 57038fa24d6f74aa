// Package kvstore defines the persistent string key/value store AcadMate keeps
// all of its state in, together with an in-memory implementation and a quota
// decorator. Durable backends live in the sqlite, postgres and redis
// subpackages.
package kvstore

import (
	"context"
	"fmt"
	"sort"
)

// Store is a durable mapping from string keys to string values.
//
// Get reports found=false (and no error) for a missing key. Remove of a
// missing key is a no-op. Set fails with common.ErrStorageQuotaExceeded when
// the backend is out of space.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// BatchSetter is implemented by stores that can write several keys
// atomically.
type BatchSetter interface {
	SetMany(ctx context.Context, values map[string]string) error
}

// SetMany writes all values, atomically when s supports it.
func SetMany(ctx context.Context, s Store, values map[string]string) error {
	if b, ok := s.(BatchSetter); ok {
		return b.SetMany(ctx, values)
	}
	for _, k := range sortedKeys(values) {
		if err := s.Set(ctx, k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns every key/value pair whose key starts with prefix.
func Snapshot(ctx context.Context, s Store, prefix string) (map[string]string, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	for _, k := range keys {
		if len(k) < len(prefix) || k[:len(prefix)] != prefix {
			continue
		}
		v, ok, err := s.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", k, err)
		}
		if ok {
			out[k] = v
		}
	}
	return out, nil
}

// Usage is the number of bytes held by s, counted as len(key)+len(value).
func Usage(ctx context.Context, s Store) (int64, error) {
	all, err := Snapshot(ctx, s, "")
	if err != nil {
		return 0, err
	}
	var n int64
	for k, v := range all {
		n += int64(len(k) + len(v))
	}
	return n, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
