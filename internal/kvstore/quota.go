package kvstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/acadmate/internal/common"
)

// DefaultQuota approximates the per-origin local storage limit of browsers.
const DefaultQuota int64 = 5 << 20

// QuotaStore caps the total size of a Store. A limit of 0 or less disables
// the check.
type QuotaStore struct {
	Store
	limit int64
}

func NewQuotaStore(inner Store, limit int64) *QuotaStore {
	return &QuotaStore{Store: inner, limit: limit}
}

func (q *QuotaStore) Limit() int64 { return q.limit }

func (q *QuotaStore) Set(ctx context.Context, key, value string) error {
	if err := q.check(ctx, map[string]string{key: value}); err != nil {
		return err
	}
	return q.Store.Set(ctx, key, value)
}

func (q *QuotaStore) SetMany(ctx context.Context, values map[string]string) error {
	if err := q.check(ctx, values); err != nil {
		return err
	}
	return SetMany(ctx, q.Store, values)
}

func (q *QuotaStore) check(ctx context.Context, values map[string]string) error {
	if q.limit <= 0 {
		return nil
	}

	current, err := Snapshot(ctx, q.Store, "")
	if err != nil {
		return err
	}
	for k, v := range values {
		current[k] = v
	}

	var n int64
	for k, v := range current {
		n += int64(len(k) + len(v))
	}
	if n > q.limit {
		return fmt.Errorf("%w: %d bytes requested, limit is %d", common.ErrStorageQuotaExceeded, n, q.limit)
	}
	return nil
}
