package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/acadmate/internal/kvstore"
)

var errInjected = errors.New("injected failure")

// faultStore fails writes (or reads) of selected keys.
type faultStore struct {
	*kvstore.MemoryStore
	failSet map[string]error
	failGet map[string]error
	// onSet runs before every write; tests use it to arm failures mid-operation.
	onSet func(key string)
}

func newFaultStore() *faultStore {
	return &faultStore{
		MemoryStore: kvstore.NewMemoryStore(),
		failSet:     map[string]error{},
		failGet:     map[string]error{},
	}
}

func (f *faultStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := f.failGet[key]; err != nil {
		return "", false, err
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *faultStore) Set(ctx context.Context, key, value string) error {
	if f.onSet != nil {
		f.onSet(key)
	}
	if err := f.failSet[key]; err != nil {
		return err
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func raw(t *testing.T, s kvstore.Store, key string) string {
	t.Helper()
	v, _, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("get %s: %v", key, err)
	}
	return v
}

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}
