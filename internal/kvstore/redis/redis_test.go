package redis

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/acadmate/internal/common"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, namespace string) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, namespace), mr
}

func TestSetGetRemove(t *testing.T) {
	s, _ := newStore(t, "")
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "acadmate-user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "acadmate-user", "a@b.co"))
	v, ok, err := s.Get(ctx, "acadmate-user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a@b.co", v)

	require.NoError(t, s.Remove(ctx, "acadmate-user"))
	require.NoError(t, s.Remove(ctx, "acadmate-user"))
	_, ok, err = s.Get(ctx, "acadmate-user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNamespaceIsolatesKeys(t *testing.T) {
	s, mr := newStore(t, "app1:")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "acadmate-notes", "[]"))
	require.NoError(t, mr.Set("other:acadmate-notes", "x"))

	got, err := mr.Get("app1:acadmate-notes")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"acadmate-notes"}, keys)
}

func TestKeys_ScansPastOneBatch(t *testing.T) {
	s, _ := newStore(t, "ns:")
	ctx := context.Background()

	want := make([]string, 0, scanBatch*2+5)
	values := map[string]string{}
	for i := 0; i < scanBatch*2+5; i++ {
		k := fmt.Sprintf("k%04d", i)
		want = append(want, k)
		values[k] = "v"
	}
	require.NoError(t, s.SetMany(ctx, values))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, keys)
}

// repeatScan returns every SCAN page twice, as a server may during rehashing.
type repeatScan struct{}

func (repeatScan) DialHook(next goredis.DialHook) goredis.DialHook { return next }

func (repeatScan) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		err := next(ctx, cmd)
		if sc, ok := cmd.(*goredis.ScanCmd); ok && err == nil {
			page, cursor := sc.Val()
			sc.SetVal(append(page, page...), cursor)
		}
		return err
	}
}

func (repeatScan) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return next
}

func TestKeys_DeduplicatesRepeatedScanResults(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	client.AddHook(repeatScan{})
	s := New(client, "")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "acadmate-user", "a@b.co"))
	require.NoError(t, s.Set(ctx, "acadmate-notes", "[]"))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"acadmate-notes", "acadmate-user"}, keys)
}

func TestSet_OOMMapsToQuota(t *testing.T) {
	s, mr := newStore(t, "")
	ctx := context.Background()

	// establish the pooled connection before the server starts failing
	require.NoError(t, s.client.Ping(ctx).Err())
	mr.SetError("OOM command not allowed when used memory > 'maxmemory'.")

	err := s.Set(ctx, "k", "v")
	require.ErrorIs(t, err, common.ErrStorageQuotaExceeded)

	err = s.SetMany(ctx, map[string]string{"k": "v"})
	require.ErrorIs(t, err, common.ErrStorageQuotaExceeded)
}

func TestErrorsWrapped(t *testing.T) {
	s, mr := newStore(t, "")
	ctx := context.Background()

	require.NoError(t, s.client.Ping(ctx).Err())
	mr.SetError("ERR server is sad")

	_, _, err := s.Get(ctx, "k")
	require.ErrorContains(t, err, "redis get k")
	assert.NotErrorIs(t, err, common.ErrStorageQuotaExceeded)

	err = s.Set(ctx, "k", "v")
	require.ErrorContains(t, err, "redis set k")
	assert.NotErrorIs(t, err, common.ErrStorageQuotaExceeded)

	require.ErrorContains(t, s.Remove(ctx, "k"), "redis del k")

	_, err = s.Keys(ctx)
	require.ErrorContains(t, err, "redis scan")
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := Open(context.Background(), mr.Addr(), "", "")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	mr.Close()
	_, err = Open(context.Background(), mr.Addr(), "", "")
	require.ErrorContains(t, err, "redis ping")
}
