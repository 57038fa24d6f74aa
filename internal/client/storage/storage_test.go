package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/acadmate/internal/client/config"
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	store, closeFn, err := Open(context.Background(), &config.Config{StorageDriver: config.DriverMemory})
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.IsType(t, &kvstore.MemoryStore{}, store)
}

func TestOpen_WrapsQuota(t *testing.T) {
	store, _, err := Open(context.Background(), &config.Config{StorageDriver: config.DriverMemory, QuotaBytes: 100})
	require.NoError(t, err)

	q, ok := store.(*kvstore.QuotaStore)
	require.True(t, ok)
	assert.Equal(t, int64(100), q.Limit())
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StorageDriver: config.DriverSQLite, StorageDSN: filepath.Join(t.TempDir(), "a.db")}

	store, closeFn, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, store.Set(ctx, "acadmate-user", "a@b.co"))
	v, ok, err := store.Get(ctx, "acadmate-user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a@b.co", v)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	store, closeFn, err := Open(ctx, &config.Config{StorageDriver: config.DriverRedis, RedisAddr: mr.Addr(), RedisNamespace: "t:"})
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, store.Set(ctx, "k", "v"))
	got, err := mr.Get("t:k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestOpen_PostgresUsesDSN(t *testing.T) {
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })

	var gotDSN string
	openPostgres = func(ctx context.Context, dsn string) (kvstore.Store, func() error, error) {
		gotDSN = dsn
		return nil, nil, errors.New("no server")
	}

	_, _, err := Open(context.Background(), &config.Config{StorageDriver: config.DriverPostgres, StorageDSN: "postgres://x/y"})
	require.ErrorContains(t, err, "open postgres storage: no server")
	assert.Equal(t, "postgres://x/y", gotDSN)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StorageDriver: "floppy"})
	require.ErrorContains(t, err, `unknown storage driver "floppy"`)
}
