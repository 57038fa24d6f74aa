package registry

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles_UpsertGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewProfiles(kvstore.NewMemoryStore())

	profiles := []models.Profile{
		{Name: "Alice", Email: "alice@uni.edu"},
		{Name: "", Email: "noname@uni.edu"},
		{Name: "Bob", Email: "bob@uni.edu", DOB: "2002-03-04", College: "KLH", ProfilePic: models.EncodeDataURL("image/png", []byte{0x89, 'P', 'N', 'G'})},
	}
	for _, want := range profiles {
		require.NoError(t, p.Upsert(ctx, want))
		got, ok, err := p.Get(ctx, want.Email)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestProfiles_UpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	p := NewProfiles(kvstore.NewMemoryStore())

	require.NoError(t, p.Upsert(ctx, models.Profile{Name: "A", Email: "a@b.co", College: "X"}))
	require.NoError(t, p.Upsert(ctx, models.Profile{Name: "B", Email: "a@b.co"}))

	got, _, err := p.Get(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, models.Profile{Name: "B", Email: "a@b.co"}, got)
}

func TestProfiles_UpsertRequiresEmail(t *testing.T) {
	p := NewProfiles(kvstore.NewMemoryStore())
	err := p.Upsert(context.Background(), models.Profile{Name: "x"})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestProfiles_GetMissing(t *testing.T) {
	p := NewProfiles(kvstore.NewMemoryStore())
	_, ok, err := p.Get(context.Background(), "ghost@b.co")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfiles_Ensure(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	p := NewProfiles(store)

	got, err := p.Ensure(ctx, "carol@b.co")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfile("carol@b.co"), got)
	assert.JSONEq(t, `{"carol@b.co":{"name":"carol","email":"carol@b.co"}}`, raw(t, store, models.KeyProfiles))

	require.NoError(t, p.Upsert(ctx, models.Profile{Name: "Carol C", Email: "carol@b.co"}))
	got, err = p.Ensure(ctx, "carol@b.co")
	require.NoError(t, err)
	assert.Equal(t, "Carol C", got.Name)
}

func TestProfiles_NullDocument(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, models.KeyProfiles, "null"))

	p := NewProfiles(store)
	require.NoError(t, p.Upsert(ctx, models.Profile{Email: "a@b.co"}))
}

func TestProfiles_ReadError(t *testing.T) {
	store := newFaultStore()
	store.failGet[models.KeyProfiles] = errInjected
	p := NewProfiles(store)

	_, _, err := p.Get(context.Background(), "a@b.co")
	require.ErrorIs(t, err, errInjected)
}
