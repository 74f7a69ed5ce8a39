package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAssetCreateAndGet(t *testing.T) {
	s := newTestStore(t)

	a := &Asset{Category: "wave", Name: "hello", Path: "/assets/wave/hello.gif"}
	require.NoError(t, s.Assets().Create(a))
	assert.NotEmpty(t, a.ID)

	got, err := s.Assets().Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "wave", got.Category)
	assert.Equal(t, "hello", got.Name)
	assert.Equal(t, "/assets/wave/hello.gif", got.Path)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestAssetGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Assets().Get("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssetUniquePerCategoryAndName(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Assets().Create(&Asset{Category: "wave", Name: "hello"}))
	assert.Error(t, s.Assets().Create(&Asset{Category: "wave", Name: "hello"}))
	// Same name in another category is fine.
	assert.NoError(t, s.Assets().Create(&Asset{Category: "happy", Name: "hello"}))
}

func TestAssetListOrdered(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Assets().Create(&Asset{Category: "wave", Name: "b"}))
	require.NoError(t, s.Assets().Create(&Asset{Category: "happy", Name: "z"}))
	require.NoError(t, s.Assets().Create(&Asset{Category: "wave", Name: "a"}))

	assets, err := s.Assets().List()
	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, "happy", assets[0].Category)
	assert.Equal(t, "a", assets[1].Name)
	assert.Equal(t, "b", assets[2].Name)
}

func TestAssetDelete(t *testing.T) {
	s := newTestStore(t)

	a := &Asset{Category: "wave", Name: "hello"}
	require.NoError(t, s.Assets().Create(a))

	require.NoError(t, s.Assets().Delete(a.ID))
	_, err := s.Assets().Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Assets().Delete(a.ID), ErrNotFound)
}

func TestCatalogue(t *testing.T) {
	s := newTestStore(t)

	w1 := &Asset{Category: "wave", Name: "a"}
	w2 := &Asset{Category: "wave", Name: "b"}
	h1 := &Asset{Category: "happy", Name: "a"}
	for _, a := range []*Asset{w1, w2, h1} {
		require.NoError(t, s.Assets().Create(a))
	}

	catalogue, err := s.Assets().Catalogue()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{w1.ID, w2.ID}, catalogue["wave"])
	assert.Equal(t, []string{h1.ID}, catalogue["happy"])
}

func TestSeedFromDir(t *testing.T) {
	s := newTestStore(t)

	dir := t.TempDir()
	for _, p := range []string{
		"wave/hello.gif",
		"wave/big.gif",
		"neutral/idle.gif",
	} {
		full := filepath.Join(dir, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
	// Stray top-level file is skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("x"), 0o644))

	added, err := s.Assets().SeedFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	catalogue, err := s.Assets().Catalogue()
	require.NoError(t, err)
	assert.Len(t, catalogue["wave"], 2)
	assert.Len(t, catalogue["neutral"], 1)

	// Reseeding is idempotent.
	added, err = s.Assets().SeedFromDir(dir)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestSeedFromMissingDir(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Assets().SeedFromDir(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.NoError(t, err)
	assert.Zero(t, added)
}

func TestEventInsertAndList(t *testing.T) {
	s := newTestStore(t)

	a := &Asset{Category: "wave", Name: "hello"}
	require.NoError(t, s.Assets().Create(a))

	withAsset := &ReactionEvent{Kind: "gesture", Category: "wave", Confidence: 0.8, AssetID: a.ID}
	require.NoError(t, s.Events().Insert(withAsset))
	withoutAsset := &ReactionEvent{Kind: "expression", Category: "neutral", Confidence: 0.2}
	require.NoError(t, s.Events().Insert(withoutAsset))

	events, err := s.Events().ListRecent(10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	// Newest first.
	assert.Equal(t, "neutral", events[0].Category)
	assert.Empty(t, events[0].AssetID)
	assert.Equal(t, "wave", events[1].Category)
	assert.Equal(t, a.ID, events[1].AssetID)
	assert.InDelta(t, 0.8, events[1].Confidence, 1e-9)
}

func TestEventKindConstrained(t *testing.T) {
	s := newTestStore(t)

	err := s.Events().Insert(&ReactionEvent{Kind: "dance", Category: "wave", Confidence: 0.5})
	assert.Error(t, err)
}

func TestEventAssetClearedOnAssetDelete(t *testing.T) {
	s := newTestStore(t)

	a := &Asset{Category: "wave", Name: "hello"}
	require.NoError(t, s.Assets().Create(a))
	require.NoError(t, s.Events().Insert(&ReactionEvent{Kind: "gesture", Category: "wave", Confidence: 0.8, AssetID: a.ID}))

	require.NoError(t, s.Assets().Delete(a.ID))

	events, err := s.Events().ListRecent(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].AssetID)
}

func TestEventListLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Events().Insert(&ReactionEvent{Kind: "gesture", Category: "fist", Confidence: 0.7}))
	}

	events, err := s.Events().ListRecent(2)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	// Non-positive limit falls back to the default.
	events, err = s.Events().ListRecent(0)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}
