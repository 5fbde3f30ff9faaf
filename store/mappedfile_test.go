package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ttpr0/corelandmarks/store"
)

func TestGrowAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.bin")

	f, err := store.Open(path)
	require.NoError(t, err)

	require.NoError(t, f.EnsureCapacity(store.HeaderSize+1024))
	f.Fill(store.HeaderSize, store.HeaderSize+1024, 0xFFFF)
	f.SetInt(0, 42)
	f.SetShort(store.HeaderSize, 7)

	require.NoError(t, f.Flush())
	require.NoError(t, f.Close())

	reopened, err := store.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, int32(42), reopened.GetInt(0))
	require.Equal(t, uint16(7), reopened.GetShort(store.HeaderSize))
	require.Equal(t, uint16(0xFFFF), reopened.GetShort(store.HeaderSize+2))
}

func TestEnsureCapacityIsNoOpWhenSmaller(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.bin")
	f, err := store.Open(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.EnsureCapacity(4096))
	before := f.Size()
	require.NoError(t, f.EnsureCapacity(store.HeaderSize))
	require.Equal(t, before, f.Size())
}
