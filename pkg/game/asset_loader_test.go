package game

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pollUntil 在帧循环之外模拟逐帧 Poll，直到交付 want 个结果
func pollUntil(t *testing.T, loader *AssetLoader, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	delivered := 0
	for delivered < want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d loads, got %d", want, delivered)
		}
		delivered += loader.Poll()
		time.Sleep(time.Millisecond)
	}
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestAssetLoaderLoadsFile(t *testing.T) {
	loader, err := NewAssetLoader(2)
	require.NoError(t, err)
	defer loader.Release()

	payload := bytes.Repeat([]byte("campus"), readChunkSize/3)
	path := writeTempFile(t, "college.glb", payload)

	var got LoadResult
	require.NoError(t, loader.Load(path, nil, func(r LoadResult) { got = r }))
	assert.Equal(t, 1, loader.Pending())

	pollUntil(t, loader, 1)

	require.NoError(t, got.Err)
	assert.Equal(t, payload, got.Data)
	assert.Nil(t, got.Value)
	assert.Equal(t, 1.0, loader.Progress(path))
	assert.Equal(t, 0, loader.Pending())
}

func TestAssetLoaderDecoder(t *testing.T) {
	loader, err := NewAssetLoader(1)
	require.NoError(t, err)
	defer loader.Release()

	path := writeTempFile(t, "boards.json", []byte("hello"))

	var got LoadResult
	decode := func(data []byte) (any, error) { return len(data), nil }
	require.NoError(t, loader.Load(path, decode, func(r LoadResult) { got = r }))
	pollUntil(t, loader, 1)

	require.NoError(t, got.Err)
	assert.Equal(t, 5, got.Value)
}

func TestAssetLoaderReportsErrors(t *testing.T) {
	loader, err := NewAssetLoader(2)
	require.NoError(t, err)
	defer loader.Release()

	missing := filepath.Join(t.TempDir(), "missing.glb")
	bad := writeTempFile(t, "bad.json", []byte("x"))
	boom := errors.New("boom")

	results := map[string]error{}
	record := func(r LoadResult) { results[r.Path] = r.Err }

	require.NoError(t, loader.Load(missing, nil, record))
	require.NoError(t, loader.Load(bad, func([]byte) (any, error) { return nil, boom }, record))
	pollUntil(t, loader, 2)

	assert.Error(t, results[missing])
	assert.ErrorIs(t, results[bad], boom)
}

func TestAssetLoaderDecoderPanicIsContained(t *testing.T) {
	loader, err := NewAssetLoader(1)
	require.NoError(t, err)
	defer loader.Release()

	path := writeTempFile(t, "car.glb", []byte("not a glb"))

	var got LoadResult
	require.NoError(t, loader.Load(path, func([]byte) (any, error) { panic("corrupt") }, func(r LoadResult) { got = r }))
	pollUntil(t, loader, 1)

	assert.Error(t, got.Err)
}

func TestAssetLoaderRelease(t *testing.T) {
	loader, err := NewAssetLoader(1)
	require.NoError(t, err)

	loader.Release()
	loader.Release()

	err = loader.Load("data/college.json", nil, nil)
	assert.ErrorIs(t, err, ErrLoaderReleased)
	assert.Equal(t, 0.0, loader.Progress("unknown"))
}
