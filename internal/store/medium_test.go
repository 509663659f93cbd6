package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseMedium runs the contract every backend must satisfy.
func exerciseMedium(t *testing.T, m Medium) {
	t.Helper()
	ctx := context.Background()

	_, err := m.Get(ctx, "gwada:missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Put(ctx, "gwada:forecast:97101", []byte(`{"a":1}`)))
	got, err := m.Get(ctx, "gwada:forecast:97101")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	require.NoError(t, m.Put(ctx, "gwada:forecast:97101", []byte(`{"a":2}`)))
	got, err = m.Get(ctx, "gwada:forecast:97101")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(got))

	// disjoint keys do not interfere under concurrent writers
	var wg sync.WaitGroup
	for _, key := range []string{"gwada:weather", "gwada:vigilance", "gwada:air-quality"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				assert.NoError(t, m.Put(ctx, key, []byte(`"`+key+`"`)))
			}
		}(key)
	}
	wg.Wait()

	got, err = m.Get(ctx, "gwada:vigilance")
	require.NoError(t, err)
	assert.Equal(t, `"gwada:vigilance"`, string(got))
}

func TestMemoryMedium(t *testing.T) {
	m := NewMemoryMedium()
	exerciseMedium(t, m)
	assert.Equal(t, 4, m.Len())
}

func TestMemoryMedium_CopiesBytes(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryMedium()

	buf := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", buf))
	buf[0] = 'z'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestMemoryMedium_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemoryMedium()
	assert.Error(t, m.Put(ctx, "k", []byte("v")))
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileMedium(t *testing.T) {
	dir := t.TempDir()
	m, err := NewFileMedium(dir)
	require.NoError(t, err)
	exerciseMedium(t, m)

	// no temp files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
	_, err = os.Stat(filepath.Join(dir, "gwada__forecast__97101.json"))
	assert.NoError(t, err)
}

func TestFileMedium_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileMedium(dir)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "gwada:weather", []byte(`{"value":{},"writtenAt":1}`)))

	second, err := NewFileMedium(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, "gwada:weather")
	require.NoError(t, err)
	assert.Contains(t, string(got), "writtenAt")
}

func TestNewFileMedium_EmptyDir(t *testing.T) {
	_, err := NewFileMedium("  ")
	assert.Error(t, err)
}

func TestSQLiteMedium(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	m, err := OpenSQLiteMedium(ctx, path)
	require.NoError(t, err)
	exerciseMedium(t, m)
	require.NoError(t, m.Close())

	reopened, err := OpenSQLiteMedium(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "gwada:forecast:97101")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(got))
}

func TestRedisMedium(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	m, err := NewRedisMedium(context.Background(), url)
	require.NoError(t, err)
	defer m.Close()
	exerciseMedium(t, m)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	m, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryMedium{}, m)

	m, err = Open(ctx, Options{Backend: "FILE", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileMedium{}, m)

	m, err = Open(ctx, Options{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteMedium{}, m)
	require.NoError(t, m.Close())

	_, err = Open(ctx, Options{Backend: BackendRedis})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.Error(t, err)
}

func TestFileMedium_KeysDoNotCollide(t *testing.T) {
	ctx := context.Background()
	m, err := NewFileMedium(t.TempDir())
	require.NoError(t, err)

	keys := []string{"a:b", "a__b", "a_b", "a/b", "a b", `a\b`, "a_sb", "a_u"}
	for _, key := range keys {
		require.NoError(t, m.Put(ctx, key, []byte(`"`+key+`"`)))
	}

	seen := map[string]string{}
	for _, key := range keys {
		got, err := m.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `"`+key+`"`, string(got), key)

		name := m.path(key)
		if other, dup := seen[name]; dup {
			t.Fatalf("keys %q and %q share file %s", other, key, name)
		}
		seen[name] = key
	}
}
