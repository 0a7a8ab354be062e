package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_LoadMissingFile(t *testing.T) {
	b, err := NewFileBackend(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	data, err := b.Load()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileBackend_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	b, err := NewFileBackend(path)
	require.NoError(t, err)

	require.NoError(t, b.Save([]byte(`{"services":[]}`)))

	data, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, `{"services":[]}`, string(data))

	// No temp file left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileBackend_SaveReplaces(t *testing.T) {
	b, err := NewFileBackend(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	require.NoError(t, b.Save([]byte("one")))
	require.NoError(t, b.Save([]byte("two")))

	data, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestFileBackend_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "db.json")
	b, err := NewFileBackend(path)
	require.NoError(t, err)

	require.NoError(t, b.Save([]byte("x")))

	data, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestSQLite_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	b, err := OpenSQLite(path)
	require.NoError(t, err)
	defer b.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestSQLite_LoadEmpty(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer b.Close()

	data, err := b.Load()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSQLite_SaveThenLoad(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Save([]byte("first")))
	require.NoError(t, b.Save([]byte("second")))

	data, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	b1, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, b1.Save([]byte("persisted")))
	require.NoError(t, b1.Close())

	b2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer b2.Close()

	data, err := b2.Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(data))
}

func TestSQLite_OpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		b, err := OpenSQLite(path)
		require.NoError(t, err, "Open() iteration %d", i)
		b.Close()
	}
}

func TestSQLite_CloseNilDB(t *testing.T) {
	b := &SQLiteBackend{db: nil}
	assert.NoError(t, b.Close())
}

func TestMemoryBackend_RoundTrip(t *testing.T) {
	b := NewMemoryBackend()

	data, err := b.Load()
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, b.Save([]byte("snap")))
	data, err = b.Load()
	require.NoError(t, err)
	assert.Equal(t, "snap", string(data))
}
