package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagdo/internal/task"
	"tagdo/internal/todo"
)

var (
	_ todo.Store = (*TaskStore)(nil)
	_ Backend    = (*SQLite)(nil)
	_ Backend    = (*Dir)(nil)
	_ Backend    = (*Memory)(nil)
)

func openBackends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()
	db, err := OpenSQLite(filepath.Join(dir, "nested", "todo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	files, err := OpenDir(filepath.Join(dir, "data"))
	require.NoError(t, err)
	return map[string]Backend{
		KindSQLite: db,
		KindFile:   files,
		KindMemory: NewMemory(),
	}
}

func TestKVGetPut(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(TodosKey)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Put(TodosKey, []byte(`[1]`)))
			require.NoError(t, kv.Put(TodosKey, []byte(`[2]`)))

			v, ok, err := kv.Get(TodosKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[2]`, string(v))
		})
	}
}

func TestTaskStoreRoundTrip(t *testing.T) {
	due := task.NewDate(2026, time.October, 20)
	tasks := []task.Task{
		{ID: 3, Text: "three", Tag: "Work", Deadline: &due},
		{ID: 1, Text: "one", IsComplete: true},
		{ID: 2, Text: "two", Tag: "Garden"},
	}
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewTaskStore(kv)
			_, ok, err := s.Load()
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Save(tasks))
			got, ok, err := s.Load()
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tasks, got)
		})
	}
}

func TestTaskStoreCorruptValue(t *testing.T) {
	kv := NewMemory()
	require.NoError(t, kv.Put(TodosKey, []byte("{oops")))
	_, _, err := NewTaskStore(kv).Load()
	assert.Error(t, err)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, NewTaskStore(db).Save([]task.Task{{ID: 1, Text: "keep"}}))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	got, ok, err := NewTaskStore(db).Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []task.Task{{ID: 1, Text: "keep"}}, got)

	at, ok, err := db.UpdatedAt(TodosKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now(), at, time.Minute)
}

func TestSQLiteMigratesOldTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	raw, err := sql.Open("sqlite", sqliteDSN(path))
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO kv (key, value) VALUES ('todos', '[{"id":1,"text":"legacy"}]');`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	got, ok, err := NewTaskStore(db).Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []task.Task{{ID: 1, Text: "legacy"}}, got)

	require.NoError(t, NewTaskStore(db).Save(got))
	_, ok, err = db.UpdatedAt(TodosKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOpenSQLiteEmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}

func TestDirRejectsBadKeys(t *testing.T) {
	d, err := OpenDir(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, d.Put("../escape", []byte("x")))
	_, _, err = d.Get("a/b")
	assert.Error(t, err)
}

func TestDirLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	d, err := OpenDir(dir)
	require.NoError(t, err)
	require.NoError(t, d.Put(TodosKey, []byte("[]")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "todos.json", entries[0].Name())
}

func TestOpenKinds(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range []string{KindSQLite, KindFile, KindMemory} {
		b, err := Open(kind, filepath.Join(dir, "todo.db"), filepath.Join(dir, "data"))
		require.NoError(t, err, kind)
		require.NoError(t, b.Close())
	}
	_, err := Open("redis", "", "")
	assert.Error(t, err)
}
