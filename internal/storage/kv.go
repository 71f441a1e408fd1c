// Package storage persists the task list as a serialized value under a fixed
// key in a small key-value store.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"tagdo/internal/task"
)

// TodosKey is the key the task list is stored under.
const TodosKey = "todos"

// KV is a minimal key-value store.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Put(key string, value []byte) error
}

// TaskStore serializes the task list into a KV under TodosKey.
type TaskStore struct {
	kv  KV
	key string
}

func NewTaskStore(kv KV) *TaskStore {
	return &TaskStore{kv: kv, key: TodosKey}
}

func (s *TaskStore) Load() ([]task.Task, bool, error) {
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok {
		return nil, false, nil
	}
	tasks, err := task.Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return tasks, true, nil
}

func (s *TaskStore) Save(tasks []task.Task) error {
	data, err := task.Encode(tasks)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.kv.Put(s.key, data); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Dir is a KV keeping one <key>.json file per key in a directory.
type Dir struct {
	path string
}

func OpenDir(path string) (*Dir, error) {
	if path == "" {
		return nil, errors.New("data dir is empty")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	return &Dir{path: path}, nil
}

func (d *Dir) file(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(d.path, key+".json"), nil
}

func (d *Dir) Get(key string) ([]byte, bool, error) {
	name, err := d.file(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

// Put replaces the file through a rename so a crash never leaves half a value.
func (d *Dir) Put(key string, value []byte) error {
	name, err := d.file(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(d.path, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), name)
}

func (d *Dir) Close() error {
	return nil
}

// Memory is an in-process KV; nothing survives the session.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// Backend is a KV that holds resources until closed.
type Backend interface {
	KV
	Close() error
}

const (
	KindSQLite = "sqlite"
	KindFile   = "file"
	KindMemory = "memory"
)

// Open returns the backend named by kind.
func Open(kind, dbPath, dataDir string) (Backend, error) {
	switch kind {
	case KindSQLite, "":
		return OpenSQLite(dbPath)
	case KindFile:
		return OpenDir(dataDir)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", kind)
	}
}
