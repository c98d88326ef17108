package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"minitodo/internal/todo"
)

var lockTimeout = 2 * time.Second

const defaultMode os.FileMode = 0o644

var ErrLocked = errors.New("data file is locked by another process")

// File persists a todo list to a single fixed-layout file. Nothing is held
// open between calls.
type File struct {
	path string
	lock *flock.Flock
}

func Open(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("data path is empty")
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &File{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

func (f *File) Path() string {
	return f.path
}

// Load reads every record from the file. A missing file is an empty list;
// a truncated or malformed one returns an error wrapping ErrCorrupt and no
// records.
func (f *File) Load() ([]todo.Todo, error) {
	if _, err := os.Stat(f.path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err := f.acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = f.lock.Unlock() }()

	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	todos, err := Decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", f.path, err)
	}
	return todos, nil
}

// Save replaces the file contents with todos. The new contents are written
// to a temporary file in the same directory and renamed into place.
func (f *File) Save(todos []todo.Todo) (err error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	if err := f.acquire(); err != nil {
		return err
	}
	defer func() { _ = f.lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := Encode(w, todos); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(f.fileMode()); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// fileMode is the mode of the existing data file, or 0644 for a new one.
// CreateTemp always opens with 0600.
func (f *File) fileMode() os.FileMode {
	if info, err := os.Stat(f.path); err == nil {
		return info.Mode().Perm()
	}
	return defaultMode
}

func (f *File) acquire() error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()
	locked, err := f.lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("lock %s: %w", f.lock.Path(), err)
	}
	if !locked {
		return ErrLocked
	}
	return nil
}
