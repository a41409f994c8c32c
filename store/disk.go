package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when diskPayload format changes
const diskSchemaVersion uint16 = 1

const diskExt = ".mp"

// Disk stores one msgpack file per key under a directory.
// Thread-safe for concurrent access.
type Disk struct {
	mu  sync.RWMutex
	dir string
	now func() time.Time
}

type diskPayload struct {
	Schema    uint16
	Key       string
	Value     []byte
	ExpiresAt int64
}

// OpenDisk initializes a disk store in dir. An empty dir selects
// $XDG_CACHE_HOME/view-binder, falling back to ~/.cache/view-binder.
func OpenDisk(dir string) (*Disk, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "view-binder")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &Disk{dir: dir, now: time.Now}, nil
}

// Dir returns the directory holding the entries.
func (d *Disk) Dir() string {
	return d.dir
}

func (d *Disk) pathFor(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(d.dir, hex.EncodeToString(sum[:])+diskExt)
}

func (d *Disk) Get(key string) ([]byte, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, err := readPayload(d.pathFor(key))
	if err != nil || p == nil {
		return nil, false, err
	}
	// stale schema or hash collision
	if p.Schema != diskSchemaVersion || p.Key != key || expired(d.now(), p.ExpiresAt) {
		return nil, false, nil
	}

	return p.Value, true, nil
}

func (d *Disk) Set(key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrUnknownKey
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	p := d.pathFor(key)
	f, err := os.CreateTemp(d.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	err = msgpack.NewEncoder(f).Encode(&diskPayload{
		Schema:    diskSchemaVersion,
		Key:       key,
		Value:     value,
		ExpiresAt: expiresAt(d.now(), ttl),
	})
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), p)
}

// Drop removes the entries whose key starts with prefix. Entries that cannot
// be decoded are removed as well.
func (d *Disk) Drop(prefix string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return err
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), diskExt) {
			continue
		}
		path := filepath.Join(d.dir, e.Name())
		p, err := readPayload(path)
		if err == nil && p != nil && !strings.HasPrefix(p.Key, prefix) {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (d *Disk) Close() error {
	return nil
}

func readPayload(path string) (*diskPayload, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var p diskPayload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	return &p, nil
}
