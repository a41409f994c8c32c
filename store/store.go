// Package store provides the optional key-value cache that backs the binder's
// memoized access plans across process restarts.
package store

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrClosed     = errors.New("store is closed")
	ErrUnknownKey = errors.New("empty cache key")
)

// Store is a byte-oriented cache. A zero ttl stores the entry without expiry.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte, ttl time.Duration) error
	// Drop removes every entry whose key starts with prefix.
	Drop(prefix string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendDisk   = "disk"
	BackendSQLite = "sqlite"
)

// Open creates the backend named kind. The location is a directory for the
// disk backend and a file path or DSN for sqlite; it is ignored otherwise.
// BackendNone and the empty string yield a nil Store.
func Open(kind, location string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemory(), nil
	case BackendDisk:
		return OpenDisk(location)
	case BackendSQLite:
		return OpenSQLite(location)
	default:
		return nil, &BackendError{Kind: kind}
	}
}

// BackendError reports an unknown backend name.
type BackendError struct {
	Kind string
}

func (e *BackendError) Error() string {
	return "unknown cache backend " + `"` + e.Kind + `"`
}

func expiresAt(now time.Time, ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}

	return now.Add(ttl).UnixMilli()
}

func expired(now time.Time, at int64) bool {
	return at != 0 && now.UnixMilli() >= at
}
