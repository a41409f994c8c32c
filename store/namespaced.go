package store

import (
	"fmt"
	"time"
)

const versionKey = "@version"

// Namespaced scopes a backend to one (namespace, version) pair. Entries of
// any other version are dropped when the namespace is opened. A zero
// Lifetime disables persistence: reads always miss and writes are discarded.
type Namespaced struct {
	backend   Store
	namespace string
	version   string
	lifetime  time.Duration
}

// NewNamespaced binds backend to namespace and version. When the version
// recorded in the backend differs from version, every entry of the namespace
// is dropped and the new version recorded. A nil backend behaves like a zero
// lifetime.
func NewNamespaced(backend Store, namespace, version string, lifetime time.Duration) (*Namespaced, error) {
	n := &Namespaced{
		backend:   backend,
		namespace: namespace,
		version:   version,
		lifetime:  lifetime,
	}
	if !n.Enabled() {
		return n, nil
	}

	recorded, ok, err := backend.Get(n.prefix() + versionKey)
	if err != nil {
		return nil, fmt.Errorf("read cache version: %w", err)
	}
	if ok && string(recorded) == version {
		return n, nil
	}

	if err := backend.Drop(n.prefix()); err != nil {
		return nil, fmt.Errorf("invalidate namespace %q: %w", namespace, err)
	}
	if err := backend.Set(n.prefix()+versionKey, []byte(version), 0); err != nil {
		return nil, fmt.Errorf("record cache version: %w", err)
	}

	return n, nil
}

// Enabled reports whether entries are persisted at all.
func (n *Namespaced) Enabled() bool {
	return n != nil && n.backend != nil && n.lifetime != 0
}

func (n *Namespaced) Namespace() string       { return n.namespace }
func (n *Namespaced) Version() string         { return n.version }
func (n *Namespaced) Lifetime() time.Duration { return n.lifetime }

func (n *Namespaced) prefix() string {
	return n.namespace + "/"
}

func (n *Namespaced) key(k string) string {
	return n.prefix() + n.version + "/" + k
}

// Get reads key within the namespace.
func (n *Namespaced) Get(key string) ([]byte, bool, error) {
	if !n.Enabled() {
		return nil, false, nil
	}

	return n.backend.Get(n.key(key))
}

// Put writes key within the namespace using the configured lifetime. A
// negative lifetime stores entries without expiry.
func (n *Namespaced) Put(key string, value []byte) error {
	if !n.Enabled() {
		return nil
	}

	return n.backend.Set(n.key(key), value, max(n.lifetime, 0))
}

// Clear drops every entry of the namespace, whatever its version.
func (n *Namespaced) Clear() error {
	if n == nil || n.backend == nil {
		return nil
	}

	return n.backend.Drop(n.prefix())
}

// Close releases the backend. The namespace is unusable afterwards.
func (n *Namespaced) Close() error {
	if n == nil || n.backend == nil {
		return nil
	}

	return n.backend.Close()
}
