// Package ircache stores compiled IR artifacts on disk, keyed by the
// SHA-256 of the source text. A hit skips lexing, parsing, and lowering.
package ircache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"langtwo/internal/ir"
)

// Current schema version - increment when the payload format changes.
const schemaVersion uint16 = 1

// Key identifies one source text.
type Key [sha256.Size]byte

// KeyFor hashes source content into a cache key.
func KeyFor(content []byte) Key {
	return sha256.Sum256(content)
}

// payload is the on-disk artifact format.
type payload struct {
	Schema       uint16
	Instructions []ir.Operation
	HasResult    bool
	Result       ir.Register
}

// Cache is a directory of msgpack-encoded artifacts.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a cache at the standard user cache location for app.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// At opens a cache rooted at an explicit directory.
func At(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, "ir", hex.EncodeToString(key[:])+".mp")
}

// Put serializes an artifact under key. The write is atomic: encode to a
// temp file, then rename into place.
func (c *Cache) Put(key Key, artifact *ir.IR) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	pay := payload{
		Schema:       schemaVersion,
		Instructions: artifact.Instructions,
	}
	if artifact.Result != nil {
		pay.HasResult = true
		pay.Result = *artifact.Result
	}

	if err := msgpack.NewEncoder(f).Encode(&pay); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the artifact under key. A missing entry or a schema mismatch is
// a miss, not an error.
func (c *Cache) Get(key Key) (*ir.IR, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var pay payload
	if err := msgpack.NewDecoder(f).Decode(&pay); err != nil {
		return nil, false, err
	}
	if pay.Schema != schemaVersion {
		return nil, false, nil
	}

	artifact := &ir.IR{Instructions: pay.Instructions}
	if pay.HasResult {
		result := pay.Result
		artifact.Result = &result
	}
	return artifact, true, nil
}
