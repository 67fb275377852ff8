package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Entry format or minifier output changes
const SchemaVersion uint16 = 1

// Key identifies a cached output: the digest of the options and the source
type Key [sha256.Size]byte

// NewKey derives the cache key for minifying src with the given wrap width
func NewKey(src []byte, wrap int) Key {
	h := sha256.New()
	h.Write([]byte("cssmin/" + strconv.Itoa(int(SchemaVersion)) + "/wrap=" + strconv.Itoa(wrap) + "\x00"))
	h.Write(src)
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// String returns the key in hex
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Entry is one cached minification result
type Entry struct {
	Schema    uint16
	Wrap      int
	InputSize int
	Output    []byte
	CreatedAt time.Time
}

// DiskCache stores minified outputs on disk, keyed by Key.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache rooted at dir, creating it if needed
func Open(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDefault returns the cache at the standard per-user location
func OpenDefault(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return Open(filepath.Join(base, app))
}

// Dir returns the cache root
func (c *DiskCache) Dir() string {
	return c.dir
}

func (c *DiskCache) pathFor(key Key) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "css", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes an entry to the disk cache.
func (c *DiskCache) Put(key Key, entry *Entry) error {
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
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(f.Name())

	entry.Schema = SchemaVersion
	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads an entry from the disk cache. An entry written by another
// schema version counts as a miss.
func (c *DiskCache) Get(key Key) (*Entry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var entry Entry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	if entry.Schema != SchemaVersion {
		return nil, false, nil
	}
	return &entry, true, nil
}

// DropAll invalidates the cache
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
