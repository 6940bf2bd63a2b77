package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"
)

// entryHeader is the size of the expiry prefix of every entry file.
const entryHeader = 8

// FileCache implements a file-based cache for CLI usage.
//
// Each entry is one file: an 8-byte big-endian expiry (Unix nanoseconds,
// zero for none) followed by the raw value. Encoded images are stored as is,
// without a text encoding.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if len(data) < entryHeader {
		// Truncated entry - treat as miss
		_ = os.Remove(path)
		return nil, false, nil
	}

	if exp := int64(binary.BigEndian.Uint64(data)); exp != 0 && time.Now().UnixNano() > exp {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return data[entryHeader:], true, nil
}

// Set stores a value in the cache. The entry is written to a temporary file
// and renamed, so concurrent readers never see a partial value.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	var header [entryHeader]byte
	binary.BigEndian.PutUint64(header[:], uint64(exp))
	if _, err := tmp.Write(header[:]); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path := c.path(key)
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry and recreates the empty directory.
func (c *FileCache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0755)
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// path converts a cache key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	subdir := hash[:2]
	return filepath.Join(c.dir, subdir, hash[2:])
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
