package cache

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

const triplesBucket = "triples"

// CachedTriple is one parsed (pattern, key, value) line, as recorded
// by the text parser (§4.D) before it reaches the trie builder.
type CachedTriple struct {
	Pattern []byte
	Key     []byte
	Value   []byte
}

// record is the msgpack-encoded bbolt value, keyed by source path.
type record struct {
	Path        string
	Size        int64
	ModTime     int64
	ContentHash uint64
	Triples     []CachedTriple
}

// Options configures Open, following the teacher's db.go Options shape.
type Options struct {
	Logf      func(format string, args ...any)
	Verbose   bool
	IsTesting bool
}

func (o Options) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

// Cache memoizes parser output per source file across builds, keyed
// by (path, size, mtime, content hash). It never stores the trie or
// serialized output.
type Cache struct {
	st  storage
	opt Options
}

// Open opens (creating if absent) a cache file at path. Pass an empty
// path with opt.IsTesting to get an in-memory cache instead (see
// OpenMem, which is the preferred entry point for tests).
func Open(path string, opt Options) (*Cache, error) {
	if path == "" && opt.IsTesting {
		return OpenMem(opt), nil
	}
	bopt := *bbolt.DefaultOptions
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
	}
	bdb, err := bbolt.Open(path, 0666, &bopt)
	if err != nil {
		return nil, fmt.Errorf("cache: opening %s: %w", path, err)
	}
	return &Cache{st: newBoltStorage(bdb), opt: opt}, nil
}

// OpenMem returns a Cache backed by an in-memory map, for tests that
// want cache semantics without touching disk.
func OpenMem(opt Options) *Cache {
	return &Cache{st: newMemStorage(), opt: opt}
}

// Close releases the underlying storage.
func (c *Cache) Close() error {
	return c.st.Close()
}

// Lookup returns the triples recorded for path the last time its stat
// tuple and content hash matched size/modTime/hash exactly. A mismatch
// on any field — including a stale mtime whose content hash no longer
// matches — is a miss.
func (c *Cache) Lookup(path string, size int64, modTime int64, hash uint64) ([]CachedTriple, bool) {
	tx, err := c.st.BeginTx(false)
	if err != nil {
		return nil, false
	}
	defer tx.Rollback()

	b, err := tx.Bucket(triplesBucket)
	if err != nil {
		return nil, false
	}
	raw := b.Get([]byte(path))
	if raw == nil {
		return nil, false
	}

	var rec record
	if err := msgpack.Unmarshal(raw, &rec); err != nil {
		c.opt.logf("cache: corrupt record for %s: %v", path, err)
		return nil, false
	}
	if rec.Size != size || rec.ModTime != modTime || rec.ContentHash != hash {
		return nil, false
	}
	return rec.Triples, true
}

// Store records triples as the parse result for path at the given
// stat tuple and content hash, overwriting any prior record.
func (c *Cache) Store(path string, size int64, modTime int64, hash uint64, triples []CachedTriple) error {
	rec := record{Path: path, Size: size, ModTime: modTime, ContentHash: hash, Triples: triples}
	raw, err := msgpack.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("cache: encoding record for %s: %w", path, err)
	}

	tx, err := c.st.BeginTx(true)
	if err != nil {
		return err
	}
	b, err := tx.Bucket(triplesBucket)
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := b.Put([]byte(path), raw); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
