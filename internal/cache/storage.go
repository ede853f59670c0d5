// Package cache memoizes per-source-file parse results across builds.
// It never stores the trie or serialized output — only the
// (pattern, key, value) triples a parse produced for one source file,
// keyed by that file's path, size, modification time, and content
// hash. A build always constructs the trie from scratch; this package
// only lets it skip re-running the text parser on files that have not
// changed.
package cache

import "errors"

// ErrNotFound is returned by storageTx.Bucket in a read-only
// transaction when the named bucket does not exist yet.
var ErrNotFound = errors.New("cache: bucket not found")

// storage is a minimal key-value backend abstraction, so the cache can
// run against either a real bbolt file or an in-memory map in tests.
//
// Grounded on the teacher's storage/storageTx/storageBucket split
// (storage.go, storage_bolt.go, storage_mem.go), trimmed to what a
// flat path->record cache actually needs: no cursors, no nested
// buckets, no deletion, since the cache is append/overwrite-only and
// never scanned in bulk.
type storage interface {
	BeginTx(writable bool) (storageTx, error)
	Close() error
}

type storageTx interface {
	Bucket(name string) (storageBucket, error)
	Commit() error
	Rollback() error
}

type storageBucket interface {
	Get(key []byte) []byte
	Put(key, value []byte) error
}
