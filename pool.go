package hwdbc

import (
	"bytes"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// PoolHandle is an opaque reference into a Pool, valid once returned by
// Intern. Before Finalize it must not be dereferenced (§4.A); after
// Finalize it resolves to a stable byte offset via Pool.Offset.
type PoolHandle int

// Pool is an append-only, deduplicating byte arena (§3, §4.A). Two Intern
// calls with equal inputs always return the same handle; Finalize packs
// the accumulated strings into one contiguous, zero-terminated buffer,
// optionally tail-sharing (a longer string's trailing bytes double as a
// shorter string's full body).
//
// Grounded on the teacher's bytesBuilder growth discipline (byteutil.go);
// the hash-assisted dedup map is this repo's own addition, since the
// teacher's document-row values are never deduplicated by content.
type Pool struct {
	entries    [][]byte
	byHash     map[uint64][]PoolHandle
	finalized  bool
	buf        []byte
	offsets    []int // offsets[handle] -> byte offset in buf, valid after Finalize
}

// NewPool returns an empty, mutable Pool.
func NewPool() *Pool {
	return &Pool{byHash: make(map[uint64][]PoolHandle)}
}

// Intern records bytes for eventual inclusion in the packed buffer and
// returns a stable handle. Equal inputs (including prior calls) always
// yield the same handle.
func (p *Pool) Intern(b []byte) (PoolHandle, error) {
	if p.finalized {
		panic("hwdbc: Intern after Finalize")
	}
	h := xxhash.Sum64(b)
	for _, cand := range p.byHash[h] {
		if bytes.Equal(p.entries[cand], b) {
			return cand, nil
		}
	}
	handle := PoolHandle(len(p.entries))
	// Own a copy: callers (the parser, the builder) frequently pass slices
	// backed by a reusable line buffer.
	owned := append([]byte(nil), b...)
	p.entries = append(p.entries, owned)
	p.byHash[h] = append(p.byHash[h], handle)
	return handle, nil
}

// InternString is a convenience wrapper for string inputs.
func (p *Pool) InternString(s string) (PoolHandle, error) {
	return p.Intern([]byte(s))
}

// Finalize closes the pool for further mutation, packs the accumulated
// strings into one contiguous zero-terminated buffer, and resolves every
// outstanding handle to its permanent offset. It is an error to call
// Finalize twice.
func (p *Pool) Finalize() error {
	if p.finalized {
		panic("hwdbc: double Finalize")
	}

	n := len(p.entries)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Sort by reverse string, descending, so that a string which is a
	// suffix of another comes right after the longer string; this makes
	// single-pass tail-sharing detection possible (§4.A, §9 open
	// question #3 — implemented, not merely permitted).
	sort.Slice(order, func(a, b int) bool {
		return reverseLess(p.entries[order[b]], p.entries[order[a]])
	})

	p.offsets = make([]int, n)
	var buf []byte
	var prevHandle int
	havePrev := false
	for _, handle := range order {
		s := p.entries[handle]
		if havePrev && isSuffixOf(s, p.entries[prevHandle]) {
			prevOff := p.offsets[prevHandle]
			prevLen := len(p.entries[prevHandle])
			p.offsets[handle] = prevOff + (prevLen - len(s))
			continue
		}
		off := len(buf)
		buf = append(buf, s...)
		buf = append(buf, 0)
		p.offsets[handle] = off
		prevHandle = handle
		havePrev = true
	}

	p.buf = buf
	p.finalized = true
	return nil
}

// Offset resolves a handle to its permanent byte offset. Valid only
// after Finalize.
func (p *Pool) Offset(h PoolHandle) int {
	if !p.finalized {
		panic("hwdbc: Offset before Finalize")
	}
	return p.offsets[h]
}

// Bytes returns the original (pre-intern) bytes for a handle. Valid at
// any time; used by the builder for comparisons during insertion.
func (p *Pool) Bytes(h PoolHandle) []byte {
	return p.entries[h]
}

// Len returns the size of the final packed buffer. Valid only after
// Finalize.
func (p *Pool) Len() int {
	if !p.finalized {
		panic("hwdbc: Len before Finalize")
	}
	return len(p.buf)
}

// Buf returns the finalized packed buffer, to be appended verbatim as
// the string region of the output file (§4.E).
func (p *Pool) Buf() []byte {
	if !p.finalized {
		panic("hwdbc: Buf before Finalize")
	}
	return p.buf
}

// isSuffixOf reports whether short is exactly the trailing len(short)
// bytes of long (and no longer than it).
func isSuffixOf(short, long []byte) bool {
	if len(short) > len(long) {
		return false
	}
	return bytes.Equal(long[len(long)-len(short):], short)
}

// reverseLess orders two byte strings as if each had been reversed, so
// that strings sharing a suffix sort next to each other.
func reverseLess(a, b []byte) bool {
	i, j := len(a)-1, len(b)-1
	for i >= 0 && j >= 0 {
		ca, cb := a[i], b[j]
		if ca != cb {
			return ca < cb
		}
		i--
		j--
	}
	return len(a) < len(b)
}
