package hwdbc

import (
	"os"
	"path/filepath"
)

// serializeState holds the per-node prefix handles recorded the first
// time Serialize visits each node, ahead of Pool.Finalize; it is
// unexported state private to this file's walk, kept in a map beside
// the trie rather than on the node struct.
type serializeState struct {
	prefixHandle map[*node]PoolHandle
}

// Serialize renders the trie rooted at b.Root() into the on-disk format
// (§4.E) and atomically commits it to path. On any failure the
// pre-existing file at path, if any, is left untouched.
func Serialize(b *Builder, path string) error {
	root := b.Root()
	pool := b.pool

	st := &serializeState{prefixHandle: make(map[*node]PoolHandle)}
	if err := st.internPrefixes(pool, root); err != nil {
		return err
	}
	if err := pool.Finalize(); err != nil {
		return err
	}

	nodeRegionSize := nodeRegionSizeOf(root)
	stringsOff := uint64(headerSize) + nodeRegionSize

	nodes := bytesBuilder{Buf: getNodeBuf()}
	defer func() { putNodeBuf(nodes.Buf) }()
	fileOff := func(localOff int) uint64 { return uint64(headerSize) + uint64(localOff) }
	rootOff := st.emitPostOrder(pool, root, &nodes, stringsOff, fileOff)

	h := header{
		signature:      signature,
		toolVersion:    toolVersion,
		headerSize:     uint64(headerSize),
		nodeSize:       uint64(nodeRecSize),
		childEntrySize: uint64(childRecSize),
		valueEntrySize: uint64(valueRecSize),
		nodesLen:       uint64(len(nodes.Buf)),
		stringsLen:     uint64(pool.Len()),
		nodesRootOff:   rootOff,
	}
	h.fileSize = uint64(headerSize) + h.nodesLen + h.stringsLen

	var out bytesBuilder
	writeHeader(&out, &h)
	out.Buf = append(out.Buf, nodes.Buf...)
	out.Buf = append(out.Buf, pool.Buf()...)

	return commitFile(path, out.Buf)
}

// internPrefixes walks the trie and interns every node's prefix into
// the pool, recording the resulting handle for use during emission.
// Prefixes are interned here rather than at Insert time because splits
// rewrite them repeatedly while the trie is growing (§4.C).
func (st *serializeState) internPrefixes(pool *Pool, n *node) error {
	h, err := pool.Intern(n.prefix)
	if err != nil {
		return err
	}
	st.prefixHandle[n] = h
	for _, ch := range n.children {
		if err := st.internPrefixes(pool, ch.node); err != nil {
			return err
		}
	}
	return nil
}

// nodeRegionSizeOf computes the cumulative size of the node region
// (pass 1, §4.E), before any emission happens.
func nodeRegionSizeOf(n *node) uint64 {
	size := uint64(nodeRecSize) + uint64(len(n.children))*uint64(childRecSize) + uint64(len(n.values))*uint64(valueRecSize)
	for _, ch := range n.children {
		size += nodeRegionSizeOf(ch.node)
	}
	return size
}

// emitPostOrder writes n's subtree into nodes in post-order (children
// before parents, §4.E pass 2) and returns the absolute file offset at
// which n's own NodeRec was written.
func (st *serializeState) emitPostOrder(pool *Pool, n *node, nodes *bytesBuilder, stringsOff uint64, fileOff func(int) uint64) uint64 {
	childOffs := make([]uint64, len(n.children))
	for i, ch := range n.children {
		childOffs[i] = st.emitPostOrder(pool, ch.node, nodes, stringsOff, fileOff)
	}

	nodeOff := fileOff(len(nodes.Buf))

	nodes.AppendFixedUint64LE(stringsOff + uint64(pool.Offset(st.prefixHandle[n])))
	nodes.AppendFixedUint64LE(uint64(len(n.values)))
	nodes.AppendByte(byte(len(n.children)))
	nodes.AppendZeros(7)

	for i, ch := range n.children {
		nodes.AppendByte(ch.c)
		nodes.AppendZeros(7)
		nodes.AppendFixedUint64LE(childOffs[i])
	}

	for _, v := range n.values {
		nodes.AppendFixedUint64LE(stringsOff + uint64(pool.Offset(v.key)))
		nodes.AppendFixedUint64LE(stringsOff + uint64(pool.Offset(v.value)))
	}

	return nodeOff
}

func writeHeader(out *bytesBuilder, h *header) {
	out.Buf = append(out.Buf, h.signature[:]...)
	out.AppendFixedUint64LE(h.toolVersion)
	out.AppendFixedUint64LE(h.fileSize)
	out.AppendFixedUint64LE(h.headerSize)
	out.AppendFixedUint64LE(h.nodeSize)
	out.AppendFixedUint64LE(h.childEntrySize)
	out.AppendFixedUint64LE(h.valueEntrySize)
	out.AppendFixedUint64LE(h.nodesLen)
	out.AppendFixedUint64LE(h.stringsLen)
	out.AppendFixedUint64LE(h.nodesRootOff)
}

// commitFile writes data to a sibling temporary file and renames it
// over path, so readers never observe a partially-written file
// (§4.E "Atomic commit"; grounded on udevadm-hwdb.c's
// fopen_temporary/fchmod/rename sequence). On any failure the temp
// file is removed and path is left untouched.
func commitFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return ioErrf(path, err)
	}
	tmpPath := tmp.Name()

	// The node and string regions go in first and the header last
	// (§4.E "Write order").
	if _, err := tmp.WriteAt(data[headerSize:], headerSize); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return ioErrf(tmpPath, err)
	}
	if _, err := tmp.WriteAt(data[:headerSize], 0); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return ioErrf(tmpPath, err)
	}
	if err := tmp.Chmod(0444); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return ioErrf(tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return ioErrf(tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return commitFailedf(path, tmpPath, err)
	}
	return nil
}
