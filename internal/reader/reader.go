// Package reader exposes a read-only, mmap-backed view over a
// compiled .bin file for exact structural verification — never for
// glob/pattern lookups, which are explicitly out of scope.
package reader

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/radixdb/hwdbc"
	"github.com/radixdb/hwdbc/mmap"
)

const (
	headerSize   = 8 + 9*8
	nodeRecSize  = 24
	childRecSize = 16
	valueRecSize = 16
)

var signature = [8]byte{'H', 'W', 'D', 'B', 'T', 'R', 'I', 'E'}

// Header mirrors the fixed fields at offset 0 of a .bin file.
type Header struct {
	ToolVersion    uint64
	FileSize       uint64
	HeaderSize     uint64
	NodeSize       uint64
	ChildEntrySize uint64
	ValueEntrySize uint64
	NodesLen       uint64
	StringsLen     uint64
	NodesRootOff   uint64
}

// File is an mmap'd, parsed .bin file.
type File struct {
	data []byte
	hdr  Header
}

// Open mmaps path read-only and validates its header. The returned
// File must be closed to release the mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := int(info.Size())
	if size < headerSize {
		return nil, &hwdbc.DataError{Off: 0, Msg: fmt.Sprintf("%s: file too short for a header (%d bytes)", path, size)}
	}

	data, err := mmap.Mmap(f, 0, size, 0)
	if err != nil {
		return nil, err
	}

	var sig [8]byte
	copy(sig[:], data[0:8])
	if sig != signature {
		mmap.Munmap(data)
		return nil, &hwdbc.DataError{Data: sig[:], Off: 0, Msg: fmt.Sprintf("%s: bad signature", path)}
	}

	fields := []uint64{}
	off := 8
	for i := 0; i < 9; i++ {
		fields = append(fields, binary.LittleEndian.Uint64(data[off:]))
		off += 8
	}
	hdr := Header{
		ToolVersion:    fields[0],
		FileSize:       fields[1],
		HeaderSize:     fields[2],
		NodeSize:       fields[3],
		ChildEntrySize: fields[4],
		ValueEntrySize: fields[5],
		NodesLen:       fields[6],
		StringsLen:     fields[7],
		NodesRootOff:   fields[8],
	}

	if hdr.HeaderSize != uint64(headerSize) || hdr.NodeSize != uint64(nodeRecSize) ||
		hdr.ChildEntrySize != uint64(childRecSize) || hdr.ValueEntrySize != uint64(valueRecSize) {
		mmap.Munmap(data)
		return nil, &hwdbc.DataError{Data: data[:headerSize], Off: 8, Msg: fmt.Sprintf("%s: record size fields do not match this reader's layout", path)}
	}
	if hdr.FileSize != uint64(size) {
		mmap.Munmap(data)
		return nil, &hwdbc.DataError{Data: data[:headerSize], Off: 16, Err: fmt.Errorf("header file_size %d != actual size %d", hdr.FileSize, size), Msg: fmt.Sprintf("%s: truncated write", path)}
	}

	return &File{data: data, hdr: hdr}, nil
}

// Close unmaps the file.
func (f *File) Close() error {
	return mmap.Munmap(f.data)
}

// Header returns the parsed file header.
func (f *File) Header() Header {
	return f.hdr
}

// Node is a reference to a NodeRec living inside the mapped bytes.
type Node struct {
	f   *File
	off uint64
}

// Root returns the root node.
func (f *File) Root() Node {
	return Node{f: f, off: f.hdr.NodesRootOff}
}

func (n Node) rec() []byte {
	return n.f.data[n.off : n.off+uint64(nodeRecSize)]
}

// Prefix returns the zero-terminated string stored at this node's
// prefix_off, without the trailing zero.
func (n Node) Prefix() []byte {
	off := binary.LittleEndian.Uint64(n.rec()[0:8])
	return readCString(n.f.data, off)
}

func (n Node) valuesCount() int {
	return int(binary.LittleEndian.Uint64(n.rec()[8:16]))
}

func (n Node) childrenCount() int {
	return int(n.rec()[16])
}

// ChildRef is one entry of a node's children table.
type ChildRef struct {
	C    byte
	Node Node
}

// Children returns this node's children, ordered by discriminating
// byte ascending, as written by the serializer.
func (n Node) Children() []ChildRef {
	count := n.childrenCount()
	if count == 0 {
		return nil
	}
	base := n.off + uint64(nodeRecSize)
	out := make([]ChildRef, count)
	for i := 0; i < count; i++ {
		rec := n.f.data[base+uint64(i*childRecSize) : base+uint64((i+1)*childRecSize)]
		c := rec[0]
		childOff := binary.LittleEndian.Uint64(rec[8:16])
		out[i] = ChildRef{C: c, Node: Node{f: n.f, off: childOff}}
	}
	return out
}

// ValueRef is one entry of a node's value table.
type ValueRef struct {
	Key   []byte
	Value []byte
}

// Values returns this node's recorded key/value pairs, ordered by key
// bytes ascending, as written by the serializer.
func (n Node) Values() []ValueRef {
	count := n.valuesCount()
	if count == 0 {
		return nil
	}
	base := n.off + uint64(nodeRecSize) + uint64(n.childrenCount())*uint64(childRecSize)
	out := make([]ValueRef, count)
	for i := 0; i < count; i++ {
		rec := n.f.data[base+uint64(i*valueRecSize) : base+uint64((i+1)*valueRecSize)]
		keyOff := binary.LittleEndian.Uint64(rec[0:8])
		valOff := binary.LittleEndian.Uint64(rec[8:16])
		out[i] = ValueRef{Key: readCString(n.f.data, keyOff), Value: readCString(n.f.data, valOff)}
	}
	return out
}

func readCString(data []byte, off uint64) []byte {
	end := off
	for end < uint64(len(data)) && data[end] != 0 {
		end++
	}
	return data[off:end]
}

// Walk visits every reachable pattern (the concatenation of prefixes
// along the path from the root) with its recorded key/value pairs, in
// depth-first, children-in-table-order fashion. It performs only
// exact structural traversal — it never interprets patterns as globs.
func (f *File) Walk(visit func(pattern []byte, values map[string]string)) {
	walkNode(f.Root(), nil, visit)
}

func walkNode(n Node, prefix []byte, visit func([]byte, map[string]string)) {
	full := append(append([]byte(nil), prefix...), n.Prefix()...)

	if values := n.Values(); len(values) > 0 {
		m := make(map[string]string, len(values))
		for _, v := range values {
			m[string(v.Key)] = string(v.Value)
		}
		visit(full, m)
	}
	for _, ch := range n.Children() {
		childPrefix := append(append([]byte(nil), full...), ch.C)
		walkNode(ch.Node, childPrefix, visit)
	}
}
