package hwdbc

// Binary layout constants and on-disk record shapes (§4.E). The file is
// always [Header][node region, post-order][string region]; every
// multi-byte integer is little-endian.

// signature is the 8-byte magic identifying this format, distinguishing
// it from the teacher's own big-endian tuple/value encoding and from
// systemd's own hwdb.bin (whose signature this repo intentionally does
// not reuse, since the two wire formats are related in spirit only).
var signature = [8]byte{'H', 'W', 'D', 'B', 'T', 'R', 'I', 'E'}

// toolVersion is bumped whenever the on-disk layout changes in a way
// that is not backward compatible.
const toolVersion = 1

const (
	headerSize   = 8 + 9*8         // signature + 9 little-endian uint64 fields
	nodeRecSize  = 8 + 8 + 1 + 7    // prefix_off, values_count, children_count, padding to 8-byte alignment
	childRecSize = 1 + 7 + 8        // c, padding, child_off
	valueRecSize = 8 + 8            // key_off, value_off
)

// header mirrors the fixed fields written at offset 0 of the output
// file, last, once every other byte is known (§4.E "Write order").
type header struct {
	signature      [8]byte
	toolVersion    uint64
	fileSize       uint64
	headerSize     uint64
	nodeSize       uint64
	childEntrySize uint64
	valueEntrySize uint64
	nodesLen       uint64
	stringsLen     uint64
	nodesRootOff   uint64
}
