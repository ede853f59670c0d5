package hwdbc

import (
	"fmt"
	"strings"
)

// DumpFlags controls what Dump prints, mirroring the teacher's
// DumpTableHeaders/DumpRows/DumpStats bitmask idiom.
type DumpFlags uint64

const (
	DumpHeaders = DumpFlags(1 << iota)
	DumpChildren
	DumpValues
	DumpStats

	DumpAll = DumpFlags(0xFFFFFFFFFFFFFFFF)
)

var (
	dumpSep1 = strings.Repeat("=", 80)
	dumpSep2 = strings.Repeat("-", 60)
)

func (f DumpFlags) Contains(v DumpFlags) bool {
	return (f & v) == v
}

// Dump renders the trie rooted at b.Root() as indented text, for
// manual inspection and golden-output debugging.
func (b *Builder) Dump(f DumpFlags) string {
	var w strings.Builder
	if f.Contains(DumpStats) {
		stats := b.Stats()
		fmt.Fprintln(&w, dumpSep1)
		fmt.Fprintf(&w, "nodes=%d children=%d values=%d maxDepth=%d poolEntries=%d\n",
			stats.Nodes, stats.Children, stats.Values, stats.MaxDepth, stats.PoolEntries)
	}
	dumpNode(&w, b.pool, b.root, "", f)
	return w.String()
}

func dumpNode(w *strings.Builder, pool *Pool, n *node, prefix string, f DumpFlags) {
	full := prefix + string(n.prefix)
	if f.Contains(DumpHeaders) {
		fmt.Fprintln(w, rpadf('.', "%s", dumpLabel(full))+fmt.Sprintf(" children=%d values=%d", len(n.children), len(n.values)))
	}
	if f.Contains(DumpValues) {
		for _, v := range n.values {
			fmt.Fprintf(w, "%s  %s=%s\n", dumpSep2, pool.Bytes(v.key), pool.Bytes(v.value))
		}
	}
	if f.Contains(DumpChildren) {
		for _, ch := range n.children {
			dumpNode(w, pool, ch.node, full+string(ch.c), f)
		}
	}
}

func dumpLabel(s string) string {
	if s == "" {
		return "<root>"
	}
	return s
}

func rpadf(pad rune, format string, args ...any) string {
	s := fmt.Sprintf(format, args...)
	return rpad(s, 80, pad)
}
