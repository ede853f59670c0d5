/*
Package hwdbc builds a compact, mmap-friendly hardware database out of a
collection of human-readable ".hwdb" source files.

We implement:

1. A deduplicating string pool (Pool), an append-only byte arena with
stable offsets once finalized.

2. A radix (Patricia) trie (Builder, growing a tree of unexported nodes)
indexed on arbitrary byte-string match patterns, each node along the way
able to carry a sorted set of key/value properties.

3. A parser for the line-oriented ".hwdb" record format.

4. A serializer laying the trie out as a self-describing, little-endian,
offset-referenced binary file, written atomically.

# Technical Details

**Build is always from scratch.** Every build starts a new Pool and
Builder; there is no incremental update of an existing ".bin" file. The
internal/cache package memoizes the *parsing* of unchanged source files
between builds, but the trie and the file it produces are always rebuilt
whole.

**Pattern semantics.** A pattern is a literal, non-empty byte sequence.
No character has special meaning to the builder; any glob-style
interpretation belongs to a lookup-side reader, which this package does
not implement.

## Binary encoding

**Header**: signature, tool_version, file_size, header_size, node_size,
child_entry_size, value_entry_size, nodes_len, strings_len, nodes_root_off
— nine little-endian uint64 fields plus an 8-byte signature.

**Node region**: post-order emission of node records, each immediately
followed by its children table (ordered by discriminating byte) and its
values table (ordered by key).

**String region**: the finalized pool buffer, referenced by every
prefix_off, key_off and value_off field as
header_size+node_region_size+handle.
*/
package hwdbc
