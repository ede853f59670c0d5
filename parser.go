package hwdbc

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
)

// ParseInto reads a single .hwdb-style source file from r and calls
// insert(pattern, key, value) for every well-formed property line
// (§4.D). Parsing is tolerant: malformed lines within a record are
// logged at debug severity and skipped rather than aborting the file,
// mirroring the reference parser's import_file.
func ParseInto(r io.Reader, path string, insert func(pattern, key, value []byte) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var pattern []byte
	haveRecord := false
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := sc.Bytes()

		if len(line) == 0 {
			// A raw line of "\n" alone is under two bytes including its
			// newline (§4.D) and also the blank-line record terminator;
			// both coincide once the trailing newline is stripped.
			haveRecord = false
			continue
		}
		if line[0] == '#' {
			continue
		}

		if !haveRecord {
			pattern = append(pattern[:0], line...)
			haveRecord = true
			continue
		}

		if line[0] != ' ' {
			// Not a property line (and not a new pattern — only a blank
			// line starts a new record); tolerated and skipped.
			slog.Debug("hwdbc: skipping line", "err", parseErrf(path, lineNo, "not a property line"))
			continue
		}
		kv := line[1:]
		eq := bytes.IndexByte(kv, '=')
		if eq < 0 {
			slog.Debug("hwdbc: skipping line", "err", parseErrf(path, lineNo, "missing '=' in property line"))
			continue
		}
		key := kv[:eq]
		val := kv[eq+1:]
		if err := insert(pattern, key, val); err != nil {
			return parseErrf(path, lineNo, "insert failed: %v", err)
		}
	}
	if err := sc.Err(); err != nil {
		return ioErrf(path, err)
	}
	return nil
}
