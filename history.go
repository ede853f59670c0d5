package hwdbc

import (
	"time"

	"github.com/radixdb/hwdbc/journal"
	"github.com/vmihailenco/msgpack/v5"
)

// BuildSummary records the shape and outcome of one build, appended
// to the history journal as a single msgpack-encoded record per
// successful build (§2.G).
type BuildSummary struct {
	StartedUnix  int64
	FilesRead    int
	FilesSkipped int
	FilesCached  int
	Stats        BuildStats
	OutputPath   string
	OutputSize   int64
}

// OpenHistory opens (creating the directory's journal segments if
// absent) an append-only build-history log, the way journal.go's own
// package doc names as one of its intended use cases: "archival of
// historical database records."
func OpenHistory(dir string, opt journal.Options) *journal.Journal {
	j := journal.New(dir, opt)
	j.StartWriting()
	return j
}

// AppendBuildSummary msgpack-encodes s and appends it as one record,
// then commits it by writing the segment's commit checksum. The
// segment file is not fsynced.
func AppendBuildSummary(j *journal.Journal, s BuildSummary) error {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return err
	}
	ts := uint32(time.Unix(s.StartedUnix, 0).Unix())
	if err := j.WriteRecord(ts, data); err != nil {
		return err
	}
	return j.Commit()
}
