package hwdbc

import (
	"testing"

	"github.com/radixdb/hwdbc/journal"
	"github.com/vmihailenco/msgpack/v5"
)

func TestAppendBuildSummary_WritesAndMsgpackRoundTrips(t *testing.T) {
	dir := t.TempDir()
	j := OpenHistory(dir, journal.Options{DebugName: "history-test"})
	t.Cleanup(func() {
		j.FinishWriting()
	})

	s := BuildSummary{
		StartedUnix:  1700000000,
		FilesRead:    3,
		FilesSkipped: 1,
		FilesCached:  2,
		Stats:        BuildStats{Nodes: 5, Values: 4},
		OutputPath:   "/var/lib/hwdb/hwdb.bin",
		OutputSize:   4096,
	}
	if err := AppendBuildSummary(j, s); err != nil {
		t.Fatalf("AppendBuildSummary: %v", err)
	}

	raw, err := msgpack.Marshal(&s)
	if err != nil {
		t.Fatalf("msgpack.Marshal: %v", err)
	}
	var decoded BuildSummary
	if err := msgpack.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("msgpack.Unmarshal: %v", err)
	}
	if decoded != s {
		t.Fatalf("decoded = %+v, wanted %+v", decoded, s)
	}
}
