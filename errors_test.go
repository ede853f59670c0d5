package hwdbc

import (
	"errors"
	"strings"
	"testing"
)

func TestDataError_ErrorAndUnwrap(t *testing.T) {
	t.Run("small data", func(t *testing.T) {
		inner := errors.New("inner")
		err := dataErrf([]byte{0xAA, 0xBB}, 1, inner, "oops")
		var de *DataError
		if !errors.As(err, &de) {
			t.Fatalf("err = %T, wanted *DataError", err)
		}
		if !errors.Is(err, inner) {
			t.Fatalf("errors.Is(err, inner) = false, wanted true")
		}
		s := err.Error()
		if !strings.Contains(s, "oops") || !strings.Contains(s, "inner") || !strings.Contains(s, "(2)") {
			t.Fatalf("err.Error() = %q, wanted message with oops/inner/(2)", s)
		}
	})

	t.Run("large data includes prefix+suffix", func(t *testing.T) {
		data := make([]byte, 200)
		for i := range data {
			data[i] = byte(i)
		}
		err := dataErrf(data, 0, nil, "oops")
		s := err.Error()
		if !strings.Contains(s, "(200)") || !strings.Contains(s, "...") {
			t.Fatalf("err.Error() = %q, wanted message with (200) and ...", s)
		}
	})
}

func TestIoError_ErrorAndUnwrap(t *testing.T) {
	inner := errors.New("disk gone")
	err := ioErrf("/etc/udev/hwdb.d/60-foo.hwdb", inner)
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is(err, inner) = false, wanted true")
	}
	s := err.Error()
	if !strings.Contains(s, "60-foo.hwdb") || !strings.Contains(s, "disk gone") {
		t.Fatalf("err.Error() = %q, wanted path and cause", s)
	}
}

func TestParseError_Error(t *testing.T) {
	err := parseErrf("x.hwdb", 12, "missing '=' in %q", " KEYnoeq")
	s := err.Error()
	if !strings.Contains(s, "x.hwdb:12") || !strings.Contains(s, "KEYnoeq") {
		t.Fatalf("err.Error() = %q, wanted path:line and detail", s)
	}
}

func TestCommitFailed_ErrorAndUnwrap(t *testing.T) {
	inner := errors.New("rename failed")
	err := commitFailedf("/etc/udev/hwdb.bin", "/etc/udev/hwdb.bin.tmp-XXXXXX", inner)
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is(err, inner) = false, wanted true")
	}
	s := err.Error()
	if !strings.Contains(s, "hwdb.bin") || !strings.Contains(s, "tmp-XXXXXX") || !strings.Contains(s, "rename failed") {
		t.Fatalf("err.Error() = %q, wanted path/tmp/cause", s)
	}
}
