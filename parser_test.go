package hwdbc

import (
	"fmt"
	"strings"
	"testing"
)

type recordedInsert struct {
	pattern, key, value string
}

func collectInserts(t *testing.T, src string) []recordedInsert {
	t.Helper()
	var got []recordedInsert
	err := ParseInto(strings.NewReader(src), "test.hwdb", func(pattern, key, value []byte) error {
		got = append(got, recordedInsert{string(pattern), string(key), string(value)})
		return nil
	})
	if err != nil {
		t.Fatalf("ParseInto: %v", err)
	}
	return got
}

func TestParser_BasicRecord(t *testing.T) {
	src := "usb:v1234p5678*\n ID_VENDOR=Acme\n ID_MODEL=Widget\n"
	got := collectInserts(t, src)
	want := []recordedInsert{
		{"usb:v1234p5678*", "ID_VENDOR", "Acme"},
		{"usb:v1234p5678*", "ID_MODEL", "Widget"},
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, wanted %v", got, want)
	}
}

func TestParser_CommentsAndBlankLinesIgnored(t *testing.T) {
	src := "# a top-level comment\n\nusb:v1234p5678*\n# mid-record comment\n ID_VENDOR=Acme\n\n# trailing comment\n"
	got := collectInserts(t, src)
	want := []recordedInsert{{"usb:v1234p5678*", "ID_VENDOR", "Acme"}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, wanted %v", got, want)
	}
}

func TestParser_MultipleRecords(t *testing.T) {
	src := "pattern:a*\n KEY=1\n\npattern:b*\n KEY=2\n"
	got := collectInserts(t, src)
	want := []recordedInsert{
		{"pattern:a*", "KEY", "1"},
		{"pattern:b*", "KEY", "2"},
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, wanted %v", got, want)
	}
}

func TestParser_PropertyLinesWithoutLeadingSpaceAreSkipped(t *testing.T) {
	src := "pattern:a*\nKEY=1\n ID_VENDOR=Acme\n"
	got := collectInserts(t, src)
	want := []recordedInsert{{"pattern:a*", "ID_VENDOR", "Acme"}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, wanted %v", got, want)
	}
}

func TestParser_PropertyLineWithoutEqualsIsSkipped(t *testing.T) {
	src := "pattern:a*\n NOEQUALSHERE\n ID_VENDOR=Acme\n"
	got := collectInserts(t, src)
	want := []recordedInsert{{"pattern:a*", "ID_VENDOR", "Acme"}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, wanted %v", got, want)
	}
}

func TestParser_SecondNonSpaceLineIsDiscardedNotANewPattern(t *testing.T) {
	// §9 open question: only the first line of a record is the pattern;
	// later non-space lines before a property line are discarded, not
	// treated as a replacement pattern.
	src := "pattern:first*\npattern:second*\n KEY=value\n"
	got := collectInserts(t, src)
	want := []recordedInsert{{"pattern:first*", "KEY", "value"}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, wanted %v", got, want)
	}
}

func TestParser_ValueMayContainEquals(t *testing.T) {
	src := "pattern:a*\n KEY=a=b=c\n"
	got := collectInserts(t, src)
	want := []recordedInsert{{"pattern:a*", "KEY", "a=b=c"}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, wanted %v", got, want)
	}
}

func TestParser_NoTrailingNewlineStillParsesLastLine(t *testing.T) {
	src := "pattern:a*\n KEY=value"
	got := collectInserts(t, src)
	want := []recordedInsert{{"pattern:a*", "KEY", "value"}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, wanted %v", got, want)
	}
}
