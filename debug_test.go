package hwdbc

import (
	"strings"
	"testing"
)

func TestBuilder_DumpContainsPatternAndValues(t *testing.T) {
	b := NewBuilder(NewPool())
	must(0, b.Insert([]byte("usb:v1234*"), []byte("ID_VENDOR"), []byte("Acme")))

	out := b.Dump(DumpAll)
	if !strings.Contains(out, "ID_VENDOR=Acme") {
		t.Fatalf("Dump output missing value line, got:\n%s", out)
	}
	if !strings.Contains(out, "<root>") {
		t.Fatalf("Dump output missing root label, got:\n%s", out)
	}
}

func TestDumpFlags_Contains(t *testing.T) {
	f := DumpHeaders | DumpValues
	if !f.Contains(DumpHeaders) || !f.Contains(DumpValues) {
		t.Fatalf("Contains failed for flags present in the set")
	}
	if f.Contains(DumpChildren) {
		t.Fatalf("Contains reported a flag not present in the set")
	}
}
