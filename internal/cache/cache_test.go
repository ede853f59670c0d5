package cache

import "testing"

func TestCache_StoreThenLookupHit(t *testing.T) {
	c := OpenMem(Options{IsTesting: true})
	defer c.Close()

	triples := []CachedTriple{{Pattern: []byte("usb:*"), Key: []byte("K"), Value: []byte("V")}}
	if err := c.Store("/a/b.hwdb", 123, 456, 0xdead, triples); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, ok := c.Lookup("/a/b.hwdb", 123, 456, 0xdead)
	if !ok {
		t.Fatalf("Lookup: miss, wanted hit")
	}
	if len(got) != 1 || string(got[0].Key) != "K" || string(got[0].Value) != "V" {
		t.Fatalf("Lookup returned %+v", got)
	}
}

func TestCache_LookupMissOnStatMismatch(t *testing.T) {
	c := OpenMem(Options{IsTesting: true})
	defer c.Close()

	triples := []CachedTriple{{Pattern: []byte("p"), Key: []byte("K"), Value: []byte("V")}}
	must(c.Store("/a/b.hwdb", 100, 200, 0x1, triples))

	if _, ok := c.Lookup("/a/b.hwdb", 999, 200, 0x1); ok {
		t.Fatalf("Lookup hit despite size mismatch")
	}
	if _, ok := c.Lookup("/a/b.hwdb", 100, 999, 0x1); ok {
		t.Fatalf("Lookup hit despite modTime mismatch")
	}
	if _, ok := c.Lookup("/a/b.hwdb", 100, 200, 0x2); ok {
		t.Fatalf("Lookup hit despite content-hash mismatch (stale mtime case)")
	}
}

func TestCache_LookupMissOnUnknownPath(t *testing.T) {
	c := OpenMem(Options{IsTesting: true})
	defer c.Close()

	if _, ok := c.Lookup("/never/stored.hwdb", 0, 0, 0); ok {
		t.Fatalf("Lookup hit for a path never stored")
	}
}

func TestCache_StoreOverwritesPriorRecord(t *testing.T) {
	c := OpenMem(Options{IsTesting: true})
	defer c.Close()

	must(c.Store("/a/b.hwdb", 1, 1, 0x1, []CachedTriple{{Key: []byte("old")}}))
	must(c.Store("/a/b.hwdb", 2, 2, 0x2, []CachedTriple{{Key: []byte("new")}}))

	got, ok := c.Lookup("/a/b.hwdb", 2, 2, 0x2)
	if !ok || string(got[0].Key) != "new" {
		t.Fatalf("Lookup after overwrite = %+v, %v", got, ok)
	}
	if _, ok := c.Lookup("/a/b.hwdb", 1, 1, 0x1); ok {
		t.Fatalf("stale stat tuple unexpectedly still hits")
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
