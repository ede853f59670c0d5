package hwdbc

import (
	"log/slog"
	"testing"
)

func TestRpad(t *testing.T) {
	if got := rpad("abc", 5, '.'); got != "abc.." {
		t.Fatalf("rpad = %q, wanted %q", got, "abc..")
	}
	if got := rpad("abc", 1, '.'); got != "abc" {
		t.Fatalf("rpad = %q, wanted %q", got, "abc")
	}
}

func TestHexHelpers(t *testing.T) {
	if got := hexstr(nil); got != "<nil>" {
		t.Fatalf("hexstr(nil) = %q, wanted <nil>", got)
	}
	if got := hexstr([]byte{}); got != "<empty>" {
		t.Fatalf("hexstr(empty) = %q, wanted <empty>", got)
	}
	if got := hexstr([]byte{0xAA, 0xBB}); got != "aabb" {
		t.Fatalf("hexstr = %q, wanted aabb", got)
	}
	a := hexAttr("k", []byte{0xAA})
	if a.Key != "k" || a.Value.Kind() != slog.KindString {
		t.Fatalf("hexAttr returned unexpected attr: %+v", a)
	}
}

func TestMustEnsureNonNil(t *testing.T) {
	if v := must(42, nil); v != 42 {
		t.Fatalf("must = %d, wanted 42", v)
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("must(err) should panic")
			}
		}()
		must(0, errBoom)
	}()

	ensure(nil)
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("ensure(err) should panic")
			}
		}()
		ensure(errBoom)
	}()

	n := 7
	if nonNil(&n) != &n {
		t.Fatalf("nonNil should return the same pointer")
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("nonNil(nil) should panic")
			}
		}()
		nonNil[int](nil)
	}()
}

var errBoom = &ParseError{Path: "x", Line: 1, Msg: "boom"}
