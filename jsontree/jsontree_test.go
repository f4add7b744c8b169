package jsontree

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	streamjson "github.com/cvjson/streamjson"
)

func TestDecodeBytesObject(t *testing.T) {
	t.Parallel()
	v, err := DecodeBytes([]byte(`{"a":1,"b":[true,false,null],"c":"hi","d":1.5}`), streamjson.Config{})
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if got := v.Type(); got != Object {
		t.Fatalf("Type() = %v, want Object", got)
	}

	a, err := v.Key("a").AsInteger()
	if err != nil || a != 1 {
		t.Fatalf("Key(a).AsInteger() = (%v, %v), want (1, nil)", a, err)
	}

	d, err := v.Key("d").AsNumber()
	if err != nil || d != 1.5 {
		t.Fatalf("Key(d).AsNumber() = (%v, %v), want (1.5, nil)", d, err)
	}

	c, err := v.Key("c").AsString()
	if err != nil || c != "hi" {
		t.Fatalf("Key(c).AsString() = (%q, %v), want (hi, nil)", c, err)
	}

	arr, err := v.Key("b").AsArray()
	if err != nil {
		t.Fatalf("Key(b).AsArray(): %v", err)
	}
	if len(arr) != 3 {
		t.Fatalf("len(arr) = %d, want 3", len(arr))
	}
	b0, err := arr[0].AsBoolean()
	if err != nil || !b0 {
		t.Fatalf("arr[0].AsBoolean() = (%v, %v), want (true, nil)", b0, err)
	}
	if arr[2].Type() != Null {
		t.Fatalf("arr[2].Type() = %v, want Null", arr[2].Type())
	}

	if v.Key("missing").Type() != Null {
		t.Fatalf("Key(missing).Type() = %v, want Null (zero Value)", v.Key("missing").Type())
	}
	if v.Index(0).Type() != Null {
		t.Fatalf("Index on a non-array Value should yield a zero Value")
	}
}

func TestDecodeBytesArrayIndexing(t *testing.T) {
	t.Parallel()
	v, err := DecodeBytes([]byte(`[10,20,30]`), streamjson.Config{})
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	for i, want := range []int64{10, 20, 30} {
		got, err := v.Index(i).AsInteger()
		if err != nil || got != want {
			t.Fatalf("Index(%d) = (%v, %v), want (%d, nil)", i, got, err, want)
		}
	}
	if v.Index(99).Type() != Null {
		t.Fatalf("out-of-range Index should yield a zero Value")
	}
	if v.Index(-1).Type() != Null {
		t.Fatalf("negative Index should yield a zero Value")
	}
}

func TestDecodeBytesNestedObjects(t *testing.T) {
	t.Parallel()
	v, err := DecodeBytes([]byte(`{"outer":{"inner":[{"k":"v"}]}}`), streamjson.Config{})
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	got, err := v.Key("outer").Key("inner").Index(0).Key("k").AsString()
	if err != nil || got != "v" {
		t.Fatalf("chained navigation = (%q, %v), want (v, nil)", got, err)
	}
}

func TestAsXXXTypeMismatch(t *testing.T) {
	t.Parallel()
	v, err := DecodeBytes([]byte(`["x"]`), streamjson.Config{})
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	elem := v.Index(0)
	if _, err := elem.AsInteger(); !errors.Is(err, ErrType) {
		t.Fatalf("AsInteger on a string Value: err = %v, want ErrType", err)
	}
	if _, err := elem.AsBoolean(); !errors.Is(err, ErrType) {
		t.Fatalf("AsBoolean on a string Value: err = %v, want ErrType", err)
	}
	if _, err := elem.AsArray(); !errors.Is(err, ErrType) {
		t.Fatalf("AsArray on a string Value: err = %v, want ErrType", err)
	}
}

func TestDecodeReader(t *testing.T) {
	t.Parallel()
	v, err := Decode(strings.NewReader(`{"n":42}`), streamjson.Config{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	n, err := v.Key("n").AsInteger()
	if err != nil || n != 42 {
		t.Fatalf("Key(n).AsInteger() = (%v, %v), want (42, nil)", n, err)
	}
}

func TestDecodeBytesIncomplete(t *testing.T) {
	t.Parallel()
	_, err := DecodeBytes([]byte(`{"a":1`), streamjson.Config{})
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("DecodeBytes on a truncated object: err = %v, want ErrIncomplete", err)
	}
}

func TestAsObjectSnapshot(t *testing.T) {
	t.Parallel()
	v, err := DecodeBytes([]byte(`{"a":1,"b":2}`), streamjson.Config{})
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	m, err := v.AsObject()
	if err != nil {
		t.Fatalf("AsObject: %v", err)
	}
	want := map[string]int64{"a": 1, "b": 2}
	got := map[string]int64{}
	for k, val := range m {
		n, err := val.AsInteger()
		if err != nil {
			t.Fatalf("val.AsInteger() for key %q: %v", k, err)
		}
		got[k] = n
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AsObject mismatch (-want +got):\n%s", diff)
	}
}
