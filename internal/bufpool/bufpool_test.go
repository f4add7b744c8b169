package bufpool

import "testing"

func TestBucketFor(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		n    int
		want int
	}{
		{0, 64},
		{1, 64},
		{64, 64},
		{65, 128},
		{128, 128},
		{200, 256},
		{1024, 1024},
		{1025, 2048},
	} {
		if got := bucketFor(tc.n); got != tc.want {
			t.Errorf("bucketFor(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestGetReturnsUsableCapacity(t *testing.T) {
	t.Parallel()
	p := New()
	buf := p.Get(100)
	if len(buf) != 0 {
		t.Fatalf("Get(100) len = %d, want 0", len(buf))
	}
	if cap(buf) < 100 {
		t.Fatalf("Get(100) cap = %d, want >= 100", cap(buf))
	}
}

func TestGetZeroOrNegativeHintDefaultsTo64(t *testing.T) {
	t.Parallel()
	p := New()
	for _, hint := range []int{0, -5} {
		if got := cap(p.Get(hint)); got < 64 {
			t.Errorf("Get(%d) cap = %d, want >= 64", hint, got)
		}
	}
}

func TestPutThenGetKeepsBucketCapacity(t *testing.T) {
	t.Parallel()
	p := New()
	buf := p.Get(64)
	buf = append(buf, 'x', 'y', 'z')
	backing := cap(buf)
	p.Put(buf)

	reused := p.Get(64)
	if cap(reused) != backing {
		t.Fatalf("Get after Put cap = %d, want %d (same bucket)", cap(reused), backing)
	}
	if len(reused) != 0 {
		t.Fatalf("Get after Put len = %d, want 0", len(reused))
	}
}

func TestPutOddSizedBufferIsDropped(t *testing.T) {
	t.Parallel()
	p := New()
	// A capacity that doesn't land on a bucket boundary (e.g. a MaxData
	// clamp mid-growth) must not pollute a bucket sized for something else.
	odd := make([]byte, 0, 100)
	p.Put(odd) // must not panic and must not corrupt the 128 bucket

	got := p.Get(100)
	if cap(got) != 128 {
		t.Fatalf("Get(100) cap = %d, want 128 (fresh from the 128 bucket)", cap(got))
	}
}

func TestDefaultReturnsSharedPool(t *testing.T) {
	t.Parallel()
	if Default() != Default() {
		t.Fatal("Default() should return the same *Pool every call")
	}
}
