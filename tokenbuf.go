package streamjson

// BufferPool is the allocator-injection hook: the idiomatic Go analogue of
// the user_alloc/user_realloc callbacks in original_source/json.c. See
// internal/bufpool for the default sync.Pool-backed implementation.
type BufferPool interface {
	Get(hint int) []byte
	Put([]byte)
}

// tokenBuf accumulates the raw or decoded bytes of the value currently being
// lexed (a string's content, or a number's lexeme). It grows by
// doubling, same as original_source/json.c's buffer_grow, and refuses to
// grow past maxData once one is configured (ErrDataLimit), matching
// buffer_grow's JSON_ERROR_DATA_LIMIT.
type tokenBuf struct {
	pool    BufferPool
	buf     []byte
	maxData int // 0 means unlimited
}

func newTokenBuf(pool BufferPool, initialSize int, maxData uint32) *tokenBuf {
	return &tokenBuf{
		pool:    pool,
		buf:     pool.Get(initialSize),
		maxData: int(maxData),
	}
}

func (t *tokenBuf) reset() {
	t.buf = t.buf[:0]
}

func (t *tokenBuf) bytes() []byte {
	return t.buf
}

func (t *tokenBuf) len() int {
	return len(t.buf)
}

// appendByte grows the buffer by doubling when capacity runs out, refusing
// to exceed maxData.
func (t *tokenBuf) appendByte(b byte) error {
	if t.maxData > 0 && len(t.buf) >= t.maxData {
		return ErrDataLimit
	}
	if len(t.buf) == cap(t.buf) {
		newCap := cap(t.buf) * 2
		if newCap == 0 {
			newCap = 64
		}
		if t.maxData > 0 && newCap > t.maxData {
			newCap = t.maxData
		}
		grown := t.pool.Get(newCap)
		grown = append(grown[:0], t.buf...)
		t.pool.Put(t.buf)
		t.buf = grown
	}
	t.buf = append(t.buf, b)
	return nil
}

func (t *tokenBuf) appendBytes(bs ...byte) error {
	for _, b := range bs {
		if err := t.appendByte(b); err != nil {
			return err
		}
	}
	return nil
}

func (t *tokenBuf) release() {
	t.pool.Put(t.buf)
	t.buf = nil
}
