package streamjson

import "unicode/utf8"

// hexVal mirrors original_source/json.c's hextable: 0-9/a-f/A-F map to their
// value, everything else is 0xFF (invalid). classify/the transition table
// already reject non-hex bytes before they reach here, so the 0xFF case is
// unreachable in practice but kept as a defensive sentinel matching the
// original.
func hexVal(b byte) uint32 {
	switch {
	case b >= '0' && b <= '9':
		return uint32(b - '0')
	case b >= 'a' && b <= 'f':
		return uint32(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return uint32(b-'A') + 10
	default:
		return 0xFF
	}
}

const (
	highSurrogateMask  = 0xfc00
	highSurrogateValue = 0xd800
	lowSurrogateValue  = 0xdc00
)

func isHighSurrogate(uc uint32) bool { return uc&highSurrogateMask == highSurrogateValue }
func isLowSurrogate(uc uint32) bool  { return uc&highSurrogateMask == lowSurrogateValue }

// decodeUnicodeEscape reads the four hex digits just appended to buf (its
// last four bytes), removes them, and appends the UTF-8 encoding of the code
// point they denote in their place. If the four digits are a high surrogate,
// nothing is appended yet; unicodeMulti is set so the next \uXXXX escape (a
// low surrogate, required immediately per stD1/stD2) can be combined with it.
// Grounded directly on decode_unicode_char in original_source/json.c, since
// the teacher's strconv.Unquote-based approach cannot reject a lone high
// surrogate the way spec.md's UNICODE_MISSING_LOW_SURROGATE/
// UNICODE_UNEXPECTED_LOW_SURROGATE invariants require.
func decodeUnicodeEscape(buf *tokenBuf, unicodeMulti *uint32) error {
	b := buf.buf
	n := len(b)
	uval := hexVal(b[n-4])<<12 | hexVal(b[n-3])<<8 | hexVal(b[n-2])<<4 | hexVal(b[n-1])
	buf.buf = b[:n-4]

	if *unicodeMulti != 0 {
		if !isLowSurrogate(uval) {
			return ErrUnicodeMissingLowSurrogate
		}
		r := rune(0x10000 + ((*unicodeMulti & 0x3ff) << 10) + (uval & 0x3ff))
		*unicodeMulti = 0
		return appendRune(buf, r)
	}

	if isLowSurrogate(uval) {
		return ErrUnicodeUnexpectedLowSurrogate
	}
	if isHighSurrogate(uval) {
		*unicodeMulti = uval
		return nil
	}
	return appendRune(buf, rune(uval))
}

func appendRune(buf *tokenBuf, r rune) error {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return buf.appendBytes(tmp[:n]...)
}
