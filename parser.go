package streamjson

import (
	"fmt"

	"github.com/cvjson/streamjson/internal/bufpool"
)

// valueType tags the primitive currently being lexed between its
// lex-start action (MX/ZX/IX/DE/DF) and the point it is flushed as an
// event. Strings and the true/false/null literals never set this field:
// strings flush explicitly on SE, and the literals flush explicitly on
// FA/TR/NU.
type valueType uint8

const (
	typeNone valueType = iota
	typeInt
	typeFloat
)

// Config holds the optional, immutable options a Parser is constructed
// with. All fields are optional; the zero Config is valid and imposes no
// limits and allows no comments.
type Config struct {
	// MaxNesting hard-caps the mode stack depth. Zero means unbounded. A
	// nonzero value preallocates the stack to exactly this many slots and
	// never grows it past that — spec.md §9 resolves this open question by
	// replicating the original parser's state_grow, which returns
	// NESTING_LIMIT rather than doubling once a cap was configured.
	MaxNesting uint32
	// MaxData hard-caps the byte length of any single primitive. Zero
	// means unbounded.
	MaxData uint32
	// BufferInitialSize sets the token buffer's starting capacity. Zero
	// picks an implementation default.
	BufferInitialSize uint32
	// AllowCComments permits /* ... */ comments anywhere whitespace is
	// accepted.
	AllowCComments bool
	// AllowYAMLComments permits # ... \n comments anywhere whitespace is
	// accepted.
	AllowYAMLComments bool
	// Pool is the allocator-injection hook (spec.md §6 user_alloc/
	// user_realloc). Defaults to bufpool.Default() when nil.
	Pool BufferPool
}

const defaultBufferInitialSize = 64

// terminal states: is_done() may report true from these, given an empty
// mode stack. A value has fully completed parsing in each of these.
var terminalStates = map[state]bool{
	stOK:         true,
	stZero:       true,
	stInt:        true,
	stFracDigits: true,
	stExpDigits:  true,
}

// Parser is a single streaming-JSON automaton instance. It is not safe
// for concurrent use by multiple goroutines; independent Parser values
// share no state and may run on separate goroutines freely.
type Parser struct {
	cfg     Config
	handler Handler

	state    state
	modes    *modeStack
	buf      *tokenBuf
	typ      valueType
	expectKey bool
	unicodeMulti uint32
	savedState   state

	poisoned bool
	offset   int64
}

// New allocates a Parser with the given configuration and event handler.
// handler is called once per recognized event, in document order, on the
// same goroutine that calls Feed/FeedByte.
func New(cfg Config, handler Handler) *Parser {
	if cfg.Pool == nil {
		cfg.Pool = bufpool.Default()
	}
	initial := int(cfg.BufferInitialSize)
	if initial == 0 {
		initial = defaultBufferInitialSize
	}
	return &Parser{
		cfg:     cfg,
		handler: handler,
		state:   stGO,
		modes:   newModeStack(cfg.MaxNesting),
		buf:     newTokenBuf(cfg.Pool, initial, cfg.MaxData),
	}
}

// Close releases the Parser's pooled token buffer. It does not need to be
// called for correctness (the buffer is GC-reachable either way), but
// doing so returns the backing array to the pool promptly, mirroring
// json_parser_free returning pooled memory in the C original.
func (p *Parser) Close() {
	if p.buf != nil {
		p.buf.release()
		p.buf = nil
	}
}

// IsDone reports whether the byte sequence fed so far forms one complete
// JSON value: the mode stack is empty and the current state is terminal.
// It returns false before any byte has been fed (state is still the
// pre-document stGO) and false while any container remains open.
func (p *Parser) IsDone() bool {
	return p.modes.empty() && terminalStates[p.state]
}

// FeedByte is a convenience wrapper around Feed for a single byte.
func (p *Parser) FeedByte(b byte) error {
	_, err := p.Feed([]byte{b})
	return err
}

// Feed consumes bytes in order, driving the automaton one byte at a time
// and invoking handler for each recognized event. It returns the count of
// bytes from b that were successfully consumed before any error; on
// success that count equals len(b). Once Feed returns a non-nil error,
// the Parser is poisoned and must not be fed again — create a new one.
func (p *Parser) Feed(b []byte) (int, error) {
	if p.poisoned {
		return 0, p.fail(p.offset, ErrParserPoisoned)
	}
	for i, c := range b {
		if err := p.step(c); err != nil {
			return i, err
		}
		p.offset++
	}
	return len(b), nil
}

// step runs one byte through the classifier, transition table, buffer
// policy, and (when the cell is an action code) the dispatcher. This is
// the per-byte algorithm spec.md §4.1 describes.
func (p *Parser) step(b byte) error {
	class := classify(b)
	if class == classError {
		return p.fail(p.offset, ErrBadChar)
	}

	c := transitionTable[p.state][class]
	if c.isError() {
		return p.fail(p.offset, ErrUnexpectedChar)
	}

	switch bufferPolicyTable[p.state][class] {
	case policyAppend:
		if err := p.buf.appendByte(b); err != nil {
			return p.fail(p.offset, err)
		}
	case policyEscape:
		if err := p.buf.appendByte(escapeDecode(b)); err != nil {
			return p.fail(p.offset, err)
		}
	}

	if c.isAction() {
		if err := p.dispatch(c.action(), b); err != nil {
			return p.fail(p.offset, err)
		}
		return nil
	}

	next := c.state()
	if next == stOK && p.typ != typeNone {
		if err := p.flush(); err != nil {
			return p.fail(p.offset, err)
		}
	}
	p.state = next
	return nil
}

// escapeDecode maps an escape character (the byte following '\' in a
// string) to the byte it denotes. 'u' is handled separately by the U1..U4
// hex-reading states and never reaches here (its buffer policy is
// policyIgnore, see tables.go).
func escapeDecode(b byte) byte {
	switch b {
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		// '"', '\\', '/' decode to themselves.
		return b
	}
}

// flush emits the current buffer as the pending primitive's event (Int or
// Float) and resets the buffer and pending type. Called either directly
// by a plain transition into stOK (number ended on whitespace) or by the
// flush-before actions (SP, AE, OE).
func (p *Parser) flush() error {
	var ev Event
	switch p.typ {
	case typeInt:
		ev = Int
	case typeFloat:
		ev = Float
	default:
		return nil
	}
	if err := p.emit(ev, p.buf.bytes()); err != nil {
		return err
	}
	p.buf.reset()
	p.typ = typeNone
	return nil
}

// emit invokes the user handler, wrapping any error it returns in
// ErrCallback per spec.md §5 "Ordering" / §7.
func (p *Parser) emit(ev Event, payload []byte) error {
	if err := p.handler(ev, payload); err != nil {
		return fmt.Errorf("%w: %v", ErrCallback, err)
	}
	return nil
}

func (p *Parser) pushMode(m mode) error {
	return p.modes.push(m)
}

func (p *Parser) popMode(want mode) error {
	return p.modes.pop(want)
}
