package streamjson

import (
	"fmt"
	"io"
)

// hexDigits is the lookup table Printer's \u00XX escaping indexes by nibble,
// the same table shape as original_source/json.c's escaping.
const hexDigits = "0123456789abcdef"

// Printer consumes an event stream (the inverse of Parser) and writes
// well-formed JSON text to an io.Writer. Grounded on
// original_source/json.c's json_print_mode/print_string/print_indent (the
// enter_object/after_key/first flag trio and the separator-before-sibling
// rule), reshaped into a struct wrapping an io.Writer with methods instead
// of a callback+userdata pair, following the streaming-encoder API shape
// used by the jsontext-style encoders in the example pack.
type Printer struct {
	w io.Writer

	indent string // empty means compact output
	level  int

	enterContainer bool // just opened a container, no child emitted yet
	afterKey       bool // just emitted a Key; its value needs no separator
	first          bool // nothing emitted yet at all

	err error
}

// NewPrinter returns a Printer that writes to w in compact mode. Call
// SetIndent to switch to pretty-printing.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, first: true, enterContainer: true}
}

// SetIndent sets the per-level indent string. An empty string (the
// default) selects compact output with no inserted whitespace.
func (p *Printer) SetIndent(indent string) {
	p.indent = indent
}

// Close is a no-op reserved for future flushing, per spec.md §4.4.
func (p *Printer) Close() error {
	return p.err
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *Printer) writeIndent() {
	p.write("\n")
	for i := 0; i < p.level; i++ {
		p.write(p.indent)
	}
}

func (p *Printer) pretty() bool {
	return p.indent != ""
}

// Emit appends one event to the output. payload is required (and used
// verbatim, for Int/Float, or JSON-escaped, for Key/String) for
// payload-carrying events and ignored otherwise.
func (p *Printer) Emit(kind Event, payload []byte) error {
	if p.err != nil {
		return p.err
	}

	isClose := kind == ArrayEnd || kind == ObjectEnd
	if !p.enterContainer && !p.afterKey && !isClose {
		p.write(",")
		if p.pretty() {
			p.writeIndent()
		}
	}
	if p.pretty() && p.enterContainer && !p.first && !isClose {
		p.writeIndent()
	}

	wasEnter := p.enterContainer
	p.first = false
	p.enterContainer = false
	p.afterKey = false

	switch kind {
	case ArrayBegin:
		p.write("[")
		p.level++
		p.enterContainer = true
	case ObjectBegin:
		p.write("{")
		p.level++
		p.enterContainer = true
	case ArrayEnd, ObjectEnd:
		p.level--
		if p.pretty() && !wasEnter {
			p.writeIndent()
		}
		if kind == ObjectEnd {
			p.write("}")
		} else {
			p.write("]")
		}
	case Int, Float:
		p.write(string(payload))
	case True:
		p.write("true")
	case False:
		p.write("false")
	case Null:
		p.write("null")
	case Key:
		p.writeEscaped(payload)
		if p.pretty() {
			p.write(": ")
		} else {
			p.write(":")
		}
		p.afterKey = true
	case String:
		p.writeEscaped(payload)
	default:
		return fmt.Errorf("streamjson: printer: unknown event %v", kind)
	}
	return p.err
}

// fixedEscapes mirrors original_source/json.c's character_escape table:
// the control characters with a short mnemonic escape. Everything else
// below 0x20 falls back to \u00XX.
var fixedEscapes = map[byte]string{
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'"':  `\"`,
	'\\': `\\`,
}

// writeEscaped writes data as a JSON string literal, quotes included. No
// UTF-8 validation is performed (spec.md §4.4): bytes that aren't
// control characters, '"', or '\' pass through unchanged.
func (p *Printer) writeEscaped(data []byte) {
	p.write(`"`)
	for _, c := range data {
		if esc, ok := fixedEscapes[c]; ok {
			p.write(esc)
			continue
		}
		if c < 0x20 {
			p.write(`\u00`)
			p.write(string([]byte{hexDigits[c>>4], hexDigits[c&0xf]}))
			continue
		}
		p.write(string([]byte{c}))
	}
	p.write(`"`)
}
