package streamjson

// Event identifies the kind of structural or primitive token the parser
// has recognized, and the kind of token the printer accepts.
type Event int

// Event kinds, in the order spec.md §3 lists them.
const (
	ArrayBegin Event = iota
	ArrayEnd
	ObjectBegin
	ObjectEnd
	Key
	String
	Int
	Float
	True
	False
	Null

	numEvents
)

var eventNames = [numEvents]string{
	"ARRAY_BEGIN", "ARRAY_END", "OBJECT_BEGIN", "OBJECT_END",
	"KEY", "STRING", "INT", "FLOAT", "TRUE", "FALSE", "NULL",
}

// String returns the upper-snake-case name used throughout the
// specification and this implementation's tests.
func (e Event) String() string {
	if e < 0 || e >= numEvents {
		return "<unknown event>"
	}
	return eventNames[e]
}

// HasPayload reports whether kind carries decoded text (Key, String, Int,
// Float). Structural events and the true/false/null literals carry none.
func (e Event) HasPayload() bool {
	switch e {
	case Key, String, Int, Float:
		return true
	default:
		return false
	}
}

// Handler receives one event at a time, in strict document order, on the
// same goroutine that called Feed. payload is a borrowed view into the
// parser's token buffer: it is only valid for the duration of the call and
// must be copied if the Handler needs to retain it (spec.md §5 "Shared
// resources", §9 "Cyclic references"). A non-nil return aborts parsing
// immediately; the error is wrapped in ErrCallback and surfaced from Feed.
type Handler func(kind Event, payload []byte) error
