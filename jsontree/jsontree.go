// Package jsontree is the optional DOM-materialization helper spec.md §1
// calls out as an external collaborator of the core parser: it assembles
// a streamjson event stream into an in-memory tree. It is a consumer of
// the core, not part of it — the core Parser never owns a value stack.
//
// Grounded on _examples/mcvoid-json/json.go's Value/Type/AsXXX/Index/Key
// accessor API (kept close to verbatim, since that shape is exactly what
// this helper needs) but rebuilt to assemble the tree from a
// streamjson.Handler instead of from inside a PDA's action dispatch,
// mirroring original_source/json.c's json_parser_dom_callback
// (push/pop a value stack keyed by container nesting, latch the pending
// key on a Key event, append to the parent on every other event).
package jsontree

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	streamjson "github.com/cvjson/streamjson"
)

var (
	// ErrType is returned by an AsXXX accessor when the value holds a
	// different JSON type than the one requested.
	ErrType = errors.New("jsontree: type error")
	// ErrIncomplete is returned by Decode/DecodeBytes when the input was
	// well-formed as far as it went but did not form one complete value.
	ErrIncomplete = errors.New("jsontree: incomplete document")
)

// Type identifies the kind of a Value.
type Type int

const (
	Null Type = iota
	Number
	Integer
	String
	Boolean
	Array
	Object

	numTypes
)

var typeStrings = [numTypes]string{
	"<null>", "<number>", "<integer>", "<string>", "<boolean>", "<array>", "<object>",
}

func (t Type) String() string {
	if t < 0 || t >= numTypes {
		return "<unknown>"
	}
	return typeStrings[t]
}

// Value is a materialized JSON value: exactly one of the fields below is
// meaningful, selected by jsonType.
type Value struct {
	jsonType     Type
	numberValue  float64
	integerValue int64
	stringValue  string
	booleanValue bool
	arrayValue   []*Value
	objectValue  []pair
}

type pair struct {
	key string
	val *Value
}

// Type reports the JSON type of v.
func (v *Value) Type() Type {
	return v.jsonType
}

func (v *Value) AsNull() (struct{}, error) {
	if v.jsonType == Null {
		return struct{}{}, nil
	}
	return struct{}{}, fmt.Errorf("%w: value is %v, not null", ErrType, v.jsonType)
}

// AsNumber returns the value as a float64, widening an Integer if needed.
// Use AsInteger when integer precision matters.
func (v *Value) AsNumber() (float64, error) {
	switch v.jsonType {
	case Integer:
		return float64(v.integerValue), nil
	case Number:
		return v.numberValue, nil
	}
	return 0, fmt.Errorf("%w: value is %v, not a number", ErrType, v.jsonType)
}

func (v *Value) AsInteger() (int64, error) {
	if v.jsonType == Integer {
		return v.integerValue, nil
	}
	return 0, fmt.Errorf("%w: value is %v, not an integer", ErrType, v.jsonType)
}

func (v *Value) AsString() (string, error) {
	if v.jsonType == String {
		return v.stringValue, nil
	}
	return "", fmt.Errorf("%w: value is %v, not a string", ErrType, v.jsonType)
}

func (v *Value) AsBoolean() (bool, error) {
	if v.jsonType == Boolean {
		return v.booleanValue, nil
	}
	return false, fmt.Errorf("%w: value is %v, not a boolean", ErrType, v.jsonType)
}

func (v *Value) AsArray() ([]*Value, error) {
	if v.jsonType == Array {
		return v.arrayValue, nil
	}
	return nil, fmt.Errorf("%w: value is %v, not an array", ErrType, v.jsonType)
}

func (v *Value) AsObject() (map[string]*Value, error) {
	if v.jsonType != Object {
		return nil, fmt.Errorf("%w: value is %v, not an object", ErrType, v.jsonType)
	}
	m := make(map[string]*Value, len(v.objectValue))
	for _, p := range v.objectValue {
		m[p.key] = p.val
	}
	return m, nil
}

// Index is a fluent accessor for array members: it returns a zero Value
// (Type() == Null) instead of an error on out-of-range or non-array v, so
// chained Index/Key calls can be written without intermediate error
// checks.
func (v *Value) Index(i int) *Value {
	if v.jsonType != Array || i < 0 || i >= len(v.arrayValue) {
		return &Value{}
	}
	return v.arrayValue[i]
}

// Key is the object-member analogue of Index.
func (v *Value) Key(k string) *Value {
	if v.jsonType != Object {
		return &Value{}
	}
	for _, p := range v.objectValue {
		if p.key == k {
			return p.val
		}
	}
	return &Value{}
}

// frame tracks one open container while the tree is being assembled.
type frame struct {
	typ         Type // Array or Object
	items       []*Value
	pairs       []pair
	pendingKey  string
	hasPendingKey bool
}

// decoder implements streamjson.Handler, mirroring
// json_parser_dom_callback's push/pop-a-stack-of-frames shape.
type decoder struct {
	stack  []*frame
	result *Value
}

func (d *decoder) handle(kind streamjson.Event, payload []byte) error {
	switch kind {
	case streamjson.ArrayBegin:
		d.stack = append(d.stack, &frame{typ: Array})
		return nil
	case streamjson.ObjectBegin:
		d.stack = append(d.stack, &frame{typ: Object})
		return nil
	case streamjson.ArrayEnd:
		f := d.pop()
		return d.append(&Value{jsonType: Array, arrayValue: f.items})
	case streamjson.ObjectEnd:
		f := d.pop()
		return d.append(&Value{jsonType: Object, objectValue: f.pairs})
	case streamjson.Key:
		top, err := d.top()
		if err != nil {
			return err
		}
		top.pendingKey = string(payload)
		top.hasPendingKey = true
		return nil
	case streamjson.String:
		return d.append(&Value{jsonType: String, stringValue: string(payload)})
	case streamjson.Int:
		n, err := strconv.ParseInt(string(payload), 10, 64)
		if err != nil {
			return fmt.Errorf("jsontree: invalid integer lexeme %q: %w", payload, err)
		}
		return d.append(&Value{jsonType: Integer, integerValue: n})
	case streamjson.Float:
		n, err := strconv.ParseFloat(string(payload), 64)
		if err != nil {
			return fmt.Errorf("jsontree: invalid float lexeme %q: %w", payload, err)
		}
		return d.append(&Value{jsonType: Number, numberValue: n})
	case streamjson.True:
		return d.append(&Value{jsonType: Boolean, booleanValue: true})
	case streamjson.False:
		return d.append(&Value{jsonType: Boolean, booleanValue: false})
	case streamjson.Null:
		return d.append(&Value{jsonType: Null})
	}
	return nil
}

func (d *decoder) top() (*frame, error) {
	if len(d.stack) == 0 {
		return nil, fmt.Errorf("jsontree: key event outside object")
	}
	return d.stack[len(d.stack)-1], nil
}

func (d *decoder) pop() *frame {
	f := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	return f
}

// append attaches v to the innermost open container, or records it as the
// document's top-level value when no container is open.
func (d *decoder) append(v *Value) error {
	if len(d.stack) == 0 {
		d.result = v
		return nil
	}
	top := d.stack[len(d.stack)-1]
	if top.typ == Object {
		if !top.hasPendingKey {
			return fmt.Errorf("jsontree: object value without a preceding key")
		}
		top.pairs = append(top.pairs, pair{key: top.pendingKey, val: v})
		top.hasPendingKey = false
		top.pendingKey = ""
		return nil
	}
	top.items = append(top.items, v)
	return nil
}

// Decode reads all of r and parses it into a Value tree under cfg.
func Decode(r io.Reader, cfg streamjson.Config) (*Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(b, cfg)
}

// DecodeBytes parses b into a Value tree under cfg.
func DecodeBytes(b []byte, cfg streamjson.Config) (*Value, error) {
	d := &decoder{}
	p := streamjson.New(cfg, d.handle)
	defer p.Close()
	if _, err := p.Feed(b); err != nil {
		return nil, err
	}
	if !p.IsDone() {
		return nil, ErrIncomplete
	}
	if d.result == nil {
		return nil, ErrIncomplete
	}
	return d.result, nil
}
