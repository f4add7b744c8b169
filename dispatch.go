package streamjson

// dispatch runs the side effect for one action code and advances p.state.
// b is the triggering byte, needed only by actions that must report it in
// an error (none currently do, but kept for parity with
// original_source/json.c's do_action(parser, next_state) signature, which
// threads the byte through act_* for the same reason).
//
// Grounded on original_source/json.c's actions_map + do_action: each
// action here corresponds to one actions_map entry, expressed as a Go
// switch arm instead of a {call, type, state, dobuffer} struct array, per
// spec.md §9's note that a tagged variant suits Go better than C function
// pointers.
func (p *Parser) dispatch(a action, b byte) error {
	switch a {
	case actKS:
		// ':' seen after a key. No event, no buffer flush.
		p.state = stValue

	case actSP:
		// ',' between elements. Flush any pending number first, then
		// decide whether we're back in an object (expect next key) or an
		// array (expect next value) — or reject if nothing is open.
		if err := p.flush(); err != nil {
			return err
		}
		top, ok := p.modes.peek()
		if !ok {
			return ErrCommaOutOfStructure
		}
		if top == modeObject {
			p.expectKey = true
			p.state = stKeyStart
		} else {
			p.state = stValue
		}

	case actAB:
		if err := p.emit(ArrayBegin, nil); err != nil {
			return err
		}
		if err := p.pushMode(modeArray); err != nil {
			return err
		}
		p.state = stArray

	case actAE:
		if err := p.flush(); err != nil {
			return err
		}
		if err := p.emit(ArrayEnd, nil); err != nil {
			return err
		}
		if err := p.popMode(modeArray); err != nil {
			return err
		}
		p.state = stOK

	case actOB:
		if err := p.emit(ObjectBegin, nil); err != nil {
			return err
		}
		if err := p.pushMode(modeObject); err != nil {
			return err
		}
		p.expectKey = true
		p.state = stObjStart

	case actOE:
		if err := p.flush(); err != nil {
			return err
		}
		if err := p.emit(ObjectEnd, nil); err != nil {
			return err
		}
		if err := p.popMode(modeObject); err != nil {
			return err
		}
		p.expectKey = false
		p.state = stOK

	case actCB:
		if !p.cfg.AllowCComments {
			return ErrCommentNotAllowed
		}
		p.savedState = p.state
		p.state = stC1

	case actYB:
		if !p.cfg.AllowYAMLComments {
			return ErrCommentNotAllowed
		}
		p.savedState = p.state
		p.state = stY1

	case actCE:
		// Resuming mid-value/container interrupts at the "value just
		// completed" point instead of back inside the value: spec.md
		// §4.1's rule for any saved state strictly after _A (stArray) in
		// the enumeration.
		if p.savedState > stArray {
			p.state = stOK
		} else {
			p.state = p.savedState
		}

	case actFA:
		if err := p.emit(False, nil); err != nil {
			return err
		}
		p.state = stOK

	case actTR:
		if err := p.emit(True, nil); err != nil {
			return err
		}
		p.state = stOK

	case actNU:
		if err := p.emit(Null, nil); err != nil {
			return err
		}
		p.state = stOK

	case actDE:
		// Digits followed by e/E: becomes a float via the exponent.
		p.typ = typeFloat
		p.state = stExpStart

	case actDF:
		// Digits followed by '.': becomes a float via the fraction.
		p.typ = typeFloat
		p.state = stFracStart

	case actSE:
		// Closing quote. The buffer already holds the decoded content.
		ev := String
		if p.expectKey {
			ev = Key
		}
		if err := p.emit(ev, p.buf.bytes()); err != nil {
			return err
		}
		p.buf.reset()
		if p.expectKey {
			p.expectKey = false
			p.state = stColon
		} else {
			p.state = stOK
		}

	case actMX:
		p.typ = typeInt
		p.state = stMinus

	case actZX:
		p.typ = typeInt
		p.state = stZero

	case actIX:
		p.typ = typeInt
		p.state = stInt

	case actUC:
		if err := decodeUnicodeEscape(p.buf, &p.unicodeMulti); err != nil {
			return err
		}
		if p.unicodeMulti != 0 {
			p.state = stD1
		} else {
			p.state = stString
		}

	default:
		return ErrUnexpectedChar
	}
	return nil
}
