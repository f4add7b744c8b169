package streamjson

// state names follow spec.md §4.1's enumeration exactly.
type state int8

const (
	stGO state = iota // pre-document
	stOK              // between values / value just completed
	stObjStart        // _O: inside object, expect key or close
	stKeyStart        // _K: expect key after comma
	stColon           // CO: expect colon
	stValue           // _V: expect value
	stArray           // _A: inside array, expect value or close
	stString          // _S: inside string
	stEscape          // E0: just saw \ in string
	stU1
	stU2
	stU3
	stU4
	stMinus      // M0: saw leading -, expect digit
	stZero       // Z0: after leading 0
	stInt        // I0: digits of integer
	stFracStart  // R1: after ., expect digit
	stFracDigits // R2: fractional digits
	stExpStart   // X1: after e/E, expect sign or digit
	stExpSign    // X2: after sign, expect digit
	stExpDigits  // X3: exponent digits
	stT1
	stT2
	stT3
	stF1
	stF2
	stF3
	stF4
	stN1
	stN2
	stN3
	stC1 // inside /* comment, expecting * to open
	stC2 // inside /* */ comment body
	stC3 // just saw * inside /* */ comment, expecting /
	stY1 // inside # ... \n comment
	stD1 // expect \ after high surrogate
	stD2 // expect u after that

	numStates
)

// action names follow spec.md §4.1's enumeration, in the same order as
// original_source/json.c's actions_map so the two stay easy to compare.
type action uint8

const (
	actKS action = iota // key-value separator ':'
	actSP               // item separator ','
	actAB               // array begin
	actAE               // array end
	actOB               // object begin
	actOE               // object end
	actCB               // open C comment
	actYB               // open YAML comment
	actCE               // close comment
	actFA               // false complete
	actTR               // true complete
	actNU               // null complete
	actDE               // number became float via exponent
	actDF               // number became float via dot
	actSE               // string end (closing quote)
	actMX               // integer begins with '-'
	actZX               // integer begins with '0'
	actIX               // integer begins with 1-9
	actUC               // four hex digits complete

	numActions
)

// cell is a transition-table entry: either a plain next state (< actionFlag)
// or an action code (actionFlag | action index), or errorCell. Values are
// packed this way, rather than as a Go sum type, to keep the table a flat
// auditable array indexed by (state*numClasses)+class, per spec.md §9.
type cell uint16

const (
	actionFlag cell = 0x8000
	errorCell  cell = 0xFFFF
)

func st(s state) cell { return cell(s) }
func ac(a action) cell { return actionFlag | cell(a) }

func (c cell) isAction() bool { return c != errorCell && c&actionFlag != 0 }
func (c cell) isError() bool  { return c == errorCell }
func (c cell) state() state   { return state(c) }
func (c cell) action() action { return action(c &^ actionFlag) }

// bufferPolicy tells the per-byte loop what to do with the raw byte before
// dispatching the transition: drop it, append it verbatim, or treat it as
// an escape character to be decoded.
type bufferPolicy uint8

const (
	policyIgnore bufferPolicy = iota
	policyAppend
	policyEscape
)

// hexClasses are the character classes that are valid hexadecimal digits:
// 0, 1-9, a-f, A-D/F, E.
var hexClasses = []charClass{
	classZero, classDigit,
	classLowA, classLowB, classLowC, classLowD, classLowE, classLowF,
	classABCDF, classCapE,
}

// whitespace-or-comment-boundary classes: any state that can be followed
// directly by another value's separator also accepts a comment opening
// there.
var commentOpeners = map[charClass]action{
	classSlash: actCB,
	classHash:  actYB,
}

type tableEntry struct {
	class  charClass
	cell   cell
	policy bufferPolicy
}

var transitionTable [numStates][numClasses]cell
var bufferPolicyTable [numStates][numClasses]bufferPolicy

func init() {
	for s := state(0); s < numStates; s++ {
		for c := charClass(0); c < numClasses; c++ {
			transitionTable[s][c] = errorCell
		}
	}
	for s, entries := range tableSpec {
		for _, e := range entries {
			transitionTable[s][e.class] = e.cell
			bufferPolicyTable[s][e.class] = e.policy
		}
	}
}

// whitespaceEntries returns the entries shared by every "between tokens"
// state: plain whitespace stays put, and (when reachable) a comment may
// open here.
func whitespaceEntries(self state, withComments bool) []tableEntry {
	e := []tableEntry{
		{classSpace, st(self), policyIgnore},
		{classLF, st(self), policyIgnore},
		{classWhite, st(self), policyIgnore},
	}
	if withComments {
		e = append(e,
			tableEntry{classSlash, ac(actCB), policyIgnore},
			tableEntry{classHash, ac(actYB), policyIgnore},
		)
	}
	return e
}

// valueStartEntries returns the entries for "a value may start here":
// object/array open, string open, number lead-in, and the three literals.
func valueStartEntries() []tableEntry {
	return []tableEntry{
		{classLCurB, ac(actOB), policyIgnore},
		{classLSqrB, ac(actAB), policyIgnore},
		{classQuote, st(stString), policyIgnore},
		{classMinus, ac(actMX), policyAppend},
		{classZero, ac(actZX), policyAppend},
		{classDigit, ac(actIX), policyAppend},
		{classLowF, st(stF1), policyIgnore},
		{classLowN, st(stN1), policyIgnore},
		{classLowT, st(stT1), policyIgnore},
	}
}

// hexEntries returns the entries that advance a U-state on any hex digit.
func hexEntries(next cell) []tableEntry {
	entries := make([]tableEntry, 0, len(hexClasses))
	for _, c := range hexClasses {
		entries = append(entries, tableEntry{c, next, policyAppend})
	}
	return entries
}

// numberTailEntries returns the entries shared by Z0/I0/R2/X3: whitespace
// completes the pending number (plain transition to OK, see the flush-on-OK
// logic in parser.go's step), a structural byte flushes via action, and a comment
// may open here too.
func numberTailEntries(self state) []tableEntry {
	e := append([]tableEntry{},
		tableEntry{classSpace, st(stOK), policyIgnore},
		tableEntry{classLF, st(stOK), policyIgnore},
		tableEntry{classWhite, st(stOK), policyIgnore},
		tableEntry{classRCurB, ac(actOE), policyIgnore},
		tableEntry{classRSqrB, ac(actAE), policyIgnore},
		tableEntry{classComma, ac(actSP), policyIgnore},
		tableEntry{classSlash, ac(actCB), policyIgnore},
		tableEntry{classHash, ac(actYB), policyIgnore},
	)
	return e
}

var tableSpec = buildTableSpec()

func buildTableSpec() map[state][]tableEntry {
	spec := map[state][]tableEntry{}

	// stGO: pre-document. Accepts whitespace/comments and any value start.
	spec[stGO] = append(whitespaceEntries(stGO, true), valueStartEntries()...)

	// stOK: a value has just completed, at any nesting depth.
	spec[stOK] = append(whitespaceEntries(stOK, true), []tableEntry{
		{classRCurB, ac(actOE), policyIgnore},
		{classRSqrB, ac(actAE), policyIgnore},
		{classComma, ac(actSP), policyIgnore},
	}...)

	// stObjStart (_O): just opened an object, expect a key string or '}'.
	spec[stObjStart] = append(whitespaceEntries(stObjStart, true), []tableEntry{
		{classRCurB, ac(actOE), policyIgnore},
		{classQuote, st(stString), policyIgnore},
	}...)

	// stKeyStart (_K): after a comma inside an object, expect a key string.
	spec[stKeyStart] = append(whitespaceEntries(stKeyStart, true), []tableEntry{
		{classQuote, st(stString), policyIgnore},
	}...)

	// stColon (CO): expect ':'.
	spec[stColon] = append(whitespaceEntries(stColon, true), []tableEntry{
		{classColon, ac(actKS), policyIgnore},
	}...)

	// stValue (_V): expect a value (after ':' or after ',' in an array).
	spec[stValue] = append(whitespaceEntries(stValue, true), valueStartEntries()...)

	// stArray (_A): inside an array, expect a value or ']'.
	spec[stArray] = append(append(whitespaceEntries(stArray, true), valueStartEntries()...),
		tableEntry{classRSqrB, ac(actAE), policyIgnore})

	// stString (_S): accumulate raw bytes until '"' or '\'. Control bytes
	// (raw newline/tab/CR) are rejected; everything else is valid content.
	{
		entries := []tableEntry{
			{classQuote, ac(actSE), policyIgnore},
			{classBacks, st(stEscape), policyIgnore},
		}
		for c := charClass(0); c < numClasses; c++ {
			switch c {
			case classQuote, classBacks, classLF, classWhite:
				continue
			default:
				entries = append(entries, tableEntry{c, st(stString), policyAppend})
			}
		}
		spec[stString] = entries
	}

	// stEscape (E0): one character after '\'. u switches to hex reading;
	// the rest decode straight to their escaped byte value.
	spec[stEscape] = []tableEntry{
		{classQuote, st(stString), policyEscape},
		{classBacks, st(stString), policyEscape},
		{classSlash, st(stString), policyEscape},
		{classLowB, st(stString), policyEscape},
		{classLowF, st(stString), policyEscape},
		{classLowN, st(stString), policyEscape},
		{classLowR, st(stString), policyEscape},
		{classLowT, st(stString), policyEscape},
		{classLowU, st(stU1), policyIgnore},
	}

	spec[stU1] = hexEntries(st(stU2))
	spec[stU2] = hexEntries(st(stU3))
	spec[stU3] = hexEntries(st(stU4))
	spec[stU4] = hexEntries(ac(actUC))
	for i := range spec[stU4] {
		spec[stU4][i].policy = policyAppend
	}

	// stMinus (M0): '-' seen, require a digit.
	spec[stMinus] = []tableEntry{
		{classZero, ac(actZX), policyAppend},
		{classDigit, ac(actIX), policyAppend},
	}

	spec[stZero] = numberTailEntries(stZero)
	spec[stZero] = append(spec[stZero], tableEntry{classPoint, ac(actDF), policyAppend})
	spec[stZero] = append(spec[stZero], tableEntry{classLowE, ac(actDE), policyAppend})
	spec[stZero] = append(spec[stZero], tableEntry{classCapE, ac(actDE), policyAppend})

	spec[stInt] = numberTailEntries(stInt)
	spec[stInt] = append(spec[stInt],
		tableEntry{classZero, st(stInt), policyAppend},
		tableEntry{classDigit, st(stInt), policyAppend},
		tableEntry{classPoint, ac(actDF), policyAppend},
		tableEntry{classLowE, ac(actDE), policyAppend},
		tableEntry{classCapE, ac(actDE), policyAppend},
	)

	// stFracStart (R1): '.' seen, require at least one fractional digit.
	spec[stFracStart] = []tableEntry{
		{classZero, st(stFracDigits), policyAppend},
		{classDigit, st(stFracDigits), policyAppend},
	}

	spec[stFracDigits] = numberTailEntries(stFracDigits)
	spec[stFracDigits] = append(spec[stFracDigits],
		tableEntry{classZero, st(stFracDigits), policyAppend},
		tableEntry{classDigit, st(stFracDigits), policyAppend},
		tableEntry{classLowE, ac(actDE), policyAppend},
		tableEntry{classCapE, ac(actDE), policyAppend},
	)

	// stExpStart (X1): 'e'/'E' seen, optional sign then digit required.
	spec[stExpStart] = []tableEntry{
		{classPlus, st(stExpSign), policyAppend},
		{classMinus, st(stExpSign), policyAppend},
		{classZero, st(stExpDigits), policyAppend},
		{classDigit, st(stExpDigits), policyAppend},
	}

	spec[stExpSign] = []tableEntry{
		{classZero, st(stExpDigits), policyAppend},
		{classDigit, st(stExpDigits), policyAppend},
	}

	spec[stExpDigits] = numberTailEntries(stExpDigits)
	spec[stExpDigits] = append(spec[stExpDigits],
		tableEntry{classZero, st(stExpDigits), policyAppend},
		tableEntry{classDigit, st(stExpDigits), policyAppend},
	)

	// true / false / null literals. The final letter is an action that
	// emits the event immediately (spec.md §4.1: "FA/TR/NU ... complete").
	spec[stT1] = []tableEntry{{classLowR, st(stT2), policyIgnore}}
	spec[stT2] = []tableEntry{{classLowU, st(stT3), policyIgnore}}
	spec[stT3] = []tableEntry{{classLowE, ac(actTR), policyIgnore}}

	spec[stF1] = []tableEntry{{classLowA, st(stF2), policyIgnore}}
	spec[stF2] = []tableEntry{{classLowL, st(stF3), policyIgnore}}
	spec[stF3] = []tableEntry{{classLowS, st(stF4), policyIgnore}}
	spec[stF4] = []tableEntry{{classLowE, ac(actFA), policyIgnore}}

	spec[stN1] = []tableEntry{{classLowU, st(stN2), policyIgnore}}
	spec[stN2] = []tableEntry{{classLowL, st(stN3), policyIgnore}}
	spec[stN3] = []tableEntry{{classLowL, ac(actNU), policyIgnore}}

	// Comment sub-machine.
	spec[stC1] = []tableEntry{{classStar, st(stC2), policyIgnore}}
	{
		entries := make([]tableEntry, 0, numClasses)
		for c := charClass(0); c < numClasses; c++ {
			if c == classStar {
				continue
			}
			entries = append(entries, tableEntry{c, st(stC2), policyIgnore})
		}
		entries = append(entries, tableEntry{classStar, st(stC3), policyIgnore})
		spec[stC2] = entries
	}
	{
		entries := make([]tableEntry, 0, numClasses)
		for c := charClass(0); c < numClasses; c++ {
			switch c {
			case classSlash, classStar:
				continue
			default:
				entries = append(entries, tableEntry{c, st(stC2), policyIgnore})
			}
		}
		entries = append(entries,
			tableEntry{classSlash, ac(actCE), policyIgnore},
			tableEntry{classStar, st(stC3), policyIgnore},
		)
		spec[stC3] = entries
	}
	{
		entries := make([]tableEntry, 0, numClasses)
		for c := charClass(0); c < numClasses; c++ {
			if c == classLF {
				continue
			}
			entries = append(entries, tableEntry{c, st(stY1), policyIgnore})
		}
		entries = append(entries, tableEntry{classLF, ac(actCE), policyIgnore})
		spec[stY1] = entries
	}

	// Surrogate pair continuation.
	spec[stD1] = []tableEntry{{classBacks, st(stD2), policyIgnore}}
	spec[stD2] = []tableEntry{{classLowU, st(stU1), policyIgnore}}

	return spec
}
