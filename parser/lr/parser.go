package lr

import (
	"io"

	"github.com/pattyshack/gt/parseutil"
)

// Reducer executes the semantic action of rule on the right hand side
// values.  args is a window into the parse stack which is only valid for the
// duration of the call.  A returned error aborts the parse.
type Reducer interface {
	Reduce(rule int, args []Value) (Value, error)
}

// Checkpointer is optionally implemented by reducers with mutable context
// (e.g., the scope stack).  The driver records a checkpoint per stack frame
// and restores the matching checkpoint when error recovery pops frames.
type Checkpointer interface {
	Checkpoint() int
	Restore(checkpoint int)
}

const (
	normalMode   = 0
	panicModeMax = 3
)

type Parser struct {
	Tables  *Tables
	Reducer Reducer

	// Sink for reported-and-recovered syntax errors.
	Emitter *parseutil.Emitter

	Debugger Debugger // optional

	states      []int
	values      []Value
	checkpoints []int

	errorFlag int
	lastError *SyntaxError

	lexer    Lexer
	token    Token
	hasToken bool
}

func NewParser(
	tables *Tables,
	reducer Reducer,
	emitter *parseutil.Emitter,
) *Parser {
	return &Parser{
		Tables:  tables,
		Reducer: reducer,
		Emitter: emitter,
	}
}

// Parse runs the automaton over lexer's tokens using the given tables and
// reducer.  Recovered syntax errors are emitted; the returned error is
// either fatal (*IrrecoverableSyntaxError, lex error) or the reducer's.
func Parse(
	lexer Lexer,
	tables *Tables,
	reducer Reducer,
	emitter *parseutil.Emitter,
) (
	Value,
	error,
) {
	return NewParser(tables, reducer, emitter).Parse(lexer)
}

// Reset clears the stacks so that the parser can be reused.
func (parser *Parser) Reset() {
	parser.states = parser.states[:0]
	parser.values = parser.values[:0]
	parser.checkpoints = parser.checkpoints[:0]
	parser.errorFlag = normalMode
	parser.lastError = nil
	parser.lexer = nil
	parser.token = nil
	parser.hasToken = false
}

func (parser *Parser) push(state int, value Value) {
	parser.states = append(parser.states, state)
	parser.values = append(parser.values, value)

	checkpoint := 0
	checkpointer, ok := parser.Reducer.(Checkpointer)
	if ok {
		checkpoint = checkpointer.Checkpoint()
	}
	parser.checkpoints = append(parser.checkpoints, checkpoint)
}

func (parser *Parser) truncate(size int) {
	parser.states = parser.states[:size]
	parser.values = parser.values[:size]
	parser.checkpoints = parser.checkpoints[:size]
}

func (parser *Parser) lookahead() (Token, error) {
	if parser.hasToken {
		return parser.token, nil
	}

	token, err := parser.lexer.Next()
	if err != nil {
		if err != io.EOF {
			return nil, parseutil.NewLocationError(
				parser.lexer.CurrentLocation(),
				"unexpected lex error: %w",
				err)
		}
		token = TokenValue{
			SymbolId: EndOfInput,
			StartEndPos: parseutil.StartEndPos{
				StartPos: parser.lexer.CurrentLocation(),
				EndPos:   parser.lexer.CurrentLocation(),
			},
		}
	}

	parser.token = token
	parser.hasToken = true
	return token, nil
}

func (parser *Parser) consume() {
	parser.token = nil
	parser.hasToken = false
}

func (parser *Parser) Parse(lexer Lexer) (Value, error) {
	parser.Reset()
	parser.lexer = lexer
	defer func() {
		parser.lexer = nil
	}()

	tables := parser.Tables
	state := 0
	value := Value{}

	for {
		parser.push(state, value)

		// Run until the next push.
		for {
			rule := tables.DefRed[state]
			if rule == 0 {
				token, err := parser.lookahead()
				if err != nil {
					return Value{}, err
				}

				next, ok := tables.Shift(state, token.Id())
				if ok {
					if parser.Debugger != nil {
						parser.Debugger.Shift(state, token, next)
					}

					value, err = shiftedValue(token)
					if err != nil {
						return Value{}, err
					}

					state = next
					parser.consume()
					if parser.errorFlag > normalMode {
						parser.errorFlag--
					}
					break
				}

				rule, ok = tables.Reduce(state, token.Id())
				if !ok {
					var recovered bool
					state, recovered, err = parser.recover(state, token)
					if err != nil {
						return Value{}, err
					}

					if recovered { // error token shifted
						value = Value{}
						break
					}

					continue // token discarded
				}
			}

			var accepted bool
			var err error
			state, value, accepted, err = parser.reduce(rule)
			if err != nil {
				return Value{}, err
			}

			if accepted {
				if parser.Debugger != nil {
					parser.Debugger.Accept()
				}
				return value, nil
			}
			break
		}
	}
}

func shiftedValue(token Token) (Value, error) {
	switch val := token.(type) {
	case *TokenValue:
		return TokenVal(val), nil
	case TokenValue:
		return TokenVal(&val), nil
	}

	return Value{}, parseutil.NewLocationError(
		token.Loc(),
		"invalid value type for token %s. expecting *TokenValue",
		token.Id())
}

// reduce pops rule's right hand side, runs its semantic action and returns
// the state to push the result on.
func (parser *Parser) reduce(rule int) (int, Value, bool, error) {
	tables := parser.Tables

	length := tables.Len[rule]
	top := len(parser.states) - 1
	from := parser.states[top]

	result, err := parser.Reducer.Reduce(
		rule,
		parser.values[top-length+1:top+1])
	if err != nil {
		return 0, Value{}, false, err
	}

	parser.truncate(top - length + 1)
	state := parser.states[len(parser.states)-1]

	lhs := tables.Lhs[rule]
	if state == 0 && lhs == 0 {
		if parser.Debugger != nil {
			parser.Debugger.Reduce(from, rule, tables.Final)
		}

		token, err := parser.lookahead()
		if err != nil {
			return 0, Value{}, false, err
		}

		if token.Id() == EndOfInput {
			return tables.Final, result, true, nil
		}

		// Trailing input after a complete program.  The final state has no
		// action for it and the next iteration reports the error.
		return tables.Final, result, false, nil
	}

	next := tables.Goto(state, lhs)
	if parser.Debugger != nil {
		parser.Debugger.Reduce(from, rule, next)
	}
	return next, result, false, nil
}

// recover implements panic mode.  It returns the state to continue from and
// whether the error token was shifted (in which case the caller pushes the
// state).  Otherwise the lookahead was discarded and the caller retries the
// same state.
func (parser *Parser) recover(state int, token Token) (int, bool, error) {
	tables := parser.Tables

	if parser.Debugger != nil {
		parser.Debugger.Error(state, token, parser.errorFlag)
	}

	if parser.errorFlag == normalMode {
		expected := []string{}
		for _, id := range tables.Expected(state) {
			expected = append(expected, tables.TokenName(id))
		}

		syntaxErr := newSyntaxError(
			parseutil.NewStartEndPos(token.Loc(), token.End()),
			expected,
			tables.TokenName(token.Id()))
		parser.lastError = syntaxErr
		if parser.Emitter != nil {
			parser.Emitter.EmitErrors(syntaxErr)
		}
	}

	if parser.errorFlag < panicModeMax {
		parser.errorFlag = panicModeMax

		for top := len(parser.states) - 1; top >= 0; top-- {
			next, ok := tables.Shift(parser.states[top], ErrorToken)
			if !ok {
				continue
			}

			if parser.Debugger != nil {
				parser.Debugger.Resynchronize(
					parser.states[top],
					len(parser.states)-1-top)
			}

			checkpointer, ok := parser.Reducer.(Checkpointer)
			if ok {
				checkpointer.Restore(parser.checkpoints[top])
			}
			parser.truncate(top + 1)
			return next, true, nil
		}

		return 0, false, parser.irrecoverable(
			token,
			"irrecoverable syntax error")
	}

	if token.Id() == EndOfInput {
		return 0, false, parser.irrecoverable(
			token,
			"irrecoverable syntax error at end-of-file")
	}

	if parser.Debugger != nil {
		parser.Debugger.Discard(state, token)
	}
	parser.consume()
	return state, false, nil
}

func (parser *Parser) irrecoverable(
	token Token,
	msg string,
) *IrrecoverableSyntaxError {
	err := &IrrecoverableSyntaxError{
		SyntaxError: SyntaxError{
			StartEndPos: parseutil.NewStartEndPos(token.Loc(), token.End()),
			Message:     msg,
			Found:       parser.Tables.TokenName(token.Id()),
		},
		Cause: parser.lastError,
	}
	if parser.lastError != nil {
		err.Expected = parser.lastError.Expected
	}
	return err
}
