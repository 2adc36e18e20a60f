package lexer

import (
	"io"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/parser/grammar"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/warning"
)

// Expression state.  Decides how ambiguous lexemes (e.g., '(' '[' '-' '*'
// '{' 'if') are tokenized.
type state int

const (
	// Start of an expression.
	exprBeg = state(iota)

	// After return / break / next.  Like exprBeg, but newlines terminate.
	exprMid

	// After an identifier which may be a method taking arguments.
	exprArg

	// After a complete operand.
	exprEnd

	// After def.
	exprFname

	// After a method definition's name.  '(' always opens the parameter list.
	exprEndFn

	// After '.'.  Keywords are method names.
	exprDot

	// After class.  "<<" opens a singleton class.
	exprClass
)

// Locals reports whether name is a local variable at the current parse
// position.  The answer changes how "x [1]" and "x -1" are tokenized.
type Locals interface {
	IsLocal(name string) bool
}

type noLocals struct{}

func (noLocals) IsLocal(string) bool { return false }

type keyword struct {
	id       lr.SymbolId
	modifier lr.SymbolId // 0 if the keyword has no modifier form
	state    state
}

var keywords = map[string]keyword{
	"class":    {grammar.KClass, 0, exprClass},
	"module":   {grammar.KModule, 0, exprBeg},
	"def":      {grammar.KDef, 0, exprFname},
	"end":      {grammar.KEnd, 0, exprEnd},
	"if":       {grammar.KIf, grammar.KIfMod, exprBeg},
	"unless":   {grammar.KUnless, grammar.KUnlessMod, exprBeg},
	"then":     {grammar.KThen, 0, exprBeg},
	"elsif":    {grammar.KElsif, 0, exprBeg},
	"else":     {grammar.KElse, 0, exprBeg},
	"while":    {grammar.KWhile, grammar.KWhileMod, exprBeg},
	"until":    {grammar.KUntil, grammar.KUntilMod, exprBeg},
	"do":       {grammar.KDo, 0, exprBeg},
	"return":   {grammar.KReturn, 0, exprMid},
	"break":    {grammar.KBreak, 0, exprMid},
	"next":     {grammar.KNext, 0, exprMid},
	"begin":    {grammar.KBegin, 0, exprBeg},
	"self":     {grammar.KSelf, 0, exprEnd},
	"nil":      {grammar.KNil, 0, exprEnd},
	"true":     {grammar.KTrue, 0, exprEnd},
	"false":    {grammar.KFalse, 0, exprEnd},
	"__FILE__": {grammar.KFile, 0, exprEnd},
	"__LINE__": {grammar.KLine, 0, exprEnd},
	"and":      {grammar.KAnd, 0, exprBeg},
	"or":       {grammar.KOr, 0, exprBeg},
	"not":      {grammar.KNot, 0, exprBeg},
}

// Open bracket kinds.  Newlines directly inside array and hash literals are
// insignificant.
type bracket int

const (
	parenBracket = bracket(iota)
	arrayBracket
	hashBracket
	blockBracket
	interpolationBracket
)

type stringMode struct {
	quote       byte
	interpolate bool
	inCode      bool
}

// Lexer tokenizes ruby source for the parser.  Unlike a context free
// scanner, it tracks the expression state and consults the parser's local
// variable table.
type Lexer struct {
	*RawLexer

	locals Locals

	state     state
	spaceSeen bool
	defName   bool
	lastId    lr.SymbolId

	brackets []bracket

	// Paren depth of each while / until whose condition is still open.
	conditions []int

	strings []*stringMode

	Warnings warning.Sink
}

var _ lr.Lexer = &Lexer{}

func NewLexer(
	reader parseutil.BufferedByteLocationReader,
	locals Locals,
) *Lexer {
	if locals == nil {
		locals = noLocals{}
	}

	return &Lexer{
		RawLexer: NewRawLexer(reader),
		locals:   locals,
		state:    exprBeg,
		Warnings: warning.Discard{},
	}
}

func (lexer *Lexer) warnAmbiguous(msg string) {
	loc := lexer.Location
	lexer.Warnings.Warning(
		warning.AmbiguousArgument,
		parseutil.NewStartEndPos(loc, loc),
		msg)
}

func (lexer *Lexer) isBeg() bool {
	return lexer.state == exprBeg ||
		lexer.state == exprMid ||
		lexer.state == exprClass
}

func (lexer *Lexer) isArg() bool {
	return lexer.state == exprArg
}

// isSpaceArg reports whether the lexeme at offset is the first argument of a
// command, e.g., "foo -1" or "foo *args".
func (lexer *Lexer) isSpaceArg(offset int) bool {
	if !lexer.isArg() || !lexer.spaceSeen {
		return false
	}
	next, ok, err := lexer.peekByte(offset)
	return err == nil && ok && !isSpace(next)
}

func (lexer *Lexer) parenDepth() int {
	depth := 0
	for _, kind := range lexer.brackets {
		if kind == parenBracket {
			depth++
		}
	}
	return depth
}

func (lexer *Lexer) pushBracket(kind bracket) {
	lexer.brackets = append(lexer.brackets, kind)
}

func (lexer *Lexer) topBracket() (bracket, bool) {
	if len(lexer.brackets) == 0 {
		return 0, false
	}
	return lexer.brackets[len(lexer.brackets)-1], true
}

func (lexer *Lexer) popBracket() {
	if len(lexer.brackets) > 0 {
		lexer.brackets = lexer.brackets[:len(lexer.brackets)-1]
	}
}

// closeCondition ends the innermost open loop condition when it was opened
// at the current paren depth.
func (lexer *Lexer) closeCondition() bool {
	count := len(lexer.conditions)
	if count == 0 || lexer.conditions[count-1] != lexer.parenDepth() {
		return false
	}
	lexer.conditions = lexer.conditions[:count-1]
	return true
}

func (lexer *Lexer) currentString() *stringMode {
	if len(lexer.strings) == 0 {
		return nil
	}
	return lexer.strings[len(lexer.strings)-1]
}

func (lexer *Lexer) skipNewline() bool {
	switch lexer.state {
	case exprBeg, exprClass, exprDot, exprFname:
		return true
	}

	kind, ok := lexer.topBracket()
	return ok && (kind == arrayBracket || kind == hashBracket)
}

func (lexer *Lexer) emit(
	token *lr.TokenValue,
	next state,
) (
	lr.Token,
	error,
) {
	lexer.state = next
	lexer.lastId = token.SymbolId
	return token, nil
}

func (lexer *Lexer) Next() (lr.Token, error) {
	str := lexer.currentString()
	if str != nil && !str.inCode {
		return lexer.nextInString(str)
	}

	lexer.spaceSeen = false
	for {
		char, ok, err := lexer.peekByte(0)
		if err != nil {
			return nil, err
		}
		if !ok {
			if len(lexer.strings) > 0 {
				return nil, parseutil.NewLocationError(
					lexer.Location,
					"unterminated string meets end of file")
			}
			return nil, io.EOF
		}

		switch {
		case char == ' ' || char == '\t' || char == '\f' || char == '\v':
			err = lexer.skipSpaces()
			if err != nil {
				return nil, err
			}
			lexer.spaceSeen = true
			continue

		case char == '\\' && (lexer.peekIs(1, "\n") || lexer.peekIs(1, "\r\n")):
			lexer.discard(1)
			err = lexer.skipNewlines()
			if err != nil {
				return nil, err
			}
			lexer.spaceSeen = true
			continue

		case char == '#':
			err = lexer.skipComment()
			if err != nil {
				return nil, err
			}
			continue

		case char == '\n' || char == '\r':
			start := lexer.Location
			err = lexer.skipNewlines()
			if err != nil {
				return nil, err
			}

			if lexer.skipNewline() {
				lexer.spaceSeen = true
				continue
			}

			lexer.closeCondition()
			return lexer.emit(
				lexer.newToken(lr.SymbolId('\n'), "\n", start),
				exprBeg)
		}

		return lexer.nextToken(char)
	}
}

func (lexer *Lexer) nextInString(str *stringMode) (lr.Token, error) {
	char, ok, err := lexer.peekByte(0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, parseutil.NewLocationError(
			lexer.Location,
			"unterminated string meets end of file")
	}

	if char == str.quote {
		lexer.strings = lexer.strings[:len(lexer.strings)-1]
		return lexer.emit(
			lexer.fixed(grammar.TStringEnd, 1, string(char)),
			exprEnd)
	}

	if str.interpolate && char == '#' && lexer.peekIs(1, "{") {
		str.inCode = true
		lexer.pushBracket(interpolationBracket)
		return lexer.emit(lexer.fixed(grammar.TStringDBeg, 2, "#{"), exprBeg)
	}

	token, err := lexer.lexStringContent(str.quote, str.interpolate)
	if err != nil {
		return nil, err
	}
	return lexer.emit(token, lexer.state)
}

func (lexer *Lexer) nextToken(char byte) (lr.Token, error) {
	switch {
	case isDigit(char):
		token, err := lexer.lexNumber(false)
		if err != nil {
			return nil, err
		}
		return lexer.emit(token, exprEnd)

	case isIdentifierStart(char):
		return lexer.nextIdentifier()

	case char == '@' || char == '$':
		token, err := lexer.lexSigilIdentifier()
		if err != nil {
			return nil, err
		}
		return lexer.emit(token, exprEnd)
	}

	switch char {
	case '"', '\'':
		lexer.strings = append(lexer.strings, &stringMode{
			quote:       char,
			interpolate: char == '"',
		})
		return lexer.emit(
			lexer.fixed(grammar.TStringBeg, 1, string(char)),
			lexer.state)

	case ':':
		return lexer.nextSymbol()

	case '=':
		switch {
		case lexer.peekIs(1, "="):
			return lexer.emit(lexer.fixed(grammar.TEq, 2, "=="), exprBeg)
		case lexer.peekIs(1, ">"):
			return lexer.emit(lexer.fixed(grammar.TAssoc, 2, "=>"), exprBeg)
		}
		return lexer.emit(lexer.fixed('=', 1, "="), exprBeg)

	case '!':
		if lexer.peekIs(1, "=") {
			return lexer.emit(lexer.fixed(grammar.TNeq, 2, "!="), exprBeg)
		}
		return lexer.emit(lexer.fixed('!', 1, "!"), exprBeg)

	case '<':
		switch {
		case lexer.peekIs(1, "="):
			return lexer.emit(lexer.fixed(grammar.TLeq, 2, "<="), exprBeg)
		case lexer.peekIs(1, "<"):
			return lexer.emit(lexer.fixed(grammar.TLShift, 2, "<<"), exprBeg)
		}
		return lexer.emit(lexer.fixed('<', 1, "<"), exprBeg)

	case '>':
		if lexer.peekIs(1, "=") {
			return lexer.emit(lexer.fixed(grammar.TGeq, 2, ">="), exprBeg)
		}
		return lexer.emit(lexer.fixed('>', 1, ">"), exprBeg)

	case '&':
		switch {
		case lexer.peekIs(1, "&="):
			return lexer.emit(lexer.fixed(grammar.TOpAsgn, 3, "&&"), exprBeg)
		case lexer.peekIs(1, "&"):
			return lexer.emit(lexer.fixed(grammar.TAndOp, 2, "&&"), exprBeg)
		}
		return lexer.emit(lexer.fixed(grammar.TAmper, 1, "&"), exprBeg)

	case '|':
		// "{ || }" is an empty block parameter list.
		blockStart := lexer.lastId == '{' || lexer.lastId == grammar.KDo
		switch {
		case !blockStart && lexer.peekIs(1, "|="):
			return lexer.emit(lexer.fixed(grammar.TOpAsgn, 3, "||"), exprBeg)
		case !blockStart && lexer.peekIs(1, "|"):
			return lexer.emit(lexer.fixed(grammar.TOrOp, 2, "||"), exprBeg)
		}
		return lexer.emit(lexer.fixed('|', 1, "|"), exprBeg)

	case '+':
		if lexer.peekIs(1, "=") {
			return lexer.emit(lexer.fixed(grammar.TOpAsgn, 2, "+"), exprBeg)
		}
		return lexer.emit(lexer.fixed('+', 1, "+"), exprBeg)

	case '-':
		if lexer.peekIs(1, "=") {
			return lexer.emit(lexer.fixed(grammar.TOpAsgn, 2, "-"), exprBeg)
		}
		if lexer.isBeg() || lexer.isSpaceArg(1) {
			if !lexer.isBeg() {
				lexer.warnAmbiguous("ambiguous first argument")
			}
			next, ok, err := lexer.peekByte(1)
			if err != nil {
				return nil, err
			}
			if ok && isDigit(next) {
				token, err := lexer.lexNumber(true)
				if err != nil {
					return nil, err
				}
				return lexer.emit(token, exprEnd)
			}
			return lexer.emit(lexer.fixed(grammar.TUMinus, 1, "-"), exprBeg)
		}
		return lexer.emit(lexer.fixed('-', 1, "-"), exprBeg)

	case '*':
		switch {
		case lexer.peekIs(1, "*="):
			return lexer.emit(lexer.fixed(grammar.TOpAsgn, 3, "**"), exprBeg)
		case lexer.peekIs(1, "*"):
			return lexer.emit(lexer.fixed(grammar.TPow, 2, "**"), exprBeg)
		case lexer.peekIs(1, "="):
			return lexer.emit(lexer.fixed(grammar.TOpAsgn, 2, "*"), exprBeg)
		case lexer.isBeg():
			return lexer.emit(lexer.fixed(grammar.TStar, 1, "*"), exprBeg)
		case lexer.isSpaceArg(1):
			lexer.warnAmbiguous("`*' interpreted as argument prefix")
			return lexer.emit(lexer.fixed(grammar.TStar, 1, "*"), exprBeg)
		}
		return lexer.emit(lexer.fixed('*', 1, "*"), exprBeg)

	case '/':
		if lexer.peekIs(1, "=") {
			return lexer.emit(lexer.fixed(grammar.TOpAsgn, 2, "/"), exprBeg)
		}
		return lexer.emit(lexer.fixed('/', 1, "/"), exprBeg)

	case '%':
		if lexer.peekIs(1, "=") {
			return lexer.emit(lexer.fixed(grammar.TOpAsgn, 2, "%"), exprBeg)
		}
		return lexer.emit(lexer.fixed('%', 1, "%"), exprBeg)

	case '.':
		return lexer.emit(lexer.fixed('.', 1, "."), exprDot)

	case ',':
		return lexer.emit(lexer.fixed(',', 1, ","), exprBeg)

	case ';':
		lexer.closeCondition()
		return lexer.emit(lexer.fixed(';', 1, ";"), exprBeg)

	case '(':
		id := lr.SymbolId('(')
		if lexer.isBeg() || (lexer.isArg() && lexer.spaceSeen) {
			id = grammar.TLParen
		}
		lexer.pushBracket(parenBracket)
		return lexer.emit(lexer.fixed(id, 1, "("), exprBeg)

	case ')':
		lexer.popBracket()
		return lexer.emit(lexer.fixed(')', 1, ")"), exprEnd)

	case '[':
		id := lr.SymbolId('[')
		if lexer.isBeg() || lexer.isSpaceArg(1) {
			id = grammar.TLBrack
		}
		lexer.pushBracket(arrayBracket)
		return lexer.emit(lexer.fixed(id, 1, "["), exprBeg)

	case ']':
		lexer.popBracket()
		return lexer.emit(lexer.fixed(']', 1, "]"), exprEnd)

	case '{':
		switch lexer.state {
		case exprArg, exprEnd, exprEndFn:
			lexer.pushBracket(blockBracket)
			return lexer.emit(lexer.fixed('{', 1, "{"), exprBeg)
		}
		lexer.pushBracket(hashBracket)
		return lexer.emit(lexer.fixed(grammar.TLBrace, 1, "{"), exprBeg)

	case '}':
		kind, _ := lexer.topBracket()
		lexer.popBracket()
		if kind == interpolationBracket {
			lexer.currentString().inCode = false
			return lexer.emit(lexer.fixed(grammar.TStringDEnd, 1, "}"), exprEnd)
		}
		return lexer.emit(lexer.fixed('}', 1, "}"), exprEnd)
	}

	return nil, parseutil.NewLocationError(
		lexer.Location,
		"Invalid char `%c' in expression",
		char)
}

// methodSuffix reports the length (0 or 1) of a trailing '?' or '!' on a
// method name.
func (lexer *Lexer) methodSuffix() int {
	next, ok, err := lexer.peekByte(0)
	if err != nil || !ok || (next != '?' && next != '!') {
		return 0
	}
	if lexer.peekIs(1, "=") && !lexer.peekIs(1, "==") {
		return 0
	}
	return 1
}

func (lexer *Lexer) nextIdentifier() (lr.Token, error) {
	token, err := lexer.lexIdentifier()
	if err != nil {
		return nil, err
	}

	prevState := lexer.state

	if prevState != exprDot {
		kw, ok := keywords[token.Value]
		if ok {
			return lexer.nextKeyword(token, kw)
		}
	}

	if isUpper(token.Value[0]) {
		token.SymbolId = grammar.TConstant
	} else if suffix := lexer.methodSuffix(); suffix > 0 {
		next, _, _ := lexer.peekByte(0)
		lexer.discard(suffix)
		token.Value += string(next)
		token.EndPos = lexer.Location
	}

	if lexer.defName {
		lexer.defName = false

		// setter method name, e.g., "def value=(v)"
		if lexer.peekIs(0, "=") &&
			!lexer.peekIs(1, "=") &&
			!lexer.peekIs(1, "~") &&
			!lexer.peekIs(1, ">") {

			lexer.discard(1)
			token.Value += "="
			token.EndPos = lexer.Location
		}
		return lexer.emit(token, exprEndFn)
	}

	switch {
	case prevState == exprDot:
		return lexer.emit(token, exprArg)
	case token.SymbolId == grammar.TConstant:
		return lexer.emit(token, exprEnd)
	case lexer.locals.IsLocal(token.Value):
		return lexer.emit(token, exprEnd)
	}
	return lexer.emit(token, exprArg)
}

func (lexer *Lexer) nextKeyword(
	token *lr.TokenValue,
	kw keyword,
) (
	lr.Token,
	error,
) {
	token.SymbolId = kw.id

	switch {
	case kw.modifier != 0 && lexer.state != exprBeg:
		token.SymbolId = kw.modifier
		return lexer.emit(token, exprBeg)

	case kw.id == grammar.KWhile || kw.id == grammar.KUntil:
		lexer.conditions = append(lexer.conditions, lexer.parenDepth())

	case kw.id == grammar.KDo:
		if lexer.closeCondition() {
			token.SymbolId = grammar.KDoCond
		}

	case kw.id == grammar.KDef:
		lexer.defName = true

	case kw.id == grammar.KSelf && lexer.defName:
		// "def self.name": the method name follows the dot.
		return lexer.emit(token, exprEnd)
	}

	if lexer.defName && kw.id != grammar.KDef {
		lexer.defName = false
	}

	return lexer.emit(token, kw.state)
}

var operatorSymbols = []string{
	"[]=", "[]", "**", "==", "!=", "<=", ">=", "<<", "-@", "+@",
	"+", "-", "*", "/", "%", "<", ">", "!",
}

func (lexer *Lexer) nextSymbol() (lr.Token, error) {
	start := lexer.Location

	next, ok, err := lexer.peekByte(1)
	if err != nil {
		return nil, err
	}

	if ok && (isIdentifierStart(next) || next == '@' || next == '$') {
		lexer.discard(1)

		var name *lr.TokenValue
		if isIdentifierStart(next) {
			name, err = lexer.lexIdentifier()
			if err == nil {
				suffix := lexer.methodSuffix()
				if suffix == 0 && lexer.peekIs(0, "=") &&
					!lexer.peekIs(1, "=") && !lexer.peekIs(1, ">") {
					suffix = 1
				}
				if suffix > 0 {
					last, _, _ := lexer.peekByte(0)
					lexer.discard(1)
					name.Value += string(last)
				}
			}
		} else {
			name, err = lexer.lexSigilIdentifier()
		}
		if err != nil {
			return nil, err
		}

		return lexer.emit(
			lexer.newToken(grammar.TSymbol, name.Value, start),
			exprEnd)
	}

	for _, op := range operatorSymbols {
		if lexer.peekIs(1, op) {
			lexer.discard(1 + len(op))
			return lexer.emit(
				lexer.newToken(grammar.TSymbol, op, start),
				exprEnd)
		}
	}

	return nil, parseutil.NewLocationError(start, "unexpected ':'")
}
