package lexer

import (
	"io"
	"strings"

	"github.com/pattyshack/gt/parseutil"
	"github.com/pattyshack/gt/stringutil"

	"github.com/pattyshack/garnet/parser/grammar"
	"github.com/pattyshack/garnet/parser/lr"
)

const (
	initialPeekWindowSize = 64
)

// RawLexer scans individual lexemes.  It carries no expression state; the
// Lexer decides which token kind a lexeme becomes.
type RawLexer struct {
	parseutil.BufferedByteLocationReader
	*stringutil.InternPool
}

func NewRawLexer(
	reader parseutil.BufferedByteLocationReader,
) *RawLexer {
	return &RawLexer{
		BufferedByteLocationReader: reader,
		InternPool:                 stringutil.NewInternPool(),
	}
}

func (lexer *RawLexer) CurrentLocation() parseutil.Location {
	return lexer.Location
}

// peekByte returns the byte at offset without consuming it.  ok is false at
// end of input.
func (lexer *RawLexer) peekByte(offset int) (byte, bool, error) {
	peeked, err := lexer.Peek(offset + 1)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(peeked) <= offset {
		return 0, false, nil
	}
	return peeked[offset], true, nil
}

// peekIs reports whether the bytes at offset match expected.
func (lexer *RawLexer) peekIs(offset int, expected string) bool {
	for idx := 0; idx < len(expected); idx++ {
		char, ok, err := lexer.peekByte(offset + idx)
		if err != nil || !ok || char != expected[idx] {
			return false
		}
	}
	return true
}

func (lexer *RawLexer) discard(size int) {
	_, err := lexer.Discard(size)
	if err != nil {
		panic("should never happen")
	}
}

func (lexer *RawLexer) newToken(
	id lr.SymbolId,
	value string,
	start parseutil.Location,
) *lr.TokenValue {
	return &lr.TokenValue{
		SymbolId:    id,
		StartEndPos: parseutil.NewStartEndPos(start, lexer.Location),
		Value:       value,
	}
}

// fixed returns a token for the next size bytes.
func (lexer *RawLexer) fixed(
	id lr.SymbolId,
	size int,
	value string,
) *lr.TokenValue {
	start := lexer.Location
	lexer.discard(size)
	return lexer.newToken(id, value, start)
}

func isSpace(char byte) bool {
	switch char {
	case ' ', '\t', '\f', '\v', '\r', '\n':
		return true
	}
	return false
}

func isDigit(char byte) bool {
	return '0' <= char && char <= '9'
}

func isIdentifierStart(char byte) bool {
	return ('a' <= char && char <= 'z') ||
		('A' <= char && char <= 'Z') ||
		char == '_' ||
		char >= 0x80
}

func isIdentifierChar(char byte) bool {
	return isIdentifierStart(char) || isDigit(char)
}

func isUpper(char byte) bool {
	return 'A' <= char && char <= 'Z'
}

func (lexer *RawLexer) skipSpaces() error {
	char, ok, err := lexer.peekByte(0)
	if err != nil || !ok {
		return err
	}

	if char == '\f' || char == '\v' {
		lexer.discard(1)
		return nil
	}

	token, err := parseutil.MaybeTokenizeSpaces(
		lexer.BufferedByteLocationReader,
		initialPeekWindowSize,
		lr.SymbolId(' '))
	if err != nil {
		return err
	}

	if token == nil {
		panic("should never happen")
	}

	return nil
}

func (lexer *RawLexer) skipNewlines() error {
	token, foundInvalidNewline, err := parseutil.MaybeTokenizeNewlines(
		lexer.BufferedByteLocationReader,
		initialPeekWindowSize,
		lr.SymbolId('\n'))
	if err != nil {
		return err
	}

	if token == nil {
		panic("should never happen")
	}

	if foundInvalidNewline {
		return parseutil.NewLocationError(token.StartPos, "unexpected utf8 rune")
	}

	return nil
}

// skipComment discards a '#' comment up to (not including) the newline.
func (lexer *RawLexer) skipComment() error {
	for {
		peeked, err := lexer.Peek(initialPeekWindowSize)
		if err == io.EOF {
			err = nil
		}
		if err != nil {
			return err
		}
		if len(peeked) == 0 {
			return nil
		}

		size := 0
		for size < len(peeked) && peeked[size] != '\n' && peeked[size] != '\r' {
			size++
		}
		lexer.discard(size)

		if size < len(peeked) {
			return nil
		}
	}
}

// scanWhile returns the length of the longest prefix (starting at offset)
// whose bytes satisfy pred.
func (lexer *RawLexer) scanWhile(offset int, pred func(byte) bool) (int, error) {
	size := 0
	for {
		char, ok, err := lexer.peekByte(offset + size)
		if err != nil {
			return 0, err
		}
		if !ok || !pred(char) {
			return size, nil
		}
		size++
	}
}

func isDecimalChar(char byte) bool {
	return isDigit(char) || char == '_'
}

func isHexChar(char byte) bool {
	return isDecimalChar(char) ||
		('a' <= char && char <= 'f') ||
		('A' <= char && char <= 'F')
}

// lexNumber scans an integer or float literal.  "1.foo" is an integer
// followed by a method call.
func (lexer *RawLexer) lexNumber(negative bool) (*lr.TokenValue, error) {
	start := lexer.Location
	if negative {
		lexer.discard(1)
	}

	var text strings.Builder
	if negative {
		text.WriteByte('-')
	}

	id := grammar.TInteger

	radixPrefix := ""
	if lexer.peekIs(0, "0") {
		next, _, err := lexer.peekByte(1)
		if err != nil {
			return nil, err
		}
		switch next {
		case 'x', 'X', 'b', 'B', 'o', 'O', 'd', 'D':
			radixPrefix = strings.ToLower(string([]byte{'0', next}))
		}
	}

	if radixPrefix != "" {
		pred := isDecimalChar
		if radixPrefix == "0x" {
			pred = isHexChar
		}

		digits, err := lexer.scanWhile(2, pred)
		if err != nil {
			return nil, err
		}
		if digits == 0 {
			return nil, parseutil.NewLocationError(
				start,
				"numeric literal without digits")
		}

		peeked, err := lexer.Peek(2 + digits)
		if err != nil && err != io.EOF {
			return nil, err
		}
		if radixPrefix != "0d" {
			text.WriteString(radixPrefix)
		}
		text.Write(peeked[2 : 2+digits])
		lexer.discard(2 + digits)
		return lexer.newToken(id, text.String(), start), nil
	}

	digits, err := lexer.scanWhile(0, isDecimalChar)
	if err != nil {
		return nil, err
	}
	size := digits

	// fraction requires a digit after the dot.
	if lexer.peekIs(size, ".") {
		next, ok, err := lexer.peekByte(size + 1)
		if err != nil {
			return nil, err
		}
		if ok && isDigit(next) {
			fraction, err := lexer.scanWhile(size+1, isDecimalChar)
			if err != nil {
				return nil, err
			}
			size += 1 + fraction
			id = grammar.TFloat
		}
	}

	exp, ok, err := lexer.peekByte(size)
	if err != nil {
		return nil, err
	}
	if ok && (exp == 'e' || exp == 'E') {
		offset := size + 1
		if lexer.peekIs(offset, "+") || lexer.peekIs(offset, "-") {
			offset++
		}
		expDigits, err := lexer.scanWhile(offset, isDigit)
		if err != nil {
			return nil, err
		}
		if expDigits > 0 {
			size = offset + expDigits
			id = grammar.TFloat
		}
	}

	peeked, err := lexer.Peek(size)
	if err != nil && err != io.EOF {
		return nil, err
	}
	text.Write(peeked[:size])
	lexer.discard(size)

	value := text.String()
	if strings.HasSuffix(value, "_") {
		return nil, parseutil.NewLocationError(
			start,
			"trailing `_' in number")
	}

	return lexer.newToken(id, value, start), nil
}

// lexIdentifier scans a plain identifier.  The returned token's kind is
// decided by the caller.
func (lexer *RawLexer) lexIdentifier() (*lr.TokenValue, error) {
	token, err := parseutil.MaybeTokenizeIdentifier(
		lexer.BufferedByteLocationReader,
		initialPeekWindowSize,
		lexer.InternPool,
		grammar.TIdentifier)
	if err != nil {
		return nil, err
	}

	if token == nil {
		return nil, parseutil.NewLocationError(
			lexer.Location,
			"unexpected utf8 rune")
	}

	return token, nil
}

// lexSigilIdentifier scans @ivar, @@cvar and $gvar names.
func (lexer *RawLexer) lexSigilIdentifier() (*lr.TokenValue, error) {
	start := lexer.Location

	id := grammar.TGvar
	sigil := "$"
	kind := "global variable"
	if lexer.peekIs(0, "@@") {
		id = grammar.TCvar
		sigil = "@@"
		kind = "class variable"
	} else if lexer.peekIs(0, "@") {
		id = grammar.TIvar
		sigil = "@"
		kind = "instance variable"
	}
	lexer.discard(len(sigil))

	char, ok, err := lexer.peekByte(0)
	if err != nil {
		return nil, err
	}
	if !ok || !isIdentifierStart(char) {
		// $0, $1 ..
		if ok && id == grammar.TGvar && isDigit(char) {
			digits, err := lexer.scanWhile(0, isDigit)
			if err != nil {
				return nil, err
			}
			peeked, _ := lexer.Peek(digits)
			name := sigil + string(peeked[:digits])
			lexer.discard(digits)
			return lexer.newToken(id, name, start), nil
		}

		return nil, parseutil.NewLocationError(
			start,
			"`%s' without identifiers is not allowed as %s name",
			sigil,
			kind)
	}

	token, err := lexer.lexIdentifier()
	if err != nil {
		return nil, err
	}

	token.SymbolId = id
	token.StartPos = start
	token.Value = sigil + token.Value
	return token, nil
}

var simpleEscapes = map[byte]byte{
	'n': '\n', 't': '\t', 's': ' ', 'r': '\r', 'e': 0x1b,
	'a': 0x07, 'b': 0x08, 'f': 0x0c, 'v': 0x0b,
}

func (lexer *RawLexer) lexEscape(content *strings.Builder) error {
	start := lexer.Location
	lexer.discard(1) // backslash

	char, ok, err := lexer.peekByte(0)
	if err != nil {
		return err
	}
	if !ok {
		return parseutil.NewLocationError(start, "unterminated string meets end of file")
	}

	if mapped, ok := simpleEscapes[char]; ok {
		content.WriteByte(mapped)
		lexer.discard(1)
		return nil
	}

	switch {
	case char == '\n':
		lexer.discard(1)
		return nil
	case char == 'x':
		digits, err := lexer.scanWhile(1, func(c byte) bool {
			return isHexChar(c) && c != '_'
		})
		if err != nil {
			return err
		}
		if digits == 0 {
			return parseutil.NewLocationError(start, "invalid hex escape")
		}
		if digits > 2 {
			digits = 2
		}
		peeked, _ := lexer.Peek(1 + digits)
		value, _ := parseHex(peeked[1 : 1+digits])
		content.WriteByte(value)
		lexer.discard(1 + digits)
		return nil
	case '0' <= char && char <= '7':
		digits, err := lexer.scanWhile(0, func(c byte) bool {
			return '0' <= c && c <= '7'
		})
		if err != nil {
			return err
		}
		if digits > 3 {
			digits = 3
		}
		peeked, _ := lexer.Peek(digits)
		value := 0
		for _, c := range peeked[:digits] {
			value = value*8 + int(c-'0')
		}
		content.WriteByte(byte(value))
		lexer.discard(digits)
		return nil
	}

	content.WriteByte(char)
	lexer.discard(1)
	return nil
}

func parseHex(digits []byte) (byte, bool) {
	value := byte(0)
	for _, c := range digits {
		switch {
		case isDigit(c):
			value = value*16 + (c - '0')
		case 'a' <= c && c <= 'f':
			value = value*16 + (c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			value = value*16 + (c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return value, true
}

// lexStringContent scans literal text up to the closing quote or (for
// interpolating strings) the next "#{".
func (lexer *RawLexer) lexStringContent(
	quote byte,
	interpolate bool,
) (
	*lr.TokenValue,
	error,
) {
	start := lexer.Location
	content := strings.Builder{}

	for {
		char, ok, err := lexer.peekByte(0)
		if err != nil {
			return nil, err
		}
		if !ok || char == quote {
			break
		}
		if interpolate && char == '#' && lexer.peekIs(1, "{") {
			break
		}

		if char != '\\' {
			content.WriteByte(char)
			lexer.discard(1)
			continue
		}

		if interpolate {
			err = lexer.lexEscape(&content)
			if err != nil {
				return nil, err
			}
			continue
		}

		// single quoted strings only unescape \\ and \'
		next, ok, err := lexer.peekByte(1)
		if err != nil {
			return nil, err
		}
		if ok && (next == '\\' || next == quote) {
			content.WriteByte(next)
			lexer.discard(2)
		} else {
			content.WriteByte('\\')
			lexer.discard(1)
		}
	}

	return lexer.newToken(grammar.TStringContent, content.String(), start), nil
}
