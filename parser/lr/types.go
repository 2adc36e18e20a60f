package lr

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"
)

type Token = parseutil.Token[SymbolId]
type TokenValue = parseutil.TokenValue[SymbolId]

type Lexer = parseutil.Lexer[Token]

// Token kind.  1..255 are single character tokens (the character code
// itself), named tokens start at FirstNamedToken.
type SymbolId int

const (
	EndOfInput      = SymbolId(0)
	ErrorToken      = SymbolId(256)
	FirstNamedToken = SymbolId(257)
)

func (id SymbolId) String() string {
	switch {
	case id == EndOfInput:
		return "$end"
	case id == ErrorToken:
		return "error"
	case id == '\n':
		return "'\\n'"
	case 0 < id && id < ErrorToken:
		return fmt.Sprintf("'%c'", rune(id))
	}
	return fmt.Sprintf("token(%d)", int(id))
}
