package grammar

import (
	"github.com/pattyshack/garnet/parser/lr"
)

// Named tokens.  Single character tokens use the character code itself.
const (
	KClass = lr.FirstNamedToken + iota
	KModule
	KDef
	KEnd
	KIf
	KUnless
	KThen
	KElsif
	KElse
	KWhile
	KUntil
	KDo
	KDoCond
	KReturn
	KBreak
	KNext
	KBegin
	KSelf
	KNil
	KTrue
	KFalse
	KFile
	KLine
	KAnd
	KOr
	KNot
	KIfMod
	KUnlessMod
	KWhileMod
	KUntilMod

	TIdentifier
	TConstant
	TIvar
	TCvar
	TGvar
	TInteger
	TFloat
	TSymbol

	TStringBeg
	TStringContent
	TStringDBeg
	TStringDEnd
	TStringEnd

	TEq
	TNeq
	TLeq
	TGeq
	TAndOp
	TOrOp
	TPow
	TOpAsgn
	TAssoc
	TLShift
	TUMinus
	TStar
	TAmper
	TLParen
	TLBrack
	TLBrace
)

var terminals = []struct {
	name string
	id   lr.SymbolId
}{
	{"kCLASS", KClass},
	{"kMODULE", KModule},
	{"kDEF", KDef},
	{"kEND", KEnd},
	{"kIF", KIf},
	{"kUNLESS", KUnless},
	{"kTHEN", KThen},
	{"kELSIF", KElsif},
	{"kELSE", KElse},
	{"kWHILE", KWhile},
	{"kUNTIL", KUntil},
	{"kDO", KDo},
	{"kDO_COND", KDoCond},
	{"kRETURN", KReturn},
	{"kBREAK", KBreak},
	{"kNEXT", KNext},
	{"kBEGIN", KBegin},
	{"kSELF", KSelf},
	{"kNIL", KNil},
	{"kTRUE", KTrue},
	{"kFALSE", KFalse},
	{"k__FILE__", KFile},
	{"k__LINE__", KLine},
	{"kAND", KAnd},
	{"kOR", KOr},
	{"kNOT", KNot},
	{"kIF_MOD", KIfMod},
	{"kUNLESS_MOD", KUnlessMod},
	{"kWHILE_MOD", KWhileMod},
	{"kUNTIL_MOD", KUntilMod},

	{"tIDENTIFIER", TIdentifier},
	{"tCONSTANT", TConstant},
	{"tIVAR", TIvar},
	{"tCVAR", TCvar},
	{"tGVAR", TGvar},
	{"tINTEGER", TInteger},
	{"tFLOAT", TFloat},
	{"tSYMBOL", TSymbol},

	{"tSTRING_BEG", TStringBeg},
	{"tSTRING_CONTENT", TStringContent},
	{"tSTRING_DBEG", TStringDBeg},
	{"tSTRING_DEND", TStringDEnd},
	{"tSTRING_END", TStringEnd},

	{"tEQ", TEq},
	{"tNEQ", TNeq},
	{"tLEQ", TLeq},
	{"tGEQ", TGeq},
	{"tANDOP", TAndOp},
	{"tOROP", TOrOp},
	{"tPOW", TPow},
	{"tOP_ASGN", TOpAsgn},
	{"tASSOC", TAssoc},
	{"tLSHFT", TLShift},
	{"tUMINUS", TUMinus},
	{"tSTAR", TStar},
	{"tAMPER", TAmper},
	{"tLPAREN", TLParen},
	{"tLBRACK", TLBrack},
	{"tLBRACE", TLBrace},
}

// TokenName returns the diagnostic name of id.
func TokenName(id lr.SymbolId) string {
	return Tables().TokenName(id)
}
