package lr

import (
	"github.com/tliron/commonlog"
)

// Debugger observes the automaton's transitions.
type Debugger interface {
	Shift(from int, token Token, to int)
	Reduce(from int, rule int, to int)
	Discard(state int, token Token)
	Error(state int, token Token, errorFlag int)
	Resynchronize(state int, popped int)
	Accept()
}

type logDebugger struct {
	tables *Tables
	log    commonlog.Logger
}

// NewLogDebugger returns a debugger which writes each transition to the
// "garnet.parser" logger at debug level.
func NewLogDebugger(tables *Tables) Debugger {
	return &logDebugger{
		tables: tables,
		log:    commonlog.GetLogger("garnet.parser"),
	}
}

func (debugger *logDebugger) Shift(from int, token Token, to int) {
	debugger.log.Debugf(
		"state %d: shift %s (%s), goto state %d",
		from,
		debugger.tables.TokenName(token.Id()),
		token.Loc(),
		to)
}

func (debugger *logDebugger) Reduce(from int, rule int, to int) {
	debugger.log.Debugf(
		"state %d: reduce rule %d (%s -> %s), goto state %d",
		from,
		rule,
		debugger.tables.NonterminalName(debugger.tables.Lhs[rule]),
		debugger.tables.RuleName(rule),
		to)
}

func (debugger *logDebugger) Discard(state int, token Token) {
	debugger.log.Debugf(
		"state %d: discard %s (%s)",
		state,
		debugger.tables.TokenName(token.Id()),
		token.Loc())
}

func (debugger *logDebugger) Error(state int, token Token, errorFlag int) {
	debugger.log.Debugf(
		"state %d: no action for %s (%s), error flag %d",
		state,
		debugger.tables.TokenName(token.Id()),
		token.Loc(),
		errorFlag)
}

func (debugger *logDebugger) Resynchronize(state int, popped int) {
	debugger.log.Debugf(
		"resynchronized on state %d after popping %d frames",
		state,
		popped)
}

func (debugger *logDebugger) Accept() {
	debugger.log.Debug("accept")
}
