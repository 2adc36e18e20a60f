package parser

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/grammar"
	"github.com/pattyshack/garnet/parser/lexer"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/reducer"
	"github.com/pattyshack/garnet/parser/scope"
	"github.com/pattyshack/garnet/parser/warning"
)

type Config struct {
	FileName string

	// Log every automaton transition at debug level.
	Debug bool

	// Defaults to ruby 1.8 semantics.
	Dialect scope.Dialect

	// Top level locals from a previous parse (REPL / eval re-entry).
	EvalScope *scope.EvalScope

	// Defaults to discarding warnings.
	Warnings warning.Sink
}

type parser struct {
	lexer      *lexer.Lexer
	scope      *scope.Manager
	dispatcher *reducer.Dispatcher
	driver     *lr.Parser
}

func newParser(
	reader parseutil.BufferedByteLocationReader,
	emitter *parseutil.Emitter,
	config Config,
) (
	*parser,
	error,
) {
	manager := scope.NewManager(config.Dialect, config.Warnings)
	manager.FileName = config.FileName
	manager.Reset(config.EvalScope)

	lex := lexer.NewLexer(reader, manager)
	lex.Warnings = manager.Warnings()

	red := reducer.NewReducer(manager)
	red.Location = lex.CurrentLocation

	tables, err := grammar.Tables()
	if err != nil {
		return nil, err
	}

	dispatcher, err := reducer.NewDispatcher(tables, red)
	if err != nil {
		return nil, err
	}

	driver := lr.NewParser(tables, dispatcher, emitter)
	if config.Debug {
		driver.Debugger = lr.NewLogDebugger(tables)
	}

	return &parser{
		lexer:      lex,
		scope:      manager,
		dispatcher: dispatcher,
		driver:     driver,
	}, nil
}

func (parser *parser) parse() (*ast.Root, error) {
	result, err := parser.driver.Parse(parser.lexer)
	if err != nil {
		return nil, err
	}

	root, ok := result.AsNode().(*ast.Root)
	if !ok {
		return nil, fmt.Errorf("unexpected parse result (%s)", result.Kind)
	}
	return root, nil
}

// Parse parses a whole ruby source.  Recovered syntax errors are emitted and
// the best-effort tree is returned.  Irrecoverable syntax errors, lex errors
// and semantic errors abort the parse.
func Parse(
	reader parseutil.BufferedByteLocationReader,
	emitter *parseutil.Emitter,
	config Config,
) (
	*ast.Root,
	error,
) {
	parser, err := newParser(reader, emitter, config)
	if err != nil {
		return nil, err
	}
	return parser.parse()
}

// ParseBytes is a convenience wrapper around Parse.
func ParseBytes(
	content []byte,
	emitter *parseutil.Emitter,
	config Config,
) (
	*ast.Root,
	error,
) {
	return Parse(
		parseutil.NewBufferedByteLocationReaderFromSlice(
			config.FileName,
			content),
		emitter,
		config)
}
