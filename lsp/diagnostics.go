package lsp

import (
	"errors"

	"github.com/pattyshack/gt/parseutil"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/pattyshack/garnet/analyzer"
	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/scope"
	"github.com/pattyshack/garnet/parser/warning"
)

const diagnosticSource = "garnet"

// Diagnose parses (and optionally analyzes) content, and converts the
// reported errors and warnings into diagnostics.
func Diagnose(
	content []byte,
	config parser.Config,
	analyze bool,
) []protocol.Diagnostic {
	warnings := warning.NewCollector()
	config.Warnings = warnings

	emitter := &parseutil.Emitter{}
	root, err := parser.ParseBytes(content, emitter, config)
	if err == nil && analyze {
		analyzer.Analyze([]*ast.Root{root}, emitter, warnings)
	}

	result := []protocol.Diagnostic{}
	for _, emitted := range emitter.Errors() {
		result = append(
			result,
			newDiagnostic(emitted, protocol.DiagnosticSeverityError))
	}
	if err != nil {
		result = append(
			result,
			newDiagnostic(err, protocol.DiagnosticSeverityError))
	}
	for _, warn := range warnings.Warnings() {
		result = append(
			result,
			toDiagnostic(
				warn.StartEndPos,
				warn.Message,
				protocol.DiagnosticSeverityWarning))
	}

	return result
}

type locatable interface {
	Loc() parseutil.Location
}

type spanned interface {
	locatable
	End() parseutil.Location
}

func newDiagnostic(
	err error,
	severity protocol.DiagnosticSeverity,
) protocol.Diagnostic {
	msg := err.Error()

	var syntaxErr *lr.SyntaxError
	var irrecoverableErr *lr.IrrecoverableSyntaxError
	var semanticErr *scope.SemanticError
	switch {
	case errors.As(err, &irrecoverableErr):
		msg = irrecoverableErr.Message
	case errors.As(err, &syntaxErr):
		msg = syntaxErr.Message
	case errors.As(err, &semanticErr):
		msg = semanticErr.Message
	}

	pos := parseutil.StartEndPos{}
	switch located := err.(type) {
	case spanned:
		pos = parseutil.NewStartEndPos(located.Loc(), located.End())
	case locatable:
		pos = parseutil.NewStartEndPos(located.Loc(), located.Loc())
	}

	return toDiagnostic(pos, msg, severity)
}

// parseutil lines are 1-based and columns 0-based; protocol positions are
// both 0-based.
func toPosition(loc parseutil.Location) protocol.Position {
	line := loc.Line - 1
	if line < 0 {
		line = 0
	}
	column := loc.Column
	if column < 0 {
		column = 0
	}

	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(column),
	}
}

func toDiagnostic(
	pos parseutil.StartEndPos,
	msg string,
	severity protocol.DiagnosticSeverity,
) protocol.Diagnostic {
	source := diagnosticSource
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: toPosition(pos.StartPos),
			End:   toPosition(pos.EndPos),
		},
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}
