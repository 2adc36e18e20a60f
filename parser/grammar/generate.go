package grammar

//go:generate go run ./internal/gentables -o tables_gen.go

import (
	"fmt"
	"io"
	"strings"

	"github.com/pattyshack/gt/codegen"

	"github.com/pattyshack/garnet/parser/lr"
)

const valuesPerLine = 16

// Set by the generated tables_gen.go.
var precompiled *lr.Tables

// WriteTablesSource renders tables as a go source file which installs them
// as the package's precompiled tables.
func WriteTablesSource(output io.Writer, tables *lr.Tables) error {
	imports := codegen.NewGoImports()
	tablesType := imports.Obj("github.com/pattyshack/garnet/parser/lr.Tables")

	body := codegen.NewCodeBuilder()
	body.Line("func init() {")
	body.PushIndent()
	body.Line("precompiled = &%s{", tablesType)
	body.PushIndent()

	intsField(body, "Lhs", tables.Lhs)
	intsField(body, "Len", tables.Len)
	intsField(body, "DefRed", tables.DefRed)
	intsField(body, "DGoto", tables.DGoto)
	intsField(body, "SIndex", tables.SIndex)
	intsField(body, "RIndex", tables.RIndex)
	intsField(body, "GIndex", tables.GIndex)
	intsField(body, "Table", tables.Table)
	intsField(body, "Check", tables.Check)
	body.Line("Final: %d,", tables.Final)
	stringsField(body, "Names", tables.Names)
	stringsField(body, "RuleNames", tables.RuleNames)
	stringsField(body, "Nonterminals", tables.Nonterminals)

	body.PopIndent()
	body.Line("}")
	body.PopIndent()
	body.Line("}")

	file := codegen.NewCodeBuilder()
	file.Line("// Auto-generated from source: grammar.go")
	file.Line("")
	file.Line("package grammar")
	file.Line("")
	file.Embed(imports)
	file.Embed(body)

	_, err := codegen.NewFormattedGoSource(file).WriteTo(output)
	return err
}

func intsField(builder *codegen.CodeBuilder, name string, values []int) {
	builder.Line("%s: []int{", name)
	builder.PushIndent()
	for start := 0; start < len(values); start += valuesPerLine {
		end := min(start+valuesPerLine, len(values))

		chunk := make([]string, 0, end-start)
		for _, value := range values[start:end] {
			chunk = append(chunk, fmt.Sprintf("%d,", value))
		}
		builder.Line("%s", strings.Join(chunk, " "))
	}
	builder.PopIndent()
	builder.Line("},")
}

func stringsField(builder *codegen.CodeBuilder, name string, values []string) {
	builder.Line("%s: []string{", name)
	builder.PushIndent()
	for _, value := range values {
		builder.Line("%q,", value)
	}
	builder.PopIndent()
	builder.Line("},")
}
