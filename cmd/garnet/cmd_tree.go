package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pattyshack/gt/parseutil"
	"github.com/spf13/cobra"

	"github.com/pattyshack/garnet/analyzer"
	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser"
	"github.com/pattyshack/garnet/parser/warning"
)

func newTreeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>...",
		Short: "Parse ruby source files and print their syntax trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			numErrors := 0
			for _, fileName := range args {
				content, err := os.ReadFile(fileName)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}

				numErrors += printTree(out, fileName, content, opts)
			}

			if numErrors > 0 {
				return fmt.Errorf("found %d errors", numErrors)
			}
			return nil
		},
	}
}

func printTree(
	out io.Writer,
	fileName string,
	content []byte,
	opts *options,
) int {
	fmt.Fprintln(out, "=====================")
	fmt.Fprintln(out, "File name:", fileName)
	fmt.Fprintln(out, "---------------------")

	warnings := warning.NewCollector()
	parserConfig := opts.config.ParserConfig(fileName)
	parserConfig.Warnings = warnings

	emitter := &parseutil.Emitter{}
	root, err := parser.ParseBytes(content, emitter, parserConfig)
	if err != nil {
		emitter.EmitErrors(err)
	} else {
		if opts.config.Analyze {
			analyzer.Analyze([]*ast.Root{root}, emitter, warnings)
		}
		fmt.Fprintln(out, ast.TreeString(root, "  "))
	}

	for _, warn := range warnings.Warnings() {
		fmt.Fprintln(out, warn)
	}

	errs := emitter.Errors()
	if len(errs) > 0 {
		fmt.Fprintln(out, "---------------------------")
		fmt.Fprintln(out, "Found", len(errs), "errors:")
		fmt.Fprintln(out, "---------------------------")
		for idx, err := range errs {
			fmt.Fprintf(out, "error %d: %s\n", idx, err)
		}
	}

	return len(errs)
}
