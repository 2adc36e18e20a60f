package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pattyshack/gt/parseutil"
	"github.com/spf13/cobra"

	"github.com/pattyshack/garnet/parser/grammar"
	lex "github.com/pattyshack/garnet/parser/lexer"
	"github.com/pattyshack/garnet/parser/lr"
)

func newTokensCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>...",
		Short: "Print the token stream of ruby source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			failed := false
			for _, fileName := range args {
				fmt.Fprintln(out, "=====================")
				fmt.Fprintln(out, "File name:", fileName)
				fmt.Fprintln(out, "---------------------")

				content, err := os.ReadFile(fileName)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}

				err = printTokens(out, fileName, content)
				if err != nil {
					fmt.Fprintln(out, "Lex error:", err)
					failed = true
				}
			}

			if failed {
				return fmt.Errorf("lex error")
			}
			return nil
		},
	}
}

// printTokens lexes without a scope manager, so every identifier is treated
// as a potential method call.
func printTokens(out io.Writer, fileName string, content []byte) error {
	lexer := lex.NewLexer(
		parseutil.NewBufferedByteLocationReaderFromSlice(fileName, content),
		nil)

	for {
		token, err := lexer.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		value := ""
		tokenValue, ok := token.(*lr.TokenValue)
		if ok {
			value = tokenValue.Value
		}

		fmt.Fprintf(
			out,
			"%s: %s %q\n",
			token.Loc(),
			grammar.TokenName(token.Id()),
			value)
	}
}
