// gentables compiles the ruby grammar and writes its packed tables as go
// source.  Run through go generate in parser/grammar.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pattyshack/gt/argparse"
	"github.com/pattyshack/gt/filesystem"

	"github.com/pattyshack/garnet/parser/grammar"
)

func generate(output string) error {
	result, err := grammar.Compiled()
	if err != nil {
		return err
	}

	if len(result.Conflicts) > 0 {
		for _, conflict := range result.Conflicts {
			fmt.Fprintln(os.Stderr, conflict)
		}
		return fmt.Errorf("%d unresolved conflicts", len(result.Conflicts))
	}

	buffer := &bytes.Buffer{}
	err = grammar.WriteTablesSource(buffer, result.Tables)
	if err != nil {
		return err
	}

	return filesystem.NewLocalFileSystem().WriteFile(output, buffer.Bytes())
}

func main() {
	output := argparse.String("o", "tables_gen.go", "generated tables file")

	argparse.CommandLine.SetCommandFunc(
		func([]string) error {
			return generate(*output)
		})

	err := argparse.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
