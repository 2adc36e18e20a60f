package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/pattyshack/garnet/config"
)

const version = "0.1.0"

type options struct {
	configPath string
	dialect    string
	debug      bool
	verbosity  int

	config config.Config
}

// load reads the configuration file and applies the command line overrides.
func (opts *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dialect") {
		cfg.Dialect = opts.dialect
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if flags.Changed("verbose") {
		cfg.Verbosity = opts.verbosity
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	opts.config = cfg

	// The parser debugger logs at debug level.
	verbosity := cfg.Verbosity
	if cfg.Debug && verbosity < 2 {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)
	return nil
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "garnet",
		Short:         "A table driven ruby front end",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(
		&opts.configPath,
		"config",
		config.DefaultFileName,
		"configuration file")
	flags.StringVar(
		&opts.dialect,
		"dialect",
		"",
		"block parameter semantics (1.8 or 1.9)")
	flags.BoolVar(
		&opts.debug,
		"debug",
		false,
		"log every parser transition")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "log verbosity")

	rootCmd.AddCommand(newTokensCmd(opts))
	rootCmd.AddCommand(newTreeCmd(opts))
	rootCmd.AddCommand(newTablesCmd())
	rootCmd.AddCommand(newLSPCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
