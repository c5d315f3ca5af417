/*
Command addrparse parses postal addresses into street and house number.

Usage:

    addrparse parse "Winterallee 3"      parse a single address
    addrparse parse --tree "42 42nd Ave" show the syntax tree as well
    addrparse serve [port]               start an HTTP service (default port 8000)
    addrparse repl                       parse addresses interactively
    addrparse grammar                    list the rules of the address grammar

The global flag --trace sets the trace level (Error, Info or Debug).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'addrparse.cli'.
func tracer() tracing.Trace {
	return tracing.Select("addrparse.cli")
}

func main() {
	os.Exit(run(newRootCmd()))
}

// run executes a command and reports errors to the command's error output.
// It returns the exit code.
func run(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), pterm.Error.Sprintln(err.Error()))
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	conf := newConfig()
	rootCmd := &cobra.Command{
		Use:           "addrparse",
		Short:         "Parse postal addresses into street and house number",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initDisplay()
			return conf.setupTracing()
		},
	}
	conf.addFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newREPLCmd())
	rootCmd.AddCommand(newGrammarCmd())
	return rootCmd
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
