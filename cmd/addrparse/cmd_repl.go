package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/addrparse/address"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse addresses interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl, err := readline.New("addrparse> ")
			if err != nil {
				return fmt.Errorf("readline: %w", err)
			}
			defer repl.Close()
			pterm.Info.Println("Enter an address per line, quit with <ctrl>D")
			for {
				line, err := repl.Readline()
				if err != nil { // io.EOF or interrupt
					break
				}
				if line = strings.TrimSpace(line); line == "" {
					continue
				}
				eval(line, cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Good bye!")
			return nil
		},
	}
}

// eval parses a single address and prints the result.
func eval(line string, out io.Writer) {
	addr, err := address.Parse(line)
	var uaf *address.UnrecognizedAddressFormat
	switch {
	case err == nil:
		pterm.Info.Printf("street = %q, house number = %q\n", addr.Street, addr.HouseNumber)
	case errors.As(err, &uaf):
		pterm.Error.Println(uaf.Error())
		fmt.Fprintf(out, "  %s\n  %s^\n", line, strings.Repeat(" ", len([]rune(line[:uaf.Position]))))
		if len(uaf.Expected) > 0 {
			fmt.Fprintf(out, "  expected one of: %s\n", strings.Join(uaf.Expected, ", "))
		}
	default:
		pterm.Error.Println(err.Error())
	}
}
