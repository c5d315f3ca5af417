package main

import (
	"fmt"

	"github.com/npillmayer/addrparse/address"
	"github.com/npillmayer/addrparse/lr"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "List the symbols and rules of the address grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ga, err := address.Grammar()
			if err != nil {
				return err
			}
			g := ga.Grammar()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Grammar %q\n\nTerminals:\n", g.Name)
			g.EachTerminal(func(A *lr.Symbol) {
				fmt.Fprintf(out, "  %-12s %-10s prio %d\n", A.Name, address.TokenName(A.Value), A.Prio)
			})
			fmt.Fprintln(out, "\nNon-terminals:")
			g.EachNonTerminal(func(A *lr.Symbol) {
				fmt.Fprintf(out, "  %-16s %d rules\n", A.Name, len(g.FindNonTermRules(A)))
			})
			fmt.Fprintln(out, "\nRules:")
			for i := 0; i < g.Size(); i++ {
				fmt.Fprintf(out, "  %3d: %s\n", i, g.Rule(i))
			}
			fp, err := g.Fingerprint()
			if err != nil {
				return fmt.Errorf("grammar fingerprint: %w", err)
			}
			fmt.Fprintf(out, "\nFingerprint: %s\n", fp)
			return nil
		},
	}
}
