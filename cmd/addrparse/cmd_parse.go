package main

import (
	"encoding/json"
	"fmt"

	"github.com/npillmayer/addrparse/address"
	"github.com/npillmayer/addrparse/lr/cst"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var showTree bool
	cmd := &cobra.Command{
		Use:   "parse <address>",
		Short: "Parse an address and print street and house number as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Input: ``%s``\n-----\n\n", input)
			addr, err := address.Parse(input)
			if err != nil {
				return fmt.Errorf("parse %q: %w", input, err)
			}
			if showTree {
				tree, err := address.ParseTree(input)
				if err != nil {
					return fmt.Errorf("parse tree %q: %w", input, err)
				}
				pterm.DefaultTree.WithRoot(treeNodes(tree)).Render()
			}
			js, err := json.Marshal(addr)
			if err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			fmt.Fprintln(out, string(js))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTree, "tree", false, "print the syntax tree")
	return cmd
}

// treeNodes converts a syntax tree into a pterm tree.
func treeNodes(tree cst.Node) pterm.TreeNode {
	ll := pterm.LeveledList{}
	cst.Each(tree, func(node cst.Node, depth int) {
		var text string
		switch n := node.(type) {
		case *cst.Terminal:
			text = fmt.Sprintf("%s %q", n.Symbol, n.Token.Lexeme())
		case *cst.Rule:
			text = n.Symbol
		}
		ll = append(ll, pterm.LeveledListItem{Level: depth, Text: text})
	})
	return pterm.NewTreeFromLeveledList(ll)
}
