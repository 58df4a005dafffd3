/*
File    : kube-interpreter/cmd/kube-interpreter/main.go
*/

// Command kube-interpreter runs the lex/parse pipeline over a root .kl
// file and everything it transitively reaches through imports and class
// references, reporting the first fatal diagnostic to stderr.
package main

import (
	"os"

	"github.com/akashmaji946/kube-interpreter/ast"
	"github.com/akashmaji946/kube-interpreter/pipeline"
	"github.com/akashmaji946/kube-interpreter/registry"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var redColor = color.New(color.FgRed)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kube-interpreter <path-to-root-file>",
		Short:         "Lex and parse a .kl file and every file it reaches",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New()
			orch := pipeline.New(reg, ast.NewPool())
			return orch.Run(args[0])
		},
	}
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		redColor.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
