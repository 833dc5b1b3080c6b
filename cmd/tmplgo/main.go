// Command tmplgo renders templates from the command line: either a single
// file via "render", or an interactive session via "repl".
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kbowen/tmplgo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tmplgo",
		Short:         "Render tmplgo templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd())
	root.AddCommand(newReplCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var varsPath string

	cmd := &cobra.Command{
		Use:   "render <template-file>",
		Short: "Render a template file to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading template: %w", err)
			}

			vars := tmplgo.Variables(tmplgo.NoVariables)
			if varsPath != "" {
				data, err := os.ReadFile(varsPath)
				if err != nil {
					return fmt.Errorf("reading variables: %w", err)
				}
				vars, err = variablesFromJSON(data)
				if err != nil {
					return fmt.Errorf("parsing variables: %w", err)
				}
			}

			out, err := tmplgo.Render(string(source), vars, tmplgo.StdFunctions)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&varsPath, "vars", "v", "", "path to a JSON file of template variables")
	return cmd
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive tmplgo session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newREPL()
			r.Run(os.Stdin, os.Stdout)
			return nil
		},
	}
}
