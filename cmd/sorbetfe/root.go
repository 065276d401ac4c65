package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options holds every sorbetfe flag, bound through a standalone pflag.FlagSet
// so the flag definitions stay independent of cobra's command wiring.
type options struct {
	debug       bool
	sanity      bool
	countersOut string
}

func newRootCommand() *cobra.Command {
	var opts options

	flags := pflag.NewFlagSet("sorbetfe", pflag.ContinueOnError)
	flags.BoolVar(&opts.debug, "debug", false, "use a development logger and run post-desugar sanity checks")
	flags.BoolVar(&opts.sanity, "sanity", false, "run ast.CheckSanity on every desugared file (implied by -debug)")
	flags.StringVar(&opts.countersOut, "counters-out", "", "write the merged counters snapshot as JSON to this path")

	cmd := &cobra.Command{
		Use:   "sorbetfe [files...]",
		Short: "desugars Ruby source files into the typed compiler-frontend IR",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, opts)
		},
	}
	cmd.Flags().AddFlagSet(flags)

	return cmd
}
