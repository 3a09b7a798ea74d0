package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIsACmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "isa <class> <supertype>",
		Short: "Report whether a class extends or implements another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := openCodebase()
			if err != nil {
				return err
			}
			defer cb.Close()

			lib := cb.Library()
			ok := lib.Resolve(args[0]).IsA(lib.Resolve(args[1]))
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), ok)
			}
			if !ok {
				return fmt.Errorf("%s is not a %s", args[0], args[1])
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only set the exit status")

	return cmd
}
