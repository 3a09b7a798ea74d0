package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>...",
		Short: "Print the binary name of each class and where it was found",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := openCodebase()
			if err != nil {
				return err
			}
			defer cb.Close()

			lib := cb.Library()
			out := cmd.OutOrStdout()
			for _, name := range args {
				c := lib.Resolve(name)
				fmt.Fprintf(out, "%s\t%s\t%s\n", c.BinaryName(), c.Kind(), origin(c))
			}
			return nil
		},
	}
}
