package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClassesCmd() *cobra.Command {
	var (
		pkg      string
		withPath bool
	)

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the classes of the project's sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := openCodebase()
			if err != nil {
				return err
			}
			defer cb.Close()

			if err := cb.ScanAll(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			out := cmd.OutOrStdout()
			for _, c := range cb.Library().Classes() {
				if pkg != "" && c.PackageName() != pkg {
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", c.FullyQualifiedName(), c.Kind(), origin(c))
			}

			if withPath {
				names, err := cb.ClasspathClasses()
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
				for _, n := range names {
					if pkg != "" && !strings.HasPrefix(n, pkg+".") {
						continue
					}
					fmt.Fprintf(out, "%s\tclasspath\n", n)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pkg, "package", "p", "", "only classes of this package")
	cmd.Flags().BoolVar(&withPath, "all", false, "also list every class on the classpath")

	return cmd
}
