package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/javamodel/format"
	"github.com/spf13/cobra"
)

func formatFlags(cmd *cobra.Command, name *string, opts *format.Options) {
	cmd.Flags().StringVarP(name, "format", "f", "java", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().BoolVarP(&opts.Inherited, "inherited", "i", false, "include members of supertypes")
	cmd.Flags().BoolVarP(&opts.ResolveGenerics, "resolve-generics", "g", false, "substitute type arguments into inherited members")
}

func newDumpCmd() *cobra.Command {
	var (
		dumpFormat string
		opts       format.Options
	)

	cmd := &cobra.Command{
		Use:   "dump <class>...",
		Short: "Dump the model of classes found in the project or on the classpath",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := openCodebase()
			if err != nil {
				return err
			}
			defer cb.Close()

			enc, err := format.New(dumpFormat, cmd.OutOrStdout(), opts)
			if err != nil {
				return err
			}
			for _, name := range args {
				cls, err := findClass(cb, name)
				if err != nil {
					return err
				}
				if err := enc.Encode(cls); err != nil {
					return fmt.Errorf("encode %s: %w", name, err)
				}
			}
			return nil
		},
	}

	formatFlags(cmd, &dumpFormat, &opts)

	return cmd
}
