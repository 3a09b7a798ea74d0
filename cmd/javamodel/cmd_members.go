package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/javamodel/format"
	"github.com/spf13/cobra"
)

func newMethodsCmd() *cobra.Command {
	var (
		inherited       bool
		resolveGenerics bool
		name            string
	)

	cmd := &cobra.Command{
		Use:   "methods <class>",
		Short: "List the methods of a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := openCodebase()
			if err != nil {
				return err
			}
			defer cb.Close()

			cls, err := findClass(cb, args[0])
			if err != nil {
				return err
			}
			methods := cls.Methods(inherited)
			if name != "" {
				methods = cls.MethodsByName(name, inherited)
			}
			out := cmd.OutOrStdout()
			for _, m := range methods {
				line := format.MethodDeclaration(m, resolveGenerics)
				if m.IsInherited() {
					line += "\t// from " + m.DeclaringClass().FullyQualifiedName()
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&inherited, "inherited", "i", false, "include methods of supertypes")
	cmd.Flags().BoolVarP(&resolveGenerics, "resolve-generics", "g", false, "substitute type arguments into inherited methods")
	cmd.Flags().StringVarP(&name, "name", "n", "", "only methods with this name")

	return cmd
}

func newFieldsCmd() *cobra.Command {
	var inherited bool

	cmd := &cobra.Command{
		Use:   "fields <class>",
		Short: "List the fields of a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := openCodebase()
			if err != nil {
				return err
			}
			defer cb.Close()

			cls, err := findClass(cb, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range cls.Fields(inherited) {
				var sb strings.Builder
				if mods := f.Modifiers(); len(mods) > 0 {
					sb.WriteString(strings.Join(mods, " "))
					sb.WriteString(" ")
				}
				sb.WriteString(f.Type().GenericFullyQualifiedName())
				sb.WriteString(" ")
				sb.WriteString(f.Name())
				if !f.DeclaringClass().Equal(cls) {
					sb.WriteString("\t// from ")
					sb.WriteString(f.DeclaringClass().FullyQualifiedName())
				}
				fmt.Fprintln(out, sb.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&inherited, "inherited", "i", false, "include fields of supertypes")

	return cmd
}
