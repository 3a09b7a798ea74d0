package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/javamodel/classpath"
	"github.com/dhamidi/javamodel/format"
	"github.com/dhamidi/javamodel/java"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var (
		outputFormat string
		opts         format.Options
	)

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .java or .class file and dump its classes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			cb, err := openCodebase()
			if err != nil {
				return err
			}
			defer cb.Close()
			lib := cb.Library()

			var classes []*java.Class
			switch ext := filepath.Ext(filename); ext {
			case ".class":
				d, err := classpath.ReadClassFile(filename)
				if err != nil {
					return fmt.Errorf("parse class file: %w", err)
				}
				lib.AddClassLoader(classpath.Set{d.Name: d})
				classes = []*java.Class{lib.Resolve(d.Name)}
			case ".java":
				f, err := os.Open(filename)
				if err != nil {
					return fmt.Errorf("read java file: %w", err)
				}
				defer f.Close()
				src, err := lib.ParseSource(f, filename)
				if err != nil {
					return fmt.Errorf("parse java file: %w", err)
				}
				defer lib.ReleaseSource(src)
				classes = src.Classes()
			default:
				return fmt.Errorf("unsupported file extension: %s (expected .class or .java)", ext)
			}

			enc, err := format.New(outputFormat, cmd.OutOrStdout(), opts)
			if err != nil {
				return err
			}
			for _, c := range classes {
				if err := enc.Encode(c); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}
			return nil
		},
	}

	formatFlags(cmd, &outputFormat, &opts)

	return cmd
}
