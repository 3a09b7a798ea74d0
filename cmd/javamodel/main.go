package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var (
	rootDir   string
	extraPath []string
	verbose   int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "javamodel",
		Short:        "Semantic model of Java sources and class files",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootDir, "root", "C", ".", "project root directory")
	flags.StringSliceVar(&extraPath, "classpath", nil, "additional class directories or jars")
	flags.CountVarP(&verbose, "verbose", "v", "log more, repeat for more detail")

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newFieldsCmd())
	rootCmd.AddCommand(newIsACmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newClassesCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}
