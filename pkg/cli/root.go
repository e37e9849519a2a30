// Package cli implements the docsight command-line interface: local
// classification, template inspection, direct queries against an events
// database, and test tracking calls against a running service.
package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "dev"

// outputFormat is a pflag.Value restricted to the supported formats.
type outputFormat string

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(v string) error {
	switch v {
	case "json", "table":
		*f = outputFormat(v)
		return nil
	}
	return fmt.Errorf("invalid output format %q (want json or table)", v)
}

func (f *outputFormat) Type() string { return "format" }

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	output := outputFormat("json")

	rootCmd := &cobra.Command{
		Use:           "docsight",
		Short:         "Docs analytics CLI",
		Long:          "Command-line interface for the docsight analytics service.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().VarP(&output, "output", "o", "output format (json or table)")

	rootCmd.AddCommand(newClassifyCmd(&output))
	rootCmd.AddCommand(newTemplatesCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newTrackCmd())
	return rootCmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
