package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/virtualboard/orf/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:           "orf",
		Short:         "Route formatter for pasted route text",
		Long:          "orf extracts numbered route sections and their interval segments from free-form text and prints a filtered, ordered summary.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Current(); err == nil {
				return nil
			}
			opts := config.New()
			if err := opts.Init(flagJSON, flagVerbose, flagLogFile, flagConfig); err != nil {
				return WrapCLIError(ExitCodeValidation, err)
			}
			cmd.SetContext(opts.WithContext(cmd.Context()))
			return nil
		},
	}

	flagJSON    bool
	flagVerbose bool
	flagLogFile string
	flagConfig  string
)

// Execute runs the root command.
func Execute() error {
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	opts, err := config.Current()
	if err == nil {
		if cerr := opts.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "failed to close resources: %v\n", cerr)
		}
	}
	return nil
}

// RootCommand returns the configured root command; primarily for testing scenarios.
func RootCommand() *cobra.Command {
	registerCommands()
	return rootCmd
}

// registerCommands ensures all subcommands are attached before execution.
func registerCommands() {
	if len(rootCmd.Commands()) > 0 {
		return
	}
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "File to write verbose logs")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default: "+config.DefaultFile+" when present)")

	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newVersionCommand())
}
