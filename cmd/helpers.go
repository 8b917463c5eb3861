package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtualboard/orf/internal/config"
	"github.com/virtualboard/orf/internal/route"
	"github.com/virtualboard/orf/internal/util"
)

func options() (*config.Options, error) {
	return config.Current()
}

func respond(cmd *cobra.Command, opts *config.Options, success bool, message string, data interface{}) error {
	if opts.JSONOutput {
		payload := util.StructuredResult(success, message, data)
		return util.PrintJSON(cmd.OutOrStdout(), payload)
	}
	if message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), message)
	}
	return nil
}

// inputName returns the positional input path, or "-" for stdin.
func inputName(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// renderFlags binds --mode, --lo and --hi to a command.
type renderFlags struct {
	mode string
	lo   int
	hi   int
}

func (f *renderFlags) register(cmd *cobra.Command) {
	defaults := config.DefaultSettings()
	cmd.Flags().StringVar(&f.mode, "mode", defaults.Mode, "Sort mode: numeric or encounter")
	cmd.Flags().IntVar(&f.lo, "lo", defaults.Range.Lo, "First section number to include")
	cmd.Flags().IntVar(&f.hi, "hi", defaults.Range.Hi, "Last section number to include")
}

// resolve merges explicitly set flags over the loaded settings.
func (f *renderFlags) resolve(cmd *cobra.Command, opts *config.Options) (route.Mode, route.Range, error) {
	modeName := opts.Settings.Mode
	if cmd.Flags().Changed("mode") {
		modeName = f.mode
	}
	mode, err := route.ParseMode(modeName)
	if err != nil {
		return "", route.Range{}, WrapCLIError(ExitCodeValidation, err)
	}

	rng := route.Range{Lo: opts.Settings.Range.Lo, Hi: opts.Settings.Range.Hi}
	if cmd.Flags().Changed("lo") {
		rng.Lo = f.lo
	}
	if cmd.Flags().Changed("hi") {
		rng.Hi = f.hi
	}
	return mode, rng, nil
}
