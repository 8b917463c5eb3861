package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/virtualboard/orf/internal/route"
	"github.com/virtualboard/orf/internal/util"
)

func newExtractCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Dump every extracted section as YAML or JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return err
			}

			text, err := util.ReadInput(inputName(args), cmd.InOrStdin())
			if err != nil {
				return WrapCLIError(ExitCodeFilesystem, err)
			}
			if strings.TrimSpace(text) == "" {
				return NewCLIError(ExitCodeEmptyInput, msgEmptyInput)
			}

			doc := route.NewExtractor(opts.Logger().WithField("command", "extract")).Extract(text).Document()

			if opts.JSONOutput {
				return respond(cmd, opts, true, "extracted", doc)
			}
			switch strings.ToLower(format) {
			case "yaml", "yml":
				return util.PrintYAML(cmd.OutOrStdout(), doc)
			case "json":
				return util.PrintJSON(cmd.OutOrStdout(), doc)
			default:
				return WrapCLIError(ExitCodeValidation, fmt.Errorf("unknown format %s", format))
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml, json")
	return cmd
}
