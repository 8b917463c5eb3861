package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/virtualboard/orf/internal/route"
	"github.com/virtualboard/orf/internal/util"
)

const (
	msgEmptyInput = "Please enter the original text"
	msgNoMatches  = "No matching data found."
)

func newFormatCommand() *cobra.Command {
	var (
		flags  renderFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format route sections from a file or stdin",
		Long: "Reads free-form route text from a file (or stdin when omitted or '-'), " +
			"extracts numbered sections and prints the non-empty ones within --lo..--hi, " +
			"one line per section as start-end(value) pairs.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return err
			}
			mode, rng, err := flags.resolve(cmd, opts)
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

			log := opts.Logger().WithField("command", "format")
			res := route.NewExtractor(log).Extract(text)
			out := route.Render(res, rng, mode)
			blocks := strings.Count(out, "\n")
			noMatches := strings.TrimSpace(out) == ""
			log.WithFields(logrus.Fields{
				"mode":   mode,
				"range":  rng.String(),
				"blocks": blocks,
			}).Info("formatted input")

			written := false
			if output != "" && output != "-" && !noMatches {
				if err := util.WriteFileAtomic(output, []byte(out), 0o644); err != nil {
					return WrapCLIError(ExitCodeFilesystem, err)
				}
				written = true
			}

			if opts.JSONOutput {
				message := "formatted"
				if noMatches {
					message = msgNoMatches
				}
				payload := map[string]interface{}{
					"mode":       mode,
					"range":      rng,
					"sections":   blocks,
					"no_matches": noMatches,
					"written":    written,
				}
				if written {
					payload["path"] = output
				} else {
					payload["output"] = out
				}
				return respond(cmd, opts, true, message, payload)
			}

			switch {
			case noMatches:
				fmt.Fprintln(cmd.OutOrStdout(), msgNoMatches)
			case written:
				fmt.Fprintf(cmd.OutOrStdout(), "%d sections written to %s\n", blocks, output)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimPrefix(out, "\n"))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the formatted text to a file instead of stdout")
	return cmd
}
