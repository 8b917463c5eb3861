package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/virtualboard/orf/internal/config"
	"github.com/virtualboard/orf/internal/route"
	"github.com/virtualboard/orf/internal/version"
)

const sampleInput = "25号 1-2 3\n20号 5-10 100, 3(15-18)\n40号 9-9 9\n"

func setupOptions(t *testing.T, jsonOut bool) *config.Options {
	t.Helper()
	opts := config.New()
	opts.JSONOutput = jsonOut
	config.SetCurrent(opts)
	t.Cleanup(func() { config.SetCurrent(nil) })
	return opts
}

func runCommand(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestFormatCommand(t *testing.T) {
	t.Run("numeric from stdin", func(t *testing.T) {
		setupOptions(t, false)
		out, err := runCommand(t, newFormatCommand(), sampleInput)
		require.NoError(t, err)
		assert.Equal(t, "5-10(100),15-18(3)\n1-2(3)\n", out)
	})

	t.Run("encounter from file with explicit range", func(t *testing.T) {
		setupOptions(t, false)
		path := filepath.Join(t.TempDir(), "routes.txt")
		require.NoError(t, os.WriteFile(path, []byte(sampleInput), 0o600))

		out, err := runCommand(t, newFormatCommand(), "", path, "--mode", "encounter", "--lo", "1", "--hi", "50")
		require.NoError(t, err)
		assert.Equal(t, "1-2(3)\n5-10(100),15-18(3)\n9-9(9)\n", out)
	})

	t.Run("config settings supply defaults", func(t *testing.T) {
		opts := setupOptions(t, false)
		opts.Settings.Mode = "encounter"
		opts.Settings.Range = config.RangeSettings{Lo: 20, Hi: 40}

		out, err := runCommand(t, newFormatCommand(), sampleInput)
		require.NoError(t, err)
		assert.Equal(t, "1-2(3)\n5-10(100),15-18(3)\n9-9(9)\n", out)
	})

	t.Run("empty input", func(t *testing.T) {
		setupOptions(t, false)
		_, err := runCommand(t, newFormatCommand(), "  \n ")
		require.Error(t, err)
		assert.Equal(t, ExitCodeEmptyInput, ExitCode(err))
		assert.Equal(t, msgEmptyInput, err.Error())
	})

	t.Run("no matches", func(t *testing.T) {
		setupOptions(t, false)
		out, err := runCommand(t, newFormatCommand(), "just words 1-2 3")
		require.NoError(t, err)
		assert.Equal(t, msgNoMatches+"\n", out)
	})

	t.Run("missing file", func(t *testing.T) {
		setupOptions(t, false)
		_, err := runCommand(t, newFormatCommand(), "", filepath.Join(t.TempDir(), "missing.txt"))
		require.Error(t, err)
		assert.Equal(t, ExitCodeFilesystem, ExitCode(err))
	})

	t.Run("invalid mode", func(t *testing.T) {
		setupOptions(t, false)
		_, err := runCommand(t, newFormatCommand(), sampleInput, "--mode", "sideways")
		require.Error(t, err)
		assert.Equal(t, ExitCodeValidation, ExitCode(err))
	})

	t.Run("output file", func(t *testing.T) {
		setupOptions(t, false)
		target := filepath.Join(t.TempDir(), "out", "routes.txt")

		out, err := runCommand(t, newFormatCommand(), sampleInput, "--output", target)
		require.NoError(t, err)
		assert.Contains(t, out, "2 sections written to")

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "\n5-10(100),15-18(3)\n1-2(3)", string(data))
	})

	t.Run("json payload", func(t *testing.T) {
		setupOptions(t, true)
		out, err := runCommand(t, newFormatCommand(), sampleInput)
		require.NoError(t, err)

		var payload struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Data    struct {
				Mode      string      `json:"mode"`
				Range     route.Range `json:"range"`
				Sections  int         `json:"sections"`
				NoMatches bool        `json:"no_matches"`
				Output    string      `json:"output"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &payload))
		assert.True(t, payload.Success)
		assert.Equal(t, "numeric", payload.Data.Mode)
		assert.Equal(t, route.DefaultRange(), payload.Data.Range)
		assert.Equal(t, 2, payload.Data.Sections)
		assert.False(t, payload.Data.NoMatches)
		assert.Equal(t, "\n5-10(100),15-18(3)\n1-2(3)", payload.Data.Output)
	})
}

func TestExtractCommand(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		setupOptions(t, false)
		out, err := runCommand(t, newExtractCommand(), "1-2 3 "+sampleInput)
		require.NoError(t, err)

		var doc route.Document
		require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
		assert.Equal(t, []int{25, 20, 40}, doc.Order)
		assert.Equal(t, 1, doc.Discarded)
		require.Len(t, doc.Sections, 3)
		assert.Equal(t, []route.Segment{{Start: 5, End: 10, Value: 100}, {Start: 15, End: 18, Value: 3}}, doc.Sections[1].Segments)
	})

	t.Run("json", func(t *testing.T) {
		setupOptions(t, false)
		out, err := runCommand(t, newExtractCommand(), sampleInput, "--format", "json")
		require.NoError(t, err)

		var doc route.Document
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, []int{25, 20, 40}, doc.Order)
	})

	t.Run("unknown format", func(t *testing.T) {
		setupOptions(t, false)
		_, err := runCommand(t, newExtractCommand(), sampleInput, "--format", "xml")
		require.Error(t, err)
		assert.Equal(t, ExitCodeValidation, ExitCode(err))
	})

	t.Run("empty input", func(t *testing.T) {
		setupOptions(t, false)
		_, err := runCommand(t, newExtractCommand(), "")
		assert.Equal(t, ExitCodeEmptyInput, ExitCode(err))
	})
}

func TestVersionCommand(t *testing.T) {
	setupOptions(t, false)
	out, err := runCommand(t, newVersionCommand(), "")
	require.NoError(t, err)
	assert.Equal(t, version.Current+"\n", out)

	setupOptions(t, true)
	out, err = runCommand(t, newVersionCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "`+version.Current+`"`)
}
