package main

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ddgscraper/pkg/config"
	"ddgscraper/pkg/ui"
)

func TestCollectQueries(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		want  []string
	}{
		{"single", []string{"cats"}, []string{"cats"}},
		{"repeated flag", []string{"cats", "red panda"}, []string{"cats", "red panda"}},
		{"blanks dropped", []string{" ", "cats ", ""}, []string{"cats"}},
		{"none", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collectQueries(tt.flags))
		})
	}
}

func TestExpandQueryArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"single", []string{"--query", "cats"}, []string{"--query", "cats"}},
		{"trailing words", []string{"-q", "cats", "dogs", "birds"}, []string{"-q", "cats", "--query", "dogs", "--query", "birds"}},
		{"subcommand name as query", []string{"--query", "cats", "config"}, []string{"--query", "cats", "--query", "config"}},
		{"stops at next flag", []string{"--query", "cats", "--amount", "250"}, []string{"--query", "cats", "--amount", "250"}},
		{"equals form", []string{"--query=cats", "dogs"}, []string{"--query=cats", "--query", "dogs"}},
		{"value may look like a flag", []string{"--query", "-x", "dogs"}, []string{"--query", "-x", "--query", "dogs"}},
		{"terminator", []string{"--query", "cats", "--", "dogs"}, []string{"--query", "cats", "--", "dogs"}},
		{"subcommand untouched", []string{"config", "show", "-c", "x.yaml"}, []string{"config", "show", "-c", "x.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandQueryArgs(tt.args))
		})
	}
}

func TestQueryWordsNeverRouteToSubcommands(t *testing.T) {
	cmd, _, err := rootCmd.Find(expandQueryArgs([]string{"--query", "cats", "config"}))
	require.NoError(t, err)
	assert.Same(t, rootCmd, cmd)

	cmd, _, err = rootCmd.Find(expandQueryArgs([]string{"config", "show"}))
	require.NoError(t, err)
	assert.Same(t, configShowCmd, cmd)
}

func TestQueryFlagIsRequired(t *testing.T) {
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	for _, args := range [][]string{{"cats"}, {}} {
		rootCmd.SetArgs(args)
		assert.Error(t, rootCmd.Execute(), "args %v", args)
	}
}

func TestStartUIHonoursResolvedQuiet(t *testing.T) {
	var out bytes.Buffer
	ui.SetOutput(&out)
	t.Cleanup(func() {
		ui.SetOutput(os.Stdout)
		ui.SetQuietMode(false)
	})

	cfg := config.DefaultConfig()
	cfg.UI.Quiet = true
	startUI(cfg)
	assert.Empty(t, out.String())

	cfg.UI.Quiet = false
	startUI(cfg)
	assert.Contains(t, out.String(), "DDG IMAGE SCRAPER")
}

// parseScrapeFlags parses args against a fresh command bound to the package flag vars
func parseScrapeFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	amount, outputDir, downloadTimeout, skipFailedPages, quiet, logLevel = 1000, "./images", 120, false, false, "info"
	queries = nil

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringArrayVarP(&queries, "query", "q", nil, "")
	cmd.Flags().IntVar(&amount, "amount", 1000, "")
	cmd.Flags().StringVar(&outputDir, "outdir", "./images", "")
	cmd.Flags().IntVar(&downloadTimeout, "download-timeout", 120, "")
	cmd.Flags().BoolVar(&skipFailedPages, "skip-failed-pages", false, "")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "")

	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestChangedFlagsOnlyCarriesExplicitValues(t *testing.T) {
	flags := changedFlags(parseScrapeFlags(t, "-q", "cats"))

	assert.Nil(t, flags.Amount)
	assert.Nil(t, flags.OutputDir)
	assert.Nil(t, flags.DownloadTimeout)
	assert.Nil(t, flags.SkipFailedPages)
	assert.Nil(t, flags.Quiet)
	assert.Nil(t, flags.LogLevel)
}

func TestChangedFlags(t *testing.T) {
	cmd := parseScrapeFlags(t,
		"--query", "cats", "dogs",
		"--amount", "250",
		"--outdir", "/tmp/out",
		"--download-timeout", "30",
		"--skip-failed-pages",
		"--quiet",
		"--log-level", "debug",
	)
	flags := changedFlags(cmd)

	require.NotNil(t, flags.Amount)
	assert.Equal(t, 250, *flags.Amount)
	require.NotNil(t, flags.OutputDir)
	assert.Equal(t, "/tmp/out", *flags.OutputDir)
	require.NotNil(t, flags.DownloadTimeout)
	assert.Equal(t, 30*time.Second, *flags.DownloadTimeout)
	require.NotNil(t, flags.SkipFailedPages)
	assert.True(t, *flags.SkipFailedPages)
	require.NotNil(t, flags.Quiet)
	assert.True(t, *flags.Quiet)
	require.NotNil(t, flags.LogLevel)
	assert.Equal(t, "debug", *flags.LogLevel)

	assert.Equal(t, []string{"cats"}, collectQueries(queries))
	assert.Equal(t, []string{"dogs"}, cmd.Flags().Args())
}
