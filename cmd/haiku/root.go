package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/haikuwriter/internal/corpus"
	"github.com/dgallion1/haikuwriter/internal/library"
	"github.com/dgallion1/haikuwriter/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "haiku",
	Short: "haiku writes 5-7-5 poems from sample text",
	Long: `haiku builds a word graph from one or more corpora and walks it to write
lines of exactly 5, 7 and 5 syllables.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", "corpora", "Directory holding corpus files")
	rootCmd.PersistentFlags().String("manifest", "", "YAML manifest naming the corpora (default: every supported file in --dir)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.New(cmd.ErrOrStderr(), "text", logging.ParseLevel(level))
}

func openLibrary(cmd *cobra.Command, log *slog.Logger) (*library.Library, error) {
	dir, _ := cmd.Flags().GetString("dir")
	manifestPath, _ := cmd.Flags().GetString("manifest")

	var manifest corpus.Manifest
	if manifestPath != "" {
		m, err := corpus.LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		manifest = m
	}
	return library.New(dir, manifest, 0, true, log)
}
