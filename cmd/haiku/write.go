package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dgallion1/haikuwriter/internal/generator"
	"github.com/dgallion1/haikuwriter/internal/haiku"
	"github.com/dgallion1/haikuwriter/internal/library"
	"github.com/dgallion1/haikuwriter/internal/metrics"
	"github.com/dgallion1/haikuwriter/internal/parser"
	"github.com/dgallion1/haikuwriter/internal/stats"
	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write haiku from the selected corpora",
	Long: `Loads the named corpora (all of them when neither --corpus nor --file is
given), adds any --file on top and prints --count haiku separated by blank
lines.`,
	Args: cobra.NoArgs,
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringSlice("corpus", nil, "Corpus to include (repeatable)")
	writeCmd.Flags().StringSlice("file", nil, "Extra text file to include (repeatable)")
	writeCmd.Flags().IntP("count", "n", 1, "Number of haiku to write")
	writeCmd.Flags().Int("max-attempts", 10000, "Starter words tried per line before giving up (0 = unlimited)")
	writeCmd.Flags().Uint64("seed", 0, "Random seed for reproducible output")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	names, _ := cmd.Flags().GetStringSlice("corpus")
	files, _ := cmd.Flags().GetStringSlice("file")
	count, _ := cmd.Flags().GetInt("count")
	maxAttempts, _ := cmd.Flags().GetInt("max-attempts")

	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	if maxAttempts < 0 {
		return fmt.Errorf("--max-attempts must not be negative")
	}

	opts := []haiku.Option{haiku.WithMaxAttempts(maxAttempts)}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		opts = append(opts, haiku.WithSeed(seed))
	}

	// The corpus directory is only needed when corpora are selected, either
	// by name or implicitly by passing no --file.
	var lib *library.Library
	if len(names) > 0 || len(files) == 0 {
		l, err := openLibrary(cmd, log)
		if err != nil {
			return err
		}
		lib = l
		if len(names) == 0 {
			names = lib.Names()
		}
	}
	svc := generator.NewService(lib, haiku.NewEngine(opts...), stats.NewWindow(0), metrics.New(nil), log)

	if len(names) > 0 {
		if err := svc.Select(names...); err != nil {
			return err
		}
	}
	for _, path := range files {
		if err := ingestFile(svc, path); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for i := range count {
		res, err := svc.Haiku(context.Background())
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, res.Text)
	}
	return nil
}

func ingestFile(svc *generator.Service, path string) error {
	p, err := parser.ForFile(path, true)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := p.Parse(f, path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	svc.Ingest(doc.Title, doc.Text())
	return nil
}
