// Command icoinfo lists, extracts and decodes the images of ICO/CUR files.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/winicon/icodec/ico"
)

type rootFlags struct {
	strict  bool
	maxSize int
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "icoinfo",
		Short:         "Inspect Windows ICO/CUR files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.strict, "strict", false, "reject non-zero reserved fields and payloads overlapping the directory")
	pf.IntVar(&flags.maxSize, "max-size", 16<<20, "largest accepted input in bytes (0 = no limit)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug messages")

	rootCmd.AddCommand(
		newListCmd(flags),
		newExtractCmd(flags),
		newDecodeCmd(flags),
	)

	return rootCmd
}

// options maps the persistent flags onto decoder options.
func (f *rootFlags) options(cmd *cobra.Command) *ico.Options {
	opts := &ico.Options{
		MaxSize: f.maxSize,
		Logger:  newLogger(cmd, f.verbose),
	}
	if f.strict {
		opts.Reserved = ico.Strict
		opts.Overlap = ico.Strict
	}
	return opts
}

func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	w := cmd.ErrOrStderr()
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
}

// load reads and decodes one input file.
func load(cmd *cobra.Command, flags *rootFlags, path string) (*ico.IconFile, *slog.Logger, error) {
	opts := flags.options(cmd)
	opts.Logger = opts.Logger.With("file", path)

	f, err := ico.LoadFile(path, opts)
	if err != nil {
		return nil, opts.Logger, err
	}
	opts.Logger.Debug("loaded", "kind", f.Kind(), "images", f.Len(), "warnings", len(f.Warnings))
	return f, opts.Logger, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "icoinfo:", err)
		os.Exit(1)
	}
}
