package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newExtractCmd(root *rootFlags) *cobra.Command {
	var (
		outDir string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Write every image of an ICO/CUR file to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, logger, err := load(cmd, root, path)
			if err != nil {
				return err
			}

			p := prefix
			if p == "" {
				p = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			written, err := f.ExtractToDir(outDir, p)
			for _, w := range written {
				logger.Debug("wrote image", "path", w)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "output directory")
	cmd.Flags().StringVar(&prefix, "prefix", "", "file name prefix (default: input name without extension)")

	return cmd
}
