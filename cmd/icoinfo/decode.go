package main

import (
	"bufio"
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/winicon/icodec/ico"
)

func newDecodeCmd(root *rootFlags) *cobra.Command {
	var (
		index  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "decode FILE",
		Short: "Decode one image and write it as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, logger, err := load(cmd, root, args[0])
			if err != nil {
				return err
			}

			img, err := f.DecodeImage(index)
			if err != nil {
				return err
			}
			logger.Debug("decoded", "entry", index, "bounds", img.Bounds())

			if output == "" || output == "-" {
				return png.Encode(cmd.OutOrStdout(), img)
			}

			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("%w: %q: %v", ico.ErrCreateFile, output, err)
			}
			defer func() { _ = out.Close() }()

			bw := bufio.NewWriter(out)
			if err := png.Encode(bw, img); err != nil {
				return fmt.Errorf("%w: %q: %v", ico.ErrWriteFile, output, err)
			}
			if err := bw.Flush(); err != nil {
				return fmt.Errorf("%w: %q: %v", ico.ErrWriteFile, output, err)
			}
			return out.Close()
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "image index")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG file (default: stdout)")

	return cmd
}
