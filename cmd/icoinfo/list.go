package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/h2non/filetype"
	sha256 "github.com/minio/sha256-simd"
	"github.com/spf13/cobra"
	"github.com/vincent-petithory/dataurl"

	"github.com/winicon/icodec/ico"
	"github.com/winicon/icodec/png"
)

type fileReport struct {
	Path     string        `json:"path"`
	Kind     string        `json:"kind"`
	Count    int           `json:"count"`
	Warnings []string      `json:"warnings,omitempty"`
	Images   []imageReport `json:"images"`
}

type imageReport struct {
	Index    int     `json:"index"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Colors   uint8   `json:"colors"`
	Planes   *uint16 `json:"planes,omitempty"`
	BitCount *uint16 `json:"bitCount,omitempty"`
	HotspotX *uint16 `json:"hotspotX,omitempty"`
	HotspotY *uint16 `json:"hotspotY,omitempty"`
	Offset   uint32  `json:"offset"`
	Size     uint32  `json:"size"`
	Format   string  `json:"format"`
	MIME     string  `json:"mime"`
	SHA256   string  `json:"sha256"`

	Overlaps bool             `json:"overlapsDirectory,omitempty"`
	Payload  *ico.ImageConfig `json:"payload,omitempty"`
	Chunks   []string         `json:"pngChunks,omitempty"`
	DataURL  string           `json:"dataURL,omitempty"`
	Error    string           `json:"error,omitempty"`
}

type listFlags struct {
	json    bool
	dataURL bool
}

func newListCmd(root *rootFlags) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list FILE...",
		Aliases: []string{"ls", "info"},
		Short:   "List the images of ICO/CUR files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]*fileReport, 0, len(args))
			for _, path := range args {
				f, logger, err := load(cmd, root, path)
				if err != nil {
					return err
				}
				reports = append(reports, buildReport(path, f, flags.dataURL, logger))
			}

			out := cmd.OutOrStdout()
			if flags.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}
			for _, r := range reports {
				if err := writeText(out, r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&flags.dataURL, "data-url", false, "include each image as a data: URL")

	return cmd
}

func buildReport(path string, f *ico.IconFile, withDataURL bool, logger *slog.Logger) *fileReport {
	r := &fileReport{
		Path:   path,
		Kind:   f.Kind().String(),
		Count:  f.Len(),
		Images: make([]imageReport, 0, f.Len()),
	}
	for _, w := range f.Warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}

	for i, e := range f.Entries {
		data := e.Image.Bytes()
		sum := sha256.Sum256(data)

		ir := imageReport{
			Index:    i,
			Width:    e.PixelWidth(),
			Height:   e.PixelHeight(),
			Colors:   e.ColorCount,
			Offset:   e.Image.Offset,
			Size:     e.Image.Length,
			Format:   e.Image.Format.String(),
			MIME:     mimeType(e.Image),
			SHA256:   hex.EncodeToString(sum[:]),
			Overlaps: e.Image.OverlapsDirectory,
		}
		if planes, ok := e.Planes(); ok {
			bits, _ := e.BitCount()
			ir.Planes, ir.BitCount = &planes, &bits
		}
		if x, y, ok := e.Hotspot(); ok {
			ir.HotspotX, ir.HotspotY = &x, &y
		}

		cfg, err := f.DecodeConfig(i)
		if err != nil {
			logger.Warn("cannot read payload header", "entry", i, "err", err)
			ir.Error = err.Error()
		} else {
			ir.Payload = &cfg
		}

		if e.Image.Format == ico.FormatPNG {
			if img, err := png.Parse(data); err == nil {
				for _, c := range img.Chunks {
					ir.Chunks = append(ir.Chunks, c.Type)
				}
			} else {
				logger.Debug("png chunk walk failed", "entry", i, "err", err)
			}
		}

		if withDataURL {
			if file, err := f.ExportBytes(i); err == nil {
				ir.DataURL = dataurl.EncodeBytes(file)
			} else {
				logger.Warn("cannot export image", "entry", i, "err", err)
			}
		}

		r.Images = append(r.Images, ir)
	}

	return r
}

// mimeType sniffs the payload. DIB payloads carry no magic of their own and
// fall back to image/bmp.
func mimeType(v ico.ImageView) string {
	kind, err := filetype.Match(v.Bytes())
	if err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if v.Format == ico.FormatPNG {
		return "image/png"
	}
	return "image/bmp"
}

func writeText(w io.Writer, r *fileReport) error {
	if _, err := fmt.Fprintf(w, "%s: %s, %d image(s)\n", r.Path, r.Kind, r.Count); err != nil {
		return err
	}
	for _, warn := range r.Warnings {
		if _, err := fmt.Fprintf(w, "  warning: %s\n", warn); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  #\tSIZE\tCOLORS\tDEPTH\tOFFSET\tBYTES\tFORMAT\tMIME\tSHA256")
	for _, im := range r.Images {
		depth := "-"
		switch {
		case im.BitCount != nil:
			depth = fmt.Sprintf("%dbit", *im.BitCount)
		case im.HotspotX != nil:
			depth = fmt.Sprintf("@%d,%d", *im.HotspotX, *im.HotspotY)
		}
		_, _ = fmt.Fprintf(tw, "  %d\t%dx%d\t%d\t%s\t%d\t%d\t%s\t%s\t%s\n",
			im.Index, im.Width, im.Height, im.Colors, depth,
			im.Offset, im.Size, im.Format, im.MIME, im.SHA256[:16])
		if im.DataURL != "" {
			_, _ = fmt.Fprintf(tw, "  \t%s\n", im.DataURL)
		}
	}
	return tw.Flush()
}
