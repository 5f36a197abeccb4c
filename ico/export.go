package ico

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName 产生文件名
// FileName generates the export name of image i:
// prefix_icon64x64@32bit.png for icons, prefix_cursor32x32@4_4.bmp for cursors.
func (f *IconFile) FileName(prefix string, i int) (string, error) {
	if i < 0 || i >= len(f.Entries) {
		return "", fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(f.Entries))
	}
	e := f.Entries[i]
	ext := e.Image.Format.Ext()
	w, h := e.PixelWidth(), e.PixelHeight()

	if x, y, ok := e.Hotspot(); ok {
		return fmt.Sprintf("%s_cursor%dx%d@%d_%d.%s", prefix, w, h, x, y, ext), nil
	}
	bits, _ := e.BitCount()
	return fmt.Sprintf("%s_icon%dx%d@%dbit.%s", prefix, w, h, bits, ext), nil
}

// ExportBytes returns image i as a standalone file: PNG payloads unchanged,
// DIB payloads with a BITMAPFILEHEADER and the XOR mask height.
func (f *IconFile) ExportBytes(i int) ([]byte, error) {
	d, err := f.Image(i)
	if err != nil {
		return nil, err
	}
	e := f.Entries[i]
	if e.Image.Format == FormatPNG {
		return d, nil
	}
	file, err := bitmapFile(d, e.PixelHeight())
	if err != nil {
		return nil, fmt.Errorf("entry %d: %w", i, err)
	}
	return file, nil
}

// ExtractToDir 提取 ico 数据到文件
// ExtractToDir writes every image into dir using FileName and returns the
// written paths in file order. Names that collide get an index suffix. dir
// is created if missing.
func (f *IconFile) ExtractToDir(dir, prefix string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCreateFile, dir, err)
	}

	paths := make([]string, 0, len(f.Entries))
	used := make(map[string]struct{}, len(f.Entries))

	for i := range f.Entries {
		name, err := f.FileName(prefix, i)
		if err != nil {
			return paths, err
		}
		if _, dup := used[name]; dup {
			ext := filepath.Ext(name)
			name = fmt.Sprintf("%s-%d%s", name[:len(name)-len(ext)], i, ext)
		}
		used[name] = struct{}{}

		data, err := f.ExportBytes(i)
		if err != nil {
			return paths, err
		}

		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0o644); err != nil { //nolint:gosec // exported images are not secret
			return paths, fmt.Errorf("%w: %q: %v", ErrWriteFile, p, err)
		}
		paths = append(paths, p)
	}

	return paths, nil
}
