package ico

import (
	"fmt"
	"io"
	"os"
)

// IconFile is a decoded ICO/CUR container. Entries are in file order and the
// index into Entries identifies an image within the file. All image views
// borrow from the buffer given to the loader.
type IconFile struct {
	Header  FileHeader
	Entries []Entry
	// Warnings lists soft violations accepted under the Lenient policies.
	// Each wraps ErrReservedNonZero or ErrRangeOverlapsDirectory.
	Warnings []error
}

// Entry pairs a directory entry with the view onto its payload.
type Entry struct {
	DirectoryEntry
	Image ImageView
}

// Kind returns the file kind.
func (f *IconFile) Kind() Kind {
	return f.Header.Kind
}

// Len returns the number of images.
func (f *IconFile) Len() int {
	return len(f.Entries)
}

// Image 获取ico图标的图像数据
// Image returns the payload of image i.
// 如果越界，返回 ErrIndexOutOfRange
func (f *IconFile) Image(i int) ([]byte, error) {
	if i < 0 || i >= len(f.Entries) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(f.Entries))
	}
	return f.Entries[i].Image.Bytes(), nil
}

// Load decodes b with default options.
func Load(b []byte) (*IconFile, error) {
	return LoadWithOptions(b, nil)
}

// LoadWithOptions 将ico文件的数据载入到内存
// LoadWithOptions decodes the header, every directory entry and every payload
// range of b. The first failure aborts the load; no partial result is ever
// returned. Nil opts uses the defaults.
func LoadWithOptions(b []byte, opts *Options) (*IconFile, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidInput)
	}
	if limit := opts.maxSize(); len(b) > limit {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrBufferTooLarge, len(b), limit)
	}

	header, reserved, err := parseHeader(b)
	if err != nil {
		return nil, err
	}

	f := &IconFile{Header: header}
	warning, err := checkReserved(reserved, opts)
	if err != nil {
		return nil, err
	}
	if warning != nil {
		f.Warnings = append(f.Warnings, warning)
	}

	dirEnd := header.DirectoryEnd()
	entries := make([]Entry, 0, int(header.Count))
	// 根据文件头中表示的icon图标文件的数量进行循环
	// Loop over the number of images declared in the header.
	for i := 0; i < int(header.Count); i++ {
		off := fileHeaderSize + entrySize*i
		de, err := ParseEntry(b, off, header.Kind)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		view, err := ExtractImage(b, de, dirEnd, opts)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if view.OverlapsDirectory {
			opts.warn("image range overlaps directory",
				"entry", i, "offset", view.Offset, "directoryEnd", dirEnd)
			f.Warnings = append(f.Warnings, fmt.Errorf("%w: entry %d at %d, directory ends at %d",
				ErrRangeOverlapsDirectory, i, view.Offset, dirEnd))
		}

		entries = append(entries, Entry{DirectoryEntry: de, Image: view})
	}
	f.Entries = entries

	return f, nil
}

// ReadFrom reads all of r, up to the size limit of opts, and decodes it. The
// returned IconFile owns the buffer it was read into.
func ReadFrom(r io.Reader, opts *Options) (*IconFile, error) {
	limit := opts.maxSize()
	lr := r
	if limit < DefaultMaxSize {
		// one extra byte tells an exact fit from an oversized input
		lr = io.LimitReader(r, int64(limit)+1)
	}

	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFile, err)
	}
	if b == nil {
		b = []byte{}
	}

	return LoadWithOptions(b, opts)
}

// LoadFile opens path and decodes it with ReadFrom.
func LoadFile(path string, opts *Options) (*IconFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", ErrOpenFile, path)
	}
	if limit := opts.maxSize(); fi.Size() > int64(limit) {
		return nil, fmt.Errorf("%w: %q is %d bytes, limit %d", ErrBufferTooLarge, path, fi.Size(), limit)
	}

	return ReadFrom(f, opts)
}
