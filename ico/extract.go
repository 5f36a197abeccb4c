package ico

import (
	"bytes"
	"fmt"
)

// Format is the payload encoding guessed from its leading bytes.
type Format int

// icon图标数据的类型
// Payload formats.
const (
	FormatUnknown Format = iota // unknown type
	FormatBMP                   // bmp (DIB without BITMAPFILEHEADER)
	FormatPNG                   // png stream
)

func (f Format) String() string {
	switch f {
	case FormatBMP:
		return "bmp"
	case FormatPNG:
		return "png"
	default:
		return "unknown"
	}
}

// Ext returns the file extension used when exporting a payload of this format.
func (f Format) Ext() string {
	if f == FormatPNG {
		return "png"
	}
	return "bmp"
}

// PNGSignature is the 8-byte PNG file signature.
var PNGSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// ImageView is a window onto one image payload inside the buffer passed to the
// loader. It never owns or copies the payload.
type ImageView struct {
	Offset uint32 // 图像数据的偏移量
	Length uint32 // 图像数据的大小
	Format Format // PNG or BMP guess from the leading bytes
	// OverlapsDirectory is set when the range intersects the header or
	// directory and the Overlap policy is Lenient.
	OverlapsDirectory bool

	data []byte
}

// Bytes returns the payload. The slice aliases the loader's input buffer:
// writes to that buffer are visible here and the buffer must outlive the view.
// Its capacity is clipped to the payload, so appending never touches the
// surrounding file data.
func (v ImageView) Bytes() []byte {
	return v.data
}

// sniffFormat 检测是否是png ico数据，否则认为是bmp
// Check the leading bytes against the PNG signature; a payload shorter than the
// signature matches on its available prefix. Anything else is taken as BMP.
func sniffFormat(d []byte) Format {
	n := min(len(d), len(PNGSignature))
	if n > 0 && bytes.Equal(d[:n], PNGSignature[:n]) {
		return FormatPNG
	}
	return FormatBMP
}

// ExtractImage 根据目录项的 offset, size 获取图标图像数据的视图
// ExtractImage validates the entry's payload range against b and returns a view
// onto it. dirEnd is the end of the header plus directory (see
// FileHeader.DirectoryEnd); a payload starting before it is handled by the
// Overlap policy of opts.
func ExtractImage(b []byte, e DirectoryEntry, dirEnd int, opts *Options) (ImageView, error) {
	if e.DataSize == 0 {
		return ImageView{}, fmt.Errorf("%w: empty range at offset %d", ErrRangeOutOfBounds, e.DataOffset)
	}
	if e.end() > uint64(len(b)) {
		return ImageView{}, fmt.Errorf("%w: [%d, %d) exceeds %d bytes",
			ErrRangeOutOfBounds, e.DataOffset, e.end(), len(b))
	}

	// 范围已检查，转换不会溢出 bounds checked above
	start := int(e.DataOffset)
	end := int(e.end())
	v := ImageView{
		Offset: e.DataOffset,
		Length: e.DataSize,
		data:   b[start:end:end],
	}
	v.Format = sniffFormat(v.data)

	if dirEnd > 0 && start < dirEnd {
		if opts.overlap() == Strict {
			return ImageView{}, fmt.Errorf("%w: payload at %d, directory ends at %d",
				ErrRangeOverlapsDirectory, start, dirEnd)
		}
		v.OverlapsDirectory = true
	}

	return v, nil
}
