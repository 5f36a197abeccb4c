package ico

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	stdpng "image/png"

	"golang.org/x/image/bmp"

	"github.com/winicon/icodec/png"
)

const (
	bitmapHeaderSize = 14 // 位图文件头 BITMAPFILEHEADER
	dibHeaderSize    = 40 // dib结构头 BITMAPINFOHEADER
)

// ImageConfig describes a payload as stored, read from its own header rather
// than from the directory entry.
type ImageConfig struct {
	Format   Format
	Width    int
	Height   int
	BitCount int
}

// maxDimension is the largest side an ICO directory entry can describe.
const maxDimension = 256

// checkGeometry rejects header geometry the codecs would allocate for before
// reading any pixel data.
func checkGeometry(w, h int64) error {
	if w < 1 || w > maxDimension || h < 1 || h > maxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrUnsupportedPayload, w, h, maxDimension, maxDimension)
	}
	return nil
}

// DecodeConfig reads the geometry of image i from its PNG IHDR chunk or its
// DIB header, without decoding pixels. For DIB payloads Height is the XOR
// mask height, not the doubled height stored in the header. Sides outside
// 1..256 are rejected with ErrUnsupportedPayload.
func (f *IconFile) DecodeConfig(i int) (ImageConfig, error) {
	if i < 0 || i >= len(f.Entries) {
		return ImageConfig{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(f.Entries))
	}
	e := f.Entries[i]
	d := e.Image.Bytes()

	if e.Image.Format == FormatPNG {
		h, err := png.ReadHeader(d)
		if err != nil {
			return ImageConfig{}, fmt.Errorf("%w: entry %d: %v", ErrDecodePayload, i, err)
		}
		if err := checkGeometry(int64(h.Width), int64(h.Height)); err != nil {
			return ImageConfig{}, fmt.Errorf("entry %d: %w", i, err)
		}
		return ImageConfig{
			Format:   FormatPNG,
			Width:    int(h.Width),
			Height:   int(h.Height),
			BitCount: h.BitsPerPixel(),
		}, nil
	}

	dib, err := readDIBHeader(d)
	if err != nil {
		return ImageConfig{}, fmt.Errorf("entry %d: %w", i, err)
	}
	height := int64(xorHeight(dib.height, e.PixelHeight()))
	if height < 0 {
		height = -height
	}
	if err := checkGeometry(int64(dib.width), height); err != nil {
		return ImageConfig{}, fmt.Errorf("entry %d: %w", i, err)
	}
	return ImageConfig{
		Format:   FormatBMP,
		Width:    int(dib.width),
		Height:   int(height),
		BitCount: int(dib.bitCount),
	}, nil
}

// DecodeImage hands the payload of image i to the external codec: image/png
// for PNG payloads, golang.org/x/image/bmp for DIB payloads. The header
// geometry is checked with DecodeConfig first, so hostile dimensions fail
// with ErrUnsupportedPayload instead of reaching the codec. The AND mask of a
// DIB payload is not applied.
func (f *IconFile) DecodeImage(i int) (image.Image, error) {
	if _, err := f.DecodeConfig(i); err != nil {
		return nil, err
	}
	e := f.Entries[i]

	if e.Image.Format == FormatPNG {
		img, err := stdpng.Decode(bytes.NewReader(e.Image.Bytes()))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrDecodePayload, i, err)
		}
		return img, nil
	}

	file, err := bitmapFile(e.Image.Bytes(), e.PixelHeight())
	if err != nil {
		return nil, fmt.Errorf("entry %d: %w", i, err)
	}
	img, err := bmp.Decode(bytes.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%w: entry %d: %v", ErrDecodePayload, i, err)
	}
	return img, nil
}

// dibHeader 是 bitmap 的 DIB 头结构中用到的字段
// Fields of the DIB header (bitmap information header) used here.
// 参考维基百科：
// https://en.wikipedia.org/wiki/BMP_file_format
type dibHeader struct {
	size       uint32 // 0x28 00 00 00 -> 40bytes (DIB Header Size)
	width      int32
	height     int32 // XOR and AND mask heights combined in icons
	bitCount   uint16
	colorsUsed uint32
}

func readDIBHeader(d []byte) (*dibHeader, error) {
	if len(d) < dibHeaderSize {
		return nil, fmt.Errorf("%w: DIB header needs %d bytes, have %d", ErrUnsupportedPayload, dibHeaderSize, len(d))
	}
	size, err := readUint32(d, 0)
	if err != nil {
		return nil, err
	}
	if size < dibHeaderSize || uint64(size) > uint64(len(d)) {
		return nil, fmt.Errorf("%w: DIB header size %d", ErrUnsupportedPayload, size)
	}
	width, err := readUint32(d, 4)
	if err != nil {
		return nil, err
	}
	height, err := readUint32(d, 8)
	if err != nil {
		return nil, err
	}
	bitCount, err := readUint16(d, 14)
	if err != nil {
		return nil, err
	}
	colorsUsed, err := readUint32(d, 32)
	if err != nil {
		return nil, err
	}

	return &dibHeader{
		size:       size,
		width:      int32(width),
		height:     int32(height),
		bitCount:   bitCount,
		colorsUsed: colorsUsed,
	}, nil
}

// paletteSize returns the size in bytes of the color table following the
// header.
func (h *dibHeader) paletteSize() (int, error) {
	if h.bitCount > 8 {
		return 0, nil
	}
	n := h.colorsUsed
	if n == 0 {
		n = 1 << h.bitCount
	}
	if n > 256 {
		return 0, fmt.Errorf("%w: %d palette colors", ErrUnsupportedPayload, h.colorsUsed)
	}
	return int(n) * 4, nil
}

// xorHeight returns the height of the color (XOR) mask. Icon DIBs store the
// XOR and AND mask heights combined; payloads that already store the plain
// height are left alone.
func xorHeight(stored int32, entryHeight int) int32 {
	if int64(abs32(stored)) == 2*int64(entryHeight) {
		return stored / 2
	}
	return stored
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// bitmapFile 给bmp的icon数据添加 BITMAPFILEHEADER
// The icon in bmp format does not have BITMAPFILEHEADER, so we add one and set
// the DIB height to the XOR mask height. The payload itself is not modified.
func bitmapFile(d []byte, entryHeight int) ([]byte, error) {
	dib, err := readDIBHeader(d)
	if err != nil {
		return nil, err
	}
	palette, err := dib.paletteSize()
	if err != nil {
		return nil, err
	}

	out := make([]byte, bitmapHeaderSize+len(d))
	// BITMAPFILEHEADER(14bytes)
	out[0], out[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(out[2:6], uint32(len(out)))
	binary.LittleEndian.PutUint16(out[6:8], 0)
	binary.LittleEndian.PutUint16(out[8:10], 0)
	binary.LittleEndian.PutUint32(out[10:14], uint32(bitmapHeaderSize)+dib.size+uint32(palette))
	copy(out[bitmapHeaderSize:], d)

	h := xorHeight(dib.height, entryHeight)
	binary.LittleEndian.PutUint32(out[bitmapHeaderSize+8:bitmapHeaderSize+12], uint32(h))

	return out, nil
}
