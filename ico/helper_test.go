package ico

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	stdpng "image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildFile lays out a well-formed container: header, one 16x16 entry per
// payload, then the payloads back to back.
func buildFile(kind Kind, payloads ...[]byte) []byte {
	h := FileHeader{Kind: kind, Count: uint16(len(payloads))}
	out := h.Bytes()
	off := h.DirectoryEnd()
	for _, p := range payloads {
		e := DirectoryEntry{
			Width:      16,
			Height:     16,
			Field5:     1,
			Field6:     32,
			DataSize:   uint32(len(p)),
			DataOffset: uint32(off),
		}
		out = append(out, e.Bytes()...)
		off += len(p)
	}
	for _, p := range payloads {
		out = append(out, p...)
	}
	return out
}

// vectorFile is the 26-byte icon with a single truncated PNG payload.
func vectorFile() []byte {
	return []byte{
		0x00, 0x00, 0x01, 0x00, 0x01, 0x00, // header
		0x10, 0x10, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00, // 16x16, 1 plane, 32 bit
		0x04, 0x00, 0x00, 0x00, 0x16, 0x00, 0x00, 0x00, // size 4, offset 22
		0x89, 0x50, 0x4E, 0x47,
	}
}

// encodePNG encodes a w x h NRGBA image whose first pixel is translucent, so
// the encoder keeps the alpha channel.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 0x40, A: 0xff})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 0x80})

	var buf bytes.Buffer
	require.NoError(t, stdpng.Encode(&buf, img))
	return buf.Bytes()
}

// dib32 builds a BITMAPINFOHEADER payload of w x h 32bpp pixels, every pixel
// set to px (B, G, R, A order), followed by the AND mask. The stored height is
// doubled like in real icons.
func dib32(w, h int, px [4]byte) []byte {
	andStride := (w + 31) / 32 * 4
	d := make([]byte, dibHeaderSize+w*h*4+andStride*h)
	binary.LittleEndian.PutUint32(d[0:4], dibHeaderSize)
	binary.LittleEndian.PutUint32(d[4:8], uint32(w))
	binary.LittleEndian.PutUint32(d[8:12], uint32(2*h))
	binary.LittleEndian.PutUint16(d[12:14], 1)
	binary.LittleEndian.PutUint16(d[14:16], 32)
	for i := range w * h {
		copy(d[dibHeaderSize+4*i:], px[:])
	}
	return d
}
