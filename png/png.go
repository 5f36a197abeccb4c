// Package png reads the chunk layout of a PNG stream without inflating pixel
// data: the signature, the IHDR header and the chunk sequence, with CRC32
// verification and bounds checks on every read.
package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

const (
	// 数据长度的定义 Data length or size
	SignatureSize = 8
	chunkLenSize  = 4
	chunkTypeSize = 4
	crcSize       = 4
	IHDRLen       = 13
	// 关键块 Critical chunks
	CIHDR = "IHDR" // IHDR必须是第一块(顺序的总共13个数据字节)
	CIDAT = "IDAT" // IDAT块包含实际图像数据，可以在多个IDAT块之间进行分割
	CIEND = "IEND" // 标志着图像结束
	CPLTE = "PLTE" // PLTE 块是彩色类型3(基本索引颜色)
)

// Signature PNG 文件的头(固定大小固定内容)
var Signature = []byte{
	0x89, 0x50, 0x4E, 0x47, // 0x89 PNG
	0x0D, 0x0A, 0x1A, 0x0A,
}

var (
	// ErrSignature indicates the data does not start with the PNG signature.
	ErrSignature = errors.New("png: invalid signature")
	// ErrTruncated indicates a chunk extends past the end of the data.
	ErrTruncated = errors.New("png: truncated chunk")
	// ErrChunkCRC indicates a chunk CRC mismatch.
	ErrChunkCRC = errors.New("png: chunk crc error")
	// ErrMissingIHDR indicates the first chunk is not IHDR.
	ErrMissingIHDR = errors.New("png: IHDR chunk not found")
	// ErrIHDRLength indicates an IHDR chunk with a length other than 13.
	ErrIHDRLength = errors.New("png: invalid IHDR length")
	// ErrMissingIDAT indicates a stream without image data.
	ErrMissingIDAT = errors.New("png: IDAT chunk not found")
)

// Chunk PNG 图像的块结构，以大端序组成：Length, ChunkType, Data, CRC
// Chunk is one PNG chunk. Data aliases the parsed buffer.
type Chunk struct {
	Type string // 块数据类型 chunk type
	Data []byte // 块数据 chunk data
	CRC  uint32 // 块数据的CRC32验证数据 CRC32 of type and data
}

// Header is the decoded IHDR chunk.
type Header struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// BitsPerPixel returns the bits per pixel implied by the color type and bit
// depth, or 0 for an unknown color type.
func (h Header) BitsPerPixel() int {
	channels := 0
	switch h.ColorType {
	case 0, 3: // grayscale, indexed
		channels = 1
	case 2: // truecolor
		channels = 3
	case 4: // grayscale + alpha
		channels = 2
	case 6: // truecolor + alpha
		channels = 4
	}
	return channels * int(h.BitDepth)
}

// sum computes the crc32 over type and data.
func (c Chunk) sum() uint32 {
	h := crc32.NewIEEE()
	_, _ = h.Write([]byte(c.Type))
	_, _ = h.Write(c.Data)
	return h.Sum32()
}

// check CRC32 循环冗余检测
func (c Chunk) check() bool {
	return c.sum() == c.CRC
}

// HasSignature reports whether b starts with the PNG signature.
func HasSignature(b []byte) bool {
	return len(b) >= SignatureSize && bytes.Equal(b[:SignatureSize], Signature)
}

// ReadChunk 读取 off 处的块
// ReadChunk reads the chunk at off and returns it with the offset of the next
// chunk.
func ReadChunk(b []byte, off int) (Chunk, int, error) {
	if off < 0 || off > len(b) || len(b)-off < chunkLenSize+chunkTypeSize {
		return Chunk{}, 0, fmt.Errorf("%w: chunk header at %d", ErrTruncated, off)
	}
	length := binary.BigEndian.Uint32(b[off : off+chunkLenSize])
	typ := string(b[off+chunkLenSize : off+chunkLenSize+chunkTypeSize])

	dataStart := off + chunkLenSize + chunkTypeSize
	remaining := uint64(len(b) - dataStart)
	if uint64(length)+crcSize > remaining {
		return Chunk{}, 0, fmt.Errorf("%w: %s needs %d bytes, have %d", ErrTruncated, typ, uint64(length)+crcSize, remaining)
	}
	dataEnd := dataStart + int(length)

	c := Chunk{
		Type: typ,
		Data: b[dataStart:dataEnd:dataEnd],
		CRC:  binary.BigEndian.Uint32(b[dataEnd : dataEnd+crcSize]),
	}
	if !c.check() {
		return Chunk{}, 0, fmt.Errorf("%w: %s", ErrChunkCRC, typ)
	}

	return c, dataEnd + crcSize, nil
}

// ReadHeader 解析 PNG 文件头和 IHDR 块
// ReadHeader checks the signature and decodes the IHDR chunk that must follow
// it.
func ReadHeader(b []byte) (*Header, error) {
	if !HasSignature(b) {
		return nil, ErrSignature
	}
	c, _, err := ReadChunk(b, SignatureSize)
	if err != nil {
		return nil, err
	}
	if c.Type != CIHDR {
		return nil, fmt.Errorf("%w: first chunk is %q", ErrMissingIHDR, c.Type)
	}
	if len(c.Data) != IHDRLen {
		return nil, fmt.Errorf("%w: %d", ErrIHDRLength, len(c.Data))
	}

	return &Header{
		Width:       binary.BigEndian.Uint32(c.Data[0:4]),
		Height:      binary.BigEndian.Uint32(c.Data[4:8]),
		BitDepth:    c.Data[8],
		ColorType:   c.Data[9],
		Compression: c.Data[10],
		Filter:      c.Data[11],
		Interlace:   c.Data[12],
	}, nil
}

// Image PNG 的整体结构
// Image is the chunk layout of a PNG stream.
type Image struct {
	Header Header
	Chunks []Chunk
	IDAT   [][]byte // IDAT datas, PNG可能会有多个IDAT块
}

// Parse 解析PNG图像数据(块解析)
// Parse walks every chunk from IHDR to IEND.
func Parse(b []byte) (*Image, error) {
	h, err := ReadHeader(b)
	if err != nil {
		return nil, err
	}

	img := &Image{Header: *h}
	off := SignatureSize
	for {
		c, next, err := ReadChunk(b, off)
		if err != nil {
			return nil, err
		}
		img.Chunks = append(img.Chunks, c)
		if c.Type == CIDAT {
			img.IDAT = append(img.IDAT, c.Data)
		}
		if c.Type == CIEND {
			break
		}
		off = next
	}
	if len(img.IDAT) == 0 {
		return nil, ErrMissingIDAT
	}

	return img, nil
}
