package ico

import (
	"encoding/binary"
	"fmt"
)

// 定义常量
// Constant definition
const (
	fileHeaderSize = 6  // 文件头的大小 file header size
	entrySize      = 16 // 图标目录项的大小 directory entry size
)

// Kind is the resource type stored in the file header. Only Icon and Cursor
// exist; any other type code is rejected by ParseHeader.
type Kind uint16

// 图像类型：1 为 ico，2 为 cur
// Image types as stored on disk.
const (
	Icon   Kind = 1
	Cursor Kind = 2
)

func (k Kind) String() string {
	switch k {
	case Icon:
		return "icon"
	case Cursor:
		return "cursor"
	default:
		return fmt.Sprintf("Kind(%d)", uint16(k))
	}
}

// FileHeader is the decoded 6-byte ICONDIR header.
// 参考维基百科：
// https://en.wikipedia.org/wiki/ICO_(file_format)
type FileHeader struct {
	Kind  Kind   // 图像类型 icon or cursor
	Count uint16 // 图像数量 number of directory entries
}

// DirectoryEnd returns the end offset of the header plus directory, the first
// byte an image payload may start at.
func (h FileHeader) DirectoryEnd() int {
	return fileHeaderSize + entrySize*int(h.Count)
}

// Bytes 将头结构转换为字节切片（保留字段始终为 0）
// Bytes encodes the header back to its 6 on-disk bytes. The reserved field is
// written as 0.
func (h FileHeader) Bytes() []byte {
	d := make([]byte, fileHeaderSize)
	binary.LittleEndian.PutUint16(d[0:2], 0)
	binary.LittleEndian.PutUint16(d[2:4], uint16(h.Kind))
	binary.LittleEndian.PutUint16(d[4:6], h.Count)
	return d
}

// ParseHeader 检测文件头及获取头结构
// ParseHeader decodes the file header at the start of b.
// A nil opts applies the defaults (lenient reserved field).
func ParseHeader(b []byte, opts *Options) (FileHeader, error) {
	h, reserved, err := parseHeader(b)
	if err != nil {
		return FileHeader{}, err
	}
	if _, err := checkReserved(reserved, opts); err != nil {
		return FileHeader{}, err
	}
	return h, nil
}

// checkReserved applies the Reserved policy of opts. Under Strict a non-zero
// value is returned as err; under Lenient it is logged and returned as warning.
func checkReserved(reserved uint16, opts *Options) (warning, err error) {
	if reserved == 0 {
		return nil, nil
	}
	violation := fmt.Errorf("%w: 0x%04x", ErrReservedNonZero, reserved)
	if opts.reserved() == Strict {
		return nil, violation
	}
	opts.warn("reserved header field is not zero", "reserved", reserved)
	return violation, nil
}

// parseHeader returns the header and the raw reserved value, leaving the
// policy decision to the caller.
func parseHeader(b []byte) (FileHeader, uint16, error) {
	if len(b) < fileHeaderSize {
		return FileHeader{}, 0, fmt.Errorf("%w: %d bytes", ErrTooShort, len(b))
	}
	reserved, err := readUint16(b, 0)
	if err != nil {
		return FileHeader{}, 0, err
	}
	typ, err := readUint16(b, 2)
	if err != nil {
		return FileHeader{}, 0, err
	}
	count, err := readUint16(b, 4)
	if err != nil {
		return FileHeader{}, 0, err
	}

	kind := Kind(typ)
	if kind != Icon && kind != Cursor {
		return FileHeader{}, 0, fmt.Errorf("%w: %d", ErrInvalidImageType, typ)
	}

	return FileHeader{Kind: kind, Count: count}, reserved, nil
}
