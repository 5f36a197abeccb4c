package ico

import (
	"encoding/binary"
	"fmt"
)

// DirectoryEntry is one raw 16-byte ICONDIRENTRY. Fields are stored exactly as
// read; Field5 and Field6 mean planes/bit count for icons and hotspot x/y for
// cursors, use the accessor methods to interpret them.
// 参考维基百科：
// https://en.wikipedia.org/wiki/ICO_(file_format)
type DirectoryEntry struct {
	Kind       Kind   // 所属文件的图像类型 kind of the owning file
	Width      uint8  // 图像宽度，0 表示 256
	Height     uint8  // 图像高度，0 表示 256
	ColorCount uint8  // 调色板颜色数，不使用调色版为 0
	Reserved   uint8  // 保留字段
	Field5     uint16 // ico: 颜色平面 color planes; cur: hotspot x
	Field6     uint16 // ico: 每像素的位数 bits per pixel; cur: hotspot y
	DataSize   uint32 // 图像数据的大小，单位字节
	DataOffset uint32 // 图像数据的偏移量（相对文件开头）
}

// ParseEntry 根据 offset 来获取icon图标目录项
// ParseEntry decodes the directory entry starting at off. kind only tags the
// entry, parsing itself does not depend on it.
func ParseEntry(b []byte, off int, kind Kind) (DirectoryEntry, error) {
	if !inBounds(b, off, entrySize) {
		return DirectoryEntry{}, fmt.Errorf("%w: entry at %d needs %d bytes, have %d",
			ErrTruncatedEntry, off, entrySize, max(len(b)-off, 0))
	}

	e := DirectoryEntry{Kind: kind}
	var err error
	if e.Width, err = readUint8(b, off); err != nil {
		return DirectoryEntry{}, err
	}
	if e.Height, err = readUint8(b, off+1); err != nil {
		return DirectoryEntry{}, err
	}
	if e.ColorCount, err = readUint8(b, off+2); err != nil {
		return DirectoryEntry{}, err
	}
	if e.Reserved, err = readUint8(b, off+3); err != nil {
		return DirectoryEntry{}, err
	}
	if e.Field5, err = readUint16(b, off+4); err != nil {
		return DirectoryEntry{}, err
	}
	if e.Field6, err = readUint16(b, off+6); err != nil {
		return DirectoryEntry{}, err
	}
	if e.DataSize, err = readUint32(b, off+8); err != nil {
		return DirectoryEntry{}, err
	}
	if e.DataOffset, err = readUint32(b, off+12); err != nil {
		return DirectoryEntry{}, err
	}
	return e, nil
}

// Bytes 将目录项转换为字节切片
// Bytes encodes the entry back to its 16 on-disk bytes.
func (e DirectoryEntry) Bytes() []byte {
	d := make([]byte, entrySize)
	d[0] = e.Width
	d[1] = e.Height
	d[2] = e.ColorCount
	d[3] = e.Reserved
	binary.LittleEndian.PutUint16(d[4:6], e.Field5)
	binary.LittleEndian.PutUint16(d[6:8], e.Field6)
	binary.LittleEndian.PutUint32(d[8:12], e.DataSize)
	binary.LittleEndian.PutUint32(d[12:16], e.DataOffset)
	return d
}

// PixelWidth 获取icon图像数据的宽度
// return width of icon image, 0 means 256
func (e DirectoryEntry) PixelWidth() int {
	if e.Width == 0 {
		return 256
	}
	return int(e.Width)
}

// PixelHeight 获取icon图像数据的高度
// return height of icon image, 0 means 256
func (e DirectoryEntry) PixelHeight() int {
	if e.Height == 0 {
		return 256
	}
	return int(e.Height)
}

// Planes returns the color plane count. ok is false for cursor entries.
func (e DirectoryEntry) Planes() (planes uint16, ok bool) {
	if e.Kind != Icon {
		return 0, false
	}
	return e.Field5, true
}

// BitCount returns the bits per pixel. ok is false for cursor entries.
func (e DirectoryEntry) BitCount() (bits uint16, ok bool) {
	if e.Kind != Icon {
		return 0, false
	}
	return e.Field6, true
}

// Hotspot returns the cursor click point in pixels from the top-left corner.
// ok is false for icon entries.
func (e DirectoryEntry) Hotspot() (x, y uint16, ok bool) {
	if e.Kind != Cursor {
		return 0, 0, false
	}
	return e.Field5, e.Field6, true
}

// end returns DataOffset+DataSize without wrapping.
func (e DirectoryEntry) end() uint64 {
	return uint64(e.DataOffset) + uint64(e.DataSize)
}
