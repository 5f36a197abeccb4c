package ico

import (
	"encoding/binary"
	"fmt"
)

// inBounds 检测 [off, off+n) 是否在切片范围内
// Report whether [off, off+n) lies inside b. Computed without overflow.
func inBounds(b []byte, off, n int) bool {
	return off >= 0 && n >= 0 && off <= len(b) && n <= len(b)-off
}

// readUint8 读取一个字节
// Read one byte at off.
func readUint8(b []byte, off int) (uint8, error) {
	if !inBounds(b, off, 1) {
		return 0, fmt.Errorf("%w: uint8 at %d (len %d)", ErrOutOfBounds, off, len(b))
	}
	return b[off], nil
}

// readUint16 以小端序读取 uint16
// Read a little-endian uint16 at off, independent of host byte order.
func readUint16(b []byte, off int) (uint16, error) {
	if !inBounds(b, off, 2) {
		return 0, fmt.Errorf("%w: uint16 at %d (len %d)", ErrOutOfBounds, off, len(b))
	}
	return binary.LittleEndian.Uint16(b[off : off+2]), nil
}

// readUint32 以小端序读取 uint32
// Read a little-endian uint32 at off, independent of host byte order.
func readUint32(b []byte, off int) (uint32, error) {
	if !inBounds(b, off, 4) {
		return 0, fmt.Errorf("%w: uint32 at %d (len %d)", ErrOutOfBounds, off, len(b))
	}
	return binary.LittleEndian.Uint32(b[off : off+4]), nil
}
