package ico

import "errors"

// 错误信息
// Error values. Every failure returned by this package wraps exactly one of
// them, so callers can match with errors.Is.
var (
	// ErrInvalidInput indicates a nil buffer was supplied.
	ErrInvalidInput = errors.New("ico: invalid input")
	// ErrBufferTooLarge indicates the buffer exceeds Options.MaxSize.
	ErrBufferTooLarge = errors.New("ico: buffer too large")
	// ErrTooShort indicates fewer than 6 bytes, the header cannot be read.
	ErrTooShort = errors.New("ico: file header too short")
	// ErrInvalidImageType indicates a header type field other than 1 or 2.
	ErrInvalidImageType = errors.New("ico: invalid image type")
	// ErrReservedNonZero indicates a non-zero reserved header field under Strict policy.
	ErrReservedNonZero = errors.New("ico: reserved header field is not zero")
	// ErrTruncatedEntry indicates a directory entry extends past the buffer end.
	ErrTruncatedEntry = errors.New("ico: truncated directory entry")
	// ErrRangeOutOfBounds indicates an image range is empty or extends past the buffer end.
	ErrRangeOutOfBounds = errors.New("ico: image range out of bounds")
	// ErrRangeOverlapsDirectory indicates an image range intersects the header or directory.
	ErrRangeOverlapsDirectory = errors.New("ico: image range overlaps directory")
	// ErrOutOfBounds indicates a fixed-width read past the buffer end.
	ErrOutOfBounds = errors.New("ico: read out of bounds")
	// ErrIndexOutOfRange indicates an image index outside the directory.
	ErrIndexOutOfRange = errors.New("ico: image index out of range")
	// ErrDecodePayload indicates the external codec failed on an image payload.
	ErrDecodePayload = errors.New("ico: decode payload failed")
	// ErrUnsupportedPayload indicates a payload the codecs cannot be handed.
	ErrUnsupportedPayload = errors.New("ico: unsupported payload")
	// ErrOpenFile indicates opening an input file failed.
	ErrOpenFile = errors.New("ico: open file failed")
	// ErrReadFile indicates reading input failed.
	ErrReadFile = errors.New("ico: read failed")
	// ErrCreateFile indicates creating an output file failed.
	ErrCreateFile = errors.New("ico: create file failed")
	// ErrWriteFile indicates writing an output file failed.
	ErrWriteFile = errors.New("ico: write file failed")
)
