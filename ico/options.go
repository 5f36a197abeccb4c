package ico

import (
	"context"
	"log/slog"
	"math"
)

// Policy selects how a soft format violation is treated.
type Policy int

const (
	// Lenient accepts the violation, logs it and records it in IconFile.Warnings.
	Lenient Policy = iota
	// Strict rejects the file with the matching error.
	Strict
)

func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "lenient"
}

// DefaultMaxSize is the buffer ceiling used when Options.MaxSize is 0.
const DefaultMaxSize = math.MaxInt

// Options configures decoding. A nil *Options means all defaults.
type Options struct {
	// MaxSize is the largest accepted buffer in bytes. 0 means DefaultMaxSize.
	MaxSize int
	// Reserved is the policy for a non-zero reserved field in the file header.
	Reserved Policy
	// Overlap is the policy for image ranges intersecting the header or directory.
	Overlap Policy
	// Logger receives warnings about soft violations. nil discards them.
	Logger *slog.Logger
}

func (o *Options) maxSize() int {
	if o == nil || o.MaxSize <= 0 {
		return DefaultMaxSize
	}
	return o.MaxSize
}

func (o *Options) reserved() Policy {
	if o == nil {
		return Lenient
	}
	return o.Reserved
}

func (o *Options) overlap() Policy {
	if o == nil {
		return Lenient
	}
	return o.Overlap
}

func (o *Options) warn(msg string, args ...any) {
	if o == nil || o.Logger == nil {
		return
	}
	o.Logger.Log(context.Background(), slog.LevelWarn, msg, args...)
}
