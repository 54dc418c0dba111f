package aiff

import "errors"

var (
	// ErrNotAiffFile reports input that does not parse as AIFF.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth reports PCM outside 8, 16, 24 or 32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")

	// ErrUnsupportedAiffLayout reports a file without a usable sound format.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
