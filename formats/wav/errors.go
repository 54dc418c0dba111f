package wav

import "errors"

// ErrUnsupportedSampleFormat reports a payload the decoder cannot
// convert, such as compressed encodings or uncommon bit depths.
var ErrUnsupportedSampleFormat = errors.New("unsupported sample format")
