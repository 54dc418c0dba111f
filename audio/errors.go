// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

// ErrShortBuffer reports a destination slice with room for less than
// one frame; ReadSamples needs at least Channels() values to make
// progress.
var ErrShortBuffer = errors.New("dst must hold at least one full frame")
