// SPDX-License-Identifier: EPL-2.0

package riff

import "errors"

var (
	ErrNotRIFF   = errors.New("not a RIFF stream")
	ErrTruncated = errors.New("truncated chunk header")
)
