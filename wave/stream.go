// SPDX-License-Identifier: EPL-2.0

package wave

import (
	"errors"
	"io"
)

// SharedStream wraps a stream whose lifetime belongs to the caller.
// Read, Write, Seek and Sync forward to the wrapped stream when it
// supports them; Close never does. Handing a SharedStream to NewWriter
// or NewReader therefore suppresses their ownership: their Close
// finalizes the container but leaves the stream open.
type SharedStream struct {
	s io.Seeker
}

// KeepOpen wraps s so that container writers and readers built on it
// cannot close it. Seeking is the one hard requirement; reads and
// writes are forwarded only if s supports them.
func KeepOpen(s io.Seeker) *SharedStream {
	return &SharedStream{s: s}
}

func (k *SharedStream) Read(p []byte) (int, error) {
	if r, ok := k.s.(io.Reader); ok {
		return r.Read(p)
	}
	return 0, errors.ErrUnsupported
}

func (k *SharedStream) Write(p []byte) (int, error) {
	if w, ok := k.s.(io.Writer); ok {
		return w.Write(p)
	}
	return 0, errors.ErrUnsupported
}

func (k *SharedStream) Seek(offset int64, whence int) (int64, error) {
	return k.s.Seek(offset, whence)
}

// Sync forwards to the wrapped stream, so size patches still reach
// durable storage while the stream stays open.
func (k *SharedStream) Sync() error {
	if s, ok := k.s.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

// Close does nothing. The wrapped stream is closed by whoever owns it.
func (k *SharedStream) Close() error { return nil }

// ZeroSource is a finite read-only stream of zero bytes. It stands in
// for real content when only the byte count matters, such as reserving
// a silence-filled container of a known size up front.
type ZeroSource struct {
	size int64
	pos  int64
}

// NewZeroSource returns a ZeroSource holding size zero bytes. A negative
// size is treated as empty.
func NewZeroSource(size int64) *ZeroSource {
	if size < 0 {
		size = 0
	}
	return &ZeroSource{size: size}
}

// Size returns the total number of bytes the source yields.
func (z *ZeroSource) Size() int64 { return z.size }

func (z *ZeroSource) Read(p []byte) (int, error) {
	if z.pos >= z.size {
		return 0, io.EOF
	}

	n := len(p)
	if remain := z.size - z.pos; int64(n) > remain {
		n = int(remain)
	}

	clear(p[:n])
	z.pos += int64(n)

	return n, nil
}
