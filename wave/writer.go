// SPDX-License-Identifier: EPL-2.0

package wave

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavio/utils"
)

const (
	// headerSize is the fixed container prefix: the 12-byte RIFF
	// envelope, the 26-byte extended "fmt " chunk, and the 8-byte
	// "data" chunk header.
	headerSize = 46

	riffSizeOffset = 4
	dataSizeOffset = 42

	// riffOverhead is what the RIFF size field counts beyond the data
	// payload itself: the form tag, the fmt chunk, and the data chunk
	// header.
	riffOverhead = 4 + 8 + FormatSize + 8
)

// MaxDataSize is the largest data payload a WAV container can declare.
// The RIFF size field must fit the payload plus riffOverhead bytes in
// 32 bits, which caps the payload below the raw field limit.
const MaxDataSize = math.MaxUint32 - riffOverhead

// sampleChunk is the batch size for quantized sample writes.
const sampleChunk = 8192

// Writer streams a WAV container to a seekable sink.
//
// The header is emitted immediately on creation with zeroed size fields;
// Flush patches the RIFF and data sizes in place and reseats the write
// cursor, so a crash between flushes loses at most the bytes appended
// since the last one. Write keeps a full 64-bit count of appended bytes
// and never fails on size alone: the 32-bit limit is enforced at Flush.
type Writer struct {
	ws      io.WriteSeeker
	format  Format
	start   int64  // absolute offset of the container's first byte
	written uint64 // payload bytes appended so far
	closed  bool
	scratch []byte // reused by the quantizing write paths
}

// NewWriter validates f, writes the 46-byte container header at the
// sink's current position, and returns a Writer ready to append payload
// bytes. The sink is closed by Close when it implements io.Closer; wrap
// it with KeepOpen to keep its lifetime with the caller.
func NewWriter(ws io.WriteSeeker, f Format) (*Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	start, err := ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating container start: %w", err)
	}

	w := &Writer{ws: ws, format: f, start: start}
	if err := w.writeHeader(); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Writer) writeHeader() error {
	payload, err := w.format.MarshalBinary()
	if err != nil {
		return err
	}

	var header [headerSize]byte

	// RIFF envelope; the size starts at the bare overhead and is
	// patched by Flush
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffOverhead)
	copy(header[8:12], "WAVE")

	// fmt chunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], FormatSize)
	copy(header[20:38], payload)

	// data chunk header; the size starts at zero and is patched by Flush
	copy(header[38:42], "data")

	if _, err := w.ws.Write(header[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	return nil
}

// Format returns the descriptor the container was opened with.
func (w *Writer) Format() Format { return w.format }

// Written returns the payload bytes appended so far. The count is not
// capped at 32 bits, so it stays truthful even past the container limit.
func (w *Writer) Written() uint64 { return w.written }

// Write appends raw payload bytes. No size validation happens here;
// exceeding MaxDataSize surfaces at the next Flush or Close.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}

	n, err := w.ws.Write(p)
	w.written += uint64(n)
	if err != nil {
		return n, fmt.Errorf("writing payload: %w", err)
	}

	return n, nil
}

// WriteSample quantizes one amplitude in [-1, 1] to the container's
// sample layout and appends it. Out-of-range values are clamped.
func (w *Writer) WriteSample(v float32) error {
	if w.closed {
		return ErrWriterClosed
	}

	var b [4]byte
	n, err := w.putSample(b[:], v)
	if err != nil {
		return err
	}

	_, err = w.Write(b[:n])
	return err
}

// WriteSamples quantizes and appends a batch of interleaved amplitudes.
// Conversion goes through a reused scratch buffer in fixed-size chunks,
// so steady-state calls do not allocate.
func (w *Writer) WriteSamples(vs []float32) error {
	if w.closed {
		return ErrWriterClosed
	}
	if len(vs) == 0 {
		return nil
	}

	bps := int(w.format.BitsPerSample) / 8
	need := min(len(vs), sampleChunk) * bps
	if cap(w.scratch) < need {
		w.scratch = make([]byte, need)
	}

	for i := 0; i < len(vs); i += sampleChunk {
		end := min(i+sampleChunk, len(vs))
		chunk := vs[i:end]
		buf := w.scratch[:len(chunk)*bps]

		for j, v := range chunk {
			if _, err := w.putSample(buf[j*bps:], v); err != nil {
				return err
			}
		}

		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	return nil
}

// WriteBuffer appends the samples of a go-audio buffer. The integer
// values are taken to be scaled for the container's bit depth already,
// matching the convention of github.com/go-audio/wav. Only PCM layouts
// are supported; a nil or empty buffer is a no-op.
func (w *Writer) WriteBuffer(buf *goaudio.IntBuffer) error {
	if w.closed {
		return ErrWriterClosed
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil
	}
	if w.format.Encoding != EncodingPCM {
		return ErrUnsupportedEncoding
	}

	bps := int(w.format.BitsPerSample) / 8
	switch w.format.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return ErrUnsupportedEncoding
	}

	need := min(len(buf.Data), sampleChunk) * bps
	if cap(w.scratch) < need {
		w.scratch = make([]byte, need)
	}

	for i := 0; i < len(buf.Data); i += sampleChunk {
		end := min(i+sampleChunk, len(buf.Data))
		chunk := buf.Data[i:end]
		out := w.scratch[:len(chunk)*bps]

		for j, v := range chunk {
			putPCMInt(out[j*bps:], v, w.format.BitsPerSample)
		}

		if _, err := w.Write(out); err != nil {
			return err
		}
	}

	return nil
}

// putSample encodes one amplitude into dst and reports the byte count.
func (w *Writer) putSample(dst []byte, v float32) (int, error) {
	switch w.format.Encoding {
	case EncodingPCM:
		switch w.format.BitsPerSample {
		case 8:
			dst[0] = utils.Float32ToUint8(v)
			return 1, nil
		case 16:
			binary.LittleEndian.PutUint16(dst, uint16(utils.Float32ToInt16(v)))
			return 2, nil
		case 24:
			s := utils.Float32ToInt24(v)
			dst[0] = byte(s)
			dst[1] = byte(s >> 8)
			dst[2] = byte(s >> 16)
			return 3, nil
		case 32:
			binary.LittleEndian.PutUint32(dst, uint32(utils.Float32ToInt32(v)))
			return 4, nil
		}
	case EncodingIEEEFloat:
		if w.format.BitsPerSample == 32 {
			binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
			return 4, nil
		}
	}

	return 0, ErrUnsupportedEncoding
}

// putPCMInt encodes one pre-scaled integer sample little-endian at the
// given bit depth. 8-bit samples follow the unsigned WAV convention.
func putPCMInt(dst []byte, v int, bits uint16) {
	switch bits {
	case 8:
		dst[0] = byte(v)
	case 16:
		binary.LittleEndian.PutUint16(dst, uint16(int16(v)))
	case 24:
		s := int32(v)
		dst[0] = byte(s)
		dst[1] = byte(s >> 8)
		dst[2] = byte(s >> 16)
	case 32:
		binary.LittleEndian.PutUint32(dst, uint32(int32(v)))
	}
}

// Flush patches the RIFF and data size fields to cover everything
// appended so far, then reseats the cursor at its pre-flush position so
// appending continues seamlessly. When the sink exposes Sync, the patch
// is pushed to durable storage before Flush returns.
//
// If the payload has outgrown MaxDataSize, Flush fails with
// ErrDataTooLarge before touching the sink: the previously flushed
// header stays intact and the cursor does not move.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrWriterClosed
	}
	return w.flush()
}

func (w *Writer) flush() error {
	if w.written > MaxDataSize {
		return fmt.Errorf("%d payload bytes: %w", w.written, ErrDataTooLarge)
	}

	pos, err := w.ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("saving write position: %w", err)
	}

	var size [4]byte

	binary.LittleEndian.PutUint32(size[:], uint32(w.written)+riffOverhead)
	if _, err := w.ws.Seek(w.start+riffSizeOffset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking riff size field: %w", err)
	}
	if _, err := w.ws.Write(size[:]); err != nil {
		return fmt.Errorf("patching riff size: %w", err)
	}

	binary.LittleEndian.PutUint32(size[:], uint32(w.written))
	if _, err := w.ws.Seek(w.start+dataSizeOffset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking data size field: %w", err)
	}
	if _, err := w.ws.Write(size[:]); err != nil {
		return fmt.Errorf("patching data size: %w", err)
	}

	if _, err := w.ws.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("restoring write position: %w", err)
	}

	if s, ok := w.ws.(interface{ Sync() error }); ok {
		if err := s.Sync(); err != nil {
			return fmt.Errorf("syncing sink: %w", err)
		}
	}

	return nil
}

// Close flushes the final sizes, marks the writer closed, and closes the
// sink when the writer owns it. Closing twice is a no-op; any write after
// Close fails with ErrWriterClosed.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.flush()

	if c, ok := w.ws.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing sink: %w", cerr)
		}
	}

	return err
}
