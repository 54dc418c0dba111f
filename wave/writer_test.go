// SPDX-License-Identifier: EPL-2.0

package wave

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// memFile is an in-memory io.ReadWriteSeeker standing in for a file.
type memFile struct {
	data  []byte
	pos   int64
	syncs int
}

func (f *memFile) Read(p []byte) (int, error) {
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

func (f *memFile) Write(p []byte) (int, error) {
	if end := f.pos + int64(len(p)); end > int64(len(f.data)) {
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}
	n := copy(f.data[f.pos:], p)
	f.pos += int64(n)
	return n, nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = f.pos + offset
	case io.SeekEnd:
		target = int64(len(f.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if target < 0 {
		return 0, fmt.Errorf("negative position")
	}
	f.pos = target
	return target, nil
}

func (f *memFile) Sync() error {
	f.syncs++
	return nil
}

// closableFile counts Close calls on top of memFile.
type closableFile struct {
	memFile
	closed int
}

func (c *closableFile) Close() error {
	c.closed++
	return nil
}

// countSink keeps the 46-byte header region and discards everything
// else, so multi-gigabyte payload tests cost nothing but arithmetic.
type countSink struct {
	header [headerSize]byte
	pos    int64
	size   int64
}

func (c *countSink) Write(p []byte) (int, error) {
	if c.pos < int64(len(c.header)) {
		copy(c.header[c.pos:], p)
	}
	c.pos += int64(len(p))
	if c.pos > c.size {
		c.size = c.pos
	}
	return len(p), nil
}

func (c *countSink) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.pos = offset
	case io.SeekCurrent:
		c.pos += offset
	case io.SeekEnd:
		c.pos = c.size + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	return c.pos, nil
}

func (c *countSink) headerU32(off int) uint32 {
	return binary.LittleEndian.Uint32(c.header[off : off+4])
}

func pcm16Mono() Format {
	return Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 16}
}

func TestNewWriter_HeaderLayout(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	format := Format{Encoding: EncodingPCM, Channels: 2, SampleRate: 44100, BitsPerSample: 16}

	if _, err := NewWriter(f, format); err != nil {
		t.Fatalf("NewWriter() error = %v, want nil", err)
	}

	want := new(bytes.Buffer)
	want.WriteString("RIFF")
	binary.Write(want, binary.LittleEndian, uint32(38)) // no payload yet
	want.WriteString("WAVE")
	want.WriteString("fmt ")
	binary.Write(want, binary.LittleEndian, uint32(18))
	binary.Write(want, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(want, binary.LittleEndian, uint16(2))
	binary.Write(want, binary.LittleEndian, uint32(44100))
	binary.Write(want, binary.LittleEndian, uint32(176400))
	binary.Write(want, binary.LittleEndian, uint16(4))
	binary.Write(want, binary.LittleEndian, uint16(16))
	binary.Write(want, binary.LittleEndian, uint16(0)) // extension size
	want.WriteString("data")
	binary.Write(want, binary.LittleEndian, uint32(0))

	if !bytes.Equal(f.data, want.Bytes()) {
		t.Errorf("header = % X\nwant     % X", f.data, want.Bytes())
	}

	if len(f.data) != headerSize {
		t.Errorf("header length = %d, want %d", len(f.data), headerSize)
	}
}

func TestNewWriter_InvalidFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  Format
		wantErr error
	}{
		{
			name:    "zero channels",
			format:  Format{Encoding: EncodingPCM, Channels: 0, SampleRate: 8000, BitsPerSample: 16},
			wantErr: ErrNoChannels,
		},
		{
			name:    "ragged bit depth",
			format:  Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 12},
			wantErr: ErrBadBitDepth,
		},
		{
			name:    "zero sample rate",
			format:  Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 0, BitsPerSample: 16},
			wantErr: ErrZeroSampleRate,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &memFile{}
			_, err := NewWriter(f, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewWriter() error = %v, want %v", err, tt.wantErr)
			}

			// No header may be emitted for a rejected format
			if len(f.data) != 0 {
				t.Errorf("sink holds %d bytes after rejected NewWriter, want 0", len(f.data))
			}
		})
	}
}

func TestWriter_WriteCountsBytes(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	w, err := NewWriter(f, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if w.Written() != 0 {
		t.Errorf("Written() = %d before any write, want 0", w.Written())
	}

	for _, chunk := range [][]byte{{1, 2, 3, 4, 5}, {6, 7, 8}, {}} {
		n, err := w.Write(chunk)
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if n != len(chunk) {
			t.Errorf("Write() n = %d, want %d", n, len(chunk))
		}
	}

	if w.Written() != 8 {
		t.Errorf("Written() = %d, want 8", w.Written())
	}

	if len(f.data) != headerSize+8 {
		t.Errorf("sink length = %d, want %d", len(f.data), headerSize+8)
	}
}

func TestWriter_FlushPatchesHeader(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	w, err := NewWriter(f, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if _, err := w.Write([]byte("abcdefghij")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if got := binary.LittleEndian.Uint32(f.data[4:8]); got != 48 {
		t.Errorf("riff size after flush = %d, want 48", got)
	}
	if got := binary.LittleEndian.Uint32(f.data[42:46]); got != 10 {
		t.Errorf("data size after flush = %d, want 10", got)
	}

	// Appending after a flush must continue where the payload left off
	if _, err := w.Write([]byte("123456")); err != nil {
		t.Fatalf("Write() after flush error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("second Flush() error = %v", err)
	}

	if got := binary.LittleEndian.Uint32(f.data[4:8]); got != 54 {
		t.Errorf("riff size after second flush = %d, want 54", got)
	}
	if got := binary.LittleEndian.Uint32(f.data[42:46]); got != 16 {
		t.Errorf("data size after second flush = %d, want 16", got)
	}

	if got := string(f.data[headerSize:]); got != "abcdefghij123456" {
		t.Errorf("payload = %q, want %q", got, "abcdefghij123456")
	}
}

func TestWriter_FlushRestoresPosition(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	w, err := NewWriter(f, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if _, err := w.Write(make([]byte, 100)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	before := f.pos
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if f.pos != before {
		t.Errorf("sink position after Flush = %d, want %d", f.pos, before)
	}
}

func TestWriter_FlushMakesSnapshotVisible(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	w, err := NewWriter(f, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if _, err := w.Write([]byte("flushed!!!II")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	// These bytes are appended but never flushed
	if _, err := w.Write([]byte("orphans")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	r, err := NewReader(bytes.NewReader(f.data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	if r.Size() != 12 {
		t.Errorf("reopened Size() = %d, want 12 (last flushed)", r.Size())
	}

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "flushed!!!II" {
		t.Errorf("reopened payload = %q, want %q", got, "flushed!!!II")
	}
}

func TestWriter_SyncedOnFlush(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	w, err := NewWriter(f, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if f.syncs != 2 {
		t.Errorf("sync count after two flushes = %d, want 2", f.syncs)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if f.syncs != 3 {
		t.Errorf("sync count after Close = %d, want 3", f.syncs)
	}
}

func TestWriter_WriteSample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
		sample float32
		want   []byte
	}{
		{
			name:   "16-bit positive half",
			format: Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 16},
			sample: 0.5,
			want:   []byte{0x00, 0x40}, // 16384
		},
		{
			name:   "16-bit negative full scale",
			format: Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 16},
			sample: -1.0,
			want:   []byte{0x01, 0x80}, // -32767
		},
		{
			name:   "16-bit clamps above range",
			format: Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 16},
			sample: 2.5,
			want:   []byte{0xFF, 0x7F}, // 32767
		},
		{
			name:   "8-bit silence sits on the bias",
			format: Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 8},
			sample: 0.0,
			want:   []byte{128},
		},
		{
			name:   "8-bit full scale",
			format: Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 8},
			sample: 1.0,
			want:   []byte{255},
		},
		{
			name:   "24-bit full scale",
			format: Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 24},
			sample: 1.0,
			want:   []byte{0xFF, 0xFF, 0x7F}, // 8388607
		},
		{
			name:   "24-bit negative half",
			format: Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 24},
			sample: -0.5,
			want:   []byte{0x00, 0x00, 0xC0}, // -4194304
		},
		{
			name:   "32-bit positive half",
			format: Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 32},
			sample: 0.5,
			want:   []byte{0x00, 0x00, 0x00, 0x40}, // 1073741824
		},
		{
			name:   "float passes bits through",
			format: Format{Encoding: EncodingIEEEFloat, Channels: 1, SampleRate: 8000, BitsPerSample: 32},
			sample: 0.5,
			want:   []byte{0x00, 0x00, 0x00, 0x3F},
		},
		{
			name:   "float negative full scale",
			format: Format{Encoding: EncodingIEEEFloat, Channels: 1, SampleRate: 8000, BitsPerSample: 32},
			sample: -1.0,
			want:   []byte{0x00, 0x00, 0x80, 0xBF},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &memFile{}
			w, err := NewWriter(f, tt.format)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}

			if err := w.WriteSample(tt.sample); err != nil {
				t.Fatalf("WriteSample() error = %v", err)
			}

			got := f.data[headerSize:]
			if !bytes.Equal(got, tt.want) {
				t.Errorf("WriteSample(%v) wrote % X, want % X", tt.sample, got, tt.want)
			}

			if w.Written() != uint64(len(tt.want)) {
				t.Errorf("Written() = %d, want %d", w.Written(), len(tt.want))
			}
		})
	}
}

func TestWriter_WriteSample_Unsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
	}{
		{
			name:   "A-law has no quantizer",
			format: Format{Encoding: EncodingALaw, Channels: 1, SampleRate: 8000, BitsPerSample: 8},
		},
		{
			name:   "48-bit PCM has no quantizer",
			format: Format{Encoding: EncodingPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 48},
		},
		{
			name:   "64-bit float has no quantizer",
			format: Format{Encoding: EncodingIEEEFloat, Channels: 1, SampleRate: 8000, BitsPerSample: 64},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &memFile{}
			w, err := NewWriter(f, tt.format)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}

			if err := w.WriteSample(0.5); !errors.Is(err, ErrUnsupportedEncoding) {
				t.Errorf("WriteSample() error = %v, want ErrUnsupportedEncoding", err)
			}

			if err := w.WriteSamples([]float32{0.5}); !errors.Is(err, ErrUnsupportedEncoding) {
				t.Errorf("WriteSamples() error = %v, want ErrUnsupportedEncoding", err)
			}

			// Raw byte writes stay available for exotic layouts
			if _, err := w.Write([]byte{1, 2, 3}); err != nil {
				t.Errorf("Write() error = %v, want nil", err)
			}
		})
	}
}

func TestWriter_WriteSamples_Chunked(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	w, err := NewWriter(f, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	// Spans three scratch chunks
	vs := make([]float32, 20000)
	for i := range vs {
		vs[i] = 0.25
	}

	if err := w.WriteSamples(vs); err != nil {
		t.Fatalf("WriteSamples() error = %v", err)
	}

	if w.Written() != 40000 {
		t.Errorf("Written() = %d, want 40000", w.Written())
	}

	payload := f.data[headerSize:]
	want := uint16(8192) // round(32767 * 0.25)
	if got := binary.LittleEndian.Uint16(payload[:2]); got != want {
		t.Errorf("first sample = %d, want %d", got, want)
	}
	if got := binary.LittleEndian.Uint16(payload[len(payload)-2:]); got != want {
		t.Errorf("last sample = %d, want %d", got, want)
	}
}

func TestWriter_WriteBuffer(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	w, err := NewWriter(f, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	buf := &goaudio.IntBuffer{
		Data:           []int{0, 100, -100, 32767, -32768},
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 8000},
		SourceBitDepth: 16,
	}

	if err := w.WriteBuffer(buf); err != nil {
		t.Fatalf("WriteBuffer() error = %v", err)
	}

	if w.Written() != 10 {
		t.Errorf("Written() = %d, want 10", w.Written())
	}

	payload := f.data[headerSize:]
	for i, want := range buf.Data {
		got := int(int16(binary.LittleEndian.Uint16(payload[i*2:])))
		if got != want {
			t.Errorf("sample #%d = %d, want %d", i, got, want)
		}
	}
}

func TestWriter_WriteBuffer_Degenerate(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	w, err := NewWriter(f, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.WriteBuffer(nil); err != nil {
		t.Errorf("WriteBuffer(nil) error = %v, want nil", err)
	}

	if err := w.WriteBuffer(&goaudio.IntBuffer{}); err != nil {
		t.Errorf("WriteBuffer(empty) error = %v, want nil", err)
	}

	if w.Written() != 0 {
		t.Errorf("Written() = %d after no-op buffers, want 0", w.Written())
	}
}

func TestWriter_WriteBuffer_NonPCM(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	format := Format{Encoding: EncodingIEEEFloat, Channels: 1, SampleRate: 8000, BitsPerSample: 32}
	w, err := NewWriter(f, format)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	buf := &goaudio.IntBuffer{Data: []int{1, 2, 3}}
	if err := w.WriteBuffer(buf); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("WriteBuffer() error = %v, want ErrUnsupportedEncoding", err)
	}
}

func TestWriter_Closed(t *testing.T) {
	t.Parallel()

	f := &closableFile{}
	w, err := NewWriter(f, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if f.closed != 1 {
		t.Errorf("sink closed %d times, want 1", f.closed)
	}

	if _, err := w.Write([]byte{1}); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("Write() after Close error = %v, want ErrWriterClosed", err)
	}
	if err := w.WriteSample(0); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("WriteSample() after Close error = %v, want ErrWriterClosed", err)
	}
	if err := w.WriteSamples([]float32{0}); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("WriteSamples() after Close error = %v, want ErrWriterClosed", err)
	}
	if err := w.WriteBuffer(&goaudio.IntBuffer{Data: []int{1}}); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("WriteBuffer() after Close error = %v, want ErrWriterClosed", err)
	}
	if err := w.Flush(); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("Flush() after Close error = %v, want ErrWriterClosed", err)
	}

	// Close is idempotent and must not close the sink again
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
	if f.closed != 1 {
		t.Errorf("sink closed %d times after double Close, want 1", f.closed)
	}
}

func TestWriter_CloseFinalizesSizes(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	w, err := NewWriter(f, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if _, err := w.Write(make([]byte, 500)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if got := binary.LittleEndian.Uint32(f.data[4:8]); got != 538 {
		t.Errorf("riff size after Close = %d, want 538", got)
	}
	if got := binary.LittleEndian.Uint32(f.data[42:46]); got != 500 {
		t.Errorf("data size after Close = %d, want 500", got)
	}
}

func TestWriter_AtNonZeroOffset(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	if _, err := f.Write(make([]byte, 100)); err != nil {
		t.Fatalf("prefill error = %v", err)
	}

	w, err := NewWriter(f, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if _, err := w.Write([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	// Size fields sit relative to the container start, not the stream start
	if got := binary.LittleEndian.Uint32(f.data[100+4:]); got != 42 {
		t.Errorf("riff size = %d, want 42", got)
	}
	if got := binary.LittleEndian.Uint32(f.data[100+42:]); got != 4 {
		t.Errorf("data size = %d, want 4", got)
	}
}

func TestWriter_OverflowAtFlush(t *testing.T) {
	t.Parallel()

	sink := &countSink{}
	w, err := NewWriter(sink, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if _, err := w.Write(make([]byte, 10)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	// Push the payload count just past the representable limit. The
	// sink discards payload bytes, so this is cheap.
	chunk := make([]byte, 1<<20)
	remaining := int64(MaxDataSize) - 10 + 1
	for remaining > 0 {
		n := int64(len(chunk))
		if n > remaining {
			n = remaining
		}
		if _, err := w.Write(chunk[:n]); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		remaining -= n
	}

	if err := w.Flush(); !errors.Is(err, ErrDataTooLarge) {
		t.Fatalf("Flush() error = %v, want ErrDataTooLarge", err)
	}

	// The refused flush must not have touched the last good header
	if got := sink.headerU32(4); got != 48 {
		t.Errorf("riff size after refused flush = %d, want 48", got)
	}
	if got := sink.headerU32(42); got != 10 {
		t.Errorf("data size after refused flush = %d, want 10", got)
	}

	// Appending is still allowed; only size recording is refused
	if _, err := w.Write([]byte{0}); err != nil {
		t.Errorf("Write() after refused flush error = %v, want nil", err)
	}

	if err := w.Close(); !errors.Is(err, ErrDataTooLarge) {
		t.Errorf("Close() error = %v, want ErrDataTooLarge", err)
	}
}

func TestWriter_SizeBoundary(t *testing.T) {
	t.Parallel()

	sink := &countSink{}
	w, err := NewWriter(sink, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	// Exactly the largest representable payload
	chunk := make([]byte, 1<<20)
	remaining := int64(MaxDataSize)
	for remaining > 0 {
		n := int64(len(chunk))
		if n > remaining {
			n = remaining
		}
		if _, err := w.Write(chunk[:n]); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		remaining -= n
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() at the exact limit error = %v, want nil", err)
	}

	if got := sink.headerU32(4); got != 0xFFFFFFFF {
		t.Errorf("riff size = %#x, want 0xFFFFFFFF", got)
	}
	if got := sink.headerU32(42); got != uint32(MaxDataSize) {
		t.Errorf("data size = %#x, want %#x", got, uint32(MaxDataSize))
	}

	// One more byte makes both fields unrepresentable
	if _, err := w.Write([]byte{0}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); !errors.Is(err, ErrDataTooLarge) {
		t.Errorf("Flush() past the limit error = %v, want ErrDataTooLarge", err)
	}
}

func TestWriter_LargePayloadBeyond31Bits(t *testing.T) {
	t.Parallel()

	sink := &countSink{}
	w, err := NewWriter(sink, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	// A size that breaks signed 32-bit arithmetic but not the format
	const payload = int64(1)<<31 + 1000

	chunk := make([]byte, 1<<20)
	remaining := payload
	for remaining > 0 {
		n := int64(len(chunk))
		if n > remaining {
			n = remaining
		}
		if _, err := w.Write(chunk[:n]); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		remaining -= n
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v, want nil", err)
	}

	if got := sink.headerU32(42); got != uint32(payload) {
		t.Errorf("data size = %d, want %d", got, payload)
	}
	if got := sink.headerU32(4); got != uint32(payload+38) {
		t.Errorf("riff size = %d, want %d", got, payload+38)
	}
}

// TestWriter_WriteSamples_ZeroAllocs verifies scratch buffer reuse
func TestWriter_WriteSamples_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	w, err := NewWriter(&countSink{}, pcm16Mono())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	vs := make([]float32, 4096)
	if err := w.WriteSamples(vs); err != nil { // warm up the scratch buffer
		t.Fatalf("WriteSamples() error = %v", err)
	}

	allocs := testing.AllocsPerRun(100, func() {
		if err := w.WriteSamples(vs); err != nil {
			t.Fatal(err)
		}
	})

	if allocs > 0 {
		t.Errorf("WriteSamples allocated %v times, want 0", allocs)
	}
}

// BenchmarkWriter_WriteSamples benchmarks the quantizing batch path
func BenchmarkWriter_WriteSamples(b *testing.B) {
	w, err := NewWriter(&countSink{}, pcm16Mono())
	if err != nil {
		b.Fatal(err)
	}

	vs := make([]float32, 4096)
	for i := range vs {
		vs[i] = float32(i%200-100) / 100.0
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := w.WriteSamples(vs); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkWriter_Flush benchmarks the in-place size patch
func BenchmarkWriter_Flush(b *testing.B) {
	w, err := NewWriter(&countSink{}, pcm16Mono())
	if err != nil {
		b.Fatal(err)
	}
	if _, err := w.Write(make([]byte, 4096)); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := w.Flush(); err != nil {
			b.Fatal(err)
		}
	}
}
