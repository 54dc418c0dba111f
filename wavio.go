package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/wavio/audio"
	"github.com/ik5/wavio/wave"
)

// ErrNegativeLength reports a CreateFromSource call with a negative payload length.
var ErrNegativeLength = errors.New("total length must not be negative")

// CreateFromSource creates a WAV file at path and fills its data chunk with
// exactly totalLength bytes read from src.
//
// The format and the requested length are validated before the file is
// created, so a payload that cannot fit the 32-bit WAV size field never
// leaves an empty file behind:
//  1. format is checked for a usable channel count, sample rate and bit depth
//  2. totalLength is checked against wave.MaxDataSize
//  3. only then is the file created and the header written
//
// Parameters:
//   - path: Target file path (created or truncated)
//   - format: The WAV format descriptor for the header
//   - totalLength: Exact number of payload bytes to copy from src
//   - src: Raw sample bytes, already in the wire encoding format describes
//
// A src that runs out before totalLength bytes is an error; the partial
// file is left on disk with whatever header state the failed copy reached.
//
// Example:
//
//	format := wave.Format{
//	    Encoding:      wave.EncodingPCM,
//	    Channels:      1,
//	    SampleRate:    8000,
//	    BitsPerSample: 16,
//	}
//	src := wave.NewZeroSource(16000)
//	err := wavio.CreateFromSource("silence.wav", format, src.Size(), src)
func CreateFromSource(path string, format wave.Format, totalLength int64, src io.Reader) error {
	if err := format.Validate(); err != nil {
		return err
	}

	if totalLength < 0 {
		return ErrNegativeLength
	}

	if uint64(totalLength) > wave.MaxDataSize {
		return fmt.Errorf("%d payload bytes: %w", totalLength, wave.ErrDataTooLarge)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	w, err := wave.NewWriter(f, format)
	if err != nil {
		f.Close()
		return err
	}

	if _, err := io.CopyN(w, src, totalLength); err != nil {
		w.Close()
		return fmt.Errorf("copying source: %w", err)
	}

	return w.Close()
}

// EncodeSource drains an audio.Source into ws as an integer PCM WAV stream
// and returns the number of payload bytes written.
//
// The stream's channel count and sample rate come from the source itself;
// bitsPerSample selects the PCM depth and must be 8, 16, 24 or 32. Samples
// outside [-1, 1] are clamped during quantization.
//
// EncodeSource never closes ws. The header is finalized in place before
// returning, so the stream is a complete WAV file once the call succeeds.
//
// Example:
//
//	src, _ := mp3.Decoder{}.Decode(input)
//	out, _ := os.Create("output.wav")
//	defer out.Close()
//	written, err := wavio.EncodeSource(out, src, 16)
func EncodeSource(ws io.WriteSeeker, src audio.Source, bitsPerSample int) (uint64, error) {
	switch bitsPerSample {
	case 8, 16, 24, 32:
	default:
		return 0, fmt.Errorf("%d bits per sample: %w", bitsPerSample, wave.ErrUnsupportedEncoding)
	}

	format := wave.Format{
		Encoding:      wave.EncodingPCM,
		Channels:      uint16(src.Channels()),
		SampleRate:    uint32(src.SampleRate()),
		BitsPerSample: uint16(bitsPerSample),
	}

	// The caller keeps ownership of ws
	w, err := wave.NewWriter(wave.KeepOpen(ws), format)
	if err != nil {
		return 0, err
	}

	buf := make([]float32, 4096)
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if werr := w.WriteSamples(buf[:n]); werr != nil {
				w.Close()
				return w.Written(), werr
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			w.Close()
			return w.Written(), fmt.Errorf("reading source: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return w.Written(), err
	}

	return w.Written(), nil
}
