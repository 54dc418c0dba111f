// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/wavio/wave"
)

// riffOverhead is everything the RIFF size field covers besides the
// sample payload: the WAVE tag, the fmt chunk and the data chunk header.
const riffOverhead = 4 + 8 + wave.FormatSize + 8

// WriteWAV16 stores mono 16-bit PCM as a complete WAV file. Both size
// fields are known before any byte goes out, so a plain io.Writer is
// enough; callers that produce samples incrementally should use
// wave.NewWriter.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if uint64(len(samples))*2 > wave.MaxDataSize {
		return fmt.Errorf("%d samples: %w", len(samples), wave.ErrDataTooLarge)
	}
	dataSize := uint32(len(samples)) * 2

	format := wave.Format{
		Encoding:      wave.EncodingPCM,
		Channels:      1,
		SampleRate:    uint32(sampleRate),
		BitsPerSample: 16,
	}
	payload, err := format.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encoding format: %w", err)
	}

	header := make([]byte, 0, 46)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, riffOverhead+dataSize)
	header = append(header, "WAVE"...)
	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, wave.FormatSize)
	header = append(header, payload...)
	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	// Samples go out in bounded chunks through one reused scratch buffer.
	const chunkFrames = 8192
	buf := make([]byte, 0, min(len(samples), chunkFrames)*2)

	for len(samples) > 0 {
		n := min(len(samples), chunkFrames)
		buf = buf[:0]
		for _, s := range samples[:n] {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
		samples = samples[n:]
	}

	return nil
}
