// SPDX-License-Identifier: EPL-2.0

// Package wave reads and writes RIFF/WAVE containers as streams.
//
// The package is built for payloads whose final size is unknown when
// writing starts: the Writer emits its header immediately and patches
// the two 32-bit size fields in place on every Flush, and the Reader
// trusts the declared sizes rather than the file length, so a container
// still being written opens cleanly at its last flushed state.
//
// # Writing
//
// A Writer wraps any io.WriteSeeker. The 46-byte header goes out at
// creation; payload bytes follow through Write, WriteSample,
// WriteSamples or WriteBuffer; Flush makes everything written so far
// visible to readers; Close flushes one final time:
//
//	f, _ := os.Create("take.wav")
//	w, err := wave.NewWriter(f, wave.Format{
//	    Encoding:      wave.EncodingPCM,
//	    Channels:      1,
//	    SampleRate:    16000,
//	    BitsPerSample: 16,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, batch := range batches {
//	    if err := w.WriteSamples(batch); err != nil {
//	        return err
//	    }
//	    if err := w.Flush(); err != nil {
//	        return err // snapshot after every batch
//	    }
//	}
//	return w.Close() // closes f too
//
// Flush reseats the write cursor exactly where it was, so flushing and
// appending interleave freely. When the sink implements Sync (os.File
// does), every flush is pushed to durable storage.
//
// # Size limits
//
// WAV size fields are 32-bit. The Writer counts appended bytes in 64
// bits and never blocks a Write; the limit is enforced when sizes are
// recorded: a Flush or Close past MaxDataSize fails with
// ErrDataTooLarge and leaves the previously flushed header untouched.
// Everything up to that header is still a valid container.
//
// # Reading
//
// A Reader wraps any io.ReadSeeker. Opening walks the chunk list once,
// skipping unknown chunks and accepting "fmt " and "data" in either
// order, then pins the payload extent:
//
//	r, err := wave.NewReader(f)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(r.Format().SampleRate, r.Size(), r.Duration())
//	buf := make([]byte, 4096)
//	for {
//	    n, err := r.Read(buf)
//	    // process buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// Reads clip at the declared payload end and Seek clamps out-of-range
// targets to the payload boundaries instead of failing.
//
// # Sharing a stream
//
// Writer and Reader close their stream on Close when it implements
// io.Closer. Wrap the stream with KeepOpen when its lifetime belongs to
// the caller:
//
//	w, _ := wave.NewWriter(wave.KeepOpen(f), format)
//	// ... write ...
//	w.Close() // finalizes the header, f stays open
//
// # Interop
//
// WriteBuffer and PCMBuffer exchange samples with the
// github.com/go-audio ecosystem using its IntBuffer convention, and
// PCMFormat exposes the stream descriptor as a go-audio Format.
package wave
