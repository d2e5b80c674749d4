package audio

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cwbudde/wav"
)

// SupportedBitDepths lists the PCM bit depths a request's WAV audio may
// use; anything else is rejected as a format mismatch.
var SupportedBitDepths = map[int]bool{8: true, 16: true, 32: true}

// ErrFormatMismatch is returned when a decoded WAV uses a bit depth this
// decoder does not support.
var ErrFormatMismatch = errors.New("WAV format mismatch")

// Decoded is the result of decoding a WAV file: mono float32 samples in
// [-1, 1], the source sample rate, and the duration those samples span.
type Decoded struct {
	Samples     []float32
	SampleRate  int
	DurationSec float64
}

// DecodeWAV decodes WAV bytes into mono float32 PCM samples. Multichannel
// input is downmixed to mono by averaging channels. 8-, 16-, and
// 32-bit PCM are supported; anything else is rejected with
// ErrFormatMismatch.
func DecodeWAV(data []byte) (Decoded, error) {
	if len(data) == 0 {
		return Decoded{}, errors.New("empty WAV input")
	}

	r := bytes.NewReader(data)
	dec := wav.NewDecoder(r)

	if !dec.IsValidFile() {
		return Decoded{}, errors.New("invalid WAV file")
	}

	if !SupportedBitDepths[dec.BitDepth] {
		return Decoded{}, fmt.Errorf("%w: bit depth %d not in {8,16,32}", ErrFormatMismatch, dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Decoded{}, fmt.Errorf("reading PCM data: %w", err)
	}

	samples := downmixToMono(buf.Data, dec.NumChans)

	durationSec := 0.0
	if dec.SampleRate > 0 {
		durationSec = float64(len(samples)) / float64(dec.SampleRate)
	}

	return Decoded{Samples: samples, SampleRate: dec.SampleRate, DurationSec: durationSec}, nil
}

func downmixToMono(interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return interleaved
	}

	frames := len(interleaved) / channels
	out := make([]float32, frames)

	for i := 0; i < frames; i++ {
		var sum float32

		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}

		out[i] = sum / float32(channels)
	}

	return out
}
