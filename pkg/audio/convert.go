package audio

import (
	"encoding/binary"
	"math"
)

// OutputFormat is the layout the audio device is opened with. Every clip
// is converted to it when loaded.
var OutputFormat = ChimeFormat

// ConvertPCM converts 16-bit little-endian PCM between sample rates and
// channel counts. Extra output channels repeat the input ones, fewer output
// channels average them, and the rate is linearly interpolated.
func ConvertPCM(from Format, pcm []byte, to Format) []byte {
	if from == to {
		return pcm
	}

	inFrames := len(pcm) / (2 * from.Channels)
	if inFrames == 0 {
		return nil
	}

	sample := func(frame, ch int) float64 {
		off := (frame*from.Channels + ch) * 2
		return float64(int16(binary.LittleEndian.Uint16(pcm[off:])))
	}

	// remix
	mixed := make([][]float64, to.Channels)
	for c := range mixed {
		mixed[c] = make([]float64, inFrames)
	}
	for i := 0; i < inFrames; i++ {
		for c := 0; c < to.Channels; c++ {
			if from.Channels <= to.Channels {
				mixed[c][i] = sample(i, c%from.Channels)
				continue
			}
			var sum float64
			for k := 0; k < from.Channels; k++ {
				sum += sample(i, k)
			}
			mixed[c][i] = sum / float64(from.Channels)
		}
	}

	// resample
	outFrames := int(int64(inFrames) * int64(to.SampleRate) / int64(from.SampleRate))
	ratio := float64(from.SampleRate) / float64(to.SampleRate)
	out := make([]byte, outFrames*to.Channels*2)
	for j := 0; j < outFrames; j++ {
		pos := float64(j) * ratio
		i0 := int(pos)
		if i0 >= inFrames {
			i0 = inFrames - 1
		}
		i1 := i0 + 1
		if i1 >= inFrames {
			i1 = inFrames - 1
		}
		frac := pos - float64(i0)

		for c := 0; c < to.Channels; c++ {
			v := mixed[c][i0]*(1-frac) + mixed[c][i1]*frac
			v = math.Max(math.MinInt16, math.Min(math.MaxInt16, math.Round(v)))
			off := (j*to.Channels + c) * 2
			binary.LittleEndian.PutUint16(out[off:], uint16(int16(v)))
		}
	}
	return out
}
