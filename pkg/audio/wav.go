package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Format describes PCM sample layout
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

var ErrUnsupportedWAV = errors.New("unsupported WAV data")

// ParseWAV parses a RIFF/WAVE file and returns its format and raw PCM data.
// Only 16-bit integer PCM is accepted since that is what the output device
// is opened with.
func ParseWAV(data []byte) (*Format, []byte, error) {
	reader := bytes.NewReader(data)

	header := make([]byte, 12)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, nil, fmt.Errorf("read RIFF header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, nil, fmt.Errorf("%w: missing RIFF/WAVE header", ErrUnsupportedWAV)
	}

	var format *Format
	for {
		var chunkID [4]byte
		if _, err := io.ReadFull(reader, chunkID[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil, fmt.Errorf("%w: no data chunk", ErrUnsupportedWAV)
			}
			return nil, nil, err
		}

		var chunkSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &chunkSize); err != nil {
			return nil, nil, err
		}

		switch string(chunkID[:]) {
		case "fmt ":
			f, err := readFormatChunk(reader, chunkSize)
			if err != nil {
				return nil, nil, err
			}
			format = f
		case "data":
			if format == nil {
				return nil, nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrUnsupportedWAV)
			}
			if int64(chunkSize) > int64(reader.Len()) {
				// Streams written without a final size carry a bogus length.
				chunkSize = uint32(reader.Len())
			}
			pcm := make([]byte, chunkSize)
			if _, err := io.ReadFull(reader, pcm); err != nil {
				return nil, nil, fmt.Errorf("read data chunk: %w", err)
			}
			return format, pcm, nil
		default:
			// Chunks are word aligned
			skip := int64(chunkSize) + int64(chunkSize&1)
			if _, err := reader.Seek(skip, io.SeekCurrent); err != nil {
				return nil, nil, err
			}
		}
	}
}

func readFormatChunk(r *bytes.Reader, size uint32) (*Format, error) {
	if size < 16 {
		return nil, fmt.Errorf("%w: fmt chunk too short", ErrUnsupportedWAV)
	}

	var raw struct {
		AudioFormat   uint16
		Channels      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		return nil, fmt.Errorf("read fmt chunk: %w", err)
	}

	// Skip any extra format bytes
	if extra := int64(size) - 16 + int64(size&1); extra > 0 {
		if _, err := r.Seek(extra, io.SeekCurrent); err != nil {
			return nil, err
		}
	}

	if raw.AudioFormat != 1 {
		return nil, fmt.Errorf("%w: audio format %d is not PCM", ErrUnsupportedWAV, raw.AudioFormat)
	}
	if raw.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedWAV, raw.BitsPerSample)
	}
	if raw.Channels == 0 || raw.Channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedWAV, raw.Channels)
	}

	return &Format{
		SampleRate: int(raw.SampleRate),
		Channels:   int(raw.Channels),
		BitDepth:   int(raw.BitsPerSample),
	}, nil
}

// EncodeWAV wraps 16-bit PCM samples in a RIFF/WAVE container
func EncodeWAV(format Format, pcm []byte) []byte {
	var buf bytes.Buffer
	blockAlign := format.Channels * format.BitDepth / 8

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(format.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate*blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(format.BitDepth))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

// ChimeFormat is the sample layout of the built-in alarm sound
var ChimeFormat = Format{SampleRate: 44100, Channels: 2, BitDepth: 16}

// Chime synthesizes the built-in alarm sound: three short two-tone beeps
// followed by a pause, about 1.5 seconds in total.
func Chime() []byte {
	const (
		beep   = 0.18 // seconds
		gap    = 0.07
		rest   = 0.6
		volume = 0.35
	)
	tones := []float64{880, 1318.5}

	rate := float64(ChimeFormat.SampleRate)
	var pcm bytes.Buffer

	writeFrame := func(v float64) {
		s := int16(v * volume * math.MaxInt16)
		for c := 0; c < ChimeFormat.Channels; c++ {
			binary.Write(&pcm, binary.LittleEndian, s)
		}
	}
	silence := func(seconds float64) {
		for i := 0; i < int(seconds*rate); i++ {
			writeFrame(0)
		}
	}

	for n := 0; n < 3; n++ {
		for _, freq := range tones {
			samples := int(beep / 2 * rate)
			for i := 0; i < samples; i++ {
				// Short linear fade at both ends to avoid clicks
				env := math.Min(1, math.Min(float64(i), float64(samples-i))/200)
				writeFrame(env * math.Sin(2*math.Pi*freq*float64(i)/rate))
			}
		}
		silence(gap)
	}
	silence(rest)

	return EncodeWAV(ChimeFormat, pcm.Bytes())
}
