package audio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChimeIsValidWAV(t *testing.T) {
	format, pcm, err := ParseWAV(Chime())
	require.NoError(t, err)

	assert.Equal(t, ChimeFormat, *format)
	assert.NotEmpty(t, pcm)
	assert.Zero(t, len(pcm)%(format.Channels*format.BitDepth/8), "whole frames only")

	seconds := float64(len(pcm)) / float64(format.SampleRate*format.Channels*2)
	assert.InDelta(t, 1.5, seconds, 0.2)
}

func TestParseWAVSkipsUnknownChunks(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0, 4, 0}
	wav := EncodeWAV(Format{SampleRate: 8000, Channels: 1, BitDepth: 16}, pcm)

	// Splice a LIST chunk with an odd length between fmt and data.
	list := append([]byte("LIST"), 3, 0, 0, 0, 'a', 'b', 'c', 0)
	withList := append(append(append([]byte{}, wav[:36]...), list...), wav[36:]...)

	format, got, err := ParseWAV(withList)
	require.NoError(t, err)
	assert.Equal(t, 8000, format.SampleRate)
	assert.Equal(t, 1, format.Channels)
	assert.Equal(t, pcm, got)
}

func TestParseWAVTruncatedDataLength(t *testing.T) {
	pcm := []byte{1, 0, 2, 0}
	wav := EncodeWAV(Format{SampleRate: 8000, Channels: 1, BitDepth: 16}, pcm)
	wav[40] = 0xff // claim a much larger data chunk

	_, got, err := ParseWAV(wav)
	require.NoError(t, err)
	assert.Equal(t, pcm, got)
}

func TestParseWAVRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not riff", []byte("ID3\x03\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")},
		{"8-bit", EncodeWAV(Format{SampleRate: 8000, Channels: 1, BitDepth: 8}, []byte{1, 2})},
		{"surround", EncodeWAV(Format{SampleRate: 8000, Channels: 6, BitDepth: 16}, make([]byte, 12))},
		{"no data chunk", EncodeWAV(Format{SampleRate: 8000, Channels: 1, BitDepth: 16}, nil)[:36]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseWAV(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestPlayerLoadErrors(t *testing.T) {
	p := NewPlayer()
	ctx := context.Background()

	err := p.PlayToCompletionOrStop(ctx, filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = p.PlayToCompletionOrStop(ctx, "builtin:siren")
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "alarm.mp3")
	require.NoError(t, os.WriteFile(bad, []byte("ID3 not a wave file"), 0o644))
	err = p.PlayToCompletionOrStop(ctx, bad)
	assert.ErrorIs(t, err, ErrUnsupportedWAV)
}

func TestPlayerCachesClips(t *testing.T) {
	p := NewPlayer()

	a, err := p.load("")
	require.NoError(t, err)
	b, err := p.load(BuiltinChime)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func pcm16(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = append(out, byte(uint16(s)), byte(uint16(s)>>8))
	}
	return out
}

func TestConvertPCMMonoToStereoUpsample(t *testing.T) {
	mono := Format{SampleRate: 22050, Channels: 1, BitDepth: 16}

	got := ConvertPCM(mono, pcm16(0, 1000, 2000, 3000), OutputFormat)
	want := pcm16(
		0, 0, 500, 500, 1000, 1000, 1500, 1500,
		2000, 2000, 2500, 2500, 3000, 3000, 3000, 3000,
	)
	assert.Equal(t, want, got)
}

func TestConvertPCMStereoToMonoDownsample(t *testing.T) {
	stereo := Format{SampleRate: 48000, Channels: 2, BitDepth: 16}
	mono := Format{SampleRate: 24000, Channels: 1, BitDepth: 16}

	got := ConvertPCM(stereo, pcm16(100, 300, -200, -400, 1000, 2000, 7, 9), mono)
	assert.Equal(t, pcm16(200, 1500), got)
}

func TestConvertPCMSameFormat(t *testing.T) {
	pcm := pcm16(1, 2, 3, 4)
	assert.Equal(t, pcm, ConvertPCM(OutputFormat, pcm, OutputFormat))
}

func TestPlayerConvertsClipsToOutputFormat(t *testing.T) {
	mono := Format{SampleRate: 22050, Channels: 1, BitDepth: 16}
	path := filepath.Join(t.TempDir(), "beep.wav")
	require.NoError(t, os.WriteFile(path, EncodeWAV(mono, pcm16(0, 1000, 2000, 3000)), 0o644))

	p := NewPlayer()
	custom, err := p.load(path)
	require.NoError(t, err)
	assert.Len(t, custom.pcm, 8*OutputFormat.Channels*2)

	// The built-in chime already matches and is used as is
	chime, err := p.load(BuiltinChime)
	require.NoError(t, err)
	_, raw, err := ParseWAV(Chime())
	require.NoError(t, err)
	assert.Equal(t, raw, chime.pcm)
}
