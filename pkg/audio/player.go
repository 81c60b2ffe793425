package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// BuiltinChime selects the synthesized alarm sound
const BuiltinChime = "builtin:chime"

// An oto context can only be created once per process, so every Player
// shares it. It always runs at OutputFormat.
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	globalAudioCtxErr  error
)

// initAudioContext initializes the global audio context once
func initAudioContext() error {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   OutputFormat.SampleRate,
			ChannelCount: OutputFormat.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			globalAudioCtxErr = fmt.Errorf("initialize audio context: %w", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		log.Println("Audio context initialized successfully")
	})
	return globalAudioCtxErr
}

// clip is decoded PCM already converted to OutputFormat
type clip struct {
	pcm []byte
}

// Player plays alarm sounds through the default output device
type Player struct {
	// MaxPlay caps a single playback so an overly long file cannot
	// hold up the alarm loop.
	MaxPlay time.Duration

	mu    sync.Mutex
	clips map[string]*clip
}

func NewPlayer() *Player {
	return &Player{
		MaxPlay: 10 * time.Second,
		clips:   make(map[string]*clip),
	}
}

// PlayToCompletionOrStop plays asset once and blocks until it finishes,
// MaxPlay elapses or ctx is cancelled. Cancellation is not an error.
func (p *Player) PlayToCompletionOrStop(ctx context.Context, asset string) error {
	c, err := p.load(asset)
	if err != nil {
		return err
	}

	if err := initAudioContext(); err != nil {
		return err
	}

	player := globalAudioCtx.NewPlayer(bytes.NewReader(c.pcm))
	defer func() {
		if err := player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}
	}()

	// Play starts playing the sound and returns without waiting
	player.Play()

	deadline := time.NewTimer(p.MaxPlay)
	defer deadline.Stop()
	poll := time.NewTicker(10 * time.Millisecond)
	defer poll.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return nil
		case <-deadline.C:
			player.Pause()
			return nil
		case <-poll.C:
		}
	}

	return player.Err()
}

// load resolves an asset name to decoded PCM, caching the result
func (p *Player) load(asset string) (*clip, error) {
	if asset == "" {
		asset = BuiltinChime
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clips[asset]; ok {
		return c, nil
	}

	var data []byte
	switch {
	case asset == BuiltinChime:
		data = Chime()
	case strings.HasPrefix(asset, "builtin:"):
		return nil, fmt.Errorf("unknown built-in sound %q", asset)
	default:
		b, err := os.ReadFile(asset)
		if err != nil {
			return nil, fmt.Errorf("read sound file: %w", err)
		}
		data = b
	}

	format, pcm, err := ParseWAV(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", asset, err)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("%s: %w", asset, errors.New("empty audio data"))
	}

	if *format != OutputFormat {
		log.Printf("Converting %s from %d Hz/%d ch to %d Hz/%d ch", asset,
			format.SampleRate, format.Channels, OutputFormat.SampleRate, OutputFormat.Channels)
		pcm = ConvertPCM(*format, pcm, OutputFormat)
	}

	c := &clip{pcm: pcm}
	p.clips[asset] = c
	return c, nil
}
