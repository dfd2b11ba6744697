package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Speaker parameters. The buffer is kept small so key-press playback stays
// responsive under fast typing.
const (
	mixSampleRate = beep.SampleRate(44100)
	speakerBuffer = 10 * time.Millisecond
)

// resampleQuality balances fidelity against per-play CPU cost for samples
// whose native rate differs from the speaker rate.
const resampleQuality = 4

// beepSample is a fully buffered decoded sound kept in its native format.
type beepSample struct {
	buffer *beep.Buffer
	format beep.Format
}

// BeepBackend renders samples through the beep speaker. A single beep.Ctrl
// acts as the dedicated key-sound channel: starting a new sound detaches
// the previous one, so at most one key sound is audible at a time.
type BeepBackend struct {
	mixer   *beep.Mixer
	current *beep.Ctrl // guarded by speaker.Lock
}

// NewBeepBackend initializes the speaker and starts the backing mixer.
func NewBeepBackend() (*BeepBackend, error) {
	if err := speaker.Init(mixSampleRate, mixSampleRate.N(speakerBuffer)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}

	b := &BeepBackend{mixer: &beep.Mixer{}}
	speaker.Play(b.mixer)
	return b, nil
}

// Decode reads the whole file into memory so playback never touches disk.
func (b *BeepBackend) Decode(path string) (Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		// .m4a is on the container allow-list but no decoder is
		// available for it; the library skips the file.
		f.Close()
		return nil, fmt.Errorf("no decoder for %s container", ext)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	return &beepSample{buffer: buffer, format: format}, nil
}

// Play starts the sample on the dedicated channel, preempting the sound
// currently rendering there.
func (b *BeepBackend) Play(sample Sample, volume float64) error {
	bs, ok := sample.(*beepSample)
	if !ok {
		return fmt.Errorf("sample was not decoded by this backend")
	}

	var streamer beep.Streamer = bs.buffer.Streamer(0, bs.buffer.Len())
	if bs.format.SampleRate != mixSampleRate {
		streamer = beep.Resample(resampleQuality, bs.format.SampleRate, mixSampleRate, streamer)
	}
	streamer = applyVolume(streamer, volume)

	ctrl := &beep.Ctrl{Streamer: streamer}

	speaker.Lock()
	if b.current != nil {
		// Detached streamers drain immediately and fall out of the mixer.
		b.current.Streamer = nil
	}
	b.current = ctrl
	b.mixer.Add(ctrl)
	speaker.Unlock()

	return nil
}

// applyVolume maps the linear [0,1] user volume onto beep's exponential
// volume control. Zero mutes outright.
func applyVolume(streamer beep.Streamer, volume float64) beep.Streamer {
	if volume >= 1.0 {
		return streamer
	}
	return &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   math.Log2(math.Max(volume, 1e-4)),
		Silent:   volume <= 0,
	}
}
