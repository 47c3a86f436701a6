// Package audio plays an optional soundtrack behind the page and the squeeze chime of the sponge button.
package audio

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/starfield/internal/config"
)

var ErrUnsupported = errors.New("unsupported file type")

const (
	levelWindow      = 2048
	defaultRate      = beep.SampleRate(44100)
	chimeFrequency   = 880.0
	chimeDuration    = 180 * time.Millisecond
	chimeVolume      = 0.25
	speakerBufferDiv = 20
)

type decodeFunc func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

func wavDecode(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(r) }

func flacDecode(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(r) }

// decoderFor picks a decoder by file extension.
func decoderFor(path string) (decodeFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wavDecode, nil
	case ".mp3":
		return mp3.Decode, nil
	case ".flac":
		return flacDecode, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// Player owns the speaker. Sound effects are only produced when it was created enabled;
// the soundtrack is always an explicit user choice.
//
// The speaker calls back into the player with its own lock held, so p.mu is never held
// while taking the speaker lock.
type Player struct {
	enabled bool

	mu       sync.Mutex
	initDone bool
	rate     beep.SampleRate
	file     *os.File
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	tap      *Tap
	paused   bool
	level    float64
}

func NewPlayer(enabled bool) *Player {
	return &Player{enabled: enabled}
}

// Loaded reports whether a soundtrack is currently attached.
func (p *Player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streamer != nil
}

// Choose asks the user for a soundtrack and plays it. A cancelled dialog is not an error.
func (p *Player) Choose() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Choose a soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("select soundtrack: %w", err)
	}
	return p.LoadAndPlay(filename)
}

// LoadAndPlay replaces the current soundtrack with the file at path.
func (p *Player) LoadAndPlay(path string) error {
	decode, err := decoderFor(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open soundtrack: %w", err)
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	if err := p.ensureSpeaker(format.SampleRate); err != nil {
		_ = streamer.Close()
		_ = f.Close()
		return err
	}

	t := NewTap(streamer, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: t}

	p.mu.Lock()
	p.closeCurrentLocked()
	p.file = f
	p.streamer = streamer
	p.ctrl = ctrl
	p.tap = t
	p.paused = false
	p.mu.Unlock()

	log.Printf("playing %s", filepath.Base(path))
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.streamer == streamer {
			p.closeCurrentLocked()
		}
	})))
	return nil
}

// ensureSpeaker initializes the speaker, or re-initializes it when the sample rate changes.
func (p *Player) ensureSpeaker(rate beep.SampleRate) error {
	p.mu.Lock()
	initDone, current := p.initDone, p.rate
	p.mu.Unlock()

	if initDone {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	if !initDone || current != rate {
		if err := speaker.Init(rate, rate.N(time.Second/speakerBufferDiv)); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
	}

	p.mu.Lock()
	p.initDone = true
	p.rate = rate
	p.mu.Unlock()
	return nil
}

func (p *Player) closeCurrentLocked() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.tap = nil
}

// TogglePause pauses or resumes the soundtrack. It does nothing when none is loaded.
func (p *Player) TogglePause() {
	p.mu.Lock()
	ctrl := p.ctrl
	if ctrl == nil {
		p.mu.Unlock()
		return
	}
	p.paused = !p.paused
	paused := p.paused
	p.mu.Unlock()

	speaker.Lock()
	ctrl.Paused = paused
	speaker.Unlock()
}

// Level returns the smoothed loudness of the soundtrack in [0, 1]. Call once per frame.
func (p *Player) Level() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw := 0.0
	if p.tap != nil && !p.paused {
		// Compress so quiet passages still register.
		raw = math.Pow(p.tap.Level(levelWindow), 0.3)
	}
	p.level = smooth(p.level, raw)
	return p.level
}

func smooth(prev, next float64) float64 {
	return config.SmoothingFactor*prev + (1-config.SmoothingFactor)*clamp01(next)
}

// Chime plays the short squeeze tone. It is a no-op when sound effects are disabled.
func (p *Player) Chime() error {
	if !p.enabled {
		return nil
	}
	p.mu.Lock()
	initDone, rate := p.initDone, p.rate
	p.mu.Unlock()

	if !initDone {
		rate = defaultRate
		if err := speaker.Init(rate, rate.N(time.Second/speakerBufferDiv)); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		p.mu.Lock()
		p.initDone = true
		p.rate = rate
		p.mu.Unlock()
	}

	speaker.Play(chime(rate, chimeFrequency, chimeDuration))
	return nil
}

// chime is a sine burst with a linear decay envelope.
func chime(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := rate.N(d)
	pos := 0
	tone := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			env := 1 - float64(pos)/float64(total)
			v := chimeVolume * env * math.Sin(2*math.Pi*freq*float64(pos)/float64(rate))
			samples[i] = [2]float64{v, v}
			pos++
			n++
		}
		return n, true
	})
	return beep.Take(total, tone)
}

// Close stops playback and releases the soundtrack file.
func (p *Player) Close() {
	p.mu.Lock()
	initDone := p.initDone
	p.mu.Unlock()

	if initDone {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	p.mu.Lock()
	p.closeCurrentLocked()
	p.mu.Unlock()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
