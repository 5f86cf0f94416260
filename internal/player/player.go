// Package player plays audio files through the system speaker.
package player

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/llehouerou/jockey/internal/logger"
)

// The speaker is process-wide and is initialised on first Play at the rate
// of the first song; later songs are resampled to it.
var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if !speakerInitialized {
		if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
			return 0, err
		}
		speakerSampleRate = rate
		speakerInitialized = true
	}
	return speakerSampleRate, nil
}

// Player is a single-song audio output backed by beep.
type Player struct {
	mu sync.Mutex

	state    State
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	// cancelled belongs to the current song; set before its stream is
	// cleared so a late end callback is ignored.
	cancelled *atomic.Bool

	volumeLevel float64
	muted       bool

	generation uint64
	finishedCh chan uint64
}

// New creates a stopped player at full volume.
func New() *Player {
	return &Player{
		state:       Stopped,
		volumeLevel: 1,
		finishedCh:  make(chan uint64, 1),
	}
}

// Play stops the current song and starts path from the beginning.
func (p *Player) Play(path string) error {
	p.Stop()
	gen := p.nextGeneration()

	// Drop a finish signal left over from the previous song
	select {
	case <-p.finishedCh:
	default:
	}

	streamer, format, err := openStream(path)
	if err != nil {
		return err
	}

	rate, err := initSpeaker(format.SampleRate)
	if err != nil {
		streamer.Close()
		return err
	}

	var out beep.Streamer = streamer
	if format.SampleRate != rate {
		out = beep.Resample(4, format.SampleRate, rate, streamer)
	}

	cancelled := &atomic.Bool{}
	ctrl := &beep.Ctrl{Streamer: out}
	vol := &effects.Volume{Streamer: ctrl, Base: 2}

	p.mu.Lock()
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.volume = vol
	p.cancelled = cancelled
	p.state = Playing
	p.applyVolumeLocked()
	p.mu.Unlock()

	logger.Debugf("[player] playing %s (%d Hz)", path, format.SampleRate)

	// The callback runs on the speaker goroutine with the speaker locked:
	// it must not touch p.mu.
	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		if cancelled.Load() {
			return
		}
		select {
		case p.finishedCh <- gen:
		default:
		}
	})))
	return nil
}

// Stop stops playback and releases the decoder.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.state == Stopped {
		p.mu.Unlock()
		return
	}
	if p.cancelled != nil {
		p.cancelled.Store(true)
	}
	streamer := p.streamer
	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
	p.cancelled = nil
	p.state = Stopped
	p.mu.Unlock()

	speaker.Clear()
	if streamer != nil {
		if err := streamer.Close(); err != nil {
			logger.Warnf("[player] close stream: %v", err)
		}
	}
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume resumes paused playback.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Paused || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

// State returns the output state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Position returns the position within the current song.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

// Duration returns the length of the current song.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Seek moves the position by delta. Seeking past the end finishes the song.
func (p *Player) Seek(delta time.Duration) {
	p.seek(func(cur int) int { return cur + p.format.SampleRate.N(delta) })
}

// SeekTo moves to an absolute position. Seeking past the end finishes the song.
func (p *Player) SeekTo(position time.Duration) {
	p.seek(func(int) int { return p.format.SampleRate.N(position) })
}

func (p *Player) seek(target func(cur int) int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil || p.state == Stopped {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	pos := max(target(p.streamer.Position()), 0)
	if pos >= p.streamer.Len() {
		select {
		case p.finishedCh <- p.generation:
		default:
		}
		return
	}
	if err := p.streamer.Seek(pos); err != nil {
		logger.Warnf("[player] seek: %v", err)
	}
}

// FinishedChan signals natural song ends with the generation of the song.
func (p *Player) FinishedChan() <-chan uint64 {
	return p.finishedCh
}

// Generation returns the generation of the last Play call.
func (p *Player) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

func (p *Player) nextGeneration() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	return p.generation
}
