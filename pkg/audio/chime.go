// Package audio plays the reminder chime. The chime is synthesized at
// startup instead of shipped as an asset, which keeps the binary free of
// bundled media.
package audio

import (
	"bytes"
	"encoding/binary"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate = 44100
	channels   = 1
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool

	chimeOnce sync.Once
	chimePCM  []byte
)

// Player manages chime playback with cancellation support
type Player struct {
	stopChan chan struct{}
	player   *oto.Player
	stopped  bool
	mu       sync.Mutex
}

// initAudioContext initializes the global audio context once
func initAudioContext() {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Println("Audio context initialized successfully")
	})
}

// chime returns the two-tone chime as signed 16-bit LE PCM, rendering it
// on first use.
func chime() []byte {
	chimeOnce.Do(func() {
		chimePCM = renderChime()
	})
	return chimePCM
}

// renderChime produces a short A5/E5 two-tone figure with a linear
// fade-out on each note and a pause at the end of the loop.
func renderChime() []byte {
	notes := []struct {
		freq     float64
		duration time.Duration
	}{
		{880.0, 180 * time.Millisecond},
		{659.25, 260 * time.Millisecond},
		{0, 700 * time.Millisecond}, // silence before the loop repeats
	}

	var buf bytes.Buffer
	for _, note := range notes {
		samples := int(float64(sampleRate) * note.duration.Seconds())
		for i := 0; i < samples; i++ {
			var value float64
			if note.freq > 0 {
				envelope := 1.0 - float64(i)/float64(samples)
				value = 0.4 * envelope * math.Sin(2*math.Pi*note.freq*float64(i)/sampleRate)
			}
			binary.Write(&buf, binary.LittleEndian, int16(value*math.MaxInt16))
		}
	}
	return buf.Bytes()
}

// PlayChime starts the looping reminder chime and returns a Player for
// control. It returns nil when no audio device is available.
func PlayChime() *Player {
	initAudioContext()

	if !audioCtxReady || globalAudioCtx == nil {
		log.Printf("Audio context not ready")
		return nil
	}

	p := &Player{
		stopChan: make(chan struct{}),
	}

	// Play in a goroutine so the reminder window is never blocked
	go p.playLoop(chime())

	return p
}

func (p *Player) playLoop(pcm []byte) {
	// Loop the chime until stopped
	for {
		// Create a new player for each loop iteration
		p.player = globalAudioCtx.NewPlayer(bytes.NewReader(pcm))

		// Play starts playing the sound and returns without waiting
		p.player.Play()

		// Wait for the sound to finish playing or stop signal
		for p.player.IsPlaying() {
			select {
			case <-p.stopChan:
				// Stop requested, pause and cleanup then exit
				p.player.Pause()
				p.player.Close()
				log.Println("Audio player closed")
				return
			case <-time.After(10 * time.Millisecond):
				// Continue checking
			}
		}

		// Close the player before creating a new one
		if err := p.player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}

		// Check if stop was requested between loops
		select {
		case <-p.stopChan:
			return
		default:
			// Continue looping
		}
	}
}

// Stop stops the chime
func (p *Player) Stop() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopChan)

		// Also try to pause the current player if it exists
		if p.player != nil {
			p.player.Pause()
		}

		log.Println("Audio playback stopped")
	}
}
