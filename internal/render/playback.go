// internal/render/playback.go
package render

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gen2brain/malgo"

	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

// Playback streams the synthesized timeline to an output device and
// blocks until the last sample has been handed to the backend.
type Playback struct {
	DeviceIndex int // -1 or 0 for the default device
	SampleRate  int // 0 means DefaultSampleRate

	mu      sync.Mutex
	pcm     []float32
	cursor  int
	playing bool
}

const periodFrames = 512

func (p *Playback) Render(t *timeline.Timeline) error {
	rate := p.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	mix := synthesize(t, rate)
	pcm := make([]float32, len(mix))
	for i, s := range mix {
		pcm[i] = float32(s)
	}

	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return ErrBusy
	}
	p.playing = true
	p.pcm = pcm
	p.cursor = 0
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.playing = false
		p.pcm = nil
		p.mu.Unlock()
	}()

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("%w: init context: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	deviceConfig := malgo.DeviceConfig{
		DeviceType:         malgo.Playback,
		SampleRate:         uint32(rate),
		PeriodSizeInFrames: periodFrames,
		Playback: malgo.SubConfig{
			Format:   malgo.FormatF32,
			Channels: 1,
		},
	}

	// Select a specific device if requested.
	if p.DeviceIndex > 0 {
		devices, err := ctx.Devices(malgo.Playback)
		if err != nil {
			return fmt.Errorf("enumerate devices: %w", err)
		}
		if p.DeviceIndex >= len(devices) {
			return fmt.Errorf("device index %d out of range (have %d devices)",
				p.DeviceIndex, len(devices))
		}
		deviceConfig.Playback.DeviceID = devices[p.DeviceIndex].ID.Pointer()
	}

	done := make(chan struct{})
	var once sync.Once

	// Runs on the audio thread. Must be non-blocking and fast.
	onSendFrames := func(outputSamples, inputSamples []byte, frameCount uint32) {
		p.mu.Lock()
		p.cursor = copyFrames(outputSamples, p.pcm, p.cursor)
		finished := p.cursor >= len(p.pcm)
		p.mu.Unlock()
		if finished {
			once.Do(func() { close(done) })
		}
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSendFrames,
	})
	if err != nil {
		return fmt.Errorf("%w: init device: %v", ErrUnavailable, err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("%w: start device: %v", ErrUnavailable, err)
	}

	<-done
	// Let the final period drain before tearing the device down.
	time.Sleep(100 * time.Millisecond)

	if err := device.Stop(); err != nil {
		return fmt.Errorf("stop device: %w", err)
	}
	return nil
}

// copyFrames fills dst with little-endian float32 frames starting at
// cursor and returns the advanced cursor. Space past the end of src is
// zero-filled so the device keeps a steady stream.
func copyFrames(dst []byte, src []float32, cursor int) int {
	for i := 0; i+3 < len(dst); i += 4 {
		var s float32
		if cursor < len(src) {
			s = src[cursor]
			cursor++
		}
		bits := math.Float32bits(s)
		dst[i] = byte(bits)
		dst[i+1] = byte(bits >> 8)
		dst[i+2] = byte(bits >> 16)
		dst[i+3] = byte(bits >> 24)
	}
	return cursor
}
