// internal/render/wav.go
package render

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

// WAVRenderer synthesizes the timeline offline and writes 16-bit mono
// PCM to Path.
type WAVRenderer struct {
	Path       string
	SampleRate int // 0 means DefaultSampleRate
}

func (r *WAVRenderer) Render(t *timeline.Timeline) error {
	rate := r.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	samples := synthesize(t, rate)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = pcm16(s)
	}

	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: rate, NumChannels: 1},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("write wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize wav file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close wav file: %w", err)
	}
	return nil
}

// pcm16 converts a float sample in [-1, 1] to a signed 16-bit value.
func pcm16(s float64) int {
	if s > 1 {
		s = 1
	}
	if s < -1 {
		s = -1
	}
	return int(s * 32767)
}
