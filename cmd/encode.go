// cmd/encode.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/morsemelody/internal/compose"
	"github.com/ColonelBlimp/morsemelody/internal/config"
	"github.com/ColonelBlimp/morsemelody/internal/decode"
	"github.com/ColonelBlimp/morsemelody/internal/morse"
	"github.com/ColonelBlimp/morsemelody/internal/render"
	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [message]",
	Short: "Encode a message as a piece of music",
	Long: `Encode turns a text message into a multi-track MIDI file. The melody
track carries the message in its note timing; harmony, bass, and drums
are decoration. Unsupported characters are dropped. The result is
decode-verified before the command reports success.`,
	Args: cobra.ArbitraryArgs,
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringP("message", "m", "", "message to encode (alternative to positional arguments)")
	encodeCmd.Flags().StringP("output", "o", "", "output MIDI file (default derived from the message)")
	encodeCmd.Flags().String("wav", "", "also render a WAV file to this path")
	encodeCmd.Flags().Bool("play", false, "play the piece on the default audio device")
	encodeCmd.Flags().Bool("show-morse", false, "print the Morse string for the message")
}

func runEncode(cmd *cobra.Command, args []string) error {
	message, _ := cmd.Flags().GetString("message")
	if message == "" {
		message = strings.Join(args, " ")
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("no message given: pass it as arguments or with --message")
	}
	if _, skipped := morse.Expand(message); len(skipped) > 0 {
		cmd.PrintErrf("warning: skipping unsupported characters: %q\n", string(skipped))
	}

	settings, err := config.Get()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	opts, err := settings.Options()
	if err != nil {
		return err
	}

	t, morseString, err := compose.Encode(message, opts)
	if err != nil {
		return err
	}

	if show, _ := cmd.Flags().GetBool("show-morse"); show {
		cmd.Printf("morse: %s\n", morseString)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = defaultOutputName(message)
	}
	if err := timeline.WriteFile(t, output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	cmd.Printf("wrote %s (%.1f beats at %.0f bpm)\n", output, t.End(), t.Tempo)

	// Prove the melody still carries the message before reporting success.
	res, err := decode.Decode(t.TrackEvents(timeline.Melody))
	if err != nil {
		return fmt.Errorf("verify %s: %w", output, err)
	}
	cmd.Printf("verified: %q (confidence %.2f)\n", res.Text, res.Confidence)

	// Rendering is best-effort: the MIDI file is already on disk, so a
	// missing audio backend only warrants a warning.
	if wavPath, _ := cmd.Flags().GetString("wav"); wavPath != "" {
		r := &render.WAVRenderer{Path: wavPath}
		if err := r.Render(t); err != nil {
			cmd.PrintErrf("warning: wav render failed: %v\n", err)
		} else {
			cmd.Printf("wrote %s\n", wavPath)
		}
	}
	if play, _ := cmd.Flags().GetBool("play"); play {
		p := &render.Playback{}
		if err := p.Render(t); err != nil {
			cmd.PrintErrf("warning: playback failed: %v\n", err)
		}
	}

	return nil
}

// defaultOutputName derives a .mid file name from the message text, so
// "HELLO WORLD" lands in hello-world.mid.
func defaultOutputName(message string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(message)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune('-')
		}
		if b.Len() >= 32 {
			break
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "message"
	}
	return name + ".mid"
}
