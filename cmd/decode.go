// cmd/decode.go
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/morsemelody/internal/decode"
	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

var decodeCmd = &cobra.Command{
	Use:   "decode FILE",
	Short: "Recover the hidden message from a MIDI file",
	Long: `Decode reads a MIDI file and recovers the message from the timing of
one track. Pitches are ignored entirely; transposed or re-voiced copies
of the piece still decode. Letters whose timing no longer matches any
Morse pattern come out as '?' and lower the confidence score.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().String("track", "melody", "track to read (melody, harmony, bass, percussion)")
}

func runDecode(cmd *cobra.Command, args []string) error {
	t, err := timeline.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	trackName, _ := cmd.Flags().GetString("track")
	role, err := parseRole(trackName)
	if err != nil {
		return err
	}

	res, err := decode.Decode(t.TrackEvents(role))
	switch {
	case errors.Is(err, decode.ErrNoNotes):
		return fmt.Errorf("track %q of %s has no notes", trackName, args[0])
	case errors.Is(err, decode.ErrInsufficientNotes):
		cmd.Printf("text: %s\n", res.Text)
		cmd.Printf("morse: %s\n", res.Morse)
		cmd.Println("confidence: 0.00 (a single note carries no timing)")
		return nil
	case err != nil:
		return err
	}

	cmd.Printf("text: %s\n", res.Text)
	cmd.Printf("morse: %s\n", res.Morse)
	cmd.Printf("confidence: %.2f\n", res.Confidence)
	if res.Confidence < 0.5 {
		cmd.Println("low confidence: this track may not carry a message")
	}
	return nil
}

func parseRole(name string) (timeline.TrackRole, error) {
	for _, role := range timeline.Roles() {
		if role.String() == name {
			return role, nil
		}
	}
	names := make([]string, 0, len(timeline.Roles()))
	for _, role := range timeline.Roles() {
		names = append(names, role.String())
	}
	return timeline.Melody, fmt.Errorf("unknown track %q, want one of %s", name, strings.Join(names, ", "))
}
