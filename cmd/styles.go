// cmd/styles.go
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/morsemelody/internal/theory"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the available styles, scales, keys, and progressions",
	Run:   runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(cmd *cobra.Command, args []string) {
	cmd.Println("Styles:")
	for _, name := range theory.StyleNames() {
		style, err := theory.StyleByName(name)
		if err != nil {
			continue
		}
		cmd.Printf("  %-10s %3.0f-%3.0f bpm, %s progression\n",
			name, style.TempoMin, style.TempoMax, style.Progression)
	}

	cmd.Println()
	cmd.Println("Scales:")
	for _, name := range theory.ScaleNames() {
		cmd.Printf("  %s\n", name)
	}

	cmd.Println()
	cmd.Println("Keys:")
	cmd.Printf("  %s\n", strings.Join(theory.KeyNames(), " "))

	cmd.Println()
	cmd.Println("Progressions:")
	for _, name := range theory.ProgressionNames() {
		cmd.Printf("  %s\n", name)
	}
}
