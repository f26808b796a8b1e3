// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ColonelBlimp/morsemelody/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "morsemelody",
	Short: "Hide text messages inside generated music",
	Long: `morsemelody encodes text as music. Each letter becomes melody notes
whose durations and gaps follow Morse timing, wrapped in generated
harmony, bass, and drums. The decoder recovers the text from note
timing alone, so the message survives as long as the rhythm does.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().Float64P("tempo", "t", 0, "tempo in beats per minute (0 uses the style's default)")
	rootCmd.PersistentFlags().StringP("key", "k", "C", "tonic of the piece (C, F#, Bb, ...)")
	rootCmd.PersistentFlags().StringP("scale", "s", "major", "scale the melody draws from")
	rootCmd.PersistentFlags().String("style", "folk", "arrangement style")
	rootCmd.PersistentFlags().String("progression", "", "chord progression (empty uses the style's default)")
	rootCmd.PersistentFlags().Bool("harmony", true, "include the chord track")
	rootCmd.PersistentFlags().Bool("bass", true, "include the bass track")
	rootCmd.PersistentFlags().Bool("percussion", true, "include the drum track")
	rootCmd.PersistentFlags().Bool("humanize", false, "jitter timing and velocity slightly")

	// Bind flags to viper
	viper.BindPFlag("tempo", rootCmd.PersistentFlags().Lookup("tempo"))
	viper.BindPFlag("key", rootCmd.PersistentFlags().Lookup("key"))
	viper.BindPFlag("scale", rootCmd.PersistentFlags().Lookup("scale"))
	viper.BindPFlag("style", rootCmd.PersistentFlags().Lookup("style"))
	viper.BindPFlag("progression", rootCmd.PersistentFlags().Lookup("progression"))
	viper.BindPFlag("harmony", rootCmd.PersistentFlags().Lookup("harmony"))
	viper.BindPFlag("bass", rootCmd.PersistentFlags().Lookup("bass"))
	viper.BindPFlag("percussion", rootCmd.PersistentFlags().Lookup("percussion"))
	viper.BindPFlag("humanize", rootCmd.PersistentFlags().Lookup("humanize"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}
