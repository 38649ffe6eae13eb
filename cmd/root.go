package cmd

import (
	"fmt"
	"os"

	"github.com/bradford-hamilton/chipvm/internal/config"
	"github.com/spf13/cobra"
)

// currentReleaseVersion is used to print the version the user currently has downloaded
const currentReleaseVersion = "v0.2.0"

// cfg collects every flag; subcommands read it after parsing.
var cfg = config.Default()

// rootCmd is the base for all commands. `chipvm path/to/rom` is shorthand for `chipvm run path/to/rom`.
var rootCmd = &cobra.Command{
	Use:   "chipvm [path/to/rom]",
	Short: "chipvm is a Chip-8 emulator",
	Long:  "chipvm is a Chip-8 emulator",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runChipVM(cmd, args)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&cfg.CPUHz, "hz", cfg.CPUHz, "instructions executed per second")
	flags.IntVar(&cfg.TimerHz, "timer-hz", cfg.TimerHz, "delay and sound timer decrements per second")
	flags.Float64Var(&cfg.Scale, "scale", cfg.Scale, "window pixels per chip-8 pixel")
	flags.StringVar(&cfg.Foreground, "fg", cfg.Foreground, "colour of lit pixels")
	flags.StringVar(&cfg.Background, "bg", cfg.Background, "colour of unlit pixels")
	flags.StringVar(&cfg.Frontend, "frontend", cfg.Frontend, "display frontend: window or terminal")
	flags.StringVar(&cfg.Audio, "audio", cfg.Audio, "audio sink: beep, oto or none")
	flags.Float64Var(&cfg.ToneHz, "tone", cfg.ToneHz, "buzzer frequency in Hz")
	flags.Float64Var(&cfg.Volume, "volume", cfg.Volume, "buzzer volume from 0 to 1")
	flags.StringVar(&cfg.BeepFile, "beep-file", cfg.BeepFile, "mp3 file to loop instead of the square wave (beep audio only)")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for CXNN, 0 seeds from the clock")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "only log errors")

	// Execute prints the error itself
	rootCmd.SilenceErrors = true
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs chipvm according to the user's command/subcommand/flags
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
