// skyjump is an endless vertical jumper for the terminal, playable solo or
// as a relay race where two players take turns climbing the same tower.
//
// Usage:
//
//	skyjump play             - Climb solo (or --relay to race a partner)
//	skyjump menu             - Start menu to pick a mode interactively
//	skyjump serve            - Start SSH server for remote play
//	skyjump hub              - Start a WebSocket relay hub
//	skyjump scores           - Show high scores and relay legs
//	skyjump config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.skyjump/scores.db)
//	--config <path>      - Use a custom config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyjump",
	Short: "Sky Jump - an endless jumper for your terminal",
	Long: `Sky Jump is an endless vertical platformer played in the terminal.
Bounce from platform to platform, grab springs, and float with your
ability meter. Fall below the screen and the climb is over.

In a relay race two players share one tower: when one falls, the other
continues from that height with the ability meter that was left.

Available commands:
  play     - Start climbing
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  hub      - Start a WebSocket relay hub
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  skyjump play
  skyjump play --relay --broker tcp://localhost:1883
  skyjump menu --difficulty hard
  skyjump serve --ssh :2222
  skyjump scores --mode relay`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyjump/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.skyjump/skyjump.log", "Log file for terminal sessions (- for stderr)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(hubCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
