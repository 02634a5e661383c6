package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyjump/internal/storage"
)

var (
	flagScoresMode  string
	flagScoresLimit int
	flagScoresLegs  bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best climbs, or the most recent relay legs with --legs.

Examples:
  skyjump scores
  skyjump scores --mode relay
  skyjump scores --legs
  skyjump scores --mode solo --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", storage.ModeSolo, "Score mode: solo, relay or all")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresLegs, "legs", false, "Show recent relay legs instead of climbs")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the scores of --mode")
}

func runScores(_ *cobra.Command, _ []string) error {
	mode := flagScoresMode
	switch mode {
	case storage.ModeSolo, storage.ModeRelay:
	case "all":
		mode = ""
	default:
		return fmt.Errorf("unknown mode %q", flagScoresMode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared %s scores.\n", flagScoresMode)
		return nil
	case flagScoresLegs:
		return printLegs(store)
	default:
		return printScores(store, mode)
	}
}

func printScores(store *storage.Store, mode string) error {
	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", flagScoresMode)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No climbs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skyjump play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-12s  %s\n", "Rank", "Height", "Mode", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-12s  %s\n", "----", "------", "----", "------", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8s  %-6s  %-12s  %s\n",
			i+1, fmt.Sprintf("%d m", e.Score), e.Mode, e.Player, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if mode != "" {
		stats, err := store.ModeStats(mode)
		if err == nil && stats.Climbs > 0 {
			fmt.Println()
			fmt.Printf("Best: %d m  Average: %.0f m  Climbs: %d\n", stats.Best, stats.Average, stats.Climbs)
		}
	}
	return nil
}

func printLegs(store *storage.Store) error {
	legs, err := store.RecentRelayLegs("", flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving relay legs: %w", err)
	}
	if len(legs) == 0 {
		fmt.Fprintln(os.Stdout, "No relay legs recorded yet.")
		return nil
	}

	fmt.Println("Recent relay legs")
	fmt.Println()
	fmt.Printf("  %-8s  %-8s  %-6s  %-6s  %-7s  %s\n", "Session", "Partner", "From", "To", "Climbed", "Date")
	for _, l := range legs {
		fmt.Printf("  %-8.8s  %-8.8s  %-6d  %-6d  +%-6d  %s\n",
			l.SessionID, l.PartnerID, l.StartScore, l.EndScore, l.Climbed(), l.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
