package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progression statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	ctrl, cleanup, err := openController(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	rec := ctrl.Record()

	fmt.Println(titleStyle.Render("Current Stats"))
	fmt.Printf("%s %d\n", labelStyle.Render("Total Score:"), rec.TotalScore)
	fmt.Printf("%s %d BPM\n", labelStyle.Render("Highest BPM:"), rec.HighestBPM)
	fmt.Printf("%s %d BPM\n", labelStyle.Render("Target BPM:"), rec.TargetBPM)
	fmt.Printf("%s %s\n", labelStyle.Render("Unlocked:"), strings.Join(rec.Unlocked, ", "))

	fmt.Printf("\n%s\n", labelStyle.Render("Recent Achievements:"))
	wins := rec.GamesWon
	if len(wins) > 5 {
		wins = wins[len(wins)-5:]
	}
	if len(wins) == 0 {
		fmt.Println(dimStyle.Render("  none yet"))
	}
	for _, w := range wins {
		fmt.Printf("  - %s\n", w)
	}

	fmt.Printf("\n%s\n", labelStyle.Render("Accuracy History:"))
	if len(rec.LevelAccuracies) == 0 {
		fmt.Println(dimStyle.Render("  no passes recorded"))
		return nil
	}
	levels := make([]string, 0, len(rec.LevelAccuracies))
	for level := range rec.LevelAccuracies {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	for _, level := range levels {
		accs := rec.LevelAccuracies[level]
		name, bpm := splitLevel(level)
		fmt.Printf("\n  %s at %s BPM:\n", name, bpm)
		fmt.Printf("    Attempts: %d\n", len(accs))
		fmt.Printf("    Best Accuracy: %.1f%%\n", progress.Best(accs))
		fmt.Printf("    Average Accuracy: %.1f%%\n", progress.Average(accs))
	}
	return nil
}

// splitLevel splits a "<name>_<bpm>" level key at its last underscore.
func splitLevel(level string) (name, bpm string) {
	i := strings.LastIndex(level, "_")
	if i < 0 {
		return level, "?"
	}
	return level[:i], level[i+1:]
}
