package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var targetCmd = &cobra.Command{
	Use:   "target [bpm]",
	Short: "Show or set the target tempo",
	Long: `Show the tempo your progression is working toward, or set a new
one. The target must be between 60 and 300 BPM; successful passes raise
your tempo toward it but never past it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTarget,
}

func init() {
	rootCmd.AddCommand(targetCmd)
}

func runTarget(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	ctrl, cleanup, err := openController(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) == 0 {
		fmt.Printf("%s %d BPM\n", labelStyle.Render("Target BPM:"), ctrl.Record().TargetBPM)
		return nil
	}

	bpm, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid tempo %q", args[0])
	}
	if err := ctrl.SetTarget(ctx, bpm); err != nil {
		return err
	}
	fmt.Printf("Target BPM set to %d\n", bpm)
	return nil
}
