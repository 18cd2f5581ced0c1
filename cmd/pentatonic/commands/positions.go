package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/scale"
)

var flagPositionsTabs bool

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List scale positions and unlock state",
	RunE:  runPositions,
}

func init() {
	positionsCmd.Flags().BoolVar(&flagPositionsTabs, "tabs", false, "show tab notation for each position")
	rootCmd.AddCommand(positionsCmd)
}

func runPositions(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	ctrl, cleanup, err := openController(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	rec := ctrl.Record()

	fmt.Println(titleStyle.Render("Scale Positions"))
	for i := range scale.All {
		pos := &scale.All[i]
		state := badStyle.Render("locked")
		if rec.IsUnlocked(pos.ID) {
			state = goodStyle.Render("unlocked")
		}
		fmt.Printf("\n%s  %s [%s]\n", labelStyle.Render(pos.ID), pos.Name, state)
		fmt.Printf("  %s\n", dimStyle.Render(pos.Description))
		if flagPositionsTabs {
			fmt.Println(pos.Tab)
		}
	}
	return nil
}
