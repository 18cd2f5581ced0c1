package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all saved progress",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if !flagResetYes {
		fmt.Print("This discards all progress, achievements and unlocks. Continue? (y/N): ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx := context.Background()
	ctrl, cleanup, err := openController(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := ctrl.Reset(ctx); err != nil {
		return err
	}
	fmt.Println("Progress reset. Only position1 is unlocked, starting at 120 BPM.")
	return nil
}
