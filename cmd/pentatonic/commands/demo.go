package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/capture"
)

var flagDemoBPM int

var demoCmd = &cobra.Command{
	Use:   "demo [position]",
	Short: "Hear a position played at tempo",
	Long: `Play a demonstration of a scale position: a four-beat count-in,
then every note ascending and descending, one per beat, with the
metronome click on top.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&flagDemoBPM, "bpm", 0, "tempo override (40-300; default: your current tempo)")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	pos, err := resolvePosition(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr, cleanup, err := newTrainer(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	bpm, err := resolveBPM(flagDemoBPM, tr.Progress().CurrentBPM())
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(pos.Name))
	fmt.Println(pos.Tab)
	fmt.Printf("\nPlaying demonstration at %d BPM...\n\n", bpm)

	err = tr.Demo(ctx, pos, bpm, func(ev capture.Event) {
		if ev.CountIn {
			fmt.Printf("Count: %d\n", ev.Beat+1)
			return
		}
		fmt.Printf("Playing %s (%.1f Hz)\n", labelStyle.Render(ev.Note.Name), ev.Note.Frequency)
	})
	if err != nil {
		return err
	}

	fmt.Println("\nDemonstration complete!")
	return nil
}
