package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/capture"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/progress"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/scale"
)

const (
	// Playable tempo bounds for practice and demo passes.
	minBPM = 40
	maxBPM = 300
)

var flagPracticeBPM int

var practiceCmd = &cobra.Command{
	Use:   "practice [position]",
	Short: "Play a scored practice pass",
	Long: `Play one scored pass of a scale position.

After a four-beat count-in, play the position ascending and then
descending, one note per metronome beat. Each beat is pitch-checked;
100% accuracy raises your tempo and can unlock the next position.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPractice,
}

func init() {
	practiceCmd.Flags().IntVar(&flagPracticeBPM, "bpm", 0, "tempo override (40-300; default: your current tempo)")
	rootCmd.AddCommand(practiceCmd)
}

// resolvePosition maps an optional positional argument to a scale
// position, defaulting to the first one.
func resolvePosition(args []string) (*scale.Position, error) {
	id := "position1"
	if len(args) > 0 {
		id = args[0]
	}
	pos := scale.ByID(id)
	if pos == nil {
		return nil, fmt.Errorf("unknown position %q (one of: %v)", id, scale.IDs())
	}
	return pos, nil
}

func resolveBPM(flagBPM, current int) (int, error) {
	bpm := current
	if flagBPM != 0 {
		bpm = flagBPM
	}
	if bpm < minBPM || bpm > maxBPM {
		return 0, fmt.Errorf("tempo %d out of range [%d, %d]", bpm, minBPM, maxBPM)
	}
	return bpm, nil
}

func runPractice(cmd *cobra.Command, args []string) error {
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

	bpm, err := resolveBPM(flagPracticeBPM, tr.Progress().CurrentBPM())
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(pos.Name))
	fmt.Println(dimStyle.Render(pos.Description))
	fmt.Println(pos.Tab)
	fmt.Printf("\nTempo: %s BPM. Play along after the count-in.\n\n", labelStyle.Render(fmt.Sprint(bpm)))

	report, update, err := tr.Practice(ctx, pos, bpm, printBeat)
	if err != nil {
		return err
	}

	fmt.Println()
	for _, v := range report.Verdicts {
		switch {
		case v.Correct:
			fmt.Printf("  %s %s\n", goodStyle.Render("✓"), v.Expected.Name)
		case v.NoDetection:
			fmt.Printf("  %s %s %s\n", badStyle.Render("✗"), v.Expected.Name, dimStyle.Render("(nothing heard)"))
		default:
			fmt.Printf("  %s %s %s\n", badStyle.Render("✗"), v.Expected.Name,
				dimStyle.Render(fmt.Sprintf("(heard %s)", v.DetectedName)))
		}
	}

	fmt.Printf("\n%s %.1f%% (%d of %d)\n",
		labelStyle.Render("Accuracy:"), report.Accuracy, report.Correct, report.Expected)

	rec := tr.Progress().Record()
	if update.Perfect {
		fmt.Println(goodStyle.Render("Excellent! You've mastered this tempo!"))
		if update.NewTempo != bpm {
			fmt.Printf("Next pass: %d BPM (target %d)\n", update.NewTempo, rec.TargetBPM)
		}
		if update.Unlocked != "" {
			next := scale.ByID(update.Unlocked)
			fmt.Println(goodStyle.Render(fmt.Sprintf("Congratulations! You've unlocked %s!", next.Name)))
		}
	} else {
		fmt.Println("You need 100% accuracy to progress to the next tempo.")
		accs := rec.Accuracies(pos.Name, bpm)
		fmt.Printf("%s best %.1f%%, average %.1f%% over %d attempts\n",
			dimStyle.Render("History:"), progress.Best(accs), progress.Average(accs), len(accs))
	}
	return nil
}

// printBeat narrates the pass as each beat arrives.
func printBeat(ev capture.Event) {
	if ev.CountIn {
		fmt.Printf("Count: %d\n", ev.Beat+1)
		return
	}
	arrow := "↑"
	if ev.Descending {
		arrow = "↓"
	}
	fmt.Printf("%s Play %s (string %d, fret %d)\n",
		arrow, labelStyle.Render(ev.Note.Name), ev.Note.String, ev.Note.Fret)
}
