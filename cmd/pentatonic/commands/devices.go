package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio devices",
	RunE:  runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	engine, err := audio.NewEngine(cfg.SampleRate, cfg.ChunkSize)
	if err != nil {
		return err
	}
	defer engine.Close()

	devices, err := audio.Devices()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Audio Devices"))
	for _, d := range devices {
		var marks string
		if d.DefaultInput {
			marks += goodStyle.Render(" [default input]")
		}
		if d.DefaultOutput {
			marks += goodStyle.Render(" [default output]")
		}
		fmt.Printf("%s%s\n", labelStyle.Render(d.Name), marks)
		fmt.Printf("  %s\n", dimStyle.Render(fmt.Sprintf("in: %d  out: %d  rate: %.0f Hz",
			d.InputChannels, d.OutputChannels, d.SampleRate)))
	}
	return nil
}
