package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/audio"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/config"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/progress"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/trainer"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Global configuration (loaded at init time)
	globalConfig  *config.Config
	configLoadErr error
)

var rootCmd = &cobra.Command{
	Use:   "pentatonic",
	Short: "Pentatonic guitar scale trainer",
	Long: `pentatonic - practice the five A minor pentatonic positions.

The trainer plays a metronome while you play a position ascending and
descending, one note per beat, listening through your microphone. Every
note is pitch-checked against the expected one; a perfect pass raises
your tempo toward the target and unlocks the next position.

Progress is stored under ~/.pentatonic and survives restarts.

Examples:
  # Hear position 1 at your current tempo
  pentatonic demo position1

  # Play a scored pass of position 1
  pentatonic practice position1

  # Check how you are doing
  pentatonic stats`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.pentatonic/config.yaml)")
}

func initConfig() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg, err := config.Load(configPath)
	if err != nil {
		// Defer the error so commands that never touch the config,
		// like 'pentatonic version', still work.
		configLoadErr = err
		return
	}
	globalConfig = cfg
}

// getConfig returns the loaded configuration.
func getConfig() (*config.Config, error) {
	if configLoadErr != nil {
		return nil, fmt.Errorf("load config: %w", configLoadErr)
	}
	if globalConfig == nil {
		return nil, fmt.Errorf("config not initialized")
	}
	return globalConfig, nil
}

// openController opens the progress store and loads the progression.
// The returned cleanup closes the store.
func openController(ctx context.Context) (*progress.Controller, func(), error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, nil, err
	}
	dir, err := cfg.Dir()
	if err != nil {
		return nil, nil, err
	}
	store, err := progress.NewBadgerStore(filepath.Join(dir, "progress"))
	if err != nil {
		return nil, nil, err
	}
	ctrl := progress.NewController(ctx, store, cfg.TempoStep, slog.Default())
	return ctrl, func() { store.Close() }, nil
}

// newTrainer assembles a device-backed trainer. The returned cleanup
// releases the audio engine and the progress store.
func newTrainer(ctx context.Context) (*trainer.Trainer, func(), error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, nil, err
	}
	ctrl, closeStore, err := openController(ctx)
	if err != nil {
		return nil, nil, err
	}
	engine, err := audio.NewEngine(cfg.SampleRate, cfg.ChunkSize)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	cleanup := func() {
		engine.Close()
		closeStore()
	}
	return trainer.New(cfg, trainer.EngineAudio{Engine: engine}, ctrl, slog.Default()), cleanup, nil
}
