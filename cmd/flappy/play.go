package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/sim"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagFPSMeter      bool
	flagShareDir      string
	flagScreenshotDir string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Flappy Bird.

Controls:
  Up/W/Space  - Flap (also starts a session)
  Down/J      - Dive
  Enter/R     - Restart (after game over)
  S           - Export a share card (after game over)
  Ctrl+S      - Save a text screenshot
  ?           - Toggle help
  Q/Esc       - Quit

Examples:
  flappy play
  flappy play --seed 42
  flappy play --config ./my-flappy.toml --fps-meter`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, playCmd} {
		cmd.Flags().BoolVar(&flagFPSMeter, "fps-meter", false, "Show measured frames per second")
		cmd.Flags().StringVar(&flagShareDir, "share-dir", "~/.arcade/shares", "Directory for exported share cards")
		cmd.Flags().StringVar(&flagScreenshotDir, "screenshot-dir", "~/.arcade/screenshots", "Directory for text screenshots")
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLogger()
	defer closeLog()

	rtCfg := core.DefaultConfig()
	rtCfg.TickRate = flagFPS
	rtCfg.Seed = flagSeed
	if rtCfg.Seed == 0 {
		rtCfg.Seed = time.Now().UnixNano()
	}

	// Get terminal size; the model follows resizes afterwards
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rtCfg.ScreenW = w
		rtCfg.ScreenH = h
	}

	// Open score storage. Without it the high score lives only for this run.
	var kv highscore.KV
	var recorder tui.ScoreRecorder
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		kv = highscore.NewMemoryKV()
	} else {
		kv = store
		recorder = store
	}

	keeper := highscore.NewKeeper(kv, cfg.Storage.HighScoreKey, cfg.Storage.LegacyKey, logger)
	game := sim.New(cfg, rand.New(rand.NewSource(rtCfg.Seed)), keeper)

	logger.Debug("starting", "seed", rtCfg.Seed, "fps", rtCfg.TickRate, "screen", fmt.Sprintf("%dx%d", rtCfg.ScreenW, rtCfg.ScreenH))

	runErr := tui.Run(game, recorder, logger, tui.Options{
		Runtime:       rtCfg,
		MaxDelta:      cfg.MaxDelta(),
		ShowFPS:       flagFPSMeter,
		ShareDir:      expandHome(flagShareDir),
		ScreenshotDir: expandHome(flagScreenshotDir),
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
