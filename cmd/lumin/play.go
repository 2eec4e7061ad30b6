package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/platform/tui"
)

var (
	flagHold  int
	flagLevel int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Open the level menu and play.

Controls:
  Left/Q/A, Right/D  - Move
  Up/W/Space         - Jump (twice with the rune)
  E                  - Interact
  F                  - Burst (reveals hidden platforms)
  C / X              - Fire / Overcharge
  I J K L / U        - Nudge aim / aim ahead
  Enter              - Continue dialogue
  Esc/P              - Pause (R restart, M menu)
  Ctrl+C             - Quit

Terminals only report key presses, so a press holds the key for
--hold ticks. Typing 001 during play opens the command console.

Examples:
  lumin play
  lumin play --level 3
  lumin play --hold 12 --fps 30`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagHold, "hold", 8, "Ticks a key press stays held")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start directly at a level id")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	session, cfg, err := newSession(logger)
	if err != nil {
		return err
	}

	if flagLevel != 0 {
		idx := -1
		for i, lvl := range session.Levels() {
			if lvl.ID == flagLevel {
				idx = i
			}
		}
		if idx < 0 {
			return fmt.Errorf("unknown level %d; run 'lumin levels list'", flagLevel)
		}
		if err := session.Start(idx); err != nil {
			return err
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	return tui.Run(session, tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		World:  cfg.World,
		Hold:   flagHold,
		Logger: logger,
	})
}
