package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lumin/internal/event"
	"github.com/vovakirdan/lumin/internal/platform/headless"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <script.yaml>",
	Short: "Run a key script without a terminal",
	Long: `Play a scripted run and print every simulation event.

A script names the starting level and a list of steps, each holding
keys for a number of ticks:

  level: 1
  steps:
    - keys: [right]
      ticks: 40
    - keys: [jump]
    - command: virus

With a fixed --seed two runs of the same script print the same log.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	script, err := headless.LoadScript(args[0])
	if err != nil {
		return err
	}
	if flagSeed == 0 {
		flagSeed = 1
	}
	session, _, err := newSession(logger)
	if err != nil {
		return err
	}

	sum, err := headless.NewRunner(session, cmd.OutOrStdout(), logger).Run(script)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "ticks %d  status %s  level %d  hp %d  books %d/%d\n",
		sum.Ticks, sum.Status, sum.LevelID, sum.PlayerHP, sum.BooksRead, sum.BooksTotal)

	kinds := make([]event.Kind, 0, len(sum.Events))
	for k := range sum.Events {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Fprintf(out, "  %-16s %d\n", k, sum.Events[k])
	}
	return nil
}
