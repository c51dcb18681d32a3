package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubelayers"
	"github.com/SeamusWaldron/cubelayers/internal/turn"
)

var (
	demoScramble string
	demoLayers   string
	demoFast     bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Scramble the cube and run the two-layer solve demo",
	Long: `Scramble a solved cube and run the scripted two-layer solve, printing each
step as it happens.

Examples:
  cubelayers demo
  cubelayers demo --scramble "R U F d" --layers mid,bot
  cubelayers demo --fast`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVar(&demoScramble, "scramble", "scramble", "Moves or algorithm name to scramble with")
	demoCmd.Flags().StringVar(&demoLayers, "layers", "", "The two layers to solve (default: active_layers)")
	demoCmd.Flags().BoolVar(&demoFast, "fast", false, "Skip the pauses between steps")
}

func runDemo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	seq, err := turn.Resolve(demoScramble)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if demoLayers != "" {
		cfg.ActiveLayers = strings.Split(demoLayers, ",")
	}
	log, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
	}

	opts, err := sessionOptions(cfg, log, j)
	if err != nil {
		return err
	}
	if demoFast {
		opts = append(opts, cubelayers.WithTiming(0, 0))
	}
	s, err := cubelayers.New(opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.ApplySequence(ctx, seq); err != nil {
		return err
	}
	fmt.Fprintf(out, "Scrambled with %s\n\n", moveStyle.Render(turn.FormatSequence(seq)))
	printCube(out, s, false)
	fmt.Fprintln(out)

	s.OnMessage(func(msg string) { fmt.Fprintln(out, titleStyle.Render(msg)) })
	s.OnChange(func(e cubelayers.Event) {
		if e.Kind != cubelayers.EventDemoStep {
			return
		}
		fmt.Fprintf(out, "  %-10s %-4s moves=%d\n", e.Step, e.Cubie, e.DemoMoveCount)
	})

	moves, err := s.RunTwoLayerSolveDemo(ctx)
	if errors.Is(err, cubelayers.ErrNoOp) {
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nDemo moves: %d\n\n", moves)
	printCube(out, s, false)
	return nil
}
