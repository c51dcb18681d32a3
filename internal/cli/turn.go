package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubelayers"
	"github.com/SeamusWaldron/cubelayers/internal/layer"
	"github.com/SeamusWaldron/cubelayers/internal/render"
	"github.com/SeamusWaldron/cubelayers/internal/turn"
)

var (
	turnReverse bool
	turnList    bool
	turnLayers  bool
)

var turnCmd = &cobra.Command{
	Use:   "turn [moves | algorithm]...",
	Short: "Apply moves to a solved cube and print the result",
	Long: `Apply a move sequence, or a named algorithm, to a solved cube and print
the unfolded cube.

Examples:
  cubelayers turn "R U r u"
  cubelayers turn commutator --layers
  cubelayers turn scramble --reverse
  cubelayers turn --list`,
	RunE: runTurn,
}

func init() {
	rootCmd.AddCommand(turnCmd)
	turnCmd.Flags().BoolVar(&turnReverse, "reverse", false, "Replay the moves in reverse afterwards")
	turnCmd.Flags().BoolVar(&turnList, "list", false, "List the named algorithms")
	turnCmd.Flags().BoolVar(&turnLayers, "layers", false, "Also print each layer view")
}

func runTurn(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if turnList {
		for _, name := range turn.Algorithms() {
			seq, _ := turn.Lookup(name)
			fmt.Fprintf(out, "  %-20s %s\n", name, turn.FormatSequence(seq))
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("specify moves or an algorithm name (see --list)")
	}

	seq, err := turn.Resolve(strings.Join(args, " "))
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := cubelayers.New(cubelayers.WithLogger(log))
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.ApplySequence(ctx, seq); err != nil {
		return err
	}
	fmt.Fprintf(out, "Moves: %s (%d)\n\n", moveStyle.Render(turn.FormatSequence(seq)), s.MoveCount())
	printCube(out, s, turnLayers)

	if turnReverse {
		n, err := s.ReverseAndReplay(ctx)
		if errors.Is(err, cubelayers.ErrNoOp) {
			fmt.Fprintln(out, "\n"+cubelayers.MsgNothingToReplay)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nReplayed %d moves in reverse.\n\n", n)
		printCube(out, s, turnLayers)
	}
	return nil
}

// printCube writes the plain net and, optionally, every layer view.
func printCube(w io.Writer, s *cubelayers.Session, layers bool) {
	net := s.Net()
	fmt.Fprint(w, net.String())
	state := "scrambled"
	if s.IsSolved() {
		state = "solved"
	}
	fmt.Fprintf(w, "\n%s\n", statusStyle.Render(state))

	if !layers {
		return
	}
	for _, k := range layer.Keys {
		fmt.Fprintf(w, "\n%s\n", render.LayerView(k))
		fmt.Fprint(w, plainLayer(s.Projection(k)))
	}
}

// plainLayer lays a view out as text, one cubie id per cell.
func plainLayer(p layer.Projection) string {
	var b strings.Builder
	if p.Key == layer.Holding {
		if p.Len() == 0 {
			return "(empty)\n"
		}
		for _, pl := range p.Placements {
			fmt.Fprintf(&b, "%-4s", pl.Cubie.ID)
		}
		b.WriteByte('\n')
		return b.String()
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if c, ok := p.At(col, row); ok {
				fmt.Fprintf(&b, "%-4s", c.ID)
			} else {
				b.WriteString(".   ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
