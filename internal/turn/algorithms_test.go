package turn

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/cubelayers/internal/state"
)

func TestNamedAlgorithmsParse(t *testing.T) {
	for _, name := range Algorithms() {
		seq, ok := Lookup(name)
		if !ok || len(seq) == 0 {
			t.Errorf("%s: did not parse", name)
		}
	}
}

func TestResolve(t *testing.T) {
	seq, err := Resolve("Commutator")
	if err != nil {
		t.Fatal(err)
	}
	if FormatSequence(seq) != "R U r u" {
		t.Errorf("got %q", FormatSequence(seq))
	}
	if seq, err = Resolve("f F"); err != nil || len(seq) != 2 {
		t.Errorf("tokens: %v %v", seq, err)
	}
	if _, err := Resolve("nope"); !errors.Is(err, ErrUnknownToken) {
		t.Errorf("got %v", err)
	}
}

func TestScrambleScrambles(t *testing.T) {
	s := state.New()
	seq, _ := Lookup("scramble")
	if err := ApplySequence(s, seq); err != nil {
		t.Fatal(err)
	}
	if s.IsSolved() {
		t.Error("scramble left the cube solved")
	}
}
