package history

import (
	"testing"
	"time"

	"github.com/SeamusWaldron/cubelayers/internal/state"
	"github.com/SeamusWaldron/cubelayers/internal/turn"
)

func TestInverseReversesAndFlipsCase(t *testing.T) {
	h := New()
	for _, tok := range []turn.Token{'R', 'U', 'm', 'f'} {
		h.Record(tok)
	}
	if got := turn.FormatSequence(h.Inverse()); got != "F M u r" {
		t.Errorf("inverse = %q, want %q", got, "F M u r")
	}
	if h.Len() != 4 {
		t.Errorf("Inverse changed the history length: %d", h.Len())
	}
	h.Clear()
	if h.Len() != 0 || len(h.Inverse()) != 0 {
		t.Error("Clear left entries")
	}
}

func TestInverseUndoesTurns(t *testing.T) {
	s := state.New()
	var h History
	seq, err := turn.ParseSequence("R U F d M e S b L l")
	if err != nil {
		t.Fatal(err)
	}
	for _, tok := range seq {
		if _, err := turn.ApplyToken(s, tok); err != nil {
			t.Fatal(err)
		}
		h.Record(tok)
	}
	if s.IsSolved() {
		t.Fatal("sequence should scramble the cube")
	}
	if err := turn.ApplySequence(s, h.Inverse()); err != nil {
		t.Fatal(err)
	}
	if !s.IsSolved() {
		t.Error("inverse sequence did not restore the cube")
	}
}

func TestRecordStampsTime(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	h := &History{now: func() time.Time { return at }}
	h.Record('U')
	e := h.Entries()
	if len(e) != 1 || !e[0].Time.Equal(at) || e[0].Token != 'U' {
		t.Errorf("entries = %v", e)
	}
	if h.String() != "U" {
		t.Errorf("String = %q", h.String())
	}
}
