// Package history records committed face turns and derives the sequence
// that undoes them.
package history

import (
	"time"

	"github.com/SeamusWaldron/cubelayers/internal/turn"
)

// Entry is one recorded turn.
type Entry struct {
	Token turn.Token
	Time  time.Time
}

// History is an append-only list of turns. The zero value is ready to use.
// It is not safe for concurrent use.
type History struct {
	entries []Entry
	now     func() time.Time
}

// New creates an empty history.
func New() *History {
	return &History{now: time.Now}
}

// Record appends tok.
func (h *History) Record(tok turn.Token) {
	now := time.Now
	if h.now != nil {
		now = h.now
	}
	h.entries = append(h.entries, Entry{Token: tok, Time: now()})
}

// Len returns the number of recorded turns.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the recorded turns, oldest first.
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}

// Tokens returns the recorded tokens, oldest first.
func (h *History) Tokens() []turn.Token {
	out := make([]turn.Token, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Token
	}
	return out
}

// Clear drops every entry.
func (h *History) Clear() {
	h.entries = nil
}

// Inverse returns the tokens that undo the history: newest first, each
// with its case flipped.
func (h *History) Inverse() []turn.Token {
	return Invert(h.Tokens())
}

// Invert reverses seq and inverts each token.
func Invert(seq []turn.Token) []turn.Token {
	out := make([]turn.Token, len(seq))
	for i, tok := range seq {
		out[len(seq)-1-i] = tok.Inverse()
	}
	return out
}

// String formats the history in notation.
func (h *History) String() string {
	return turn.FormatSequence(h.Tokens())
}
