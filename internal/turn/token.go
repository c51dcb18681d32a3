// Package turn implements quarter turns of a cube slice and the
// single-letter move notation that names them.
package turn

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
)

// ErrUnknownToken is returned for a letter outside the move alphabet.
var ErrUnknownToken = errors.New("turn: unknown move token")

// Token is a single move letter. Upper case turns a slice one way, lower
// case turns the same slice back.
type Token rune

// Move is a quarter turn of the slice at Layer along Axis.
type Move struct {
	Axis  cube.Axis
	Layer int
	Dir   cube.Direction
}

func (m Move) String() string {
	return fmt.Sprintf("%v%+d/%+d", m.Axis, m.Layer, m.Dir)
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	m.Dir = m.Dir.Opposite()
	return m
}

// moves binds the upper-case tokens. M and E turn opposite to the
// positive axis rotation.
var moves = map[Token]Move{
	'U': {Axis: cube.Y, Layer: 1, Dir: cube.Positive},
	'D': {Axis: cube.Y, Layer: -1, Dir: cube.Positive},
	'L': {Axis: cube.X, Layer: -1, Dir: cube.Positive},
	'R': {Axis: cube.X, Layer: 1, Dir: cube.Positive},
	'F': {Axis: cube.Z, Layer: 1, Dir: cube.Positive},
	'B': {Axis: cube.Z, Layer: -1, Dir: cube.Positive},
	'M': {Axis: cube.X, Layer: 0, Dir: cube.Negative},
	'E': {Axis: cube.Y, Layer: 0, Dir: cube.Negative},
	'S': {Axis: cube.Z, Layer: 0, Dir: cube.Positive},
}

// Alphabet lists all 18 tokens.
var Alphabet = []Token{
	'U', 'u', 'D', 'd', 'L', 'l', 'R', 'r', 'F', 'f', 'B', 'b',
	'M', 'm', 'E', 'e', 'S', 's',
}

// Move returns the quarter turn named by t. Only the ASCII letters of
// the alphabet name a move.
func (t Token) Move() (Move, bool) {
	if t >= 'a' && t <= 'z' {
		m, ok := moves[t-'a'+'A']
		return m.Inverse(), ok
	}
	m, ok := moves[t]
	return m, ok
}

// Valid reports whether t is in the alphabet.
func (t Token) Valid() bool {
	_, ok := t.Move()
	return ok
}

// Inverse flips the case of t.
func (t Token) Inverse() Token {
	switch {
	case t >= 'a' && t <= 'z':
		return t - 'a' + 'A'
	case t >= 'A' && t <= 'Z':
		return t - 'A' + 'a'
	}
	return t
}

func (t Token) String() string {
	return string(rune(t))
}

// Parse parses a single token.
func Parse(s string) (Token, error) {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownToken, s)
	}
	t := Token(r[0])
	if !t.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownToken, s)
	}
	return t, nil
}

// ParseSequence parses a run of tokens. Whitespace and commas between
// tokens are ignored, so "R U r u" and "RUru" are the same sequence.
func ParseSequence(s string) ([]Token, error) {
	var out []Token
	for _, r := range s {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		t := Token(r)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownToken, string(r))
		}
		out = append(out, t)
	}
	return out, nil
}

// FormatSequence joins tokens with single spaces.
func FormatSequence(ts []Token) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
