package turn

import (
	"fmt"
	"sort"
	"strings"
)

// Named sequences accepted wherever a token sequence is.
//
// Example:
//
//	seq, _ := turn.Lookup("commutator") // R U r u
var algorithms = map[string]string{
	"commutator":         "R U r u",
	"inverse-commutator": "U R u r",
	"scramble":           "R U F d L b M e S r D f",
	"slices":             "M E S",
}

// Lookup returns the named sequence.
func Lookup(name string) ([]Token, bool) {
	s, ok := algorithms[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	seq, err := ParseSequence(s)
	if err != nil {
		return nil, false
	}
	return seq, true
}

// Algorithms returns the known sequence names, sorted.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for n := range algorithms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve parses s as a sequence name or, failing that, as tokens.
func Resolve(s string) ([]Token, error) {
	if seq, ok := Lookup(strings.TrimSpace(s)); ok {
		return seq, nil
	}
	seq, err := ParseSequence(s)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", s, err)
	}
	return seq, nil
}
