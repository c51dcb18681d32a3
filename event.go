package cubelayers

import (
	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/solve"
	"github.com/SeamusWaldron/cubelayers/internal/turn"
)

// EventKind identifies what changed.
type EventKind int

const (
	EventTurn EventKind = iota
	EventSwap
	EventHolding
	EventReset
	EventReplay
	EventDemoStep
	EventDemo
	EventSelection
)

func (k EventKind) String() string {
	switch k {
	case EventTurn:
		return "turn"
	case EventSwap:
		return "swap"
	case EventHolding:
		return "holding"
	case EventReset:
		return "reset"
	case EventReplay:
		return "replay"
	case EventDemoStep:
		return "demo-step"
	case EventDemo:
		return "demo"
	case EventSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// Event is delivered to OnChange after each committed change.
type Event struct {
	Kind EventKind

	Token  turn.Token // EventTurn
	Replay bool       // EventTurn during ReverseAndReplay
	Cubie  cube.ID    // EventSwap, EventHolding, EventDemoStep
	With   cube.ID    // EventSwap
	Step   solve.StepKind

	Moves         int // EventReplay, EventDemo
	MoveCount     int
	DemoMoveCount int
	Solved        bool
}

// Messages shown to the user.
const (
	MsgNothingToReplay = "Cube is already solved or no moves to reverse."
	MsgAlreadySolved   = "Cube is already solved."
	MsgSelectTwo       = "Please select exactly two layers to solve."
	MsgDemoStarted     = "Starting 2-layer puzzle solve..."
	MsgDemoFinished    = "2D puzzle solve finished."
)

// Welcome is the introductory help, one titled paragraph per entry.
var Welcome = []struct {
	Title, Body string
}{
	{"Welcome to the Interactive Rubik's Cube!", "This demo explores the relationship between a 3D Rubik's Cube and its 2D representation."},
	{"3D Cube Interaction", "Use the keys U D L R F B and M E S to turn slices; lower case turns the other way."},
	{"2D Layer Interaction", "The 2D views show the layers of the cube. You can drag and drop cubies between the active layers and the holding area."},
	{"Solving the Puzzle", "Replay reverses your moves on the 3D cube. The demo shows the cube being solved two layers at a time."},
}
