// Package cubelayers is the state and transform engine behind a 3x3x3
// cube that can be worked two ways: by turning slices of the 3D cube, or
// by dragging cubies between flat views of its three horizontal layers
// and a holding area.
//
// # Quick Start
//
//	s, err := cubelayers.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	ctx := context.Background()
//	for _, tok := range []turn.Token{'R', 'U', 'r', 'u'} {
//	    _ = s.ApplyTurn(ctx, tok)
//	}
//	fmt.Println(s.Net())
//
//	// Undo everything by replaying the inverse.
//	_, _ = s.ReverseAndReplay(ctx)
//	fmt.Println("Solved:", s.IsSolved())
//
// # Turns
//
// Eighteen single-letter tokens address the six faces and three middle
// slices. Upper case turns one way, lower case the other:
//
//	U u D d L l R r F f B b M m E e S s
//
// # Layers and the holding area
//
// Projection returns the flat view of one layer ("top", "mid", "bot") or
// of the holding area ("bay"). Cubies move between views with BeginDrag
// and Drop; which views may exchange cubies depends on the active layer
// selection set with SetActiveLayers.
//
// # Demonstrations
//
// RunTwoLayerSolveDemo walks a scrambled cube back to solved two layers
// at a time, then resets to the reference state.
//
// # Concurrency
//
// Turns, drops, resets, replays and demos are single flight: while one
// runs, the others fail with ErrBusy. Observers may be called from any
// goroutine.
package cubelayers
