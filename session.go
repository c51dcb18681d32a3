package cubelayers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubelayers/internal/anim"
	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/history"
	"github.com/SeamusWaldron/cubelayers/internal/interact"
	"github.com/SeamusWaldron/cubelayers/internal/journal"
	"github.com/SeamusWaldron/cubelayers/internal/layer"
	"github.com/SeamusWaldron/cubelayers/internal/render"
	"github.com/SeamusWaldron/cubelayers/internal/solve"
	"github.com/SeamusWaldron/cubelayers/internal/state"
	"github.com/SeamusWaldron/cubelayers/internal/turn"
)

// Version is recorded with each journaled session.
const Version = "0.3.0"

// Session owns one cube and everything needed to work it: the state,
// move history, layer selection and drag state.
//
// Create a Session with New:
//
//	s, err := cubelayers.New(cubelayers.WithActiveLayers(layer.Top, layer.Mid))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	s.OnChange(func(e cubelayers.Event) {
//	    fmt.Println(e.Kind, e.MoveCount)
//	})
type Session struct {
	id     string
	config *config
	log    *logrus.Entry
	gate   gate

	mu            sync.RWMutex
	store         *state.Store
	history       *history.History
	selection     layer.Selection
	drag          interact.Engine
	moveCount     int
	demoMoveCount int

	// Callbacks
	onChange  func(Event)
	onMessage func(string)
}

// New creates a session with a solved cube.
func New(opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	sel, err := layer.NewSelection(cfg.active...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownLayer, err)
	}

	s := &Session{
		id:        uuid.New().String(),
		config:    cfg,
		store:     state.New(),
		history:   history.New(),
		selection: sel,
	}
	s.log = cfg.logger.WithField("session", s.id)

	if cfg.journal != nil {
		if err := cfg.journal.Start(s.id, cfg.notes, Version); err != nil {
			s.log.WithError(err).Warn("journal disabled")
			cfg.journal = nil
		}
	}
	s.redraw()
	return s, nil
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

// Close ends the journal entry for the session.
func (s *Session) Close() error {
	if s.config.journal == nil {
		return nil
	}
	return s.config.journal.End(s.id)
}

// OnChange sets a callback fired after every committed change.
func (s *Session) OnChange(cb func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = cb
}

// OnMessage sets a callback for user-facing messages.
func (s *Session) OnMessage(cb func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMessage = cb
}

// Observers

// IsSolved reports whether the cube equals the reference state.
func (s *Session) IsSolved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.IsSolved()
}

// MoveCount returns the turn counter.
func (s *Session) MoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moveCount
}

// DemoMoveCount returns the counter of the running demo.
func (s *Session) DemoMoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.demoMoveCount
}

// HistoryLen returns the number of recorded turns.
func (s *Session) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Len()
}

// History returns the recorded turns, oldest first.
func (s *Session) History() []turn.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Tokens()
}

// Projection returns the current view k.
func (s *Session) Projection(k layer.Key) layer.Projection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return layer.Project(s.store, k)
}

// Cubies returns every cubie: placed ones in id order, then the holding
// area in sequence order.
func (s *Session) Cubies() []cube.Cubie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(s.store.InCube(), s.store.Holding()...)
}

// Net returns the unfolded sticker layout.
func (s *Session) Net() render.Net {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return render.NetOf(s.store)
}

// ActiveLayers returns the current selection.
func (s *Session) ActiveLayers() layer.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// Dragging returns the drag in progress.
func (s *Session) Dragging() (interact.Drag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drag.Current()
}

// Busy reports whether a mutating operation is running.
func (s *Session) Busy() bool {
	return s.gate.held()
}

// Resize tells the renderer that view changed size and redraws.
func (s *Session) Resize(view render.View, width, height int) {
	if s.config.renderer == nil {
		return
	}
	s.config.renderer.Resize(view, width, height)
	s.redraw()
}

// Turns

// ApplyTurn turns the slice named by tok and records it in the history.
// The transition plays before the change commits; if ctx ends first the
// cube is unchanged.
func (s *Session) ApplyTurn(ctx context.Context, tok turn.Token) error {
	if !tok.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownToken, string(rune(tok)))
	}
	if !s.gate.acquire() {
		return ErrBusy
	}
	defer s.gate.release()
	return s.rotate(ctx, tok, false)
}

// ApplySequence applies each token in turn, stopping at the first error.
func (s *Session) ApplySequence(ctx context.Context, seq []turn.Token) error {
	for _, tok := range seq {
		if err := s.ApplyTurn(ctx, tok); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) rotate(ctx context.Context, tok turn.Token, replay bool) error {
	m, _ := tok.Move()

	s.mu.RLock()
	selected := turn.Select(s.store, m)
	var before *state.Store
	if s.config.renderer != nil {
		before = s.store.Clone()
	}
	s.mu.RUnlock()
	ids := make([]cube.ID, len(selected))
	for i, c := range selected {
		ids[i] = c.ID
	}

	tr := anim.Turn(s.config.durations.Turn, m.Axis, m.Dir, ids)
	if before != nil {
		r := s.config.renderer
		tr.Observe = func(f anim.Frame) {
			render.TurnFrame(r, before, ids, m.Axis, m.Dir, f.Progress)
		}
	}
	if err := s.config.animator.Animate(ctx, tr); err != nil {
		return err
	}

	s.mu.Lock()
	if _, err := turn.Apply(s.store, m); err != nil {
		s.mu.Unlock()
		return err
	}
	if !replay && s.config.moveHistory {
		s.history.Record(tok)
	}
	s.moveCount++
	e := Event{Kind: EventTurn, Token: tok, Replay: replay, MoveCount: s.moveCount, DemoMoveCount: s.demoMoveCount, Solved: s.store.IsSolved()}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"token": tok.String(), "moves": e.MoveCount}).Debug("turn")
	if !replay {
		s.record(journal.Event{Kind: journal.KindTurn, Token: tok.String(), Moves: 1, Solved: e.Solved})
	}
	s.emit(e)
	return nil
}

// Reset restores the reference state and clears history and counters.
func (s *Session) Reset() error {
	if !s.gate.acquire() {
		return ErrBusy
	}
	defer s.gate.release()

	s.mu.Lock()
	s.store.Reset()
	s.history.Clear()
	s.moveCount = 0
	s.demoMoveCount = 0
	s.drag.Cancel()
	s.mu.Unlock()

	s.log.Debug("reset")
	s.record(journal.Event{Kind: journal.KindReset, Solved: true})
	s.emit(Event{Kind: EventReset, Solved: true})
	return nil
}

// ReverseAndReplay undoes the recorded turns by replaying their inverses
// newest first. The history is cleared and the move counter restarts
// from zero, counting the replayed turns. It returns how many turns were
// replayed. Once started it runs to completion regardless of ctx.
func (s *Session) ReverseAndReplay(ctx context.Context) (int, error) {
	if !s.gate.acquire() {
		return 0, ErrBusy
	}
	defer s.gate.release()
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	if s.history.Len() == 0 || s.store.IsSolved() {
		s.mu.Unlock()
		s.log.Info(MsgNothingToReplay)
		s.message(MsgNothingToReplay)
		return 0, ErrNoOp
	}
	seq := s.history.Inverse()
	s.history.Clear()
	s.moveCount = 0
	s.mu.Unlock()

	s.log.WithField("moves", len(seq)).Info("replaying inverse history")
	for i, tok := range seq {
		if err := s.rotate(ctx, tok, true); err != nil {
			return i, fmt.Errorf("replay %s: %w", tok, err)
		}
	}

	solved := s.IsSolved()
	s.record(journal.Event{Kind: journal.KindReplay, Moves: len(seq), Detail: turn.FormatSequence(seq), Solved: solved})
	s.emit(Event{Kind: EventReplay, Moves: len(seq), MoveCount: s.MoveCount(), Solved: solved})
	return len(seq), nil
}

// SetActiveLayers replaces the layer selection. Any of the four views may
// be selected; duplicates are ignored.
func (s *Session) SetActiveLayers(keys ...layer.Key) error {
	sel, err := layer.NewSelection(keys...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownLayer, err)
	}
	s.mu.Lock()
	s.selection = sel
	s.mu.Unlock()

	s.log.WithField("layer", sel.String()).Debug("selection changed")
	s.emit(Event{Kind: EventSelection})
	return nil
}

// ToggleLayer adds or removes k from the selection.
func (s *Session) ToggleLayer(k layer.Key) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, string(k))
	}
	return s.SetActiveLayers(s.ActiveLayers().Toggle(k).Keys()...)
}

// Drag and drop

// BeginDrag picks up id from the view from.
func (s *Session) BeginDrag(id cube.ID, from layer.Key) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, string(from))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag.Begin(s.store, id, from)
}

// BeginDragAt picks up the cubie under pt in view.
func (s *Session) BeginDragAt(pt layer.Point, view render.View) error {
	if s.config.resolver == nil {
		return ErrNoResolver
	}
	id, ok := s.config.resolver.ResolvePointer(pt, view)
	if !ok {
		return fmt.Errorf("%w: nothing under pointer", interact.ErrNotInLayer)
	}
	return s.BeginDrag(id, layer.Key(view))
}

// CancelDrag abandons the drag in progress.
func (s *Session) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.Cancel()
}

// Drop releases the dragged cubie over target, on the cubie onto or on
// empty space when onto is empty. A drop the selection does not permit
// returns ErrInvalidSwap and changes nothing. The drag ends whatever the
// outcome.
func (s *Session) Drop(ctx context.Context, target layer.Key, onto cube.ID) (interact.Action, error) {
	if !s.gate.acquire() {
		s.CancelDrag()
		return interact.ActionNone, ErrBusy
	}
	defer s.gate.release()

	s.mu.Lock()
	d, err := s.drag.Release()
	if err != nil {
		s.mu.Unlock()
		return interact.ActionNone, err
	}
	plan, err := s.planDrop(d, target, onto)
	s.mu.Unlock()
	if err != nil {
		s.log.WithFields(logrus.Fields{"cubie": string(d.ID), "layer": string(target)}).Debug(err)
		return interact.ActionNone, err
	}
	if plan.Action == interact.ActionNone {
		return interact.ActionNone, nil
	}

	var tr anim.Transition
	if plan.Action == interact.ActionSwap {
		same := d.Source == target && target != layer.Holding
		tr = anim.Swap(s.config.durations.Swap, same, d.ID, onto)
	} else {
		tr = anim.Fade(s.config.durations.Swap, d.ID)
	}
	if err := s.config.animator.Animate(ctx, tr); err != nil {
		return interact.ActionNone, err
	}

	s.mu.Lock()
	if err := interact.Execute(s.store, plan); err != nil {
		s.mu.Unlock()
		return interact.ActionNone, fmt.Errorf("%w: %v", ErrInvalidSwap, err)
	}
	e := Event{Cubie: d.ID, MoveCount: s.moveCount, DemoMoveCount: s.demoMoveCount, Solved: s.store.IsSolved()}
	s.mu.Unlock()

	je := journal.Event{Cubie: string(d.ID), Target: string(onto), Solved: e.Solved}
	if plan.Action == interact.ActionSwap {
		e.Kind, e.With = EventSwap, onto
		je.Kind = journal.KindSwap
	} else {
		e.Kind = EventHolding
		je.Kind, je.Target = journal.KindHolding, string(layer.Holding)
	}
	s.log.WithFields(logrus.Fields{"cubie": string(d.ID), "layer": string(target)}).Debug(plan.Action)
	s.record(je)
	s.emit(e)
	return plan.Action, nil
}

// DropAt releases the dragged cubie over pt in view.
func (s *Session) DropAt(ctx context.Context, pt layer.Point, view render.View) (interact.Action, error) {
	if s.config.resolver == nil {
		s.CancelDrag()
		return interact.ActionNone, ErrNoResolver
	}
	k := layer.Key(view)
	if !k.Valid() {
		s.CancelDrag()
		return interact.ActionNone, fmt.Errorf("%w: cannot drop on %s", ErrInvalidSwap, view)
	}
	onto, _ := s.config.resolver.ResolvePointer(pt, view)
	return s.Drop(ctx, k, onto)
}

// planDrop must be called with s.mu held.
func (s *Session) planDrop(d interact.Drag, target layer.Key, onto cube.ID) (interact.Plan, error) {
	if !target.Valid() {
		return interact.Plan{}, fmt.Errorf("%w: %v", ErrUnknownLayer, target)
	}
	if !layer.Project(s.store, d.Source).Contains(d.ID) {
		return interact.Plan{}, fmt.Errorf("%w: %s left %s", ErrInvalidSwap, d.ID, d.Source)
	}
	if onto != "" && !layer.Project(s.store, target).Contains(onto) {
		return interact.Plan{}, fmt.Errorf("%w: %s is not in %s", ErrInvalidSwap, onto, target)
	}
	plan, err := interact.Resolve(s.selection, d, interact.Target{Layer: target, Onto: onto})
	if err != nil {
		return plan, fmt.Errorf("%w: %v", ErrInvalidSwap, err)
	}
	return plan, nil
}

// Demonstration

// RunTwoLayerSolveDemo plays the scripted two-layer solve and returns the
// number of demo moves it made. layers overrides the current selection
// for this run only; it must name exactly two layers, both horizontal. The cube
// always ends in the reference state with history and both counters
// cleared. Once started it runs to completion regardless of ctx.
func (s *Session) RunTwoLayerSolveDemo(ctx context.Context, layers ...layer.Key) (int, error) {
	sel := s.ActiveLayers()
	if len(layers) > 0 {
		var err error
		if sel, err = layer.NewSelection(layers...); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrUnknownLayer, err)
		}
	}

	if !s.gate.acquire() {
		return 0, ErrBusy
	}
	defer s.gate.release()
	ctx = context.WithoutCancel(ctx)

	r := &demoRunner{s: s}
	if _, err := solve.Inactive(sel); err == nil && !s.IsSolved() {
		s.log.WithField("layer", sel.String()).Info(MsgDemoStarted)
		s.message(MsgDemoStarted)
	}
	moves, err := solve.TwoLayer(ctx, r, sel, s.config.timing)
	switch {
	case errors.Is(err, solve.ErrPrecondition):
		s.log.WithField("layer", sel.String()).Warn(MsgSelectTwo)
		s.message(MsgSelectTwo)
		return 0, fmt.Errorf("%w: %s", ErrPrecondition, MsgSelectTwo)
	case errors.Is(err, solve.ErrAlreadySolved):
		s.log.Info(MsgAlreadySolved)
		s.message(MsgAlreadySolved)
		return 0, ErrNoOp
	case err != nil:
		s.log.WithError(err).Error("demo step failed")
		return moves, err
	}

	s.log.WithField("moves", moves).Info(MsgDemoFinished)
	s.message(MsgDemoFinished)
	s.record(journal.Event{Kind: journal.KindDemo, Moves: moves, Detail: sel.String(), Solved: true})
	s.emit(Event{Kind: EventDemo, Moves: moves, Solved: true})
	return moves, nil
}

// demoRunner gives the demo script access to the session state.
type demoRunner struct {
	s *Session
}

func (r *demoRunner) Read(fn func(*state.Store)) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	fn(r.s.store)
}

// Mutate runs fn on a copy and swaps it in only if fn succeeds and the
// result is consistent.
func (r *demoRunner) Mutate(st solve.Step, fn func(*state.Store) error) error {
	s := r.s
	s.mu.Lock()
	next := s.store.Clone()
	if err := fn(next); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := next.Check(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.store = next
	s.demoMoveCount += st.Moves
	if st.Kind == solve.StepReset {
		s.history.Clear()
		s.moveCount = 0
		s.demoMoveCount = 0
		s.drag.Cancel()
	}
	e := Event{Kind: EventDemoStep, Cubie: st.Cubie, Step: st.Kind, MoveCount: s.moveCount, DemoMoveCount: s.demoMoveCount, Solved: s.store.IsSolved()}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"cubie": string(st.Cubie), "moves": e.DemoMoveCount}).Trace(st.Kind)
	s.emit(e)
	return nil
}

func (r *demoRunner) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Internal helpers

func (s *Session) emit(e Event) {
	s.redraw()
	s.mu.RLock()
	cb := s.onChange
	s.mu.RUnlock()
	if cb != nil {
		cb(e)
	}
}

func (s *Session) message(msg string) {
	s.mu.RLock()
	cb := s.onMessage
	s.mu.RUnlock()
	if cb != nil {
		cb(msg)
	}
}

func (s *Session) redraw() {
	if s.config.renderer == nil {
		return
	}
	s.mu.RLock()
	snap := s.store.Clone()
	s.mu.RUnlock()
	render.All(s.config.renderer, snap)
}

func (s *Session) record(e journal.Event) {
	if s.config.journal == nil {
		return
	}
	e.SessionID = s.id
	if err := s.config.journal.Append(e); err != nil {
		s.log.WithError(err).Warn("journal append failed")
	}
}
