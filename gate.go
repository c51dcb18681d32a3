package cubelayers

import "sync/atomic"

// gate admits one mutating operation at a time. Callers that lose the
// race fail immediately rather than queue.
type gate struct {
	busy atomic.Bool
}

func (g *gate) acquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *gate) release() {
	g.busy.Store(false)
}

func (g *gate) held() bool {
	return g.busy.Load()
}
