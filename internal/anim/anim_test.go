package anim

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEasingEndpoints(t *testing.T) {
	for name, e := range map[string]Ease{"linear": Linear, "cubic": EaseOutCubic, "sine": EaseInOutSine} {
		if !near(e(0), 0) || !near(e(1), 1) {
			t.Errorf("%s: e(0)=%v e(1)=%v", name, e(0), e(1))
		}
	}
	if !near(EaseInOutSine(0.5), 0.5) {
		t.Errorf("sine midpoint %v", EaseInOutSine(0.5))
	}
	if !near(EaseOutCubic(0.5), 0.875) {
		t.Errorf("cubic midpoint %v", EaseOutCubic(0.5))
	}
}

func TestSampleClamps(t *testing.T) {
	tw := Tween{Duration: 100 * time.Millisecond, Ease: EaseOutCubic}
	if tw.Sample(-time.Second) != 0 || tw.Sample(time.Second) != 1 {
		t.Error("sample should clamp to [0,1]")
	}
	if (Tween{}).Sample(0) != 1 {
		t.Error("zero duration tween is already complete")
	}
}

func TestRunEndsAtOne(t *testing.T) {
	tw := Tween{Duration: 20 * time.Millisecond, Ease: EaseInOutSine}
	var got []float64
	if err := tw.Run(context.Background(), time.Millisecond, func(p float64) { got = append(got, p) }); err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 || got[len(got)-1] != 1 {
		t.Fatalf("frames = %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Errorf("progress went backwards at %d: %v", i, got)
		}
	}
}

func TestRunHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tw := Tween{Duration: time.Hour}
	if err := tw.Run(ctx, time.Millisecond, func(float64) {}); err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestSwapPhases(t *testing.T) {
	same := Swap(300*time.Millisecond, true, cube.UF, cube.UB)
	if same.Kind != KindSwap || len(same.Phases) != 3 {
		t.Fatalf("same-layer swap = %+v", same)
	}
	if same.Phases[0].Name != "lift" || same.Phases[2].Name != "lower" {
		t.Errorf("phases = %v", same.Phases)
	}
	if same.Duration() != 300*time.Millisecond {
		t.Errorf("duration %v", same.Duration())
	}
	cross := Swap(280*time.Millisecond, false, cube.UF, cube.DF)
	if cross.Kind != KindFade || len(cross.Phases) != 1 {
		t.Errorf("cross-layer swap = %+v", cross)
	}
}

func TestTickerReportsEveryPhase(t *testing.T) {
	seen := map[int]bool{}
	tk := Ticker{Interval: time.Millisecond, OnFrame: func(f Frame) { seen[f.Phase] = true }}
	tr := Swap(6*time.Millisecond, true, cube.UF, cube.UB)
	if err := tk.Animate(context.Background(), tr); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 3 {
		t.Errorf("phases seen %v", seen)
	}
}

func TestInstant(t *testing.T) {
	if err := (Instant{}).Animate(context.Background(), Turn(time.Second, cube.Y, cube.Positive, nil)); err != nil {
		t.Error(err)
	}
}

func TestTickerCallsObserveFirst(t *testing.T) {
	var order []string
	tr := Turn(3*time.Millisecond, cube.Y, cube.Positive, nil)
	tr.Observe = func(Frame) { order = append(order, "observe") }
	tk := Ticker{Interval: time.Millisecond, OnFrame: func(Frame) { order = append(order, "frame") }}
	if err := tk.Animate(context.Background(), tr); err != nil {
		t.Fatal(err)
	}
	if len(order) < 2 || order[0] != "observe" || order[1] != "frame" {
		t.Errorf("order %v", order)
	}
}
