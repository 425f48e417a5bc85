package loop

import (
	"testing"
	"time"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newManualClock() *manualClock {
	return &manualClock{now: time.Unix(1700000000, 0)}
}

func TestFrameTimerCatchUp(t *testing.T) {
	clk := newManualClock()
	timer := NewFrameTimer(60, clk)
	step := timer.TicksPerUpdate()
	if step != time.Second/60 {
		t.Fatalf("step = %v, want %v", step, time.Second/60)
	}

	cases := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"three_and_a_half", 3*step + step/2, 3},
		{"remaining_half_plus_half", step / 2, 1},
		{"under_one_step", step / 3, 0},
		{"exact_step", step, 1},
	}

	wantLag := []time.Duration{step / 2, 0, step / 3, step / 3}
	for i, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			calls := 0
			clk.Advance(c.elapsed)
			got := timer.Tick(func() { calls++ })
			if got != c.want || calls != c.want {
				t.Fatalf("updates = %d (calls %d), want %d", got, calls, c.want)
			}
			if timer.Lag() != wantLag[i] {
				t.Fatalf("lag = %v, want %v", timer.Lag(), wantLag[i])
			}
			if timer.Lag() < 0 || timer.Lag() >= step {
				t.Fatalf("lag %v out of [0, %v)", timer.Lag(), step)
			}
		})
	}
}

func TestFrameTimerSpecExample(t *testing.T) {
	clk := newManualClock()
	timer := NewFrameTimer(60, clk)
	T := timer.TicksPerUpdate()

	clk.Advance(3*T + T/2)
	if n := timer.Tick(func() {}); n != 3 {
		t.Fatalf("updates = %d, want 3", n)
	}
	if timer.Lag() != T/2 {
		t.Fatalf("lag = %v, want %v", timer.Lag(), T/2)
	}
}

func TestFrameTimerUnstable(t *testing.T) {
	clk := newManualClock()
	timer := NewFrameTimer(60, clk)
	timer.Unstable = true

	for _, d := range []time.Duration{0, time.Millisecond, time.Second / 2} {
		clk.Advance(d)
		if n := timer.Tick(func() {}); n != 1 {
			t.Fatalf("unstable tick after %v ran %d updates, want 1", d, n)
		}
	}
	if timer.Lag() != 0 {
		t.Fatalf("unstable mode should not accumulate lag, got %v", timer.Lag())
	}
}

func TestFrameTimerReport(t *testing.T) {
	clk := newManualClock()
	timer := NewFrameTimer(10, clk)

	var reports []int
	timer.Report = func(updates int, elapsed time.Duration) {
		if elapsed <= time.Second {
			t.Fatalf("report fired after only %v", elapsed)
		}
		reports = append(reports, updates)
	}

	for i := 0; i < 10; i++ {
		clk.Advance(100 * time.Millisecond)
		timer.Tick(func() {})
	}
	if len(reports) != 0 {
		t.Fatalf("report fired at exactly one second: %v", reports)
	}

	clk.Advance(100 * time.Millisecond)
	timer.Tick(func() {})
	if len(reports) != 1 || reports[0] != 11 {
		t.Fatalf("reports = %v, want [11]", reports)
	}

	clk.Advance(100 * time.Millisecond)
	timer.Tick(func() {})
	if len(reports) != 1 {
		t.Fatalf("counters were not reset after report: %v", reports)
	}
}

func TestNewFrameTimerDefaults(t *testing.T) {
	timer := NewFrameTimer(0, nil)
	if timer.TicksPerUpdate() != time.Second/DefaultRate {
		t.Fatalf("step = %v, want %v", timer.TicksPerUpdate(), time.Second/DefaultRate)
	}
}
