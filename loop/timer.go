package loop

import "time"

// DefaultRate is the number of logical updates per second.
const DefaultRate = 60

// reportInterval is how much wall time is accumulated before Report fires.
const reportInterval = time.Second

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the monotonic wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FrameTimer runs logical updates at a fixed rate no matter how often Tick
// is called. Time not yet consumed by an update carries over as lag.
type FrameTimer struct {
	// Unstable runs exactly one update per Tick instead of catching up.
	Unstable bool
	// Report, when set, receives the number of updates run over roughly
	// the last second.
	Report func(updates int, elapsed time.Duration)

	clock   Clock
	step    time.Duration
	prev    time.Time
	lag     time.Duration
	total   time.Duration
	updates int
}

// NewFrameTimer creates a timer for rate updates per second. A rate <= 0
// uses DefaultRate; a nil clock uses SystemClock.
func NewFrameTimer(rate int, clock Clock) *FrameTimer {
	if rate <= 0 {
		rate = DefaultRate
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameTimer{
		clock: clock,
		step:  time.Second / time.Duration(rate),
		prev:  clock.Now(),
	}
}

// TicksPerUpdate is the wall time consumed by one logical update.
func (t *FrameTimer) TicksPerUpdate() time.Duration { return t.step }

// Lag is the time accumulated but not yet consumed by an update.
func (t *FrameTimer) Lag() time.Duration { return t.lag }

// Tick measures the time since the previous Tick and calls update once for
// every whole step of accumulated lag. It returns the number of calls.
func (t *FrameTimer) Tick(update func()) int {
	now := t.clock.Now()
	elapsed := now.Sub(t.prev)
	t.prev = now
	if elapsed < 0 {
		elapsed = 0
	}
	t.total += elapsed

	ran := 0
	if t.Unstable {
		update()
		ran = 1
	} else {
		t.lag += elapsed
		for t.lag >= t.step {
			update()
			t.lag -= t.step
			ran++
		}
	}
	t.updates += ran

	if t.total > reportInterval {
		if t.Report != nil {
			t.Report(t.updates, t.total)
		}
		t.updates = 0
		t.total = 0
	}
	return ran
}
