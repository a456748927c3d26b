package recorder

import (
	"fmt"
	"sync"
	"time"
)

// Tick is the elapsed recording time in whole seconds.
type Tick struct {
	Elapsed int
}

// TickAt derives the tick from the original start timestamp rather than a
// running counter so the display never drifts.
func TickAt(startedAt, now time.Time) Tick {
	elapsed := int(now.Sub(startedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	return Tick{Elapsed: elapsed}
}

// String formats the tick as minutes:seconds with zero-padded seconds.
func (t Tick) String() string {
	return fmt.Sprintf("%d:%02d", t.Elapsed/60, t.Elapsed%60)
}

// Progress is elapsed/ceiling clamped to [0, 1].
func (t Tick) Progress(ceiling time.Duration) float64 {
	if ceiling <= 0 {
		return 1
	}
	p := float64(t.Elapsed) / ceiling.Seconds()
	if p > 1 {
		return 1
	}
	return p
}

type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Ticker is a running elapsed timer.
type Ticker interface {
	// Stop cancels the timer. No tick is delivered after Stop returns.
	Stop()
}

// StartTicker starts an elapsed timer for a recording that began at
// startedAt.
type StartTicker func(startedAt time.Time, onTick func(Tick)) Ticker

// ElapsedTicker returns a StartTicker that fires once immediately and then
// every interval.
func ElapsedTicker(clock TimeProvider, interval time.Duration) StartTicker {
	return func(startedAt time.Time, onTick func(Tick)) Ticker {
		t := &elapsedTicker{
			clock:     clock,
			startedAt: startedAt,
			onTick:    onTick,
			ticker:    time.NewTicker(interval),
			stop:      make(chan struct{}),
			done:      make(chan struct{}),
		}
		onTick(TickAt(startedAt, clock.Now()))
		go t.run()
		return t
	}
}

type elapsedTicker struct {
	clock     TimeProvider
	startedAt time.Time
	onTick    func(Tick)
	ticker    *time.Ticker
	stop      chan struct{}
	done      chan struct{}
	once      sync.Once
}

func (t *elapsedTicker) run() {
	defer close(t.done)
	for {
		select {
		case <-t.stop:
			return
		case <-t.ticker.C:
			select {
			case <-t.stop:
				return
			default:
			}
			t.onTick(TickAt(t.startedAt, t.clock.Now()))
		}
	}
}

func (t *elapsedTicker) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.stop)
		<-t.done
	})
}
