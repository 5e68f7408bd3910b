package estimator

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/lox/pokerdraw/internal/deck"
	"github.com/lox/pokerdraw/internal/evaluator"
)

// Monitor receives notifications as an estimation run progresses. All
// methods may be called from the goroutine driving the run, so
// implementations that share state must synchronize themselves.
type Monitor interface {
	// OnEstimateStart is called once before any trials run.
	OnEstimateStart(hand deck.Hand, baseline evaluator.RankKey, totalTrials int)

	// OnProgress is called periodically with the number of trials
	// completed so far across all positions.
	OnProgress(completedTrials, totalTrials int)

	// OnEstimateComplete is called once with the finished result.
	OnEstimateComplete(result Result)
}

// NullMonitor discards all notifications.
type NullMonitor struct{}

func (NullMonitor) OnEstimateStart(deck.Hand, evaluator.RankKey, int) {}
func (NullMonitor) OnProgress(int, int)                               {}
func (NullMonitor) OnEstimateComplete(Result)                         {}

// MultiMonitor fans notifications out to several monitors.
type MultiMonitor struct {
	monitors []Monitor
}

// NewMultiMonitor combines monitors, skipping nil entries. It returns a
// NullMonitor when none remain and the monitor itself when only one does.
func NewMultiMonitor(monitors ...Monitor) Monitor {
	valid := make([]Monitor, 0, len(monitors))
	for _, m := range monitors {
		if m != nil {
			valid = append(valid, m)
		}
	}

	switch len(valid) {
	case 0:
		return NullMonitor{}
	case 1:
		return valid[0]
	default:
		return &MultiMonitor{monitors: valid}
	}
}

func (m *MultiMonitor) OnEstimateStart(hand deck.Hand, baseline evaluator.RankKey, totalTrials int) {
	for _, monitor := range m.monitors {
		monitor.OnEstimateStart(hand, baseline, totalTrials)
	}
}

func (m *MultiMonitor) OnProgress(completedTrials, totalTrials int) {
	for _, monitor := range m.monitors {
		monitor.OnProgress(completedTrials, totalTrials)
	}
}

func (m *MultiMonitor) OnEstimateComplete(result Result) {
	for _, monitor := range m.monitors {
		monitor.OnEstimateComplete(result)
	}
}

// DotsMonitor prints a dot per progress tick, wrapping lines so long
// runs stay readable on a terminal.
type DotsMonitor struct {
	writer    io.Writer
	mu        sync.Mutex
	dotCount  int
	lineWidth int
}

// NewDotsMonitor creates a DotsMonitor writing to the given writer,
// defaulting to stdout when writer is nil.
func NewDotsMonitor(writer io.Writer) *DotsMonitor {
	if writer == nil {
		writer = os.Stdout
	}
	return &DotsMonitor{
		writer:    writer,
		lineWidth: 80,
	}
}

func (d *DotsMonitor) OnEstimateStart(hand deck.Hand, baseline evaluator.RankKey, totalTrials int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.dotCount = 0
	fmt.Fprintf(d.writer, "Estimating %s (%s) over %d trials\n", hand.Notation(), baseline, totalTrials)
}

func (d *DotsMonitor) OnProgress(completedTrials, totalTrials int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprint(d.writer, ".")
	d.dotCount++
	if d.dotCount%d.lineWidth == 0 {
		fmt.Fprintln(d.writer)
	}
}

func (d *DotsMonitor) OnEstimateComplete(result Result) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dotCount%d.lineWidth != 0 {
		fmt.Fprintln(d.writer)
	}
	fmt.Fprintf(d.writer, "Completed %d trials per position in %s\n", result.Trials, result.Elapsed)
}
