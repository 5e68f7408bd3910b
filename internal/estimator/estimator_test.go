package estimator

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/pokerdraw/internal/deck"
	"github.com/lox/pokerdraw/internal/evaluator"
)

type recordingMonitor struct {
	mu            sync.Mutex
	startCalls    int
	startTotal    int
	progressCalls int
	lastCompleted int
	completeCalls int
	lastResult    Result
}

func (r *recordingMonitor) OnEstimateStart(hand deck.Hand, baseline evaluator.RankKey, totalTrials int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startCalls++
	r.startTotal = totalTrials
}

func (r *recordingMonitor) OnProgress(completedTrials, totalTrials int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progressCalls++
	r.lastCompleted = completedTrials
}

func (r *recordingMonitor) OnEstimateComplete(result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completeCalls++
	r.lastResult = result
}

func TestRunRoyalFlushNeverImproves(t *testing.T) {
	hand := deck.MustParseHand("Ah Kh Qh Jh Th")

	est := New(2000, 0, nil, nil)
	result, err := est.Run(context.Background(), hand, 42)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, p := range result.Improvements {
		if p != 0 {
			t.Errorf("position %d = %.1f%%, want 0.0%%", i, p)
		}
	}
	if result.Baseline.Category != evaluator.StraightFlush {
		t.Errorf("baseline category = %s, want %s", result.Baseline.Category, evaluator.StraightFlush)
	}
}

func TestRunQuadDeucesNeverImprove(t *testing.T) {
	// Four deuces hold every two in the deck, so no single replacement
	// reaches higher quads or a straight flush, and kickers do not break
	// ties. Every position should report zero.
	hand := deck.MustParseHand("2d 2c 5h 2h 2s")

	est := New(2000, 0, nil, nil)
	result, err := est.Run(context.Background(), hand, 7)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, p := range result.Improvements {
		if p != 0 {
			t.Errorf("position %d = %.1f%%, want 0.0%%", i, p)
		}
	}
}

func TestRunSameSeedSameResult(t *testing.T) {
	hand := deck.MustParseHand("2c 2d 7h 8s Kd")

	a := New(5000, 0, nil, nil)
	first, err := a.Run(context.Background(), hand, 99)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := a.Run(context.Background(), hand, 99)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if first.Improvements != second.Improvements {
		t.Errorf("same seed produced different results: %v vs %v", first.Improvements, second.Improvements)
	}

	// Worker count bounds concurrency only. Position streams are fixed
	// by the seed, so the numbers must not change.
	b := New(5000, 1, nil, nil)
	sequential, err := b.Run(context.Background(), hand, 99)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if first.Improvements != sequential.Improvements {
		t.Errorf("worker count changed results: %v vs %v", first.Improvements, sequential.Improvements)
	}
}

func TestRunDifferentSeedsDiverge(t *testing.T) {
	hand := deck.MustParseHand("2c 2d 7h 8s Kd")

	est := New(5000, 0, nil, nil)
	first, err := est.Run(context.Background(), hand, 1)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := est.Run(context.Background(), hand, 2)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if first.Improvements == second.Improvements {
		t.Errorf("different seeds produced identical results: %v", first.Improvements)
	}
}

func TestRunPercentagesWithinRange(t *testing.T) {
	hand := deck.MustParseHand("2c 2d 7h 8s Kd")

	est := New(4000, 0, nil, nil)
	result, err := est.Run(context.Background(), hand, 3)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, p := range result.Improvements {
		if p < 0 || p > 100 {
			t.Errorf("position %d = %f, want within [0, 100]", i, p)
		}
	}

	// Replacing the king leaves a low pair with live kickers, which
	// improves roughly a sixth of the time. Zero means the simulation
	// is broken, not unlucky.
	if result.Improvements[4] == 0 {
		t.Errorf("king position never improved across %d trials", result.Trials)
	}
}

func TestRunNotifiesMonitor(t *testing.T) {
	hand := deck.MustParseHand("Ah Kh Qh Jh Th")
	rec := &recordingMonitor{}

	est := New(1000, 0, nil, nil, rec)
	result, err := est.Run(context.Background(), hand, 1)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.startCalls != 1 {
		t.Errorf("start calls = %d, want 1", rec.startCalls)
	}
	if rec.startTotal != 1000*deck.HandSize {
		t.Errorf("start total trials = %d, want %d", rec.startTotal, 1000*deck.HandSize)
	}
	if rec.completeCalls != 1 {
		t.Errorf("complete calls = %d, want 1", rec.completeCalls)
	}
	if rec.lastResult.Improvements != result.Improvements {
		t.Errorf("monitor saw %v, Run returned %v", rec.lastResult.Improvements, result.Improvements)
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	est := New(200000, 0, nil, nil)
	if _, err := est.Run(ctx, deck.MustParseHand("2c 2d 7h 8s Kd"), 5); err == nil {
		t.Fatalf("expected error from canceled context")
	}
}

func TestProgressLoopReportsOnTicks(t *testing.T) {
	mClock := quartz.NewMock(t)
	rec := &recordingMonitor{}
	est := New(1000, 0, nil, mClock, rec)

	var completed atomic.Int64
	completed.Store(12345)

	// The test owns the ticker so it exists before the clock advances.
	ticker := mClock.NewTicker(progressInterval)
	done := make(chan struct{})
	stopped := make(chan struct{})
	go est.progressLoop(ticker, done, stopped, &completed, 50000)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Advance only waits for the tick to reach the ticker's one-slot
	// buffer, and the mock drops ticks while it is full, so each advance
	// must wait for the loop goroutine to consume the previous tick.
	waitForProgressCalls := func(n int) {
		for ctx.Err() == nil {
			rec.mu.Lock()
			calls := rec.progressCalls
			rec.mu.Unlock()
			if calls >= n {
				return
			}
			time.Sleep(time.Millisecond)
		}
	}

	mClock.Advance(progressInterval).MustWait(ctx)
	waitForProgressCalls(1)
	completed.Store(34567)
	mClock.Advance(progressInterval).MustWait(ctx)
	waitForProgressCalls(2)

	close(done)
	<-stopped

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.progressCalls != 2 {
		t.Errorf("progress calls = %d, want 2", rec.progressCalls)
	}
	if rec.lastCompleted != 34567 {
		t.Errorf("last completed = %d, want 34567", rec.lastCompleted)
	}
}

func TestSimulatePositionCountsTrials(t *testing.T) {
	// 25000 trials covers two full progress batches plus a remainder.
	est := New(25000, 1, nil, nil)
	hand := deck.MustParseHand("2c 2d 7h 8s Kd")

	var completed atomic.Int64
	improvements, err := est.simulatePosition(context.Background(), hand, evaluator.Classify(hand), hand.Set(), 4, 42, &completed)
	if err != nil {
		t.Fatalf("simulatePosition() error = %v", err)
	}
	if got := completed.Load(); got != 25000 {
		t.Errorf("completed = %d, want 25000", got)
	}
	if improvements <= 0 || improvements >= 25000 {
		t.Errorf("improvements = %d, want within (0, 25000)", improvements)
	}
}

func TestNewDefaults(t *testing.T) {
	est := New(0, 0, nil, nil)
	if est.Trials() != DefaultTrials {
		t.Errorf("Trials() = %d, want %d", est.Trials(), DefaultTrials)
	}
	if est.workers != deck.HandSize {
		t.Errorf("workers = %d, want %d", est.workers, deck.HandSize)
	}
}
