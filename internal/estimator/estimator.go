package estimator

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerdraw/internal/deck"
	"github.com/lox/pokerdraw/internal/evaluator"
	"github.com/lox/pokerdraw/internal/randutil"
)

const (
	// DefaultTrials is the number of replacement draws simulated per
	// position when no override is configured.
	DefaultTrials = 750000

	// progressInterval is how often monitors hear about progress.
	progressInterval = 250 * time.Millisecond

	// progressBatch is how many trials a worker runs between updates
	// to the shared progress counter.
	progressBatch = 10000
)

// Result holds the outcome of a completed estimation run.
type Result struct {
	// Hand is the hand that was analyzed, in its original card order.
	Hand deck.Hand

	// Baseline is the classification of the hand as dealt.
	Baseline evaluator.RankKey

	// Improvements holds, per position in the original card order, the
	// percentage of trials where replacing that card produced a
	// strictly better hand.
	Improvements [deck.HandSize]float64

	// Trials is the number of replacement draws simulated per position.
	Trials int

	// Seed is the master seed the run was derived from.
	Seed int64

	Elapsed time.Duration
}

type positionResult struct {
	position     int
	improvements int
}

// Estimator runs Monte Carlo replacement-draw simulations against five
// card hands. A single Estimator is safe to reuse across runs.
type Estimator struct {
	trials  int
	workers int
	clock   quartz.Clock
	monitor Monitor
	logger  *log.Logger
}

// New creates an Estimator. Non-positive trials falls back to
// DefaultTrials, non-positive workers simulates every position
// concurrently, and a nil logger discards output.
func New(trials, workers int, logger *log.Logger, clock quartz.Clock, monitors ...Monitor) *Estimator {
	if trials <= 0 {
		trials = DefaultTrials
	}
	if workers <= 0 || workers > deck.HandSize {
		workers = deck.HandSize
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Estimator{
		trials:  trials,
		workers: workers,
		clock:   clock,
		monitor: NewMultiMonitor(monitors...),
		logger:  logger,
	}
}

// Trials returns the number of trials simulated per position.
func (e *Estimator) Trials() int {
	return e.trials
}

// Run estimates, for every card in the hand, the probability that
// discarding it and drawing a random replacement from the remaining 47
// cards yields a strictly better hand. Percentages are aligned to the
// hand's original card order.
//
// The seed fixes the run exactly: each position's random stream is
// derived from it before any worker starts, so two runs with the same
// hand, trials and seed produce identical results regardless of worker
// count or scheduling.
func (e *Estimator) Run(ctx context.Context, hand deck.Hand, seed int64) (Result, error) {
	baseline := evaluator.Classify(hand)
	excluded := hand.Set()

	master := randutil.New(seed)
	var seeds [deck.HandSize]int64
	for i := range seeds {
		seeds[i] = master.Int64()
	}

	totalTrials := e.trials * deck.HandSize
	e.monitor.OnEstimateStart(hand, baseline, totalTrials)
	start := e.clock.Now()

	var completed atomic.Int64
	progressDone := make(chan struct{})
	progressStopped := make(chan struct{})
	go e.progressLoop(e.clock.NewTicker(progressInterval), progressDone, progressStopped, &completed, totalTrials)
	stopProgress := func() {
		close(progressDone)
		<-progressStopped
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	results := make(chan positionResult, deck.HandSize)
	for position := 0; position < deck.HandSize; position++ {
		position := position
		positionSeed := seeds[position]

		g.Go(func() error {
			improvements, err := e.simulatePosition(gctx, hand, baseline, excluded, position, positionSeed, &completed)
			if err != nil {
				return err
			}
			select {
			case results <- positionResult{position: position, improvements: improvements}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		_ = g.Wait()
	}()

	var improvements [deck.HandSize]float64
	for r := range results {
		improvements[r.position] = 100 * float64(r.improvements) / float64(e.trials)
	}

	if err := g.Wait(); err != nil {
		stopProgress()
		return Result{}, err
	}
	stopProgress()

	result := Result{
		Hand:         hand,
		Baseline:     baseline,
		Improvements: improvements,
		Trials:       e.trials,
		Seed:         seed,
		Elapsed:      e.clock.Now().Sub(start),
	}
	e.monitor.OnEstimateComplete(result)

	e.logger.Debug("estimation complete",
		"hand", hand.Notation(),
		"baseline", baseline.String(),
		"trials", e.trials,
		"elapsed", result.Elapsed)

	return result, nil
}

// progressLoop forwards the completed-trial count to the monitor on
// every tick until done closes.
func (e *Estimator) progressLoop(ticker *quartz.Ticker, done <-chan struct{}, stopped chan<- struct{}, completed *atomic.Int64, totalTrials int) {
	defer close(stopped)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			e.monitor.OnProgress(int(completed.Load()), totalTrials)
		case <-done:
			return
		}
	}
}

// simulatePosition runs the trials for a single card position, counting
// draws that strictly beat the baseline. The position's own rng keeps
// its stream independent of the other positions.
func (e *Estimator) simulatePosition(ctx context.Context, hand deck.Hand, baseline evaluator.RankKey, excluded deck.CardSet, position int, seed int64, completed *atomic.Int64) (int, error) {
	rng := randutil.New(seed)

	improvements := 0
	for trial := 0; trial < e.trials; trial++ {
		replacement := DrawReplacement(rng, excluded)
		candidate := hand.Replace(position, replacement)
		if evaluator.IsImprovement(baseline, candidate) {
			improvements++
		}

		if (trial+1)%progressBatch == 0 {
			completed.Add(progressBatch)
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			default:
			}
		}
	}
	completed.Add(int64(e.trials % progressBatch))

	return improvements, nil
}
