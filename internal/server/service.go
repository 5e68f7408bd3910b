package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerdraw/internal/deck"
	"github.com/lox/pokerdraw/internal/estimator"
	"github.com/lox/pokerdraw/internal/randutil"
)

// MaxRequestTrials bounds how much simulation a single request can ask
// for. Requests above the cap are rejected rather than clamped.
const MaxRequestTrials = 5000000

// ErrTooManyTrials is returned when a request exceeds MaxRequestTrials.
var ErrTooManyTrials = errors.New("trials exceed server limit")

// AnalysisService runs hand analyses on behalf of server clients.
type AnalysisService struct {
	defaultTrials int
	workers       int
	logger        *log.Logger
}

// NewAnalysisService creates an analysis service. Non-positive
// defaultTrials falls back to the estimator default.
func NewAnalysisService(defaultTrials, workers int, logger *log.Logger) *AnalysisService {
	if defaultTrials <= 0 {
		defaultTrials = estimator.DefaultTrials
	}
	return &AnalysisService{
		defaultTrials: defaultTrials,
		workers:       workers,
		logger:        logger.WithPrefix("analysis"),
	}
}

// Analyze parses the requested hand and runs the estimation. Client
// errors (bad hands, oversized trials) unwrap to deck.ErrInvalidHand or
// ErrTooManyTrials so callers can map them to protocol errors.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeData, monitors ...estimator.Monitor) (estimator.Result, error) {
	hand, err := deck.ParseHand(req.Hand)
	if err != nil {
		return estimator.Result{}, err
	}

	trials := req.Trials
	if trials <= 0 {
		trials = s.defaultTrials
	}
	if trials > MaxRequestTrials {
		return estimator.Result{}, fmt.Errorf("%w: %d > %d", ErrTooManyTrials, trials, MaxRequestTrials)
	}

	seed := randutil.SeedOrNow(req.Seed)

	s.logger.Debug("running analysis", "hand", hand.Notation(), "trials", trials, "seed", seed)

	est := estimator.New(trials, s.workers, s.logger, nil, monitors...)
	return est.Run(ctx, hand, seed)
}
