package server

import (
	"context"
	"errors"
	"testing"

	"github.com/lox/pokerdraw/internal/deck"
)

func TestAnalyzeDefaultsTrials(t *testing.T) {
	t.Parallel()
	svc := NewAnalysisService(3000, 0, testLogger())

	seed := int64(7)
	result, err := svc.Analyze(context.Background(), AnalyzeData{Hand: "2c 2d 7h 8s Kd", Seed: &seed})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Trials != 3000 {
		t.Errorf("Trials = %d, want 3000", result.Trials)
	}
	if result.Seed != 7 {
		t.Errorf("Seed = %d, want 7", result.Seed)
	}
}

func TestAnalyzeInvalidHand(t *testing.T) {
	t.Parallel()
	svc := NewAnalysisService(1000, 0, testLogger())

	_, err := svc.Analyze(context.Background(), AnalyzeData{Hand: "2c 2c 7h 8s Kd"})
	if !errors.Is(err, deck.ErrInvalidHand) {
		t.Errorf("Analyze() error = %v, want deck.ErrInvalidHand", err)
	}
}

func TestAnalyzeTooManyTrials(t *testing.T) {
	t.Parallel()
	svc := NewAnalysisService(1000, 0, testLogger())

	_, err := svc.Analyze(context.Background(), AnalyzeData{Hand: "2c 2d 7h 8s Kd", Trials: MaxRequestTrials + 1})
	if !errors.Is(err, ErrTooManyTrials) {
		t.Errorf("Analyze() error = %v, want ErrTooManyTrials", err)
	}
}

func TestAnalyzeSeedDeterminism(t *testing.T) {
	t.Parallel()
	svc := NewAnalysisService(2000, 0, testLogger())

	seed := int64(42)
	req := AnalyzeData{Hand: "2c 2d 7h 8s Kd", Seed: &seed}

	first, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if first.Improvements != second.Improvements {
		t.Errorf("same seed produced different results: %v vs %v", first.Improvements, second.Improvements)
	}
}
