package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lox/pokerdraw/internal/deck"
	"github.com/lox/pokerdraw/internal/estimator"
	"github.com/lox/pokerdraw/internal/evaluator"
)

func TestBatchLine(t *testing.T) {
	hand := deck.MustParseHand("AH KH QH JH TH")
	result := estimator.Result{
		Hand:     hand,
		Baseline: evaluator.Classify(hand),
	}

	got := BatchLine("AH KH QH JH TH", result)
	want := "AH KH QH JH TH >>>Straight Flush 0.0% 0.0% 0.0% 0.0% 0.0%"
	if got != want {
		t.Errorf("BatchLine() = %q, want %q", got, want)
	}
}

func TestBatchLineFormatsOneDecimal(t *testing.T) {
	hand := deck.MustParseHand("2c 2d 7h 8s Kd")
	result := estimator.Result{
		Hand:         hand,
		Baseline:     evaluator.Classify(hand),
		Improvements: [deck.HandSize]float64{12.5, 0, 100, 45.7, 16.666666},
	}

	got := BatchLine("2C 2D 7H 8S KD", result)
	want := "2C 2D 7H 8S KD >>>Pair 12.5% 0.0% 100.0% 45.7% 16.7%"
	if got != want {
		t.Errorf("BatchLine() = %q, want %q", got, want)
	}
}

func TestBatchErrorLine(t *testing.T) {
	got := BatchErrorLine("2H 2H 2H 2H 2H")
	want := "2H 2H 2H 2H 2H >>>Error"
	if got != want {
		t.Errorf("BatchErrorLine() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	DisableColor()

	hand := deck.MustParseHand("2c 2d 7h 8s Kd")
	result := estimator.Result{
		Hand:         hand,
		Baseline:     evaluator.Classify(hand),
		Improvements: [deck.HandSize]float64{10.1, 10.2, 14.9, 15.3, 17.0},
		Trials:       750000,
		Elapsed:      1234 * time.Millisecond,
	}

	var buf bytes.Buffer
	Report(&buf, result)
	out := buf.String()

	for _, want := range []string{"Pair", "discard", "improve", "10.1%", "17.0%", "750000 trials per position in 1.234s"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
