package server

import (
	"encoding/json"
	"time"

	"github.com/lox/pokerdraw/internal/estimator"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

// AnalyzeData asks the server to estimate improvement odds for a hand.
// Trials and Seed are optional; the server picks defaults when omitted.
type AnalyzeData struct {
	Hand   string `json:"hand"`
	Trials int    `json:"trials,omitempty"`
	Seed   *int64 `json:"seed,omitempty"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProgressData reports trials completed so far across all positions.
type ProgressData struct {
	CompletedTrials int `json:"completedTrials"`
	TotalTrials     int `json:"totalTrials"`
}

// ResultData is the wire form of a completed estimation. Improvements
// align with the cards of Hand in their original order.
type ResultData struct {
	Hand         string    `json:"hand"`
	Category     string    `json:"category"`
	Improvements []float64 `json:"improvements"`
	Trials       int       `json:"trials"`
	Seed         int64     `json:"seed"`
	ElapsedMs    int64     `json:"elapsedMs"`
}

// Helper functions to convert between internal types and message types

func ResultDataFromEstimate(result estimator.Result) ResultData {
	improvements := make([]float64, len(result.Improvements))
	copy(improvements, result.Improvements[:])

	return ResultData{
		Hand:         result.Hand.Notation(),
		Category:     result.Baseline.Category.String(),
		Improvements: improvements,
		Trials:       result.Trials,
		Seed:         result.Seed,
		ElapsedMs:    result.Elapsed.Milliseconds(),
	}
}
