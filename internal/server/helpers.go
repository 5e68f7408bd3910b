package server

import (
	"context"
	"net/http"
	"time"
)

const healthProbeInterval = 50 * time.Millisecond

// WaitForHealthy polls the /health endpoint under baseURL until it
// answers 200 OK or ctx is done. Callers that start the server in the
// background use it to know when requests will be accepted.
func WaitForHealthy(ctx context.Context, baseURL string) error {
	healthURL := baseURL + "/health"
	client := &http.Client{Timeout: time.Second}

	probe := func() bool {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			return false
		}
		resp, err := client.Do(req)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}

	ticker := time.NewTicker(healthProbeInterval)
	defer ticker.Stop()

	for {
		if probe() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
