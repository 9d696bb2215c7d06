package elexon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Elexon struct {
	logger  *slog.Logger
	baseURL string
	apiKey  string
	client  *http.Client
}

func New(logger *slog.Logger, baseURL string, apiKey string, timeout time.Duration) *Elexon {
	if baseURL == "" {
		baseURL = BASE_URL
	}
	return &Elexon{
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetWindAndSolarForecast returns the forecast rows published for processType
// between from and to. Rows for all business types are returned together.
func (e *Elexon) GetWindAndSolarForecast(ctx context.Context, processType string, from, to time.Time) ([]Item, error) {
	q := url.Values{}
	q.Set("from", from.UTC().Format(time.RFC3339))
	q.Set("to", to.UTC().Format(time.RFC3339))
	q.Set("processType", processType)
	q.Set("format", "json")
	if e.apiKey != "" {
		q.Set("apiKey", e.apiKey)
	}
	u := e.baseURL + windAndSolarPath + "?" + q.Encode()

	e.logger.Debug("fetching forecast from elexon...",
		slog.String("processType", processType),
		slog.String("from", q.Get("from")),
		slog.String("to", q.Get("to")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []Item{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if body.Data == nil {
		return []Item{}, nil
	}
	return body.Data, nil
}
