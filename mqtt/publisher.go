package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/angas/elexon-forecast/forecast"
	"github.com/angas/elexon-forecast/types/maybe"
)

const (
	OutcomeOk     = "ok"
	OutcomeFailed = "failed"
)

type PublishMetrics interface {
	ObservePublish(businessType string, outcome string)
}

type noopMetrics struct{}

func (noopMetrics) ObservePublish(string, string) {}

// Snapshot is the payload published per business type. Gaps are null.
type Snapshot struct {
	RequestID    string           `json:"requestId"`
	BusinessType string           `json:"businessType"`
	Start        time.Time        `json:"start"`
	End          time.Time        `json:"end"`
	GeneratedAt  time.Time        `json:"generatedAt"`
	Series       []SnapshotSeries `json:"series"`
}

type SnapshotSeries struct {
	ProcessType forecast.ProcessType `json:"processType"`
	Color       string               `json:"color"`
	Points      []SnapshotPoint      `json:"points"`
}

type SnapshotPoint struct {
	Time     time.Time            `json:"time"`
	Quantity maybe.Maybe[float64] `json:"quantity"`
}

type Publisher struct {
	logger  *slog.Logger
	broker  Broker
	topic   string
	metrics PublishMetrics
	now     func() time.Time
}

func NewPublisher(logger *slog.Logger, broker Broker, topic string, metrics PublishMetrics) *Publisher {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Publisher{
		logger:  logger,
		broker:  broker,
		topic:   strings.TrimSuffix(topic, "/"),
		metrics: metrics,
		now:     time.Now,
	}
}

func (p *Publisher) Topic(bt forecast.BusinessType) string {
	return p.topic + "/" + strings.ToLower(bt.String())
}

// PublishForecast sends one snapshot per business type. A failing business
// type does not stop the other one.
func (p *Publisher) PublishForecast(ctx context.Context, res forecast.Result) error {
	var errs []error
	for _, bt := range forecast.BusinessTypes() {
		topic := p.Topic(bt)
		payload, err := json.Marshal(p.snapshot(res, bt))
		if err == nil {
			err = p.broker.Publish(ctx, topic, payload)
		}

		if err != nil {
			p.metrics.ObservePublish(bt.String(), OutcomeFailed)
			p.logger.Warn("forecast publish failed", slog.String("topic", topic), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("publishing %s: %w", bt, err))
			continue
		}

		p.metrics.ObservePublish(bt.String(), OutcomeOk)
		p.logger.Debug("forecast published",
			slog.String("topic", topic),
			slog.String("requestId", res.RequestID),
			slog.Int("bytes", len(payload)))
	}
	return errors.Join(errs...)
}

func (p *Publisher) snapshot(res forecast.Result, bt forecast.BusinessType) Snapshot {
	named := res.Series(bt)
	series := make([]SnapshotSeries, 0, len(named))
	for _, s := range named {
		points := make([]SnapshotPoint, len(s.Points))
		for i, pt := range s.Points {
			points[i] = SnapshotPoint{Time: pt.Bucket.UTC(), Quantity: pt.Quantity}
		}
		series = append(series, SnapshotSeries{ProcessType: s.Label, Color: s.Color, Points: points})
	}

	return Snapshot{
		RequestID:    res.RequestID,
		BusinessType: bt.String(),
		Start:        res.Start.UTC(),
		End:          res.End.UTC(),
		GeneratedAt:  p.now().UTC(),
		Series:       series,
	}
}
