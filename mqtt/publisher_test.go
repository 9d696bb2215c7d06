package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/angas/elexon-forecast/forecast"
	"github.com/angas/elexon-forecast/types/maybe"
)

type fakeBroker struct {
	published map[string][]byte
	failOn    string
}

func (b *fakeBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	if topic == b.failOn {
		return errors.New("not connected")
	}
	b.published[topic] = payload
	return nil
}

type countingMetrics map[string]int

func (m countingMetrics) ObservePublish(businessType string, outcome string) {
	m[businessType+"/"+outcome]++
}

func testResult() forecast.Result {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return forecast.Result{
		RequestID: "abc",
		Start:     t0,
		End:       t0.Add(time.Hour),
		Solar: []forecast.NamedSeries{{
			Label: forecast.IntradayTotal,
			Color: "green",
			Points: forecast.AlignedSeries{
				{Bucket: t0, Quantity: maybe.Some(12.5)},
				{Bucket: t0.Add(30 * time.Minute), Quantity: maybe.None[float64]()},
			},
		}},
	}
}

func newTestPublisher(b Broker, m PublishMetrics) *Publisher {
	p := NewPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)), b, "elexon/forecast/", m)
	p.now = func() time.Time { return time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC) }
	return p
}

func TestPublishForecast(t *testing.T) {
	b := &fakeBroker{published: map[string][]byte{}}
	m := countingMetrics{}

	if err := newTestPublisher(b, m).PublishForecast(context.Background(), testResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(b.published) != 2 {
		t.Fatalf("expected 2 topics, got %v", b.published)
	}

	var solar Snapshot
	if err := json.Unmarshal(b.published["elexon/forecast/solar"], &solar); err != nil {
		t.Fatalf("failed to decode solar snapshot: %v", err)
	}
	if solar.RequestID != "abc" || solar.BusinessType != "Solar" || len(solar.Series) != 1 {
		t.Fatalf("unexpected snapshot %+v", solar)
	}
	pts := solar.Series[0].Points
	if len(pts) != 2 || pts[0].Quantity.Value() != 12.5 || pts[1].Quantity.IsValid() {
		t.Errorf("unexpected points %+v", pts)
	}

	raw := string(b.published["elexon/forecast/solar"])
	for _, want := range []string{`"processType":"Intraday Total"`, `"quantity":null`} {
		if !strings.Contains(raw, want) {
			t.Errorf("expected %s in %s", want, raw)
		}
	}

	var wind Snapshot
	if err := json.Unmarshal(b.published["elexon/forecast/wind"], &wind); err != nil {
		t.Fatalf("failed to decode wind snapshot: %v", err)
	}
	if len(wind.Series) != 0 {
		t.Errorf("expected no wind series, got %d", len(wind.Series))
	}

	if m["Solar/ok"] != 1 || m["Wind/ok"] != 1 {
		t.Errorf("unexpected metrics %v", m)
	}
}

func TestPublishForecastPartialFailure(t *testing.T) {
	b := &fakeBroker{published: map[string][]byte{}, failOn: "elexon/forecast/solar"}
	m := countingMetrics{}

	err := newTestPublisher(b, m).PublishForecast(context.Background(), testResult())
	if err == nil || !strings.Contains(err.Error(), "not connected") {
		t.Fatalf("expected a publish error, got %v", err)
	}
	if _, ok := b.published["elexon/forecast/wind"]; !ok {
		t.Errorf("expected wind to be published regardless")
	}
	if m["Solar/failed"] != 1 || m["Wind/ok"] != 1 {
		t.Errorf("unexpected metrics %v", m)
	}
}
