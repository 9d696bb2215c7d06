package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/angas/elexon-forecast/config"
	"github.com/angas/elexon-forecast/forecast"
)

type fakeRefresher struct{ n int }

func (f *fakeRefresher) NotifyRefresh() { f.n++ }

type fakeRequester struct {
	start, end time.Time
	err        error
}

func (f *fakeRequester) RequestForecast(ctx context.Context, startDate, endDate time.Time) (forecast.Result, error) {
	f.start, f.end = startDate, endDate
	if f.err != nil {
		return forecast.Result{}, f.err
	}
	return forecast.Result{RequestID: "r1"}, nil
}

type fakePublisher struct {
	published []forecast.Result
}

func (f *fakePublisher) PublishForecast(ctx context.Context, res forecast.Result) error {
	f.published = append(f.published, res)
	return nil
}

type fakePurger struct {
	max int
	err error
}

func (f *fakePurger) PurgeLog(ctx context.Context, maxLogEntries int) (int64, error) {
	f.max = maxLogEntries
	return 3, f.err
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRefreshTaskNotifiesOnly(t *testing.T) {
	r := &fakeRefresher{}
	svc := &fakeRequester{}

	NewRefreshTask(discard, r, svc, nil, time.Second)()

	if r.n != 1 {
		t.Errorf("expected 1 notification, got %d", r.n)
	}
	if !svc.start.IsZero() {
		t.Errorf("expected no forecast request without a publisher")
	}
}

func TestRefreshTaskPublishes(t *testing.T) {
	r := &fakeRefresher{}
	svc := &fakeRequester{}
	pub := &fakePublisher{}

	NewRefreshTask(discard, r, svc, pub, time.Second)()

	if r.n != 1 {
		t.Errorf("expected 1 notification, got %d", r.n)
	}
	if got := svc.end.Sub(svc.start); got != 24*time.Hour {
		t.Errorf("expected a one day window, got %v", got)
	}
	if len(pub.published) != 1 || pub.published[0].RequestID != "r1" {
		t.Errorf("unexpected publications %+v", pub.published)
	}
}

func TestRefreshTaskSkipsPublishOnError(t *testing.T) {
	pub := &fakePublisher{}
	NewRefreshTask(discard, &fakeRefresher{}, &fakeRequester{err: errors.New("boom")}, pub, time.Second)()

	if len(pub.published) != 0 {
		t.Errorf("expected nothing published, got %d", len(pub.published))
	}
}

func TestMaintenanceTask(t *testing.T) {
	p := &fakePurger{}
	NewMaintenanceTask(discard, p, 500)()
	if p.max != 500 {
		t.Errorf("expected max 500, got %d", p.max)
	}
}

func TestTasksRunRejectsBadSchedule(t *testing.T) {
	cnfg := &config.AppConfig{Refresh: config.AppConfigRefresh{Enabled: true, RunAt: "every now and then"}}
	tasks := NewTasks(&fakePurger{}, &fakeRefresher{}, &fakeRequester{}, nil, cnfg)
	if err := tasks.Run(); err == nil {
		tasks.Stop()
		t.Fatalf("expected a schedule error")
	}
}

func TestTasksRun(t *testing.T) {
	cnfg := &config.AppConfig{Refresh: config.AppConfigRefresh{Enabled: true, RunAt: "*/30 * * * *"}}
	tasks := NewTasks(&fakePurger{}, &fakeRefresher{}, &fakeRequester{}, nil, cnfg)
	if err := tasks.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-tasks.Stop().Done()
}
