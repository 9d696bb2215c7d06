package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/elexon-forecast/forecast"
	"github.com/angas/elexon-forecast/halfhour"
)

type Refresher interface {
	NotifyRefresh()
}

type ForecastRequester interface {
	RequestForecast(ctx context.Context, startDate, endDate time.Time) (forecast.Result, error)
}

type ForecastPublisher interface {
	PublishForecast(ctx context.Context, res forecast.Result) error
}

// NewRefreshTask tells open dashboards to reload. With a publisher it also
// requests today and tomorrow and publishes the result.
func NewRefreshTask(
	logger *slog.Logger,
	refresher Refresher,
	svc ForecastRequester,
	publisher ForecastPublisher,
	timeout time.Duration,
) func() {
	return func() {
		logger.Debug("running refresh task...")
		refresher.NotifyRefresh()

		if publisher == nil {
			logger.Debug("refresh task done")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		today := halfhour.Today()
		res, err := svc.RequestForecast(ctx, today, today.AddDate(0, 0, 1))
		if err != nil {
			logger.Error("refresh task forecast error", slog.Any("error", err))
			return
		}

		if err := publisher.PublishForecast(ctx, res); err != nil {
			logger.Error("refresh task publish error", slog.Any("error", err))
			return
		}

		logger.Info("refresh task done",
			slog.String("requestId", res.RequestID),
			slog.Int("diagnostics", len(res.Diagnostics)))
	}
}
