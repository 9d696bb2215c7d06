package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/angas/elexon-forecast/config"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	RefreshTask     func()
	MaintenanceTask func()
}

// NewTasks wires the scheduled jobs. publisher may be nil, then the refresh
// only notifies the dashboards.
func NewTasks(
	db LogPurger,
	refresher Refresher,
	svc ForecastRequester,
	publisher ForecastPublisher,
	cnfg *config.AppConfig,
) *Tasks {
	logger := slog.Default().With("module", "tasks")

	// Room for every fetch to use its full timeout plus publishing.
	refreshTimeout := cnfg.Elexon.Timeout*3 + 10*time.Second

	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		RefreshTask:     NewRefreshTask(logger.With(slog.String("task", "refresh")), refresher, svc, publisher, refreshTimeout),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg.Logging.GetDbMaxEntries()),
	}
}

func (t *Tasks) Run() error {
	if t.cnfg.Refresh.Enabled {
		if _, err := t.cron.AddFunc(t.cnfg.Refresh.RunAt, t.RefreshTask); err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", t.cnfg.Refresh.RunAt, err)
		}
	}
	if _, err := t.cron.AddFunc("30 2 * * *", t.MaintenanceTask); err != nil {
		return fmt.Errorf("invalid maintenance schedule: %w", err)
	}
	t.cron.Start()
	return nil
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
