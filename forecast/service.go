package forecast

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/angas/elexon-forecast/halfhour"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	OutcomeOk      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeFailed  = "failed"
	OutcomeInvalid = "invalid"
)

type Metrics interface {
	ObserveFetch(processType string, outcome string, d time.Duration)
	ObserveRequest(outcome string, d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ObserveFetch(string, string, time.Duration) {}
func (noopMetrics) ObserveRequest(string, time.Duration)       {}

type Options struct {
	Location *time.Location
	Timeout  time.Duration // per remote call
	Workers  int           // concurrent remote calls
	Palette  Palette
}

type Service struct {
	logger  *slog.Logger
	src     Source
	opts    Options
	metrics Metrics
}

func NewService(logger *slog.Logger, src Source, opts Options, metrics Metrics) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Workers <= 0 {
		opts.Workers = len(ProcessTypes())
	}
	if opts.Palette == nil {
		opts.Palette = DefaultPalette()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		logger:  logger,
		src:     src,
		opts:    opts,
		metrics: metrics,
	}
}

type Result struct {
	RequestID   string
	Start       time.Time
	End         time.Time
	Grid        []time.Time
	Solar       []NamedSeries
	Wind        []NamedSeries
	Diagnostics []string
}

func (r Result) Series(bt BusinessType) []NamedSeries {
	if bt == Wind {
		return r.Wind
	}
	return r.Solar
}

type fetchOutcome struct {
	records []Record
	err     error
}

// RequestForecast fetches every process type for the dates [startDate,
// endDate] and returns one set of named series per business type. Fetch
// failures end up in the diagnostics, only an invalid range or a cancelled
// context fail the request.
func (s *Service) RequestForecast(ctx context.Context, startDate, endDate time.Time) (Result, error) {
	began := time.Now()

	start, end, err := halfhour.Window(startDate, endDate, s.opts.Location)
	if err != nil {
		s.metrics.ObserveRequest(OutcomeInvalid, time.Since(began))
		return Result{}, err
	}
	grid, err := halfhour.Grid(start, end)
	if err != nil {
		s.metrics.ObserveRequest(OutcomeInvalid, time.Since(began))
		return Result{}, err
	}

	result := Result{
		RequestID: uuid.NewString(),
		Start:     start,
		End:       end,
		Grid:      grid,
	}
	logger := s.logger.With(slog.String("requestId", result.RequestID))
	logger.Debug("forecast request",
		slog.Time("start", start),
		slog.Time("end", end),
		slog.Int("buckets", len(grid)))

	outcomes := s.fetchAll(ctx, logger, start, end)
	if err := ctx.Err(); err != nil {
		s.metrics.ObserveRequest(OutcomeFailed, time.Since(began))
		return Result{}, err
	}

	aligned := map[BusinessType]map[ProcessType]AlignedSeries{}
	for _, bt := range BusinessTypes() {
		aligned[bt] = map[ProcessType]AlignedSeries{}
	}

	for _, pt := range ProcessTypes() {
		o := outcomes[pt]
		for _, bt := range BusinessTypes() {
			if o.err != nil {
				fe := &FetchError{ProcessType: pt, BusinessType: bt, Err: o.err}
				result.Diagnostics = append(result.Diagnostics, fe.Error())
				continue
			}
			aligned[bt][pt] = alignPair(grid, o.records, bt)
		}
	}

	for _, bt := range BusinessTypes() {
		named, notices := Present(bt, aligned[bt], s.opts.Palette)
		for _, n := range notices {
			logger.Info(n.String())
			result.Diagnostics = append(result.Diagnostics, n.String())
		}
		if bt == Wind {
			result.Wind = named
		} else {
			result.Solar = named
		}
	}

	s.metrics.ObserveRequest(OutcomeOk, time.Since(began))
	logger.Info("forecast request done",
		slog.Int("solarSeries", len(result.Solar)),
		slog.Int("windSeries", len(result.Wind)),
		slog.Int("diagnostics", len(result.Diagnostics)),
		slog.Duration("elapsed", time.Since(began)))

	return result, nil
}

// fetchAll runs one remote call per process type on a bounded pool. Every
// call writes only its own slot of the result.
func (s *Service) fetchAll(ctx context.Context, logger *slog.Logger, start, end time.Time) []fetchOutcome {
	pts := ProcessTypes()
	outcomes := make([]fetchOutcome, len(pts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for _, pt := range pts {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, s.opts.Timeout)
			defer cancel()

			began := time.Now()
			records, err := Fetch(callCtx, s.src, pt, start, end)
			switch {
			case err != nil:
				if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
					logger.Warn("forecast fetch timed out", slog.String("processType", pt.String()), slog.Any("error", err))
				} else {
					logger.Warn("forecast fetch failed", slog.String("processType", pt.String()), slog.Any("error", err))
				}
				s.metrics.ObserveFetch(pt.String(), OutcomeFailed, time.Since(began))
			case len(records) == 0:
				s.metrics.ObserveFetch(pt.String(), OutcomeEmpty, time.Since(began))
			default:
				s.metrics.ObserveFetch(pt.String(), OutcomeOk, time.Since(began))
			}

			outcomes[pt] = fetchOutcome{records: records, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// alignPair is the per (process type, business type) pipeline.
func alignPair(grid []time.Time, records []Record, bt BusinessType) AlignedSeries {
	return Align(grid, Resample(FilterBusiness(records, bt)))
}
