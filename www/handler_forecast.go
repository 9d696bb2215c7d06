package www

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/elexon-forecast/forecast"
	"github.com/angas/elexon-forecast/halfhour"
	"github.com/angas/elexon-forecast/www/chartjs"
	"github.com/go-playground/validator/v10"
)

const (
	solarChartTitle = "Elexon Solar Forecast"
	windChartTitle  = "Elexon Wind Forecast"
)

type ForecastRequester interface {
	RequestForecast(ctx context.Context, startDate, endDate time.Time) (forecast.Result, error)
}

type forecastQuery struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"required,datetime=2006-01-02"`
}

type forecastResponse struct {
	RequestID   string        `json:"requestId"`
	Start       string        `json:"start"`
	End         string        `json:"end"`
	Solar       chartjs.Chart `json:"solar"`
	Wind        chartjs.Chart `json:"wind"`
	Diagnostics []string      `json:"diagnostics"`
}

type warningResponse struct {
	Warning string `json:"warning"`
}

// DefaultWindow gives the dates used when neither the query nor the session
// has any.
type DefaultWindow struct {
	DaysBack  int
	DaysAhead int
}

func (d DefaultWindow) Dates() (string, string) {
	today := halfhour.Today()
	return today.AddDate(0, 0, -d.DaysBack).Format(halfhour.DateLayout),
		today.AddDate(0, 0, d.DaysAhead).Format(halfhour.DateLayout)
}

// windowFor picks the dates for r: query parameters first, then the session,
// then the defaults.
func windowFor(r *http.Request, session *Session, defaults DefaultWindow) forecastQuery {
	start, end := session.Window(r)
	if start == "" || end == "" {
		start, end = defaults.Dates()
	}
	q := r.URL.Query()
	if v := q.Get("start"); v != "" {
		start = v
	}
	if v := q.Get("end"); v != "" {
		end = v
	}
	return forecastQuery{Start: start, End: end}
}

func NewForecastHandler(logger *slog.Logger, svc ForecastRequester, session *Session, defaults DefaultWindow) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		query := windowFor(r, session, defaults)
		if err := validate.Struct(query); err != nil {
			logger.Debug("invalid forecast query", slog.Any("error", err))
			writeJSON(logger, w, http.StatusBadRequest, warningResponse{
				Warning: "Please enter the dates as YYYY-MM-DD.",
			})
			return
		}

		loc := halfhour.GuiLocation()
		start, err := halfhour.ParseDate(query.Start, loc)
		if err != nil {
			writeJSON(logger, w, http.StatusBadRequest, warningResponse{Warning: err.Error()})
			return
		}
		end, err := halfhour.ParseDate(query.End, loc)
		if err != nil {
			writeJSON(logger, w, http.StatusBadRequest, warningResponse{Warning: err.Error()})
			return
		}

		res, err := svc.RequestForecast(r.Context(), start, end)
		var rangeErr *forecast.InvalidRangeError
		switch {
		case errors.As(err, &rangeErr):
			writeJSON(logger, w, http.StatusBadRequest, warningResponse{
				Warning: "The end date must be after the start date.",
			})
			return
		case errors.Is(err, context.Canceled):
			logger.Debug("forecast request cancelled by client")
			return
		case err != nil:
			logger.Error("forecast request failed", slog.Any("error", err))
			writeJSON(logger, w, http.StatusInternalServerError, warningResponse{Warning: err.Error()})
			return
		}

		session.SaveWindow(w, r, query.Start, query.End)

		diagnostics := res.Diagnostics
		if diagnostics == nil {
			diagnostics = []string{}
		}

		writeJSON(logger, w, http.StatusOK, forecastResponse{
			RequestID:   res.RequestID,
			Start:       query.Start,
			End:         query.End,
			Solar:       chartjs.NewTimeChart(solarChartTitle, res.Grid).WithSeries(res.Solar),
			Wind:        chartjs.NewTimeChart(windChartTitle, res.Grid).WithSeries(res.Wind),
			Diagnostics: diagnostics,
		})
	}
}
