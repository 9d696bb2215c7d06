package chartjs

import (
	"time"

	"github.com/angas/elexon-forecast/convert"
	"github.com/angas/elexon-forecast/forecast"
	"github.com/angas/elexon-forecast/halfhour"
)

const (
	XAxis = "x"
	YAxis = "y"
)

// NewTimeChart creates a line chart with one label per grid bucket.
func NewTimeChart(title string, grid []time.Time) Chart {
	chart := Chart{
		Type: "line",
		Data: ChartData{
			Labels:   halfhour.Labels(grid),
			Datasets: []ChartDataset{},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: true, Title: ChartTitle{Display: true, Text: "Process Type"}},
				Title:  ChartTitle{Display: false},
			},
			Scales: map[string]ChartScale{
				XAxis: {
					Type:     "category",
					Display:  true,
					Position: "bottom",
					Title:    ChartScaleTitle{Display: true, Text: "Date and Time"},
					Ticks:    &ChartTicks{MaxRotation: 45, MinRotation: 45, AutoSkip: true},
				},
				YAxis: ChartScale{
					Type:     "linear",
					Display:  true,
					Position: "left",
					Title:    ChartScaleTitle{Display: true, Text: "Forecast (MW)"},
				}.WithMin(0),
			},
		},
	}

	if title != "" {
		chart.Options.Plugins.Title = ChartTitle{Display: true, Text: title}
	}

	return chart
}

// WithSeries adds one line per named series. Gaps are kept as nil values and
// never spanned.
func (c Chart) WithSeries(series []forecast.NamedSeries) Chart {
	for _, s := range series {
		data := make([]*float64, len(s.Points))
		for i, p := range s.Points {
			if p.Quantity.IsValid() {
				data[i] = FixedFloat64(p.Quantity.Value(), 2)
			}
		}
		c.Data.Datasets = append(c.Data.Datasets, ChartDataset{
			Label:       s.Label.String(),
			Data:        data,
			BorderWidth: 2,
			Tension:     0,
			Fill:        false,
			BorderColor: s.Color,
			PointRadius: 0,
			SpanGaps:    false,
			YAxisID:     YAxis,
		})
	}
	return c
}

func (cs ChartScale) WithMin(min float64) ChartScale {
	cs.Min = &min
	return cs
}

func FixedFloat64(num float64, precision int) *float64 {
	result := convert.RoundFloat64(num, precision)
	return &result
}
