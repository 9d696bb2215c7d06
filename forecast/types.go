package forecast

import (
	"fmt"
	"strings"
	"time"

	"github.com/angas/elexon-forecast/slice"
	"github.com/angas/elexon-forecast/types/maybe"
)

type BusinessType int

const (
	Solar BusinessType = iota
	Wind
)

func BusinessTypes() []BusinessType {
	return []BusinessType{Solar, Wind}
}

func (b BusinessType) String() string {
	switch b {
	case Solar:
		return "Solar"
	case Wind:
		return "Wind"
	default:
		return fmt.Sprintf("BusinessType(%d)", int(b))
	}
}

// apiName is the business type as spelled by the forecast API.
func (b BusinessType) apiName() string {
	return b.String() + " generation"
}

func businessTypeFromAPI(s string) (BusinessType, bool) {
	for _, b := range BusinessTypes() {
		if strings.EqualFold(s, b.apiName()) {
			return b, true
		}
	}
	return 0, false
}

// ProcessType is the revision stage of a forecast.
type ProcessType int

const (
	DayAhead ProcessType = iota
	IntradayProcess
	IntradayTotal
)

func ProcessTypes() []ProcessType {
	return []ProcessType{DayAhead, IntradayProcess, IntradayTotal}
}

func (p ProcessType) String() string {
	switch p {
	case DayAhead:
		return "Day Ahead"
	case IntradayProcess:
		return "Intraday Process"
	case IntradayTotal:
		return "Intraday Total"
	default:
		return fmt.Sprintf("ProcessType(%d)", int(p))
	}
}

func (p ProcessType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *ProcessType) UnmarshalText(text []byte) error {
	pt, err := ParseProcessType(string(text))
	if err != nil {
		return err
	}
	*p = pt
	return nil
}

func ParseProcessType(s string) (ProcessType, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", " ")
	for _, p := range ProcessTypes() {
		if strings.ToLower(p.String()) == norm || strings.ReplaceAll(strings.ToLower(p.String()), " ", "") == norm {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown process type %q", s)
}

// Record is a single forecast value as delivered by the API.
type Record struct {
	StartTime    time.Time
	BusinessType BusinessType
	Quantity     float64 // MW
}

type AggregatedPoint struct {
	Bucket   time.Time            `json:"bucket"`
	Quantity maybe.Maybe[float64] `json:"quantity"`
}

// AlignedSeries has exactly one point per grid bucket, in grid order.
type AlignedSeries []AggregatedPoint

func (s AlignedSeries) Present() int {
	return slice.Count(s, func(p AggregatedPoint) bool { return p.Quantity.IsValid() })
}

// Quantities returns one entry per bucket, nil where there is no forecast.
func (s AlignedSeries) Quantities() []*float64 {
	return slice.Map(s, func(p AggregatedPoint) *float64 { return p.Quantity.Ptr() })
}

type NamedSeries struct {
	Label  ProcessType   `json:"label"`
	Color  string        `json:"color"`
	Points AlignedSeries `json:"points"`
}

// Palette maps a process type to its line color.
type Palette map[ProcessType]string

func DefaultPalette() Palette {
	return Palette{
		DayAhead:        "red",
		IntradayProcess: "blue",
		IntradayTotal:   "green",
	}
}

// PaletteFromConfig builds a palette from process type names, falling back to
// the default color for anything not configured.
func PaletteFromConfig(colors map[string]string) (Palette, error) {
	p := DefaultPalette()
	for name, color := range colors {
		pt, err := ParseProcessType(name)
		if err != nil {
			return nil, err
		}
		if color != "" {
			p[pt] = color
		}
	}
	return p, nil
}

func (p Palette) Color(pt ProcessType) string {
	if c, ok := p[pt]; ok {
		return c
	}
	return DefaultPalette()[pt]
}
