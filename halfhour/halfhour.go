package halfhour

import (
	"fmt"
	"time"

	"github.com/angas/elexon-forecast/slice"
)

const (
	Length = 30 * time.Minute

	DateLayout  = "2006-01-02"
	labelLayout = "2006-01-02 15:04"
)

var guiLocation *time.Location = time.UTC

func SetGuiTimezone(timezone string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %s: %v", timezone, err)
	}
	guiLocation = loc
	return nil
}

func GuiLocation() *time.Location {
	return guiLocation
}

type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("end %s must be after start %s",
		e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// Floor truncates t to the half hour containing it. Buckets are aligned on
// the absolute instant, so the result does not depend on t's location.
func Floor(t time.Time) time.Time {
	return t.Truncate(Length)
}

func IsAligned(t time.Time) bool {
	return Floor(t).Equal(t)
}

// Key identifies a bucket independently of the location it is expressed in.
func Key(t time.Time) int64 {
	return Floor(t).Unix()
}

// Window turns two calendar dates into the instants at midnight in loc.
func Window(startDate, endDate time.Time, loc *time.Location) (time.Time, time.Time, error) {
	start := midnight(startDate, loc)
	end := midnight(endDate, loc)
	if !end.After(start) {
		return start, end, &InvalidRangeError{Start: start, End: end}
	}
	return start, end, nil
}

// Grid returns every bucket from start to end, 30 minutes apart. The end is
// included when it lands on a bucket boundary.
func Grid(start, end time.Time) ([]time.Time, error) {
	if !end.After(start) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}

	loc := start.Location()
	first := Floor(start)
	n := int(end.Sub(first)/Length) + 1
	grid := make([]time.Time, 0, n)
	for t := first; !t.After(end); t = t.Add(Length) {
		grid = append(grid, t.In(loc))
	}
	return grid, nil
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func FromIso(str string) time.Time {
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return time.Time{}
	}
	return t
}

func Label(t time.Time) string {
	return t.In(guiLocation).Format(labelLayout)
}

func Labels(grid []time.Time) []string {
	return slice.Map(grid, Label)
}

func Today() time.Time {
	return midnight(time.Now(), guiLocation)
}

func midnight(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
