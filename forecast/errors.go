package forecast

import (
	"fmt"

	"github.com/angas/elexon-forecast/halfhour"
)

// InvalidRangeError is returned when the end of a window is not after its start.
type InvalidRangeError = halfhour.InvalidRangeError

// FetchError scopes a remote failure to one process type and business type.
type FetchError struct {
	ProcessType  ProcessType
	BusinessType BusinessType
	Err          error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("error fetching data for process type '%s' (%s): %v", e.ProcessType, e.BusinessType, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// EmptySeriesNotice reports a process type without a single usable point.
type EmptySeriesNotice struct {
	ProcessType  ProcessType
	BusinessType BusinessType
}

func (n EmptySeriesNotice) String() string {
	return fmt.Sprintf("No data available for process type: %s (%s)", n.ProcessType, n.BusinessType)
}
