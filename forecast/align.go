package forecast

import (
	"math"
	"time"

	"github.com/angas/elexon-forecast/halfhour"
	"github.com/angas/elexon-forecast/types/maybe"
)

func isValidQuantity(q float64) bool {
	return !math.IsNaN(q) && !math.IsInf(q, 0) && q > 0
}

// Align places the aggregated points on the grid. Points that are absent,
// not finite or not positive are dropped first. Grid buckets without a
// matching point stay absent; nothing is interpolated.
func Align(grid []time.Time, points []AggregatedPoint) AlignedSeries {
	valid := make(map[int64]float64, len(points))
	for _, p := range points {
		if q := p.Quantity.Filter(isValidQuantity); q.IsValid() {
			valid[halfhour.Key(p.Bucket)] = q.Value()
		}
	}

	series := make(AlignedSeries, len(grid))
	for i, b := range grid {
		series[i] = AggregatedPoint{Bucket: b, Quantity: maybe.None[float64]()}
		if q, ok := valid[b.Unix()]; ok {
			series[i].Quantity = maybe.Some(q)
		}
	}
	return series
}
