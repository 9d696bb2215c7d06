package forecast

import (
	"slices"

	"github.com/angas/elexon-forecast/halfhour"
	"github.com/angas/elexon-forecast/types/maybe"
)

// Resample sums the quantities of records sharing a half-hour bucket. The
// result is sparse: buckets without records are not present.
func Resample(records []Record) []AggregatedPoint {
	sums := make(map[int64]*AggregatedPoint, len(records))
	for _, r := range records {
		key := halfhour.Key(r.StartTime)
		if p, ok := sums[key]; ok {
			p.Quantity = maybe.Some(p.Quantity.Value() + r.Quantity)
			continue
		}
		sums[key] = &AggregatedPoint{
			Bucket:   halfhour.Floor(r.StartTime),
			Quantity: maybe.Some(r.Quantity),
		}
	}

	points := make([]AggregatedPoint, 0, len(sums))
	for _, p := range sums {
		points = append(points, *p)
	}
	slices.SortFunc(points, func(a, b AggregatedPoint) int {
		return a.Bucket.Compare(b.Bucket)
	})
	return points
}
