package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/angas/elexon-forecast/elexon"
	"github.com/angas/elexon-forecast/slice"
)

// Source is the remote forecast API.
type Source interface {
	GetWindAndSolarForecast(ctx context.Context, processType string, from, to time.Time) ([]elexon.Item, error)
}

// Fetch issues one remote call for pt covering [from, to] and returns the
// records of every business type. Items without a quantity or with an
// unknown business type are skipped; an unreadable start time fails the call.
func Fetch(ctx context.Context, src Source, pt ProcessType, from, to time.Time) ([]Record, error) {
	items, err := src.GetWindAndSolarForecast(ctx, pt.String(), from, to)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		bt, ok := businessTypeFromAPI(item.BusinessType)
		if !ok || item.Quantity == nil {
			continue
		}
		start, err := time.Parse(time.RFC3339, item.StartTime)
		if err != nil {
			return nil, fmt.Errorf("malformed start time %q: %w", item.StartTime, err)
		}
		records = append(records, Record{
			StartTime:    start,
			BusinessType: bt,
			Quantity:     *item.Quantity,
		})
	}

	return records, nil
}

func FilterBusiness(records []Record, bt BusinessType) []Record {
	return slice.Filter(records, func(r Record) bool { return r.BusinessType == bt })
}
