package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/angas/elexon-forecast/forecast"
	"github.com/angas/elexon-forecast/halfhour"
)

const gap = "-"

// printTable writes one row per grid bucket and one column per process type.
// Process types without a series print as gaps.
func printTable(w io.Writer, bt forecast.BusinessType, res forecast.Result) error {
	byType := map[forecast.ProcessType]forecast.AlignedSeries{}
	for _, s := range res.Series(bt) {
		byType[s.Label] = s.Points
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{bt.String()}
	for _, pt := range forecast.ProcessTypes() {
		header = append(header, pt.String())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for i, b := range res.Grid {
		row := []string{halfhour.Label(b)}
		for _, pt := range forecast.ProcessTypes() {
			cell := gap
			if points, ok := byType[pt]; ok && i < len(points) && points[i].Quantity.IsValid() {
				cell = fmt.Sprintf("%.2f", points[i].Quantity.Value())
			}
			row = append(row, cell)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
