package forecast

// Present names and colors the aligned series of one business type, in
// process type order. Process types missing from aligned are skipped
// silently, their failure has already been reported. A series without any
// usable point is left out and reported as a notice.
func Present(bt BusinessType, aligned map[ProcessType]AlignedSeries, palette Palette) ([]NamedSeries, []EmptySeriesNotice) {
	var named []NamedSeries
	var notices []EmptySeriesNotice

	for _, pt := range ProcessTypes() {
		series, ok := aligned[pt]
		if !ok {
			continue
		}
		if series.Present() == 0 {
			notices = append(notices, EmptySeriesNotice{ProcessType: pt, BusinessType: bt})
			continue
		}
		named = append(named, NamedSeries{
			Label:  pt,
			Color:  palette.Color(pt),
			Points: series,
		})
	}

	return named, notices
}
