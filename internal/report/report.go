// Package report renders an HTML summary of the measurement store using
// go-echarts: measurement counts per kind, distance/area/volume totals and
// per-group counts. The page is self-contained and served by the API at
// /report.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fieldline-data/measurekit/internal/measure"
	"github.com/fieldline-data/measurekit/internal/store"
	"github.com/fieldline-data/measurekit/internal/units"
)

// kindOrder fixes the chart axis order.
var kindOrder = []measure.Kind{
	measure.Linear, measure.Angular, measure.Area, measure.Volume,
	measure.Radius, measure.Diameter, measure.Path, measure.Clearance,
}

// Render produces the summary page for the current store contents.
func Render(s *store.Store) ([]byte, error) {
	page := components.NewPage()
	page.PageTitle = "Measurement Summary"
	page.AddCharts(kindBar(s), totalsBar(s), groupPie(s))

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func kindBar(s *store.Store) *charts.Bar {
	counts := make(map[measure.Kind]int)
	for _, m := range s.List() {
		counts[m.Kind]++
	}

	x := make([]string, 0, len(kindOrder))
	y := make([]opts.BarData, 0, len(kindOrder))
	for _, k := range kindOrder {
		x = append(x, k.String())
		y = append(y, opts.BarData{Value: counts[k]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Measurements by Kind",
			Subtitle: time.Now().UTC().Format(time.RFC3339),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("count", y,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}

func totalsBar(s *store.Store) *charts.Bar {
	agg := s.Aggregates()
	set := s.Settings()

	x := []string{
		"Distance (" + set.Unit + ")",
		"Area (" + units.AreaUnitFor(set.Unit) + ")",
		"Volume (" + units.VolumeUnitFor(set.Unit) + ")",
	}
	y := []opts.BarData{
		{Value: units.Convert(agg.TotalDistance, units.Feet, set.Unit)},
		{Value: units.Convert(agg.TotalArea, units.SquareFeet, units.AreaUnitFor(set.Unit))},
		{Value: units.Convert(agg.TotalVolume, units.CubicFeet, units.VolumeUnitFor(set.Unit))},
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Totals"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("total", y,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}

func groupPie(s *store.Store) *charts.Pie {
	grouped := 0
	data := []opts.PieData{}
	for _, g := range s.ListGroups() {
		grouped += len(g.Members)
		data = append(data, opts.PieData{Name: g.Name, Value: len(g.Members)})
	}
	if ungrouped := s.Len() - grouped; ungrouped > 0 {
		data = append(data, opts.PieData{Name: "ungrouped", Value: ungrouped})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Measurements by Group"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("groups", data)
	return pie
}
