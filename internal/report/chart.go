package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderAreaChart writes an HTML bar chart of per-surface projected areas to
// w, for embedding in the quote review page.
func RenderAreaChart(doc *Document, w io.Writer) error {
	labels := make([]string, 0, len(doc.Surfaces))
	areas := make([]opts.BarData, 0, len(doc.Surfaces))
	for i, s := range doc.Surfaces {
		labels = append(labels, fmt.Sprintf("%s #%d", s.Type, i+1))
		areas = append(areas, opts.BarData{Value: s.ProjectedArea})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Roof Measurement Summary"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Projected area by surface",
			Subtitle: fmt.Sprintf("session=%s total=%.1f m² quality=%.2f", doc.SessionID, doc.TotalArea, doc.QualityScore),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "m²"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("projected area", areas)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render area chart: %w", err)
	}
	return nil
}
