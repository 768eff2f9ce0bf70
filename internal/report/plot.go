package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RenderPitchAreaPlot saves a scatter of surface pitch versus projected area
// as a PNG, giving the reviewer a quick read on how steep the measured roof
// faces are relative to their size.
func RenderPitchAreaPlot(doc *Document, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Pitch vs projected area (session %s)", doc.SessionID)
	p.X.Label.Text = "Pitch (degrees)"
	p.Y.Label.Text = "Projected area (m²)"

	pts := make(plotter.XYs, 0, len(doc.Surfaces))
	for _, s := range doc.Surfaces {
		pts = append(pts, plotter.XY{X: s.PitchDeg, Y: s.ProjectedArea})
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	p.Add(scatter)
	p.Add(plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save pitch/area plot: %w", err)
	}
	return nil
}
