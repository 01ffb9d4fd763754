// Package viz renders a planning domain, its constraints, and a final path
// to a figure via gonum.org/v1/plot.
package viz

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"go.viam.com/coveragepath/constraint"
	"go.viam.com/coveragepath/geometry"
	"go.viam.com/coveragepath/path"
)

var (
	domainColor     = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	undirectedColor = color.RGBA{R: 192, G: 192, B: 192, A: 255}
	forwardColor    = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	reverseColor    = color.RGBA{R: 205, G: 92, B: 92, A: 255}
	pathColor       = color.RGBA{R: 30, G: 30, B: 30, A: 255}
)

// DomainView accumulates plot layers for a single figure: one figure,
// repeated draw calls, one save.
type DomainView struct {
	plot *plot.Plot
}

// NewDomainView creates an empty view with the given title.
func NewDomainView(title string) *DomainView {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	return &DomainView{plot: p}
}

// PlotArea draws the area's exterior boundary.
func (v *DomainView) PlotArea(area geometry.Area) error {
	verts := area.Vertices()
	pts := make(plotter.XYs, len(verts)+1)
	for i, vtx := range verts {
		pts[i].X, pts[i].Y = vtx.X, vtx.Y
	}
	pts[len(verts)] = pts[0]

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = domainColor
	line.Width = vg.Points(2)
	v.plot.Add(line)
	return nil
}

// PlotConstraint draws a single constraint's coordinate list, colored by its
// selected direction (silver if undirected).
func (v *DomainView) PlotConstraint(c constraint.Constraint) error {
	coords := c.CoordList()
	pts := make(plotter.XYs, len(coords))
	for i, pt := range coords {
		pts[i].X, pts[i].Y = pt.X, pt.Y
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(3)

	switch d := c.Params().Direction; {
	case d == nil:
		line.Color = undirectedColor
	case d[0] == 0:
		line.Color = forwardColor
	default:
		line.Color = reverseColor
	}

	v.plot.Add(line)
	return nil
}

// PlotPath draws a finished ConstrainedPath's coordinate list along with
// markers for its start and end points.
func (v *DomainView) PlotPath(p *path.ConstrainedPath) error {
	pts := make(plotter.XYs, len(p.Coords))
	for i, c := range p.Coords {
		pts[i].X, pts[i].Y = c.X, c.Y
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = pathColor
	line.Width = vg.Points(2)
	v.plot.Add(line)

	markers, err := plotter.NewScatter(plotter.XYs{pts[0], pts[len(pts)-1]})
	if err != nil {
		return err
	}
	markers.Color = pathColor
	markers.Radius = vg.Points(4)
	v.plot.Add(markers)
	return nil
}

// Save writes the accumulated figure to filename at the given size.
func (v *DomainView) Save(width, height vg.Length, filename string) error {
	return v.plot.Save(width, height, filename)
}
