// Command covplan plans a coverage path over a polygonal area read from a
// JSON vertex file and writes the result as GeoJSON, optionally rendering a
// PNG of the plan.
package main

import (
	"encoding/json"
	"os"

	"github.com/golang/geo/r2"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot/vg"

	"go.viam.com/rdk/logging"

	"go.viam.com/coveragepath/geometry"
	"go.viam.com/coveragepath/planner"
	"go.viam.com/coveragepath/viz"
)

const (
	flagArea          = "area"
	flagSensorRadius  = "sensor-radius"
	flagVehicleRadius = "vehicle-radius"
	flagOutput        = "output"
	flagPlot          = "plot"
)

func main() {
	app := &cli.App{
		Name:  "covplan",
		Usage: "plan a coverage path over a polygonal area",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagArea, Required: true, Usage: "path to a JSON file of [x,y] vertex pairs"},
			&cli.Float64Flag{Name: flagSensorRadius, Value: 1.0},
			&cli.Float64Flag{Name: flagVehicleRadius, Value: 0.5},
			&cli.StringFlag{Name: flagOutput, Value: "path.geojson"},
			&cli.StringFlag{Name: flagPlot, Usage: "optional PNG path to render the plan"},
		},
		Action: run,
	}

	logger := logging.NewLogger("covplan")
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx *cli.Context) error {
	logger := logging.NewLogger("covplan")

	verts, err := loadVertices(ctx.String(flagArea))
	if err != nil {
		return err
	}
	area := geometry.NewSimpleArea(verts)

	p := planner.NewHorizontal(ctx.Float64(flagSensorRadius), ctx.Float64(flagVehicleRadius))
	p.Logger = logger

	result, err := p.Plan(area, nil)
	if err != nil {
		return err
	}

	data, err := result.Serialize()
	if err != nil {
		return err
	}
	if err := os.WriteFile(ctx.String(flagOutput), data, 0o644); err != nil {
		return err
	}
	logger.Infow("wrote coverage path", "file", ctx.String(flagOutput), "points", len(result.Coords))

	if plotPath := ctx.String(flagPlot); plotPath != "" {
		view := viz.NewDomainView("coverage plan")
		if err := view.PlotArea(area); err != nil {
			return err
		}
		if err := view.PlotPath(result); err != nil {
			return err
		}
		if err := view.Save(8*vg.Inch, 8*vg.Inch, plotPath); err != nil {
			return err
		}
		logger.Infow("wrote plan render", "file", plotPath)
	}

	return nil
}

func loadVertices(path string) ([]r2.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw [][2]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	verts := make([]r2.Point, len(raw))
	for i, v := range raw {
		verts[i] = r2.Point{X: v[0], Y: v[1]}
	}
	return verts, nil
}
