// Package report renders the results of the car rental and shortcut
// maze experiments as HTML charts and terminal grids
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"
)

// Series is a named sequence of values
type Series struct {
	Name   string
	Values []float64
}

// Line returns a line chart of all series against their index. All
// series must have the same length.
func Line(title, xName string, series ...Series) (*charts.Line, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("line: no series")
	}
	n := len(series[0].Values)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
	)

	steps := make([]string, n)
	for i := range steps {
		steps[i] = fmt.Sprintf("%d", i)
	}
	line.SetXAxis(steps)

	for _, s := range series {
		if len(s.Values) != n {
			return nil, fmt.Errorf("line: series %q has length %d, want %d",
				s.Name, len(s.Values), n)
		}
		items := make([]opts.LineData, n)
		for i, v := range s.Values {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, items)
	}

	return line, nil
}

// HeatMap returns a heat map of m. Rows of m are drawn along the y
// axis and columns along the x axis, so that m.At(i, j) appears at
// (j, i).
func HeatMap(title, xName, yName string, m mat.Matrix) *charts.HeatMap {
	r, c := m.Dims()

	hm := charts.NewHeatMap()
	data := make([]opts.HeatMapData, 0, r*c)
	min, max := m.At(0, 0), m.At(0, 0)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}

	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "category",
			Data: axis(c)}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "category",
			Data: axis(r)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min: float32(min),
			Max: float32(max),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#313695", "#ffffbf", "#a50026"},
			},
		}),
	)
	hm.SetXAxis(axis(c))
	hm.AddSeries(title, data)

	return hm
}

// Render writes an HTML page holding all charts to w
func Render(w io.Writer, title string, items ...components.Charter) error {
	page := components.NewPage()
	page.SetPageTitle(title)
	page.AddCharts(items...)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func axis(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i)
	}
	return labels
}
