package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/tda.playground/internal/tda/sweep"
)

// WriteReport renders an HTML page with the sweep summary as a line chart
// and the input point cloud as a scatter chart.
func WriteReport(w io.Writer, title string, res *sweep.Result) error {
	if res == nil || len(res.Frames) == 0 {
		return fmt.Errorf("empty sweep result")
	}
	s := res.Summary()

	labels := make([]string, len(s.Frames))
	compData := make([]opts.LineData, len(s.Frames))
	edges := make([]opts.LineData, len(s.Frames))
	triangles := make([]opts.LineData, len(s.Frames))
	for i, f := range s.Frames {
		labels[i] = fmt.Sprintf("%.2f", f.Cutoff)
		compData[i] = opts.LineData{Value: f.Components}
		edges[i] = opts.LineData{Value: f.Edges}
		triangles[i] = opts.LineData{Value: f.Triangles}
	}

	subtitle := fmt.Sprintf("mode=%s points=%d frames=%d", res.Mode, len(res.Points), len(s.Frames))
	if s.FirstConnected >= 0 {
		subtitle += fmt.Sprintf(" connected@%.2f", s.FirstConnected)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "cutoff", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	lineOpts := charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)})
	line.SetXAxis(labels).
		AddSeries("components", compData, lineOpts).
		AddSeries("edges", edges, lineOpts).
		AddSeries("triangles", triangles, lineOpts)

	pts := make([]opts.ScatterData, len(res.Points))
	for i, p := range res.Points {
		pts[i] = opts.ScatterData{Name: fmt.Sprintf("%d", i), Value: []interface{}{p.X, p.Y}}
	}
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Point Cloud"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value"}),
	)
	scatter.AddSeries("points", pts, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	page := components.NewPage()
	page.SetPageTitle(title)
	page.AddCharts(line, scatter)
	return page.Render(w)
}
