package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"tp-server/crowd"
)

// RenderForecastChart writes an HTML page plotting the hourly crowd
// percentage as bars with the trend as a line. Closed hours plot at 0.
func RenderForecastChart(w io.Writer, title string, forecast []crowd.HourlyEstimate) error {
	hours := make([]string, 0, len(forecast))
	bars := make([]opts.BarData, 0, len(forecast))
	points := make([]opts.LineData, 0, len(forecast))
	for _, h := range forecast {
		hours = append(hours, h.DisplayHour)
		bars = append(bars, opts.BarData{Name: string(h.Level), Value: h.Percentage})
		points = append(points, opts.LineData{Value: h.Percentage})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Estimated crowd % by hour",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Crowd %",
			Min:  0,
			Max:  100,
		}),
	)
	bar.SetXAxis(hours).AddSeries("Crowd", bars)

	line := charts.NewLine()
	line.SetXAxis(hours).AddSeries("Trend", points,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)
	bar.Overlap(line)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render forecast chart: %w", err)
	}
	return nil
}
