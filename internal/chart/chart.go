package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/alexanderramin/rcpsp/internal/report"
)

// Page builds an HTML page with a schedule heatmap (one row per job, one
// column per day, colored by job) and a daily usage bar chart per resource.
func Page(title string, rep *report.Report) *components.Page {
	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(scheduleHeatMap(title, rep), usageBars(rep))
	return page
}

// Write renders the page for rep to w.
func Write(w io.Writer, title string, rep *report.Report) error {
	if err := Page(title, rep).Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// WriteFile renders the page for rep into path, replacing any existing file.
func WriteFile(path, title string, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := Write(f, title, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func dayLabels(days int) []string {
	out := make([]string, days)
	for d := range days {
		out[d] = fmt.Sprintf("%d", d+1)
	}
	return out
}

func scheduleHeatMap(title string, rep *report.Report) *charts.HeatMap {
	hm := charts.NewHeatMap()

	jobs := make([]string, len(rep.Schedule.Jobs))
	var data []opts.HeatMapData
	for y, row := range rep.Schedule.Jobs {
		jobs[y] = row.Key.String()
		for x, cell := range row.Cells {
			if cell == "" {
				continue
			}
			data = append(data, opts.HeatMapData{
				Name:  cell,
				Value: [3]interface{}{x, y, y + 1},
			})
		}
	}

	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("Schedule, makespan %d", rep.Makespan)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Day", Type: "category", Data: dayLabels(rep.Schedule.Days)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Job", Type: "category", Data: jobs}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(max(len(jobs), 1)),
		}),
	)
	hm.AddSeries("schedule", data)
	return hm
}

func usageBars(rep *report.Report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Resource Usage"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Day"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Units"}),
	)
	bar.SetXAxis(dayLabels(rep.Usage.Days))
	for _, r := range rep.Usage.Resources {
		values := make([]opts.BarData, len(r.Values))
		for i, v := range r.Values {
			values[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(r.Resource, values)
	}
	return bar
}
