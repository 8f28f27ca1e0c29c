package www

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sort"

	"github.com/odonslab/dengueview-go/aggregate"
	"github.com/odonslab/dengueview-go/calc"
	"github.com/odonslab/dengueview-go/database"
	"github.com/odonslab/dengueview-go/months"
	"github.com/odonslab/dengueview-go/nasapower"
	"github.com/odonslab/dengueview-go/www/chartjs"
)

func NewChartHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		joined, err := loadJoined(r.Context(), db)
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		charts := BuildCharts(joined)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(charts); err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, "unable to encode chart data", http.StatusInternalServerError)
			return
		}
	}
}

// BuildCharts turns the joined monthly rows into the full set of report
// charts. An empty input yields an empty set, the page shows its
// "no data" state instead.
func BuildCharts(joined []aggregate.JoinedRow) []chartjs.Chart {
	if len(joined) == 0 {
		return []chartjs.Chart{}
	}

	return []chartjs.Chart{
		monthlyValueChart(joined, nasapower.ParamTemperature,
			"Monthly Average Temperature by Year", "Temperature (°C)"),
		monthlyValueChart(joined, nasapower.ParamPrecipitation,
			"Monthly Average Precipitation by Year", "Precipitation (mm/day)"),
		monthlyCasesChart(joined),
		yearlyOverviewChart(joined),
		yearlyCasesChart(joined),
		scatterChart(joined, nasapower.ParamTemperature,
			"Temperature vs Dengue Cases", "Temperature (°C)"),
		scatterChart(joined, nasapower.ParamPrecipitation,
			"Precipitation vs Dengue Cases", "Precipitation (mm/day)"),
		climateCasesBubbleChart(joined),
		seasonalProfileChart(joined),
	}
}

func yearsOf(joined []aggregate.JoinedRow) []int {
	seen := map[int]bool{}
	var years []int
	for _, row := range joined {
		if !seen[row.Key.Year] {
			seen[row.Key.Year] = true
			years = append(years, row.Key.Year)
		}
	}
	sort.Ints(years)
	return years
}

func monthlyValueChart(joined []aggregate.JoinedRow, param, title, axisTitle string) chartjs.Chart {
	chart := chartjs.NewLineChart(title, months.Abbrs())
	chart.Options.Scales = map[string]chartjs.ChartScale{
		"y": {Type: "linear", Display: true, Position: "left",
			Title: chartjs.ChartScaleTitle{Display: true, Text: axisTitle}},
	}

	for i, year := range yearsOf(joined) {
		data := make([]*float64, 12)
		for _, row := range joined {
			if row.Key.Year != year {
				continue
			}
			if v, ok := row.Values[param]; ok && !math.IsNaN(v) {
				data[row.Key.Month-1] = chartjs.FixedFloat64(v, 2)
			}
		}
		chart.AddLineDataset(fmt.Sprintf("%d", year), chartjs.YearColor(i), data)
	}

	return chart
}

func monthlyCasesChart(joined []aggregate.JoinedRow) chartjs.Chart {
	chart := chartjs.NewLineChart("Monthly Dengue Cases by Year", months.Abbrs())
	chart.Options.Scales = map[string]chartjs.ChartScale{
		"y": {Type: "linear", Display: true, Position: "left",
			Title: chartjs.ChartScaleTitle{Display: true, Text: "Reported cases"}},
	}

	for i, year := range yearsOf(joined) {
		data := make([]*float64, 12)
		for _, row := range joined {
			if row.Key.Year != year || !row.Cases.IsValid() {
				continue
			}
			count := float64(row.Cases.ValueOrDefault(0))
			data[row.Key.Month-1] = &count
		}
		chart.AddLineDataset(fmt.Sprintf("%d", year), chartjs.YearColor(i), data)
	}

	return chart
}

func yearlyOverviewChart(joined []aggregate.JoinedRow) chartjs.Chart {
	yearly := aggregate.Yearly(joined)

	labels := make([]string, len(yearly))
	temps := make([]*float64, len(yearly))
	rains := make([]*float64, len(yearly))
	for i, row := range yearly {
		labels[i] = fmt.Sprintf("%d", row.Year)
		if v, ok := row.Values[nasapower.ParamTemperature]; ok && !math.IsNaN(v) {
			temps[i] = chartjs.FixedFloat64(v, 2)
		}
		if v, ok := row.Values[nasapower.ParamPrecipitation]; ok && !math.IsNaN(v) {
			rains[i] = chartjs.FixedFloat64(v, 2)
		}
	}

	chart := chartjs.NewLineChart("Yearly Climate Averages", labels)
	chart.Options.Scales = map[string]chartjs.ChartScale{
		"YAxis1": {Type: "linear", Display: true, Position: "left",
			Title: chartjs.ChartScaleTitle{Display: true, Text: "Temperature (°C)", Color: chartjs.ColorTemp}},
		"YAxis2": {Type: "linear", Display: true, Position: "right",
			Title: chartjs.ChartScaleTitle{Display: true, Text: "Precipitation (mm/day)", Color: chartjs.ColorRain}},
	}
	chart.AddLineDataset("Temperature", chartjs.ColorTemp, temps)
	chart.AddLineDataset("Precipitation", chartjs.ColorRain, rains)
	chart.Data.Datasets[0].YAxisID = "YAxis1"
	chart.Data.Datasets[1].YAxisID = "YAxis2"

	return chart
}

func yearlyCasesChart(joined []aggregate.JoinedRow) chartjs.Chart {
	yearly := aggregate.Yearly(joined)

	labels := make([]string, len(yearly))
	counts := make([]*float64, len(yearly))
	for i, row := range yearly {
		labels[i] = fmt.Sprintf("%d", row.Year)
		count := float64(row.Cases)
		counts[i] = &count
	}

	chart := chartjs.NewBarChart("Dengue Cases per Year", labels)
	chart.Options.Scales = map[string]chartjs.ChartScale{
		"y": {Type: "linear", Display: true, Position: "left",
			Title: chartjs.ChartScaleTitle{Display: true, Text: "Reported cases"}},
	}
	chart.AddBarDataset("Cases", chartjs.ColorCases, counts)

	return chart
}

func scatterChart(joined []aggregate.JoinedRow, param, title, xTitle string) chartjs.Chart {
	var xs, ys []float64
	var points []chartjs.Point
	for _, row := range joined {
		v, ok := row.Values[param]
		if !ok || math.IsNaN(v) || !row.Cases.IsValid() {
			continue
		}
		count := float64(row.Cases.ValueOrDefault(0))
		xs = append(xs, v)
		ys = append(ys, count)
		points = append(points, chartjs.Point{X: v, Y: count})
	}

	r := calc.Pearson(xs, ys)
	if !math.IsNaN(r) {
		title = fmt.Sprintf("%s (r = %.2f)", title, r)
	}

	chart := chartjs.NewScatterChart(title, xTitle, "Reported cases")
	chart.AddPointDataset("Months", chartjs.ColorCases, points)

	slope, intercept := calc.LinearFit(xs, ys)
	if len(xs) >= 2 && !math.IsNaN(slope) {
		minX, maxX := xs[0], xs[0]
		for _, x := range xs {
			minX = math.Min(minX, x)
			maxX = math.Max(maxX, x)
		}
		chart.AddTrendDataset("Trend", chartjs.ColorTemp,
			chartjs.Point{X: minX, Y: slope*minX + intercept},
			chartjs.Point{X: maxX, Y: slope*maxX + intercept})
	}

	return chart
}

func climateCasesBubbleChart(joined []aggregate.JoinedRow) chartjs.Chart {
	var bubbles []chartjs.Bubble
	for _, row := range joined {
		t, tok := row.Values[nasapower.ParamTemperature]
		p, pok := row.Values[nasapower.ParamPrecipitation]
		if !tok || !pok || math.IsNaN(t) || math.IsNaN(p) || !row.Cases.IsValid() {
			continue
		}
		count := float64(row.Cases.ValueOrDefault(0))
		bubbles = append(bubbles, chartjs.Bubble{
			X: t,
			Y: p,
			R: 2 + math.Sqrt(count)*0.35,
		})
	}

	chart := chartjs.NewBubbleChart(
		"Temperature, Precipitation and Cases (bubble size = cases)",
		"Temperature (°C)", "Precipitation (mm/day)")
	chart.AddBubbleDataset("Months", chartjs.ColorCases, bubbles)
	return chart
}

func seasonalProfileChart(joined []aggregate.JoinedRow) chartjs.Chart {
	byMonth := aggregate.ByMonth(joined)

	temps := make([]*float64, 12)
	counts := make([]*float64, 12)
	for _, row := range byMonth {
		if v, ok := row.Values[nasapower.ParamTemperature]; ok && !math.IsNaN(v) {
			temps[row.Month-1] = chartjs.FixedFloat64(v, 2)
		}
		count := float64(row.Cases)
		counts[row.Month-1] = &count
	}

	chart := chartjs.NewBarChart("Seasonal Profile", months.Abbrs())
	chart.Options.Scales = map[string]chartjs.ChartScale{
		"YAxis1": {Type: "linear", Display: true, Position: "left",
			Title: chartjs.ChartScaleTitle{Display: true, Text: "Total cases", Color: chartjs.ColorCases}},
		"YAxis2": {Type: "linear", Display: true, Position: "right",
			Title: chartjs.ChartScaleTitle{Display: true, Text: "Avg temperature (°C)", Color: chartjs.ColorTemp}},
	}
	chart.AddBarDataset("Cases", chartjs.ColorCases, counts)
	chart.AddLineDataset("Temperature", chartjs.ColorTemp, temps)
	chart.Data.Datasets[0].YAxisID = "YAxis1"
	chart.Data.Datasets[1].Type = "line"
	chart.Data.Datasets[1].YAxisID = "YAxis2"

	return chart
}
