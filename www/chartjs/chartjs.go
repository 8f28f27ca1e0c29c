package chartjs

import "github.com/odonslab/dengueview-go/convert"

const ColorTemp = "#f44336d4"
const ColorRain = "#2196f3d4"
const ColorCases = "#4caf50d4"

// Palette cycled for per-year datasets.
var yearColors = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#008080",
	"#9a6324",
}

func YearColor(i int) string {
	return yearColors[i%len(yearColors)]
}

func NewLineChart(title string, labels []string) Chart {
	chart := Chart{
		Type: "line",
		Data: ChartData{Labels: labels},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: true},
				Title:  ChartTitle{Display: false},
			},
		},
	}

	if title != "" {
		chart.Options.Plugins.Title = ChartTitle{Display: true, Text: title}
	}

	return chart
}

func NewBarChart(title string, labels []string) Chart {
	chart := NewLineChart(title, labels)
	chart.Type = "bar"
	return chart
}

func NewScatterChart(title, xTitle, yTitle string) Chart {
	chart := Chart{
		Type: "scatter",
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: true},
				Title:  ChartTitle{Display: true, Text: title},
			},
			Scales: map[string]ChartScale{
				"x": {Type: "linear", Display: true, Position: "bottom",
					Title: ChartScaleTitle{Display: true, Text: xTitle}},
				"y": {Type: "linear", Display: true, Position: "left",
					Title: ChartScaleTitle{Display: true, Text: yTitle}},
			},
		},
	}
	return chart
}

func NewBubbleChart(title, xTitle, yTitle string) Chart {
	chart := NewScatterChart(title, xTitle, yTitle)
	chart.Type = "bubble"
	return chart
}

func (c *Chart) AddLineDataset(label, color string, data []*float64) {
	c.Data.Datasets = append(c.Data.Datasets, ChartDataset{
		Label:       label,
		Data:        data,
		BorderWidth: 1,
		Tension:     0.4,
		BorderColor: color,
	})
}

func (c *Chart) AddBarDataset(label, color string, data []*float64) {
	c.Data.Datasets = append(c.Data.Datasets, ChartDataset{
		Label:           label,
		Type:            "bar",
		Data:            data,
		BorderWidth:     1,
		BorderColor:     color,
		BackgroundColor: color,
	})
}

func (c *Chart) AddPointDataset(label, color string, points []Point) {
	c.Data.Datasets = append(c.Data.Datasets, ChartDataset{
		Label:           label,
		Data:            points,
		BorderWidth:     1,
		BorderColor:     color,
		BackgroundColor: color,
	})
}

// AddTrendDataset draws a straight line through two endpoints on a
// scatter chart.
func (c *Chart) AddTrendDataset(label, color string, from, to Point) {
	radius := 0.0
	c.Data.Datasets = append(c.Data.Datasets, ChartDataset{
		Label:       label,
		Type:        "line",
		Data:        []Point{from, to},
		BorderWidth: 2,
		ShowLine:    true,
		PointRadius: &radius,
		BorderColor: color,
	})
}

func (c *Chart) AddBubbleDataset(label, color string, bubbles []Bubble) {
	c.Data.Datasets = append(c.Data.Datasets, ChartDataset{
		Label:           label,
		Data:            bubbles,
		BorderWidth:     1,
		BorderColor:     color,
		BackgroundColor: color,
	})
}

func (cs ChartScale) WithTitle(title string) ChartScale {
	cs.Title.Text = title
	return cs
}

func (cs ChartScale) WithMinAndMax(min, max float64) ChartScale {
	cs.Min = &min
	cs.Max = &max
	return cs
}

func FixedFloat64(num float64, precision int) *float64 {
	result := convert.RoundFloat64(num, precision)
	return &result
}
