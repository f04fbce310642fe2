package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gavelhq/gavel/internal/model"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ImpactDeck displays bill activity per week as a stacked bar chart,
// one segment per status.
type ImpactDeck struct {
	data []model.WeekImpact
}

// NewImpactDeck creates a new impact deck.
func NewImpactDeck() *ImpactDeck {
	return &ImpactDeck{
		data: make([]model.WeekImpact, 0),
	}
}

func (d *ImpactDeck) ID() string    { return "impact" }
func (d *ImpactDeck) Title() string { return "Activity" }

func (d *ImpactDeck) TypeID() string                 { return "impact" }
func (d *ImpactDeck) DefaultInterval() time.Duration { return 5 * time.Second }

func (d *ImpactDeck) FetchCmd(store model.ReadAPI, f model.BillFilter) tea.Cmd {
	return func() tea.Msg {
		weeks, err := store.ImpactByWeek(f)
		return DeckDataMsg{DeckTypeID: "impact", Data: weeks, Err: err}
	}
}

func (d *ImpactDeck) ApplyData(data any, err error) {
	if err != nil {
		return
	}
	if weeks, ok := data.([]model.WeekImpact); ok {
		d.data = append([]model.WeekImpact(nil), weeks...)
	}
}

func (d *ImpactDeck) ContentLines(ctx ViewContext) int {
	if len(d.data) == 0 {
		return 1
	}
	deckHeight := 8
	if ctx.ContentWidth < 80 {
		deckHeight = 6
	}
	return deckHeight
}

func (d *ImpactDeck) ItemCount() int {
	return len(d.data)
}

func (d *ImpactDeck) Render(ctx ViewContext, width, height int, active bool, _ int) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}

	var headerText string
	leftTitle := deckTitleWithBadges("Weekly Activity", ctx)
	if len(d.data) > 0 {
		minTotal, maxTotal := d.data[0].Total, d.data[0].Total
		for _, wk := range d.data {
			if wk.Total < minTotal {
				minTotal = wk.Total
			}
			if wk.Total > maxTotal {
				maxTotal = wk.Total
			}
		}
		rightStats := fmt.Sprintf("Min: %d | Max: %d", minTotal, maxTotal)
		availableWidth := width - 4
		spacerWidth := availableWidth - len(leftTitle) - len(rightStats)
		if spacerWidth > 0 {
			headerText = leftTitle + strings.Repeat(" ", spacerWidth) + rightStats
		} else {
			headerText = leftTitle
		}
	} else {
		headerText = leftTitle
	}

	title := deckTitleStyle.Render(headerText)

	contentLines := height - 3
	if contentLines < 1 {
		contentLines = 1
	}

	var content string
	if len(d.data) > 0 {
		content = d.renderContent(width, contentLines)
	} else if ctx.DeckLoading {
		content = renderLoadingPlaceholder(width-2, contentLines)
	} else {
		content = helpStyle.Render("No data available")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (d *ImpactDeck) OnSelect(_ ViewContext, _ int) tea.Cmd {
	return nil
}

// statusSegments returns the stacked segments for one week in draw order.
func statusSegments(wk model.WeekImpact) []struct {
	name  string
	count int64
} {
	return []struct {
		name  string
		count int64
	}{
		{"INTRODUCED", wk.Introduced},
		{"COMMITTEE", wk.Committee},
		{"FLOOR", wk.Floor},
		{"PASSED", wk.Passed},
		{"ENACTED", wk.Enacted},
		{"DEAD", wk.Dead},
	}
}

func barStyleFor(status string) lipgloss.Style {
	c := statusColor(status)
	return lipgloss.NewStyle().Foreground(c).Background(c)
}

func (d *ImpactDeck) renderContent(deckWidth int, availableLines int) string {
	if len(d.data) == 0 {
		return helpStyle.Render("No data available")
	}

	legendWidth := 18
	chartHeight := availableLines
	if chartHeight < 4 {
		chartHeight = 4
	}
	chartWidth := deckWidth - legendWidth - 2
	if chartWidth < 20 {
		chartWidth = 20
	}

	dataPoints := len(d.data)
	maxBars := chartWidth / 3

	var paddingCount int
	var dataStartIdx int

	if dataPoints < maxBars {
		paddingCount = maxBars - dataPoints
		dataStartIdx = 0
	} else {
		paddingCount = 0
		dataStartIdx = dataPoints - maxBars
	}

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)

	emptyStyle := lipgloss.NewStyle().Foreground(ColorGray).Background(ColorGray)

	for i := 0; i < paddingCount; i++ {
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: "EMPTY", Value: 0, Style: emptyStyle},
			},
		})
	}

	actualDataCount := min(dataPoints, maxBars-paddingCount)
	for i := 0; i < actualDataCount; i++ {
		wk := d.data[dataStartIdx+i]

		var barValues []barchart.BarValue
		for _, seg := range statusSegments(wk) {
			if seg.count > 0 {
				barValues = append(barValues, barchart.BarValue{
					Name:  seg.name,
					Value: float64(seg.count),
					Style: barStyleFor(seg.name),
				})
			}
		}

		if len(barValues) == 0 {
			barValues = append(barValues, barchart.BarValue{
				Name:  "EMPTY",
				Value: 0.0,
				Style: emptyStyle,
			})
		}

		bc.Push(barchart.BarData{Label: "", Values: barValues})
	}

	bc.Draw()
	chartOutput := bc.View()

	legend := d.renderLegend(chartHeight, legendWidth)

	separator := strings.Repeat(" ", 2)
	chartLines := strings.Split(chartOutput, "\n")
	for len(chartLines) < chartHeight {
		chartLines = append(chartLines, "")
	}
	legendLines := strings.Split(legend, "\n")

	var combinedLines []string
	for i := 0; i < chartHeight; i++ {
		chartLine := ""
		legendLine := ""
		if i < len(chartLines) {
			chartLine = chartLines[i]
		}
		if i < len(legendLines) {
			legendLine = legendLines[i]
		}
		if len(chartLine) < chartWidth {
			chartLine += strings.Repeat(" ", chartWidth-len(chartLine))
		}
		combinedLines = append(combinedLines, chartLine+separator+legendLine)
	}

	return strings.Join(combinedLines, "\n")
}

func (d *ImpactDeck) renderLegend(height, width int) string {
	latest := d.data[len(d.data)-1]

	rows := []struct {
		name  string
		count int64
	}{
		{"ENACTED", latest.Enacted},
		{"PASSED", latest.Passed},
		{"FLOOR", latest.Floor},
		{"COMMITTEE", latest.Committee},
		{"INTRO", latest.Introduced},
		{"DEAD", latest.Dead},
		{"─────", 0},
		{"TOTAL", latest.Total},
	}

	var lines []string
	for _, row := range rows {
		if row.name == "─────" {
			lines = append(lines, helpStyle.Render("─────────────"))
			continue
		}
		color := statusColor(row.name)
		if row.name == "TOTAL" {
			color = ColorWhite
		}
		if row.name == "INTRO" {
			color = statusColor("INTRODUCED")
		}
		label := fmt.Sprintf("%-9s:", row.name)
		value := fmt.Sprintf("%5d", row.count)
		lines = append(lines, lipgloss.NewStyle().Foreground(color).Render(label+value))
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width-2))
	}

	return strings.Join(lines, "\n")
}
