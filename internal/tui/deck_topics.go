package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gavelhq/gavel/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TopicsDeck displays the policy topics with the most tracked bills.
type TopicsDeck struct {
	data []model.TopicCount
}

// NewTopicsDeck creates a new topics deck.
func NewTopicsDeck() *TopicsDeck {
	return &TopicsDeck{}
}

func (d *TopicsDeck) ID() string    { return "topics" }
func (d *TopicsDeck) Title() string { return "Topics" }

func (d *TopicsDeck) TypeID() string                 { return "topics" }
func (d *TopicsDeck) DefaultInterval() time.Duration { return 5 * time.Second }

func (d *TopicsDeck) FetchCmd(store model.ReadAPI, _ model.BillFilter) tea.Cmd {
	return func() tea.Msg {
		topics, err := store.TopTopics(10)
		return DeckDataMsg{DeckTypeID: "topics", Data: topics, Err: err}
	}
}

func (d *TopicsDeck) ApplyData(data interface{}, err error) {
	if err != nil {
		return
	}
	if topics, ok := data.([]model.TopicCount); ok {
		d.data = append([]model.TopicCount(nil), topics...)
	}
}

func (d *TopicsDeck) ContentLines(ctx ViewContext) int {
	minLines := 8
	if ctx.ContentWidth < 80 {
		minLines = 5
	}
	if len(d.data) == 0 {
		return minLines
	}
	maxItems := min(len(d.data), 10)
	if ctx.ContentWidth < 80 {
		maxItems = min(maxItems, 5)
	}
	return max(maxItems, minLines)
}

func (d *TopicsDeck) ItemCount() int {
	return min(len(d.data), 10)
}

func (d *TopicsDeck) Render(ctx ViewContext, width, height int, active bool, selIdx int) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}

	title := deckTitleStyle.Render(deckTitleWithBadges("Top Topics", ctx))

	var content string
	if len(d.data) > 0 {
		content = d.renderContent(ctx, width, selIdx, active)
	} else if ctx.DeckLoading {
		content = renderLoadingPlaceholder(width-2, max(1, height-3))
	} else {
		content = helpStyle.Render("No data available")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (d *TopicsDeck) OnSelect(_ ViewContext, _ int) tea.Cmd {
	return nil
}

func (d *TopicsDeck) renderContent(ctx ViewContext, deckWidth int, selectedIdx int, active bool) string {
	maxItems := 10
	if ctx.ContentWidth < 80 {
		maxItems = 5
	}
	if len(d.data) < maxItems {
		maxItems = len(d.data)
	}

	var lines []string

	maxCount := int64(0)
	for _, entry := range d.data {
		if entry.Count > maxCount {
			maxCount = entry.Count
		}
	}

	countFieldWidth := len(fmt.Sprintf("%d", maxCount))
	if countFieldWidth < 3 {
		countFieldWidth = 3
	}

	availableWidth := deckWidth - 2
	fixedOverhead := 4 + (countFieldWidth + 2) + 2
	barWidth := 15
	if availableWidth < 40 {
		barWidth = 8
	}

	labelWidth := availableWidth - fixedOverhead - barWidth
	if labelWidth < 8 {
		labelWidth = 8
	}

	for i := 0; i < maxItems; i++ {
		entry := d.data[i]

		topCount := d.data[0].Count
		filled := int((float64(entry.Count) / float64(topCount)) * float64(barWidth))
		if filled == 0 && entry.Count > 0 {
			filled = 1
		}

		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		formatStr := fmt.Sprintf("%%2d. %%-%ds %%%dd |%%s|", labelWidth, countFieldWidth)
		line := fmt.Sprintf(formatStr, i+1, truncateText(entry.Topic, labelWidth), entry.Count, bar)

		if i == selectedIdx && active {
			line = lipgloss.NewStyle().
				Background(ColorBlue).
				Foreground(ColorWhite).
				Render(line)
		} else {
			line = lipgloss.NewStyle().
				Foreground(ColorWhite).
				Render(line)
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
