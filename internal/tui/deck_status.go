package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gavelhq/gavel/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusDeck displays the distribution of bills across pipeline statuses.
type StatusDeck struct {
	data []model.StatusCount
}

// NewStatusDeck creates a new status deck.
func NewStatusDeck() *StatusDeck {
	return &StatusDeck{}
}

func (d *StatusDeck) ID() string    { return "status" }
func (d *StatusDeck) Title() string { return "Pipeline" }

func (d *StatusDeck) TypeID() string                 { return "status" }
func (d *StatusDeck) DefaultInterval() time.Duration { return 5 * time.Second }

func (d *StatusDeck) FetchCmd(store model.ReadAPI, f model.BillFilter) tea.Cmd {
	return func() tea.Msg {
		counts, err := store.CountsByStatus(f)
		return DeckDataMsg{DeckTypeID: "status", Data: counts, Err: err}
	}
}

func (d *StatusDeck) ApplyData(data interface{}, err error) {
	if err != nil {
		return
	}
	if counts, ok := data.([]model.StatusCount); ok {
		d.data = append([]model.StatusCount(nil), counts...)
	}
}

func (d *StatusDeck) ContentLines(ctx ViewContext) int {
	minLines := 7
	if ctx.ContentWidth < 80 {
		minLines = 5
	}
	return max(len(d.data), minLines)
}

func (d *StatusDeck) ItemCount() int {
	return len(d.data)
}

func (d *StatusDeck) Render(ctx ViewContext, width, height int, active bool, selIdx int) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}

	title := deckTitleStyle.Render(deckTitleWithBadges("Pipeline", ctx))

	var content string
	if len(d.data) > 0 {
		content = d.renderContent(width, selIdx, active)
	} else if ctx.DeckLoading {
		content = renderLoadingPlaceholder(width-2, max(1, height-3))
	} else {
		content = helpStyle.Render("No data available")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (d *StatusDeck) OnSelect(_ ViewContext, _ int) tea.Cmd {
	return nil
}

func (d *StatusDeck) renderContent(deckWidth int, selectedIdx int, active bool) string {
	maxCount := int64(0)
	for _, entry := range d.data {
		if entry.Count > maxCount {
			maxCount = entry.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	countFieldWidth := len(fmt.Sprintf("%d", maxCount))
	if countFieldWidth < 3 {
		countFieldWidth = 3
	}

	barWidth := 15
	if deckWidth < 42 {
		barWidth = 8
	}

	var lines []string
	for i, entry := range d.data {
		filled := int((float64(entry.Count) / float64(maxCount)) * float64(barWidth))
		if filled == 0 && entry.Count > 0 {
			filled = 1
		}

		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		formatStr := fmt.Sprintf("%%-10s %%%dd |%%s|", countFieldWidth)
		line := fmt.Sprintf(formatStr, entry.Status, entry.Count, bar)

		if i == selectedIdx && active {
			line = lipgloss.NewStyle().
				Background(ColorBlue).
				Foreground(ColorWhite).
				Render(line)
		} else {
			line = lipgloss.NewStyle().
				Foreground(statusColor(entry.Status)).
				Render(line)
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
