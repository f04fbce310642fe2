package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gavelhq/gavel/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NoticesDeck lists active notices, most severe first. Selecting one opens
// the referenced bill; 'x' resolves the notice under the cursor.
type NoticesDeck struct {
	notices []model.Notice
}

// NewNoticesDeck creates a new notices deck.
func NewNoticesDeck() *NoticesDeck {
	return &NoticesDeck{}
}

func (d *NoticesDeck) ID() string    { return "notices" }
func (d *NoticesDeck) Title() string { return "Alerts" }

func (d *NoticesDeck) TypeID() string                 { return "notices" }
func (d *NoticesDeck) DefaultInterval() time.Duration { return 2 * time.Second }

func (d *NoticesDeck) FetchCmd(store model.ReadAPI, _ model.BillFilter) tea.Cmd {
	return func() tea.Msg {
		notices, err := store.ActiveNotices(50)
		return DeckDataMsg{DeckTypeID: "notices", Data: notices, Err: err}
	}
}

func (d *NoticesDeck) ApplyData(data interface{}, err error) {
	if err != nil {
		return
	}
	if notices, ok := data.([]model.Notice); ok {
		d.notices = append([]model.Notice(nil), notices...)
	}
}

func (d *NoticesDeck) ContentLines(ctx ViewContext) int {
	minLines := 8
	if ctx.ContentWidth < 80 {
		minLines = 5
	}
	return max(min(len(d.notices), 10), minLines)
}

func (d *NoticesDeck) ItemCount() int {
	return len(d.notices)
}

// NoticeIDAt returns the notice ID at the given selection index.
func (d *NoticesDeck) NoticeIDAt(selIdx int) string {
	if selIdx < 0 || selIdx >= len(d.notices) {
		return ""
	}
	return d.notices[selIdx].ID
}

func (d *NoticesDeck) Render(ctx ViewContext, width, height int, active bool, selIdx int) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}

	title := deckTitleStyle.Render(deckTitleWithBadges(fmt.Sprintf("Alerts (%d)", len(d.notices)), ctx))

	contentHeight := height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch {
	case len(d.notices) > 0:
		content = d.renderRows(width-2, contentHeight, active, selIdx)
	case ctx.DeckLoading:
		content = renderLoadingPlaceholder(width-2, contentHeight)
	default:
		content = helpStyle.Render("No active alerts")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (d *NoticesDeck) renderRows(width, height int, active bool, selIdx int) string {
	if selIdx >= len(d.notices) {
		selIdx = len(d.notices) - 1
	}

	start := 0
	if selIdx >= height {
		start = selIdx - height + 1
	}
	end := min(start+height, len(d.notices))

	lines := make([]string, 0, height)
	for i := start; i < end; i++ {
		n := d.notices[i]

		level := lipgloss.NewStyle().
			Foreground(levelColor(n.Level)).
			Bold(true).
			Render(fmt.Sprintf("%-6s", n.Level))

		titleWidth := width - 9
		if titleWidth < 10 {
			titleWidth = 10
		}
		line := level + " " + truncateText(n.Title, titleWidth)

		if active && i == selIdx {
			line = lipgloss.NewStyle().
				Background(ColorNavy).
				Width(width).
				Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// OnSelect routes to the bill the notice refers to.
func (d *NoticesDeck) OnSelect(_ ViewContext, selIdx int) tea.Cmd {
	if selIdx >= 0 && selIdx < len(d.notices) && d.notices[selIdx].BillID != "" {
		return actionMsg(ActionMsg{Action: ActionOpenBill, Payload: d.notices[selIdx].BillID})
	}
	return nil
}
