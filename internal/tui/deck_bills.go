package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gavelhq/gavel/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BillsDeck lists tracked bills, most recently acted-on first. It honors the
// dashboard's chamber/status/search filters and opens the bill modal on enter.
type BillsDeck struct {
	bills []model.Bill
}

// NewBillsDeck creates a new bills deck.
func NewBillsDeck() *BillsDeck {
	return &BillsDeck{}
}

func (d *BillsDeck) ID() string    { return "bills" }
func (d *BillsDeck) Title() string { return "Bills" }

func (d *BillsDeck) TypeID() string                 { return "bills" }
func (d *BillsDeck) DefaultInterval() time.Duration { return 2 * time.Second }

func (d *BillsDeck) FetchCmd(store model.ReadAPI, f model.BillFilter) tea.Cmd {
	return func() tea.Msg {
		bills, err := store.ListBills(model.DefaultBillLimit, f)
		return DeckDataMsg{DeckTypeID: "bills", Data: bills, Err: err}
	}
}

func (d *BillsDeck) ApplyData(data any, err error) {
	if err != nil {
		return
	}
	if bills, ok := data.([]model.Bill); ok {
		d.bills = append([]model.Bill(nil), bills...)
	}
}

// ContentLines returns a large value so the grid scaler gives this deck
// all available height (it is the only deck in the Bills view).
func (d *BillsDeck) ContentLines(_ ViewContext) int { return 100 }

func (d *BillsDeck) ItemCount() int { return len(d.bills) }

// BillIDAt returns the bill ID at the given selection index.
func (d *BillsDeck) BillIDAt(selIdx int) string {
	if selIdx < 0 || selIdx >= len(d.bills) {
		return ""
	}
	return d.bills[selIdx].ID
}

func (d *BillsDeck) Render(ctx ViewContext, width, height int, active bool, selIdx int) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}

	title := deckTitleStyle.Render(deckTitleWithBadges(fmt.Sprintf("Bills (%d)", len(d.bills)), ctx))

	contentHeight := height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch {
	case len(d.bills) > 0:
		content = d.renderRows(width-2, contentHeight, active, selIdx)
	case ctx.DeckLoading:
		content = renderLoadingPlaceholder(width-2, contentHeight)
	default:
		content = helpStyle.Render("No bills match the current filter")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (d *BillsDeck) renderRows(width, height int, active bool, selIdx int) string {
	if selIdx >= len(d.bills) {
		selIdx = len(d.bills) - 1
	}

	// Keep the selection visible: scroll the window around it.
	start := 0
	if selIdx >= height {
		start = selIdx - height + 1
	}
	end := min(start+height, len(d.bills))

	lines := make([]string, 0, height)
	for i := start; i < end; i++ {
		lines = append(lines, d.renderRow(d.bills[i], width, active && i == selIdx))
	}
	return strings.Join(lines, "\n")
}

func (d *BillsDeck) renderRow(b model.Bill, width int, selected bool) string {
	status := lipgloss.NewStyle().
		Foreground(statusColor(b.Status)).
		Render(fmt.Sprintf("%-10s", b.Status))

	number := fmt.Sprintf("%-10s", truncateText(b.Number, 10))

	impact := fmt.Sprintf("%3d", b.ImpactScore)

	// number(10) + space + status(10) + space + impact(3) + space = 26
	titleWidth := width - 26
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := truncateText(b.Title, titleWidth)

	line := fmt.Sprintf("%s %s %s %s", number, status, impact, title)
	if selected {
		return lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite).
			Bold(true).
			Width(width).
			Render(line)
	}
	return line
}

// OnSelect opens the detail modal for the selected bill.
func (d *BillsDeck) OnSelect(_ ViewContext, selIdx int) tea.Cmd {
	if selIdx >= 0 && selIdx < len(d.bills) {
		return actionMsg(ActionMsg{Action: ActionOpenBill, Payload: d.bills[selIdx].ID})
	}
	return nil
}

// truncateText shortens s to maxLen runes with a tilde marker.
func truncateText(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "~"
	}
	return string(r[:maxLen-1]) + "~"
}
