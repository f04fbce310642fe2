package tui

import (
	"fmt"
	"strings"

	"github.com/gavelhq/gavel/internal/model"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BillModal shows the full detail view for a single bill.
type BillModal struct {
	bill       *model.Bill
	viewport   viewport.Model
	toggleCmd  func(billID string) tea.Cmd
	renderView func(vp *viewport.Model, width, height int) string
}

func NewBillModal(m *DashboardModel, bill *model.Bill) *BillModal {
	return &BillModal{
		bill:      bill,
		viewport:  viewport.New(80, 20),
		toggleCmd: m.toggleBookmarkCmd,
		renderView: func(vp *viewport.Model, width, height int) string {
			return m.renderSingleModalView(vp, "Bill Details", formatBillDetails(bill), width, height)
		},
	}
}

func (b *BillModal) ID() string { return "bill:" + b.bill.ID }

func (b *BillModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			b.viewport.ScrollUp(1)
			return false, nil
		case "down", "j":
			b.viewport.ScrollDown(1)
			return false, nil
		case "pgup":
			b.viewport.HalfPageUp()
			return false, nil
		case "pgdown":
			b.viewport.HalfPageDown()
			return false, nil
		case "b":
			return false, b.toggleCmd(b.bill.ID)
		case "escape", "esc", "enter":
			return true, nil
		}
		var cmd tea.Cmd
		b.viewport, cmd = b.viewport.Update(msg)
		return false, cmd

	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				b.viewport.ScrollUp(1)
				return false, nil
			case tea.MouseButtonWheelDown:
				b.viewport.ScrollDown(1)
				return false, nil
			}
		}
		return false, nil
	}
	return false, nil
}

func (b *BillModal) View(width, height int) string {
	return b.renderView(&b.viewport, width, height)
}

func formatBillDetails(bill *model.Bill) string {
	label := lipgloss.NewStyle().Foreground(ColorGray)
	status := lipgloss.NewStyle().
		Foreground(statusColor(bill.Status)).
		Bold(true).
		Render(bill.Status)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\n", bill.Number, status)
	fmt.Fprintf(&sb, "%s\n\n", bill.Title)

	fmt.Fprintf(&sb, "%s %s\n", label.Render("Chamber:"), bill.Chamber)
	fmt.Fprintf(&sb, "%s %s\n", label.Render("Topic:"), bill.Topic)
	fmt.Fprintf(&sb, "%s %s\n", label.Render("Sponsor:"), bill.Sponsor)
	fmt.Fprintf(&sb, "%s %d/100\n", label.Render("Impact:"), bill.ImpactScore)
	if !bill.Introduced.IsZero() {
		fmt.Fprintf(&sb, "%s %s\n", label.Render("Introduced:"), bill.Introduced.Format("2006-01-02"))
	}
	if !bill.LastAction.IsZero() {
		fmt.Fprintf(&sb, "%s %s\n", label.Render("Last action:"), bill.LastAction.Format("2006-01-02 15:04"))
	}
	if bill.ActionText != "" {
		fmt.Fprintf(&sb, "\n%s\n%s\n", label.Render("Latest action"), bill.ActionText)
	}
	if bill.Summary != "" {
		fmt.Fprintf(&sb, "\n%s\n%s\n", label.Render("Summary"), bill.Summary)
	}
	sb.WriteString("\n" + lipgloss.NewStyle().Foreground(ColorGray).Render("b: bookmark | ESC: close"))
	return sb.String()
}
