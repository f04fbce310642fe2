package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gavelhq/gavel/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// bookmarkRow is a bookmark joined with its bill, resolved at fetch time so
// rendering never touches the store.
type bookmarkRow struct {
	bookmark model.Bookmark
	bill     *model.Bill
}

// BookmarksDeck lists pinned bills. 'b' on a bill elsewhere adds it here;
// 'b' on a row removes it.
type BookmarksDeck struct {
	rows []bookmarkRow
}

// NewBookmarksDeck creates a new bookmarks deck.
func NewBookmarksDeck() *BookmarksDeck {
	return &BookmarksDeck{}
}

func (d *BookmarksDeck) ID() string    { return "bookmarks" }
func (d *BookmarksDeck) Title() string { return "Bookmarks" }

func (d *BookmarksDeck) TypeID() string                 { return "bookmarks" }
func (d *BookmarksDeck) DefaultInterval() time.Duration { return 5 * time.Second }

func (d *BookmarksDeck) FetchCmd(store model.ReadAPI, _ model.BillFilter) tea.Cmd {
	return func() tea.Msg {
		rows, err := fetchBookmarkRows(store)
		return DeckDataMsg{DeckTypeID: "bookmarks", Data: rows, Err: err}
	}
}

// fetchBookmarkRows loads bookmarks and joins each with its bill.
// A bookmark whose bill is gone keeps a nil bill rather than failing the fetch.
func fetchBookmarkRows(store model.ReadAPI) ([]bookmarkRow, error) {
	bookmarks, err := store.ListBookmarks()
	if err != nil {
		return nil, err
	}
	rows := make([]bookmarkRow, 0, len(bookmarks))
	for _, bm := range bookmarks {
		row := bookmarkRow{bookmark: bm}
		bill, err := store.GetBill(bm.BillID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		row.bill = bill
		rows = append(rows, row)
	}
	return rows, nil
}

func (d *BookmarksDeck) ApplyData(data interface{}, err error) {
	if err != nil {
		return
	}
	if rows, ok := data.([]bookmarkRow); ok {
		d.rows = rows
	}
}

func (d *BookmarksDeck) ContentLines(ViewContext) int {
	// Sole deck on its view; let the grid give it the full height.
	return 100
}

func (d *BookmarksDeck) ItemCount() int {
	return len(d.rows)
}

// BillIDAt returns the bookmarked bill ID at the given selection index.
func (d *BookmarksDeck) BillIDAt(selIdx int) string {
	if selIdx < 0 || selIdx >= len(d.rows) {
		return ""
	}
	return d.rows[selIdx].bookmark.BillID
}

func (d *BookmarksDeck) Render(ctx ViewContext, width, height int, active bool, selIdx int) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}

	title := deckTitleStyle.Render(deckTitleWithBadges(fmt.Sprintf("Bookmarks (%d)", len(d.rows)), ctx))

	contentHeight := height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch {
	case len(d.rows) > 0:
		content = d.renderRows(width-2, contentHeight, active, selIdx)
	case ctx.DeckLoading:
		content = renderLoadingPlaceholder(width-2, contentHeight)
	default:
		content = helpStyle.Render("No bookmarks yet. Press 'b' on a bill to pin it.")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (d *BookmarksDeck) renderRows(width, height int, active bool, selIdx int) string {
	if selIdx >= len(d.rows) {
		selIdx = len(d.rows) - 1
	}

	start := 0
	if selIdx >= height {
		start = selIdx - height + 1
	}
	end := min(start+height, len(d.rows))

	lines := make([]string, 0, height)
	for i := start; i < end; i++ {
		row := d.rows[i]
		var line string
		if row.bill != nil {
			b := row.bill
			status := lipgloss.NewStyle().
				Foreground(statusColor(b.Status)).
				Render(fmt.Sprintf("%-10s", b.Status))
			titleWidth := width - 26
			if titleWidth < 10 {
				titleWidth = 10
			}
			line = fmt.Sprintf("%-10s %s %s", b.Number, status, truncateText(b.Title, titleWidth))
		} else {
			// Bill was removed from the store after it was bookmarked.
			line = fmt.Sprintf("%-10s %s", row.bookmark.BillID, helpStyle.Render("(no longer tracked)"))
		}
		if row.bookmark.Note != "" {
			line += " " + helpStyle.Render(truncateText("# "+row.bookmark.Note, 24))
		}

		if active && i == selIdx {
			line = lipgloss.NewStyle().
				Background(ColorNavy).
				Foreground(ColorWhite).
				Bold(true).
				Width(width).
				Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// OnSelect opens the bookmarked bill's detail modal.
func (d *BookmarksDeck) OnSelect(_ ViewContext, selIdx int) tea.Cmd {
	if selIdx >= 0 && selIdx < len(d.rows) && d.rows[selIdx].bill != nil {
		return actionMsg(ActionMsg{Action: ActionOpenBill, Payload: d.rows[selIdx].bookmark.BillID})
	}
	return nil
}
