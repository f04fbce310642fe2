package tui

import (
	"time"

	"github.com/gavelhq/gavel/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Deck is a pluggable dashboard deck.
type Deck interface {
	ID() string
	Title() string
	Render(ctx ViewContext, width, height int, active bool, selIdx int) string
	ContentLines(ctx ViewContext) int
	ItemCount() int
	OnSelect(ctx ViewContext, selIdx int) tea.Cmd // returns nil or ActionMsg
}

// TickableDeck extends Deck with independent tick lifecycle methods.
// Decks implementing this interface get their own tick cycle, pause, and
// error state.
type TickableDeck interface {
	Deck
	TypeID() string                                              // dedup key (e.g. "bills")
	DefaultInterval() time.Duration                              // deck's preferred tick interval
	FetchCmd(store model.ReadAPI, f model.BillFilter) tea.Cmd    // returns DeckDataMsg
	ApplyData(data interface{}, err error)                       // receive fetched data
}
