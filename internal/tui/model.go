package tui

import (
	"time"

	"github.com/gavelhq/gavel/internal/banner"
	"github.com/gavelhq/gavel/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Section represents different dashboard sections
type Section int

const (
	SectionSidebar Section = iota // chamber/view sidebar
	SectionBanner                 // alert banner at the top
	SectionDecks                  // a deck is focused
	SectionFilter                 // filter bar
)

// statusCycle is the order the 'c' key walks bill statuses in.
// The empty entry means "all statuses".
var statusCycle = []string{"", "INTRODUCED", "COMMITTEE", "FLOOR", "PASSED", "ENACTED", "VETOED", "DEAD"}

// FilterState holds bill filter input state.
type FilterState struct {
	filterInput  textinput.Model
	filterActive bool
	searchQuery  string // applied text filter (matches number/title/sponsor)
	statusFilter string // "" = all statuses
}

// SidebarState holds chamber sidebar state.
type SidebarState struct {
	selectedChamber string   // "" = all chambers
	chamberList     []string // from store.ListChambers(), refreshed on tick
	sidebarCursor   int      // unified sidebar cursor (chambers + views)
	sidebarVisible  bool     // toggled with 'a'
}

// ModalStackState holds the modal stack that replaces boolean flag explosion.
type ModalStackState struct {
	modalStack []Modal
}

// NavigationState holds deck and section navigation state.
type NavigationState struct {
	activeSection Section
	activeDeckIdx int
	decks         []Deck
	deckSelIdx    []int
	views         []ViewState
	activeViewIdx int
}

// ViewState represents one right-side view composed of independent decks.
type ViewState struct {
	ID            string
	Title         string
	Decks         []Deck
	DeckSelIdx    []int
	ActiveDeckIdx int
}

// DeckDeps provides dependencies for deck constructors, replacing *DashboardModel.
type DeckDeps struct {
	Store model.ReadAPI
}

// ViewSpec defines how to build a view and its decks.
type ViewSpec struct {
	ID    string
	Title string
	Build func(deps DeckDeps) []Deck
}

// DashboardModel represents the main TUI model.
// Sub-state is organized into embedded structs for readability;
// Go's field promotion means m.fieldName access is unchanged.
type DashboardModel struct {
	// Composed sub-states (embedded for field promotion)
	FilterState
	SidebarState
	ModalStackState
	NavigationState

	// Window dimensions
	width  int
	height int

	// Alert banner mounted above the deck grid.
	banner *banner.Model

	// Accumulated wheel travel fed to the banner's scroll debounce.
	scrollOffset int

	// Configuration
	updateInterval time.Duration

	// Update interval management
	availableIntervals []time.Duration
	currentIntervalIdx int

	// Manual pause of live refreshes.
	viewPaused bool

	// Last store error for status line display (auto-clears on a clean tick).
	lastError   string
	lastErrorAt time.Time

	// Async tick query guard to avoid overlapping fetches.
	tickInFlight bool

	// Inline handlers for filter input (NOT modals — part of dashboard layout)
	inlineHandlers []inlineHandlerEntry

	// Backend connectivity tracking
	lastTickOK        bool
	lastTickAt        time.Time
	consecutiveErrors int

	// Per-deck-type tick/pause/error tracking.
	deckStates map[string]*DeckTypeState

	// Total bill count, refreshed on tick for the status line.
	totalBills int64

	keys      KeyMap
	viewStyle lipgloss.Style

	// Read primitives used by the TUI (socket client in production).
	store      model.ReadAPI
	dataSource string // "Socket" or "DuckDB" — shown in status bar
}

// TickMsg represents periodic updates
type TickMsg time.Time

// UpdateIntervalMsg represents a request to change update interval
type UpdateIntervalMsg time.Duration

// DeckTickMsg fires independently for each deck type.
type DeckTickMsg struct {
	DeckTypeID string
	At         time.Time
}

// DeckDataMsg carries fetched data back to a deck type.
type DeckDataMsg struct {
	DeckTypeID string
	Data       interface{}
	Err        error
}

// DeckPauseMsg toggles pause for a specific deck type.
type DeckPauseMsg struct {
	DeckTypeID string
}

// billLoadedMsg carries a bill fetched for the detail modal.
type billLoadedMsg struct {
	bill *model.Bill
	err  error
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(updateInterval time.Duration, store model.ReadAPI, dataSource string) *DashboardModel {
	filterInput := textinput.New()
	filterInput.Placeholder = "Filter bills by number, title, or sponsor..."
	filterInput.CharLimit = 200

	availableIntervals := []time.Duration{
		500 * time.Millisecond,
		1 * time.Second,
		2 * time.Second,
		5 * time.Second,
		10 * time.Second,
		30 * time.Second,
		1 * time.Minute,
	}

	currentIdx := 2 // default 2s when the configured interval is unlisted
	for i, interval := range availableIntervals {
		if interval == updateInterval {
			currentIdx = i
			break
		}
	}

	m := &DashboardModel{
		FilterState: FilterState{
			filterInput: filterInput,
		},
		SidebarState: SidebarState{
			sidebarVisible: true,
		},
		NavigationState: NavigationState{
			activeSection: SectionDecks,
			activeDeckIdx: 0,
		},

		banner: banner.New(nil),

		updateInterval:     updateInterval,
		availableIntervals: availableIntervals,
		currentIntervalIdx: currentIdx,

		lastTickOK: true,
		lastTickAt: time.Now(),
		deckStates: make(map[string]*DeckTypeState),
		keys:       DefaultKeyMap(),
		viewStyle:  lipgloss.NewStyle(),
		store:      store,
		dataSource: dataSource,
	}

	m.SetViews(DefaultViewSpecs())

	// Register inline handlers for filter input (NOT modals).
	m.inlineHandlers = []inlineHandlerEntry{
		{isActive: func(m *DashboardModel) bool { return m.filterActive }, handler: filterInputHandler{}},
	}

	return m
}

// SetDecks replaces decks and resets deck selection state.
func (m *DashboardModel) SetDecks(decks []Deck) {
	if len(decks) == 0 {
		m.decks = nil
		m.deckSelIdx = nil
		m.activeDeckIdx = 0
		m.persistActiveViewState()
		return
	}

	m.decks = append([]Deck(nil), decks...)
	m.deckSelIdx = make([]int, len(m.decks))
	if m.activeDeckIdx >= len(m.decks) {
		m.activeDeckIdx = 0
	}
	m.persistActiveViewState()
}

// SetViews configures right-side views and activates the first one.
func (m *DashboardModel) SetViews(specs []ViewSpec) {
	deps := DeckDeps{
		Store: m.store,
	}

	views := make([]ViewState, 0, len(specs))
	for _, spec := range specs {
		if spec.Build == nil {
			continue
		}
		decks := spec.Build(deps)
		state := ViewState{
			ID:            spec.ID,
			Title:         spec.Title,
			Decks:         append([]Deck(nil), decks...),
			DeckSelIdx:    make([]int, len(decks)),
			ActiveDeckIdx: 0,
		}
		views = append(views, state)
	}

	if len(views) == 0 {
		m.views = nil
		m.decks = nil
		m.deckSelIdx = nil
		m.activeDeckIdx = 0
		m.activeViewIdx = 0
		m.sidebarCursor = 0
		return
	}

	m.views = views
	m.activeViewIdx = -1
	m.sidebarCursor = 0
	m.activateView(0)
}

// DefaultViewSpecs declares built-in views and their decks.
func DefaultViewSpecs() []ViewSpec {
	return []ViewSpec{
		{
			ID:    "overview",
			Title: "Overview",
			Build: func(deps DeckDeps) []Deck {
				return []Deck{
					NewImpactDeck(),
					NewStatusDeck(),
					NewTopicsDeck(),
					NewNoticesDeck(),
				}
			},
		},
		{
			ID:    "bills",
			Title: "Bills",
			Build: func(deps DeckDeps) []Deck {
				return []Deck{
					NewBillsDeck(),
				}
			},
		},
		{
			ID:    "bookmarks",
			Title: "Bookmarks",
			Build: func(deps DeckDeps) []Deck {
				return []Deck{
					NewBookmarksDeck(),
				}
			},
		},
	}
}

func (m *DashboardModel) persistActiveViewState() {
	if len(m.views) == 0 || m.activeViewIdx < 0 || m.activeViewIdx >= len(m.views) {
		return
	}

	vw := &m.views[m.activeViewIdx]
	vw.Decks = append([]Deck(nil), m.decks...)
	vw.DeckSelIdx = append([]int(nil), m.deckSelIdx...)
	vw.ActiveDeckIdx = m.activeDeckIdx
}

func (m *DashboardModel) activateView(idx int) {
	if len(m.views) == 0 || idx < 0 || idx >= len(m.views) {
		return
	}

	if idx != m.activeViewIdx || len(m.decks) > 0 || len(m.deckSelIdx) > 0 {
		m.persistActiveViewState()
	}
	m.activeViewIdx = idx

	vw := &m.views[m.activeViewIdx]
	if len(vw.DeckSelIdx) != len(vw.Decks) {
		vw.DeckSelIdx = make([]int, len(vw.Decks))
	}

	m.decks = append([]Deck(nil), vw.Decks...)
	m.deckSelIdx = append([]int(nil), vw.DeckSelIdx...)

	if len(m.decks) == 0 {
		m.activeDeckIdx = 0
		return
	}

	if vw.ActiveDeckIdx < 0 || vw.ActiveDeckIdx >= len(m.decks) {
		vw.ActiveDeckIdx = 0
	}
	m.activeDeckIdx = vw.ActiveDeckIdx
}

func (m *DashboardModel) nextView() {
	if len(m.views) <= 1 {
		return
	}
	m.activateView((m.activeViewIdx + 1) % len(m.views))
}

func (m *DashboardModel) prevView() {
	if len(m.views) <= 1 {
		return
	}
	m.activateView((m.activeViewIdx - 1 + len(m.views)) % len(m.views))
}

func (m *DashboardModel) currentViewTitle() string {
	if len(m.views) == 0 || m.activeViewIdx < 0 || m.activeViewIdx >= len(m.views) {
		return ""
	}
	return m.views[m.activeViewIdx].Title
}

// billFilter returns the current BillFilter from sidebar and filter state.
func (m *DashboardModel) billFilter() model.BillFilter {
	return model.BillFilter{
		Chamber: m.selectedChamber,
		Status:  m.statusFilter,
		Search:  m.searchQuery,
	}
}

// viewContext builds a ViewContext snapshot for deck rendering.
func (m *DashboardModel) viewContext() ViewContext {
	return ViewContext{
		ContentWidth:    m.contentWidth(),
		ContentHeight:   m.height,
		SearchTerm:      m.searchQuery,
		SelectedChamber: m.selectedChamber,
		StatusFilter:    m.statusFilter,
	}
}

// DashboardPage adapts DashboardModel to the Page interface.
type DashboardPage struct {
	Model *DashboardModel
}

// NewDashboardPage wraps a DashboardModel as a Page.
func NewDashboardPage(m *DashboardModel) *DashboardPage {
	return &DashboardPage{Model: m}
}

func (p *DashboardPage) ID() string { return "dashboard" }

func (p *DashboardPage) Init() tea.Cmd {
	return p.Model.Init()
}

func (p *DashboardPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	_, cmd := p.Model.Update(msg)
	return cmd, nil
}

func (p *DashboardPage) View(width, height int) string {
	p.Model.width = width
	p.Model.height = height
	return p.Model.View()
}

// Init initializes the model
func (m *DashboardModel) Init() tea.Cmd {
	var cmds []tea.Cmd

	// Enable mouse support
	cmds = append(cmds, func() tea.Msg { return tea.EnableMouseCellMotion() })

	// Set up regular tick for dashboard updates (core tick)
	cmds = append(cmds, tea.Tick(m.updateInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	}))

	// Start independent deck ticks
	cmds = append(cmds, m.registerDeckTicks()...)

	// Start the banner's rotation/visibility choreography.
	cmds = append(cmds, m.banner.Init())

	return tea.Batch(cmds...)
}

// registerDeckTicks creates per-type deck state and schedules their first ticks.
func (m *DashboardModel) registerDeckTicks() []tea.Cmd {
	var cmds []tea.Cmd
	for _, vw := range m.views {
		for _, dk := range vw.Decks {
			tp, ok := dk.(TickableDeck)
			if !ok {
				continue
			}
			tid := tp.TypeID()
			if _, exists := m.deckStates[tid]; exists {
				continue
			}
			interval := tp.DefaultInterval()
			if interval <= 0 {
				interval = m.updateInterval
			}
			m.deckStates[tid] = &DeckTypeState{
				TypeID:     tid,
				Interval:   interval,
				LastTickOK: true,
			}
			cmds = append(cmds, deckTickCmd(tid, interval))
		}
	}
	return cmds
}

func deckTickCmd(typeID string, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return DeckTickMsg{DeckTypeID: typeID, At: t}
	})
}

// deckByTypeID finds the first deck (across all views) with the given TypeID.
func (m *DashboardModel) deckByTypeID(typeID string) TickableDeck {
	for _, vw := range m.views {
		for _, dk := range vw.Decks {
			if tp, ok := dk.(TickableDeck); ok && tp.TypeID() == typeID {
				return tp
			}
		}
	}
	return nil
}

// applyDeckData fans fetched data out to every deck instance of the type.
// The active deck slice shares pointers with the views, so one pass covers both.
func (m *DashboardModel) applyDeckData(typeID string, data interface{}, err error) {
	for vi := range m.views {
		for _, dk := range m.views[vi].Decks {
			if tp, ok := dk.(TickableDeck); ok && tp.TypeID() == typeID {
				tp.ApplyData(data, err)
			}
		}
	}
}

// PushModal pushes a modal onto the stack. Deduplicates by ID.
func (m *DashboardModel) PushModal(modal Modal) {
	for _, existing := range m.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (m *DashboardModel) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (m *DashboardModel) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// HasModal returns true if any modal is on the stack.
func (m *DashboardModel) HasModal() bool {
	return len(m.modalStack) > 0
}

// liveUpdatesPaused returns true when refreshes should be skipped.
func (m *DashboardModel) liveUpdatesPaused() bool {
	return m.viewPaused
}
