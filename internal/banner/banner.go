// Package banner implements the rotating alert banner: a widget that
// cycles through high-priority notices on a fixed cadence, with a
// decaying progress bar, manual navigation that pre-empts the automatic
// cycle, hover pause, and scroll-idle auto-hide.
//
// All timers are tea.Tick commands scheduled on the Bubble Tea update
// loop, so state mutations never interleave. Cancellation is by
// generation counter: every rotation/transition message carries the
// epoch it was scheduled under, and every scroll-idle message carries a
// debounce sequence number. Superseded messages fail the counter check
// and are dropped instead of mutating state that has moved on.
package banner

import (
	"time"

	"github.com/gavelhq/gavel/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// rotatePeriod is the time one notice is shown before auto-advancing.
	rotatePeriod = 6 * time.Second
	// startDelay holds the opening notice before the first rotation window.
	startDelay = 2 * time.Second
	// transitionDuration is the visual hand-off window between two notices.
	transitionDuration = time.Second
	// settleDelay runs after the index swap before the transition clears.
	settleDelay = 200 * time.Millisecond
	// progressInterval is the progress bar decay tick.
	progressInterval = 100 * time.Millisecond
	// scrollIdleDelay is the quiet window after which the banner hides.
	scrollIdleDelay = 1500 * time.Millisecond
	// scrollHideThreshold is the scroll offset below which the banner
	// never hides, so it stays up while the user is near the top.
	scrollHideThreshold = 100
)

// progressStep is how much the progress bar decays per tick.
var progressStep = 100 * float64(progressInterval) / float64(rotatePeriod)

// ScrollMsg reports scroll activity from the host. The banner reveals
// itself on every event and hides after a quiet interval when the
// offset is past the threshold.
type ScrollMsg struct {
	Offset int
}

// ActivateMsg is emitted when the current notice is activated; the host
// routes it to the bill the notice refers to.
type ActivateMsg struct {
	Index  int
	Notice model.Notice
}

// Timer messages. Each carries the epoch (or debounce sequence) it was
// scheduled under; a mismatch means the timer was superseded.
type (
	rotateMsg   struct{ epoch int }
	swapMsg     struct{ epoch int }
	settleMsg   struct{ epoch int }
	progressMsg struct{ epoch int }
	idleMsg     struct{ seq int }
)

// Model is the banner engine. It is not a self-contained tea.Model; the
// host forwards messages to Update and renders with View, the way the
// dashboard composes its decks.
type Model struct {
	state tickerState
	items []model.Notice

	// epoch is the rotation/transition generation. Bumping it cancels
	// every pending rotate, swap, settle, and progress timer at once.
	epoch int
	// scrollSeq is the visibility debounce generation, independent of
	// rotation per the one-writer-per-field discipline.
	scrollSeq    int
	scrollOffset int

	running   bool
	target    int  // choreography destination index
	manualNav bool // current choreography came from GoTo

	width int
}

// New creates a banner engine over the given notices. Timers are not
// armed until Init.
func New(items []model.Notice) *Model {
	return &Model{
		state: newTickerState(),
		items: append([]model.Notice(nil), items...),
	}
}

// Index returns the index of the currently shown notice.
func (m *Model) Index() int { return m.state.index }

// Transitioning reports whether a hand-off between notices is in flight.
func (m *Model) Transitioning() bool { return m.state.transitioning }

// Visible reports whether the banner should be rendered at all.
func (m *Model) Visible() bool { return m.state.visible }

// Progress returns the remaining fraction of the rotation window, 0-100.
func (m *Model) Progress() float64 { return m.state.progress }

// Paused reports whether the pointer-hover pause is active.
func (m *Model) Paused() bool { return m.state.paused }

// Len returns the number of notices in rotation.
func (m *Model) Len() int { return len(m.items) }

// Current returns the notice at the current index, or nil when empty.
func (m *Model) Current() *model.Notice {
	if len(m.items) == 0 {
		return nil
	}
	n := m.items[m.state.index]
	return &n
}

// SetWidth sets the render width.
func (m *Model) SetWidth(w int) { m.width = w }

// Init arms the rotation and progress timers. With no notices it does
// nothing; with a single notice only the progress chain runs, parked.
func (m *Model) Init() tea.Cmd {
	if len(m.items) == 0 {
		m.running = false
		return nil
	}
	m.running = true
	m.epoch++
	return m.startCmds()
}

// startCmds arms the initial timers: progress decay begins after the
// start delay so the bar stays full while the opening notice holds, and
// the first rotation lands one full period after that.
func (m *Model) startCmds() tea.Cmd {
	cmds := []tea.Cmd{m.progressCmd(startDelay + progressInterval)}
	if len(m.items) >= 2 {
		cmds = append(cmds, m.rotateCmd(startDelay+rotatePeriod))
	}
	return tea.Batch(cmds...)
}

// Stop cancels every outstanding timer. Safe to call more than once.
func (m *Model) Stop() {
	m.epoch++
	m.scrollSeq++
	m.running = false
	m.cancelChoreography()
}

// SetPaused sets the hover pause. Pause freezes the visible advance and
// the progress decay but deliberately leaves the rotation timer on its
// original schedule: a long hover skips a rotation window instead of
// postponing rotation forever.
func (m *Model) SetPaused(p bool) {
	m.state.setPaused(p)
}

// SetItems replaces the notice list. The engine stays correct across
// grow, shrink, and empty: the index is clamped before the next read,
// and crossing the two-item boundary re-arms or parks the rotation
// timer under a fresh epoch.
func (m *Model) SetItems(items []model.Notice) tea.Cmd {
	prev := len(m.items)
	m.items = append([]model.Notice(nil), items...)
	n := len(m.items)

	if n == 0 {
		m.epoch++
		m.scrollSeq++
		m.running = false
		m.state = newTickerState()
		return nil
	}

	m.state.clampIndex(n)
	if m.target >= n {
		m.target %= n
	}

	if !m.running {
		m.running = true
		m.epoch++
		return m.startCmds()
	}

	if prev < 2 && n >= 2 {
		// Rotation becomes possible: restart both timer chains.
		m.epoch++
		m.cancelChoreography()
		return tea.Batch(m.rotateCmd(rotatePeriod), m.progressCmd(progressInterval))
	}
	if prev >= 2 && n < 2 {
		// Rotation no longer possible: park with a full bar.
		m.epoch++
		m.cancelChoreography()
		m.state.setProgress(100)
		return m.progressCmd(progressInterval)
	}
	return nil
}

// GoTo starts a manual jump to the given index, pre-empting any pending
// automatic rotation and any in-flight choreography. Out-of-range and
// same-index requests are ignored without touching state.
func (m *Model) GoTo(j int) tea.Cmd {
	if !m.running || j < 0 || j >= len(m.items) || j == m.state.index {
		return nil
	}

	// One epoch bump cancels the rotation timer, the progress chain,
	// and the swap/settle delays of any previous choreography.
	m.epoch++
	m.manualNav = true
	m.target = j
	m.state.setTransitioning(true)
	m.state.setProgress(0)

	return tea.Batch(m.swapCmd(), m.progressCmd(progressInterval))
}

// Next jumps to the next notice. Prev jumps to the previous one.
func (m *Model) Next() tea.Cmd {
	if len(m.items) < 2 {
		return nil
	}
	return m.GoTo((m.state.index + 1) % len(m.items))
}

func (m *Model) Prev() tea.Cmd {
	if len(m.items) < 2 {
		return nil
	}
	return m.GoTo((m.state.index - 1 + len(m.items)) % len(m.items))
}

// Activate emits the navigate-to-notice signal for the current notice.
func (m *Model) Activate() tea.Cmd {
	cur := m.Current()
	if cur == nil {
		return nil
	}
	idx := m.state.index
	notice := *cur
	return func() tea.Msg {
		return ActivateMsg{Index: idx, Notice: notice}
	}
}

// Update handles timer and scroll messages. Messages the banner does
// not own are ignored so the host can forward everything.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case rotateMsg:
		return m.handleRotate(msg)
	case swapMsg:
		return m.handleSwap(msg)
	case settleMsg:
		return m.handleSettle(msg)
	case progressMsg:
		return m.handleProgress(msg)
	case ScrollMsg:
		return m.handleScroll(msg)
	case idleMsg:
		m.handleIdle(msg)
	}
	return nil
}

func (m *Model) handleRotate(msg rotateMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	if len(m.items) < 2 {
		// Rotation parked; SetItems re-arms when items return.
		return nil
	}
	if m.state.transitioning {
		// Reentrancy guard: never start a hand-off over an in-flight
		// one. Keep the cadence and try again next period.
		return m.rotateCmd(rotatePeriod)
	}
	if m.state.paused {
		// Skip the visible advance; the timer stays on schedule.
		return m.rotateCmd(rotatePeriod)
	}

	m.manualNav = false
	m.target = (m.state.index + 1) % len(m.items)
	m.state.setTransitioning(true)
	m.state.setProgress(0)
	return m.swapCmd()
}

func (m *Model) handleSwap(msg swapMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	n := len(m.items)
	if n == 0 {
		return nil
	}
	m.state.setIndex(m.target%n, n)
	return m.settleCmd()
}

func (m *Model) handleSettle(msg settleMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	// Index change and full bar land in the same update step so the
	// bar never disagrees with the content.
	m.state.setTransitioning(false)
	m.state.setProgress(100)

	if len(m.items) < 2 {
		return nil
	}
	if m.manualNav {
		// Manual jump restarts the period from zero.
		return m.rotateCmd(rotatePeriod)
	}
	// Automatic advance keeps a strict fire-to-fire cadence: the next
	// rotation lands one period after the previous one fired.
	return m.rotateCmd(rotatePeriod - transitionDuration - settleDelay)
}

func (m *Model) handleProgress(msg progressMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	if len(m.items) >= 2 && !m.state.paused && !m.state.transitioning {
		m.state.setProgress(m.state.progress - progressStep)
	}
	return m.progressCmd(progressInterval)
}

func (m *Model) handleScroll(msg ScrollMsg) tea.Cmd {
	m.scrollOffset = msg.Offset
	m.state.setVisible(true)
	// Standard debounce: each event invalidates the previous hide timer.
	m.scrollSeq++
	return m.idleCmd()
}

func (m *Model) handleIdle(msg idleMsg) {
	if msg.seq != m.scrollSeq {
		return
	}
	if m.scrollOffset > scrollHideThreshold {
		m.state.setVisible(false)
	}
}

// cancelChoreography clears an in-flight hand-off whose swap/settle
// timers were just invalidated, so transitioning can never stick.
func (m *Model) cancelChoreography() {
	if m.state.transitioning {
		m.state.setTransitioning(false)
		m.state.setProgress(100)
	}
}

func (m *Model) rotateCmd(d time.Duration) tea.Cmd {
	epoch := m.epoch
	return tea.Tick(d, func(time.Time) tea.Msg { return rotateMsg{epoch: epoch} })
}

func (m *Model) swapCmd() tea.Cmd {
	epoch := m.epoch
	return tea.Tick(transitionDuration, func(time.Time) tea.Msg { return swapMsg{epoch: epoch} })
}

func (m *Model) settleCmd() tea.Cmd {
	epoch := m.epoch
	return tea.Tick(settleDelay, func(time.Time) tea.Msg { return settleMsg{epoch: epoch} })
}

func (m *Model) progressCmd(d time.Duration) tea.Cmd {
	epoch := m.epoch
	return tea.Tick(d, func(time.Time) tea.Msg { return progressMsg{epoch: epoch} })
}

func (m *Model) idleCmd() tea.Cmd {
	seq := m.scrollSeq
	return tea.Tick(scrollIdleDelay, func(time.Time) tea.Msg { return idleMsg{seq: seq} })
}
