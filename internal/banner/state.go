package banner

// tickerState is the single source of truth for the banner engine.
// It carries no behavior beyond invariant-preserving mutation: the index
// stays inside [0, itemCount), progress stays inside [0, 100]. All
// mutation happens on the Bubble Tea update loop, so there is exactly
// one writer per field class and no interleaving.
type tickerState struct {
	index         int
	paused        bool
	transitioning bool
	visible       bool
	progress      float64
}

func newTickerState() tickerState {
	return tickerState{visible: true, progress: 100}
}

// setIndex commits a new current index. Out-of-range values are rejected
// rather than clamped so a stale caller cannot corrupt the state.
func (s *tickerState) setIndex(i, itemCount int) {
	if i < 0 || i >= itemCount {
		return
	}
	s.index = i
}

// clampIndex folds the index back into range after the item list shrinks.
func (s *tickerState) clampIndex(itemCount int) {
	if itemCount <= 0 {
		s.index = 0
		return
	}
	if s.index >= itemCount {
		s.index %= itemCount
	}
}

func (s *tickerState) setPaused(p bool)        { s.paused = p }
func (s *tickerState) setTransitioning(t bool) { s.transitioning = t }
func (s *tickerState) setVisible(v bool)       { s.visible = v }

// setProgress commits a new progress value, clamped to [0, 100].
func (s *tickerState) setProgress(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	s.progress = p
}
