package banner

import "testing"

func TestTickerState_RejectsOutOfRangeIndex(t *testing.T) {
	t.Parallel()

	s := newTickerState()
	s.setIndex(2, 5)
	if s.index != 2 {
		t.Fatalf("index = %d, want 2", s.index)
	}

	s.setIndex(5, 5)
	s.setIndex(-1, 5)
	if s.index != 2 {
		t.Fatalf("index = %d after out-of-range sets, want unchanged 2", s.index)
	}
}

func TestTickerState_ClampIndexFoldsByModulo(t *testing.T) {
	t.Parallel()

	s := newTickerState()
	s.setIndex(4, 5)

	s.clampIndex(3)
	if s.index != 1 {
		t.Fatalf("index = %d after clamp to 3 items, want 4 mod 3 = 1", s.index)
	}

	s.clampIndex(0)
	if s.index != 0 {
		t.Fatalf("index = %d after clamp to empty, want 0", s.index)
	}
}

func TestTickerState_ProgressClampedToRange(t *testing.T) {
	t.Parallel()

	s := newTickerState()
	s.setProgress(150)
	if s.progress != 100 {
		t.Fatalf("progress = %v, want clamped to 100", s.progress)
	}
	s.setProgress(-3)
	if s.progress != 0 {
		t.Fatalf("progress = %v, want clamped to 0", s.progress)
	}
}
