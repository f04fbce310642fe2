package banner

import (
	"fmt"
	"testing"

	"github.com/gavelhq/gavel/internal/model"
)

func makeNotices(n int) []model.Notice {
	notices := make([]model.Notice, n)
	for i := range notices {
		notices[i] = model.Notice{
			ID:          fmt.Sprintf("n-%d", i),
			Level:       "ACTION",
			Title:       fmt.Sprintf("Notice %d", i),
			Description: "Committee vote scheduled",
		}
	}
	return notices
}

// runChoreography delivers the swap and settle messages for the
// in-flight hand-off, as the timers would.
func runChoreography(m *Model) {
	m.Update(swapMsg{epoch: m.epoch})
	m.Update(settleMsg{epoch: m.epoch})
}

func TestAutoRotation_AdvancesModuloItemCount(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(3))
	m.Init()

	for k := 1; k <= 7; k++ {
		if cmd := m.Update(rotateMsg{epoch: m.epoch}); cmd == nil {
			t.Fatalf("cycle %d: rotate produced no follow-up command", k)
		}
		if !m.Transitioning() {
			t.Fatalf("cycle %d: not transitioning after rotate fired", k)
		}
		if got := m.Progress(); got != 0 {
			t.Fatalf("cycle %d: progress = %v during transition, want 0", k, got)
		}
		runChoreography(m)
		if got, want := m.Index(), k%3; got != want {
			t.Fatalf("cycle %d: index = %d, want %d", k, got, want)
		}
		if m.Transitioning() {
			t.Fatalf("cycle %d: still transitioning after settle", k)
		}
		if got := m.Progress(); got != 100 {
			t.Fatalf("cycle %d: progress = %v after settle, want 100", k, got)
		}
	}
}

func TestProgress_DecaysMonotonicallyWithinBounds(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(2))
	m.Init()

	prev := m.Progress()
	for i := 0; i < 70; i++ {
		m.Update(progressMsg{epoch: m.epoch})
		got := m.Progress()
		if got < 0 || got > 100 {
			t.Fatalf("tick %d: progress = %v, want within [0,100]", i, got)
		}
		if got > prev {
			t.Fatalf("tick %d: progress rose from %v to %v without a settle", i, prev, got)
		}
		prev = got
	}
	if prev != 0 {
		t.Fatalf("progress = %v after a full window of ticks, want 0", prev)
	}
}

func TestGoTo_PreemptsPendingAutoRotation(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(4))
	m.Init()
	staleEpoch := m.epoch

	if cmd := m.GoTo(2); cmd == nil {
		t.Fatal("GoTo(2) returned no command")
	}

	// The rotation timer armed before the call fires late: it must not
	// touch the index or start a second choreography.
	m.Update(rotateMsg{epoch: staleEpoch})
	if got := m.target; got != 2 {
		t.Fatalf("stale rotation changed choreography target to %d", got)
	}

	runChoreography(m)
	if got := m.Index(); got != 2 {
		t.Fatalf("index = %d after manual jump, want 2", got)
	}
	if m.Transitioning() {
		t.Fatal("still transitioning after manual choreography settled")
	}
	if got := m.Progress(); got != 100 {
		t.Fatalf("progress = %v after manual settle, want 100", got)
	}
}

func TestGoTo_SecondCallCancelsFirstChoreographyInFull(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(4))
	m.Init()

	m.GoTo(1)
	firstEpoch := m.epoch

	// Second jump before the first swap lands.
	m.GoTo(3)

	// The first choreography's delays fire stale and must no-op.
	m.Update(swapMsg{epoch: firstEpoch})
	if got := m.Index(); got != 0 {
		t.Fatalf("stale swap moved index to %d, want 0", got)
	}
	m.Update(settleMsg{epoch: firstEpoch})
	if !m.Transitioning() {
		t.Fatal("stale settle cleared the live choreography")
	}

	runChoreography(m)
	if got := m.Index(); got != 3 {
		t.Fatalf("index = %d, want second call's target 3", got)
	}
	if m.Transitioning() {
		t.Fatal("still transitioning after second choreography settled")
	}
}

func TestGoTo_SameOrInvalidIndexIsIgnored(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(3))
	m.Init()
	epoch := m.epoch

	for _, j := range []int{0, -1, 3, 99} {
		if cmd := m.GoTo(j); cmd != nil {
			t.Fatalf("GoTo(%d) returned a command, want nil", j)
		}
	}
	if m.epoch != epoch {
		t.Fatal("rejected navigation bumped the epoch")
	}
	if m.Transitioning() || m.Index() != 0 {
		t.Fatalf("rejected navigation mutated state: index=%d transitioning=%v",
			m.Index(), m.Transitioning())
	}
}

func TestPause_FreezesProgressAndSkipsAdvance(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(3))
	m.Init()

	m.Update(progressMsg{epoch: m.epoch})
	frozen := m.Progress()

	m.SetPaused(true)
	for i := 0; i < 5; i++ {
		m.Update(progressMsg{epoch: m.epoch})
	}
	if got := m.Progress(); got != frozen {
		t.Fatalf("progress = %v while paused, want frozen at %v", got, frozen)
	}

	// The rotation timer still fires on schedule but the visible
	// advance is skipped.
	if cmd := m.Update(rotateMsg{epoch: m.epoch}); cmd == nil {
		t.Fatal("paused rotation did not keep its cadence")
	}
	if m.Transitioning() || m.Index() != 0 {
		t.Fatalf("paused rotation advanced: index=%d transitioning=%v",
			m.Index(), m.Transitioning())
	}

	m.SetPaused(false)
	m.Update(progressMsg{epoch: m.epoch})
	if got := m.Progress(); got >= frozen {
		t.Fatalf("progress = %v after unpause, want decay below %v", got, frozen)
	}

	m.Update(rotateMsg{epoch: m.epoch})
	runChoreography(m)
	if got := m.Index(); got != 1 {
		t.Fatalf("index = %d after unpaused rotation, want 1", got)
	}
}

func TestRotate_ReentrancyGuardDuringTransition(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(3))
	m.Init()

	m.Update(rotateMsg{epoch: m.epoch})
	if !m.Transitioning() {
		t.Fatal("expected transition in flight")
	}
	target := m.target

	// A rotation firing mid-transition must not restart the hand-off.
	m.Update(rotateMsg{epoch: m.epoch})
	if got := m.target; got != target {
		t.Fatalf("target changed from %d to %d during transition", target, got)
	}
	if got := m.Index(); got != 0 {
		t.Fatalf("index = %d during transition, want 0", got)
	}
}

func TestScroll_DebounceHidesOnlyAfterQuietWindow(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(2))
	m.Init()

	m.Update(ScrollMsg{Offset: 150})
	if !m.Visible() {
		t.Fatal("banner hidden immediately after scroll activity")
	}
	staleSeq := m.scrollSeq

	// A second scroll event resets the quiet window; the first event's
	// hide timer fires stale.
	m.Update(ScrollMsg{Offset: 180})
	m.Update(idleMsg{seq: staleSeq})
	if !m.Visible() {
		t.Fatal("stale debounce timer hid the banner")
	}

	m.Update(idleMsg{seq: m.scrollSeq})
	if m.Visible() {
		t.Fatal("banner still visible after quiet window past the threshold")
	}
}

func TestScroll_NearTopNeverHides(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(2))
	m.Init()

	m.Update(ScrollMsg{Offset: 40})
	m.Update(idleMsg{seq: m.scrollSeq})
	if !m.Visible() {
		t.Fatal("banner hid within the top threshold")
	}
}

func TestScroll_RevealsHiddenBanner(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(2))
	m.Init()

	m.Update(ScrollMsg{Offset: 150})
	m.Update(idleMsg{seq: m.scrollSeq})
	if m.Visible() {
		t.Fatal("precondition: banner should be hidden")
	}

	m.Update(ScrollMsg{Offset: 150})
	if !m.Visible() {
		t.Fatal("scroll activity did not reveal the banner")
	}
}

func TestSetItems_ShrinkClampsIndex(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(5))
	m.Init()
	m.GoTo(4)
	runChoreography(m)
	if got := m.Index(); got != 4 {
		t.Fatalf("index = %d, want 4", got)
	}

	m.SetItems(makeNotices(2))
	if got := m.Index(); got < 0 || got >= 2 {
		t.Fatalf("index = %d after shrink to 2 items, want in [0,2)", got)
	}
	if m.Current() == nil {
		t.Fatal("no readable notice after shrink")
	}
}

func TestSetItems_ShrinkDuringChoreographyClampsTarget(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(5))
	m.Init()
	m.GoTo(4)

	m.SetItems(makeNotices(3))
	runChoreography(m)
	if got := m.Index(); got < 0 || got >= 3 {
		t.Fatalf("index = %d after shrink mid-transition, want in [0,3)", got)
	}
	if m.Transitioning() {
		t.Fatal("transition stuck after shrink")
	}
}

func TestSetItems_EmptyHaltsEngine(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(3))
	m.Init()
	staleEpoch := m.epoch

	m.SetItems(nil)
	if m.running {
		t.Fatal("engine still running with no items")
	}
	if got := m.View(); got != "" {
		t.Fatalf("empty banner rendered %q, want nothing", got)
	}

	// Timers armed before the list emptied fire stale.
	m.Update(rotateMsg{epoch: staleEpoch})
	m.Update(progressMsg{epoch: staleEpoch})
	if m.Transitioning() {
		t.Fatal("stale rotation started a choreography on an empty engine")
	}
}

func TestSetItems_RefillRestartsRotation(t *testing.T) {
	t.Parallel()

	m := New(nil)
	if cmd := m.Init(); cmd != nil {
		t.Fatal("Init armed timers with no items")
	}

	if cmd := m.SetItems(makeNotices(3)); cmd == nil {
		t.Fatal("supplying items did not arm timers")
	}
	m.Update(rotateMsg{epoch: m.epoch})
	runChoreography(m)
	if got := m.Index(); got != 1 {
		t.Fatalf("index = %d after refill and one rotation, want 1", got)
	}
}

func TestSetItems_SingleItemParksRotation(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(3))
	m.Init()

	m.SetItems(makeNotices(1))
	if got := m.Progress(); got != 100 {
		t.Fatalf("progress = %v with a single item, want parked at 100", got)
	}

	// Progress ticks keep the chain alive but never decay.
	m.Update(progressMsg{epoch: m.epoch})
	if got := m.Progress(); got != 100 {
		t.Fatalf("progress = %v after tick with single item, want 100", got)
	}

	// Growing back past one item resumes rotation.
	if cmd := m.SetItems(makeNotices(2)); cmd == nil {
		t.Fatal("growing past one item did not re-arm rotation")
	}
	m.Update(rotateMsg{epoch: m.epoch})
	runChoreography(m)
	if got := m.Index(); got != 1 {
		t.Fatalf("index = %d after resumed rotation, want 1", got)
	}
}

func TestStop_CancelsAllTimerClasses(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(3))
	m.Init()
	m.Update(rotateMsg{epoch: m.epoch})
	staleEpoch := m.epoch
	staleSeq := m.scrollSeq

	m.Stop()
	if m.Transitioning() {
		t.Fatal("transition left in flight after Stop")
	}

	m.Update(swapMsg{epoch: staleEpoch})
	m.Update(settleMsg{epoch: staleEpoch})
	m.Update(progressMsg{epoch: staleEpoch})
	m.Update(idleMsg{seq: staleSeq})
	if got := m.Index(); got != 0 {
		t.Fatalf("stale timers mutated index to %d after Stop", got)
	}
}

func TestActivate_EmitsNavigateSignal(t *testing.T) {
	t.Parallel()

	m := New(makeNotices(3))
	m.Init()
	m.GoTo(2)
	runChoreography(m)

	cmd := m.Activate()
	if cmd == nil {
		t.Fatal("Activate returned no command")
	}
	msg, ok := cmd().(ActivateMsg)
	if !ok {
		t.Fatalf("Activate emitted %T, want ActivateMsg", cmd())
	}
	if msg.Index != 2 || msg.Notice.ID != "n-2" {
		t.Fatalf("ActivateMsg = {%d %s}, want index 2 notice n-2", msg.Index, msg.Notice.ID)
	}
}
