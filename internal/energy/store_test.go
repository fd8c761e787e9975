package energy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avelins/tapcore/internal/domain"
)

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestState(current float64, max int, interval time.Duration) *domain.EnergyState {
	return &domain.EnergyState{
		Current:          current,
		Max:              max,
		RechargeInterval: interval,
		LastUpdate:       testStart,
	}
}

func TestDebitClampsAtZero(t *testing.T) {
	st := newTestState(5, 1000, 3*time.Second)
	store := NewStore(st)

	got := store.Debit(10, testStart)

	assert.Equal(t, 0.0, got)
	assert.Equal(t, 0.0, st.Current)
	assert.Equal(t, testStart, st.LastUpdate)
}

func TestDebitIgnoresNegativeAmount(t *testing.T) {
	st := newTestState(100, 1000, 3*time.Second)
	store := NewStore(st)

	got := store.Debit(-3, testStart)

	assert.Equal(t, 100.0, got)
}

func TestRegenCreditsContinuousRate(t *testing.T) {
	st := newTestState(0, 1000, 500*time.Millisecond)
	store := NewStore(st)

	credited := store.Regen(time.Second, testStart.Add(time.Second))

	// 1s tick at 500ms per unit credits 2 units
	assert.Equal(t, 2.0, credited)
	assert.Equal(t, 2.0, st.Current)
}

func TestRegenClampsAtMax(t *testing.T) {
	st := newTestState(999.5, 1000, 500*time.Millisecond)
	store := NewStore(st)

	credited := store.Regen(time.Second, testStart.Add(time.Second))

	assert.Equal(t, 0.5, credited)
	assert.Equal(t, 1000.0, st.Current)
}

// Energy stays inside [0, Max] across any interleaving of debits and ticks.
func TestEnergyBoundsInvariant(t *testing.T) {
	st := newTestState(500, 1000, 500*time.Millisecond)
	store := NewStore(st)
	now := testStart

	ops := []func(){
		func() { store.Debit(700, now) },
		func() { store.Regen(time.Second, now) },
		func() { store.Debit(3, now) },
		func() { store.Regen(time.Second, now) },
		func() { store.Fill(now) },
		func() { store.Debit(2000, now) },
		func() { store.Regen(time.Second, now) },
	}
	for _, op := range ops {
		now = now.Add(time.Second)
		op()
		assert.GreaterOrEqual(t, st.Current, 0.0)
		assert.LessOrEqual(t, st.Current, float64(st.Max))
	}
}

// Scenario: 10 regen ticks approach the cap monotonically without overshoot.
func TestRegenMonotonicApproachToCap(t *testing.T) {
	st := newTestState(0, 1000, 500*time.Millisecond)
	store := NewStore(st)

	prev := 0.0
	now := testStart
	for i := 0; i < 10; i++ {
		now = now.Add(time.Second)
		store.Regen(time.Second, now)
		assert.GreaterOrEqual(t, st.Current, prev)
		assert.LessOrEqual(t, st.Current, float64(st.Max))
		prev = st.Current
	}
	assert.Equal(t, 20.0, st.Current)
}

func TestCatchUpCreditsElapsedTime(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		gap     time.Duration
		want    float64
	}{
		{name: "short gap", current: 0, gap: 5 * time.Second, want: 10},
		{name: "gap reaching cap", current: 900, gap: time.Minute, want: 1000},
		{name: "huge offline gap never exceeds cap", current: 0, gap: 90 * 24 * time.Hour, want: 1000},
		{name: "zero gap", current: 42, gap: 0, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestState(tt.current, 1000, 500*time.Millisecond)
			store := NewStore(st)

			store.CatchUp(testStart.Add(tt.gap))

			assert.Equal(t, tt.want, st.Current)
		})
	}
}

func TestCatchUpIgnoresClockGoingBackwards(t *testing.T) {
	st := newTestState(10, 1000, 500*time.Millisecond)
	store := NewStore(st)

	credited := store.CatchUp(testStart.Add(-time.Hour))

	assert.Equal(t, 0.0, credited)
	assert.Equal(t, 10.0, st.Current)
}

func TestRecomputeRescalesCurrent(t *testing.T) {
	t.Run("raising the cap keeps current", func(t *testing.T) {
		st := newTestState(800, 1000, 3*time.Second)
		store := NewStore(st)

		store.Recompute(1500, 2500*time.Millisecond)

		assert.Equal(t, 800.0, st.Current)
		assert.Equal(t, 1500, st.Max)
		assert.Equal(t, 2500*time.Millisecond, st.RechargeInterval)
	})

	t.Run("lowering the cap clips current", func(t *testing.T) {
		st := newTestState(1400, 1500, 3*time.Second)
		store := NewStore(st)

		store.Recompute(1000, 3*time.Second)

		assert.Equal(t, 1000.0, st.Current)
	})
}
