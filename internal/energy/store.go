package energy

import (
	"time"

	"github.com/avelins/tapcore/internal/domain"
)

// Store owns one session's energy pool: its current value, cap and
// regeneration rate. Every operation clamps into [0, Max], so the store has
// no error path. The caller persists the aggregate after each mutation.
type Store struct {
	st *domain.EnergyState
}

// NewStore wraps the energy state held by a session aggregate.
func NewStore(st *domain.EnergyState) *Store {
	return &Store{st: st}
}

// State returns a copy of the underlying energy state.
func (s *Store) State() domain.EnergyState {
	return *s.st
}

// Units is the whole-unit energy available for taps.
func (s *Store) Units() int {
	return int(s.st.Current)
}

// Debit removes amount units, clamping at zero. It never fails: a tap that
// asks for more energy than remains simply drains the pool.
func (s *Store) Debit(amount int, now time.Time) float64 {
	if amount < 0 {
		amount = 0
	}
	s.st.Current -= float64(amount)
	if s.st.Current < 0 {
		s.st.Current = 0
	}
	s.st.LastUpdate = now
	return s.st.Current
}

// Fill sets the pool to its cap (full-energy daily booster).
func (s *Store) Fill(now time.Time) {
	s.st.Current = float64(s.st.Max)
	s.st.LastUpdate = now
}

// Recompute rescales the pool after an upgrade changes the cap or the
// recharge tier. Current is clipped to the new cap, never topped up.
func (s *Store) Recompute(maxEnergy int, interval time.Duration) {
	s.st.Max = maxEnergy
	s.st.RechargeInterval = interval
	if s.st.Current > float64(s.st.Max) {
		s.st.Current = float64(s.st.Max)
	}
}

// Regen credits the continuous-rate regeneration for one tick and returns
// the amount credited after clamping. A 1s tick at the 500ms tier credits
// two units.
func (s *Store) Regen(tick time.Duration, now time.Time) float64 {
	credited := s.credit(tick)
	s.st.LastUpdate = now
	return credited
}

// CatchUp credits the regeneration elapsed since the last persisted update,
// clamped to the cap. Called once on session load so an offline gap of any
// length never overfills the pool.
func (s *Store) CatchUp(now time.Time) float64 {
	elapsed := now.Sub(s.st.LastUpdate)
	if elapsed <= 0 {
		return 0
	}
	credited := s.credit(elapsed)
	s.st.LastUpdate = now
	return credited
}

func (s *Store) credit(elapsed time.Duration) float64 {
	if s.st.RechargeInterval <= 0 {
		s.st.RechargeInterval = domain.RechargeIntervals[0]
	}
	before := s.st.Current
	s.st.Current += float64(elapsed) / float64(s.st.RechargeInterval)
	if s.st.Current > float64(s.st.Max) {
		s.st.Current = float64(s.st.Max)
	}
	return s.st.Current - before
}
