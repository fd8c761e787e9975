package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avelins/tapcore/internal/clock"
	"github.com/avelins/tapcore/internal/concurrency"
	"github.com/avelins/tapcore/internal/domain"
	"github.com/avelins/tapcore/internal/engine"
	"github.com/avelins/tapcore/internal/event"
	"github.com/avelins/tapcore/internal/ledger"
	"github.com/avelins/tapcore/internal/logger"
	"github.com/avelins/tapcore/internal/metrics"
	"github.com/avelins/tapcore/internal/repository"
)

// Ledger is the remote game API surface the session service depends on.
// *ledger.Client satisfies it; tests swap in a fake.
type Ledger interface {
	GetProfile(ctx context.Context) (*domain.Profile, error)
	SyncCoins(ctx context.Context, delta int64, idempotencyKey string) (int64, error)
	GetBoosterCatalog(ctx context.Context) ([]domain.BoosterCatalogEntry, error)
	UpgradeBooster(ctx context.Context, boosterID int) error
}

var _ Ledger = (*ledger.Client)(nil)

// Service owns the live session engines: load-or-create with offline
// catch-up, the hot-session cache, the mutation API used by the HTTP
// handlers, and the sweep entry points driven by the scheduler workers.
type Service interface {
	Tap(ctx context.Context, userID string, inputCount int) (*engine.TapResult, error)
	ActivateBooster(ctx context.Context, userID string, kind domain.DailyBoosterKind) (*domain.SessionState, bool, error)
	PurchaseUpgrade(ctx context.Context, userID string, boosterID int) (*domain.SessionState, error)
	GetState(ctx context.Context, userID string) (*domain.SessionState, error)
	Flush(ctx context.Context, userID string) (*domain.SessionState, error)
	Reset(ctx context.Context, userID string) (*domain.SessionState, error)

	// Sweep entry points, called on the scheduler's tick.
	RegenSweep(ctx context.Context)
	BoosterSweep(ctx context.Context)
	AutobotSweep(ctx context.Context)
	FlushSweep(ctx context.Context)

	ActiveSessions() int
	Shutdown(ctx context.Context) error
}

// service implements the Service interface
type service struct {
	repo   repository.Session
	ledger Ledger
	clk    clock.Clock
	bus    event.Bus
	cache  *sessionCache

	loadLocks *concurrency.LockManager // serializes load-or-create per user
	draining  sync.Map                 // userID -> *engine.Session awaiting its eviction flush
	wg        sync.WaitGroup
}

// NewService builds the session service. cacheSize and cacheTTL bound the
// hot-session cache; an evicted session gets a final flush and persist.
func NewService(repo repository.Session, remote Ledger, clk clock.Clock, bus event.Bus, cacheSize int, cacheTTL time.Duration) Service {
	s := &service{
		repo:      repo,
		ledger:    remote,
		clk:       clk,
		bus:       bus,
		loadLocks: concurrency.NewLockManager(),
	}
	s.cache = newSessionCache(cacheSize, cacheTTL, s.onEvict)
	return s
}

func (s *service) Tap(ctx context.Context, userID string, inputCount int) (*engine.TapResult, error) {
	eng, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	res, err := eng.Tap(inputCount, s.clk.Now())
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewTapScoredEvent(userID, inputCount, res.Multiplier, res.CoinsEarned))
	s.persist(ctx, eng)
	return res, nil
}

func (s *service) ActivateBooster(ctx context.Context, userID string, kind domain.DailyBoosterKind) (*domain.SessionState, bool, error) {
	if !domain.KnownDailyBoosterKind(kind) {
		return nil, false, domain.ErrInvalidInput
	}

	eng, err := s.session(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	activated := eng.ActivateDailyBooster(kind, s.clk.Now())
	snap := eng.Snapshot()
	if activated {
		usesLeft := 0
		if b := snap.DailyBoosters[kind]; b != nil {
			usesLeft = b.UsesLeft
		}
		s.publish(ctx, event.NewBoosterActivatedEvent(userID, string(kind), usesLeft))
		s.persist(ctx, eng)
	}
	return snap, activated, nil
}

func (s *service) PurchaseUpgrade(ctx context.Context, userID string, boosterID int) (*domain.SessionState, error) {
	eng, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.UpgradeBooster(ctx, boosterID); err != nil {
		return nil, err
	}

	// The server owns the level; re-fetch the catalog rather than trusting
	// an optimistic local increment.
	catalog, err := s.ledger.GetBoosterCatalog(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgCatalogRefreshFailed, "user_id", userID, "error", err)
	} else {
		eng.ApplyCatalogOnLoad(catalog)
	}

	s.publish(ctx, event.NewUpgradePurchasedEvent(userID, boosterID))
	s.persist(ctx, eng)
	return eng.Snapshot(), nil
}

func (s *service) GetState(ctx context.Context, userID string) (*domain.SessionState, error) {
	eng, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return eng.Snapshot(), nil
}

func (s *service) Flush(ctx context.Context, userID string) (*domain.SessionState, error) {
	eng, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.flushSession(ctx, eng)
}

// Reset discards the persisted session and builds a fresh one from defaults,
// after a best-effort flush of any pending coins. The flush runs here,
// synchronously, so the eviction below has nothing left to hand to the
// background teardown; the evict persist is synchronous too, so the Delete
// wins. Dropping the draining entry disowns any flush retry still in flight.
func (s *service) Reset(ctx context.Context, userID string) (*domain.SessionState, error) {
	if eng, ok := s.cache.Get(userID); ok {
		eng.Teardown(ctx, s.clk.Now())
	}
	s.cache.Remove(userID)
	s.draining.Delete(userID)
	if err := s.repo.Delete(ctx, userID); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgSessionReset, "user_id", userID)

	eng, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return eng.Snapshot(), nil
}

func (s *service) RegenSweep(ctx context.Context) {
	now := s.clk.Now()
	for _, eng := range s.cache.Values() {
		eng.RegenTick(domain.TickInterval, now)
		s.persist(ctx, eng)
	}
}

func (s *service) BoosterSweep(ctx context.Context) {
	now := s.clk.Now()
	for _, eng := range s.cache.Values() {
		if eng.BoosterTick(now) {
			s.persist(ctx, eng)
		}
	}
}

func (s *service) AutobotSweep(ctx context.Context) {
	now := s.clk.Now()
	for _, eng := range s.cache.Values() {
		coins := eng.AutobotTick(now)
		if coins > 0 {
			s.publish(ctx, event.NewAutobotScoredEvent(eng.UserID(), coins, false))
			s.persist(ctx, eng)
		}
	}
}

// FlushSweep fires the coalescing flush for every session whose deadline has
// passed. Each flush runs in its own goroutine so one slow ledger call does
// not stall the sweep; the engine's in-flight guard deduplicates.
func (s *service) FlushSweep(ctx context.Context) {
	now := s.clk.Now()
	for _, eng := range s.cache.Values() {
		due, ok := eng.FlushDue()
		if !ok || now.Before(due) {
			continue
		}
		s.wg.Add(1)
		go func(eng *engine.Session) {
			defer s.wg.Done()
			_, _ = s.flushSession(ctx, eng)
		}(eng)
	}
}

func (s *service) ActiveSessions() int {
	return s.cache.Len()
}

// Shutdown tears down every live session (persist via the evict callback,
// final flush on the eviction goroutines), then drains all in-flight flushes.
func (s *service) Shutdown(ctx context.Context) error {
	s.cache.Purge()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownFlushTimedOut)
	}

	metrics.ActiveSessions.Set(0)
	return nil
}

// session returns the live engine for userID, loading (or creating) it when
// it is not cached.
func (s *service) session(ctx context.Context, userID string) (*engine.Session, error) {
	if eng, ok := s.cache.Get(userID); ok {
		return eng, nil
	}

	mu := s.loadLocks.GetLock(userID)
	mu.Lock()
	defer mu.Unlock()
	if eng, ok := s.cache.Get(userID); ok {
		return eng, nil
	}

	// A session evicted with its final flush still in flight is reclaimed
	// as-is: the engine stays authoritative until that flush lands, so a
	// returning user cannot re-earn coins the flush already carried.
	if v, ok := s.draining.LoadAndDelete(userID); ok {
		eng := v.(*engine.Session)
		s.cache.Add(userID, eng)
		metrics.ActiveSessions.Set(float64(s.cache.Len()))
		return eng, nil
	}

	log := logger.FromContext(ctx)
	now := s.clk.Now()

	state, err := s.repo.Get(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSessionNotFound):
		state = domain.NewSessionState(userID, now)
	default:
		// Malformed persisted state falls back to defaults rather than
		// wedging the user.
		log.Warn(LogMsgStateLoadFailed, "user_id", userID, "error", err)
		state = domain.NewSessionState(userID, now)
	}
	state.UserID = userID
	state.Normalize(now)

	// Seed the authoritative coin total before the engine starts scoring.
	if profile, err := s.ledger.GetProfile(ctx); err != nil {
		log.Warn(LogMsgProfileSeedFailed, "user_id", userID, "error", err)
	} else {
		state.Ledger.AuthoritativeTotal = profile.TotalCoins
	}

	eng := engine.NewSession(state, s.ledger)

	if catalog, err := s.ledger.GetBoosterCatalog(ctx); err != nil {
		log.Warn(LogMsgCatalogSeedFailed, "user_id", userID, "error", err)
	} else {
		eng.ApplyCatalogOnLoad(catalog)
	}

	if coins := eng.CatchUp(now); coins > 0 {
		log.Info(LogMsgOfflineAutobotCredit, "user_id", userID, "coins", coins)
		s.publish(ctx, event.NewAutobotScoredEvent(userID, coins, true))
	}

	s.persist(ctx, eng)
	s.cache.Add(userID, eng)
	metrics.ActiveSessions.Set(float64(s.cache.Len()))

	log.Debug(LogMsgSessionStarted, "user_id", userID)
	s.publish(ctx, event.NewSessionStartedEvent(userID))
	return eng, nil
}

func (s *service) flushSession(ctx context.Context, eng *engine.Session) (*domain.SessionState, error) {
	before := eng.PendingCoins()

	err := eng.Flush(ctx, s.clk.Now())
	snap := eng.Snapshot()
	if err != nil {
		s.publish(ctx, event.NewFlushDeferredEvent(eng.UserID(), before, err.Error()))
		return snap, err
	}

	if delta := before - snap.Ledger.UnsyncedCoins; delta > 0 {
		s.publish(ctx, event.NewCoinsFlushedEvent(eng.UserID(), delta, snap.Ledger.AuthoritativeTotal))
	}
	s.persist(ctx, eng)
	return snap, nil
}

// persist writes the current aggregate. A store failure is logged, not
// returned: the state stays live in memory and the next mutation retries.
func (s *service) persist(ctx context.Context, eng *engine.Session) {
	if err := s.repo.Save(ctx, eng.Snapshot()); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPersistFailed, "user_id", eng.UserID(), "error", err)
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, evt)
}

// onEvict runs under the cache lock for every removal, so it must not touch
// the network: a teardown flush stuck on a slow ledger would stall every
// other session's cache access. The persist stays synchronous (Reset's
// Delete must order after it); the flush moves to its own goroutine, with
// the engine parked in draining until the flush lands.
func (s *service) onEvict(userID string, eng *engine.Session) {
	ctx := context.Background()
	if err := s.repo.Save(ctx, eng.Snapshot()); err != nil {
		logger.Warn(LogMsgEvictPersistFailed, "user_id", userID, "error", err)
	}
	s.publish(ctx, event.NewSessionEvictedEvent(userID))
	metrics.ActiveSessions.Dec()

	if eng.PendingCoins() == 0 {
		return
	}
	s.draining.Store(userID, eng)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		eng.Teardown(ctx, s.clk.Now())
		if !s.draining.CompareAndDelete(userID, eng) {
			// Reclaimed by a fresh load or discarded by a reset; either
			// way this goroutine no longer owns the persisted row.
			return
		}
		if eng.PendingCoins() == 0 {
			s.persist(ctx, eng)
		}
	}()
}
