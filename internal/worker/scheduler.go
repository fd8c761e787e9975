package worker

import (
	"context"
	"sync"
	"time"

	"github.com/avelins/tapcore/internal/logger"
)

// SessionSweeper is the slice of the session service the scheduler drives.
type SessionSweeper interface {
	RegenSweep(ctx context.Context)
	BoosterSweep(ctx context.Context)
	AutobotSweep(ctx context.Context)
	FlushSweep(ctx context.Context)
}

// Scheduler owns every periodic timer in the service: the one-second game
// tick (booster expiry, energy regeneration, autobot accrual) and the flush
// deadline sweep. Ticks are dispatched to a worker pool so a slow sweep
// never skews the ticker.
type Scheduler struct {
	sweeper SessionSweeper
	pool    *Pool

	tickInterval  time.Duration
	flushInterval time.Duration

	quit chan struct{}
	wg   sync.WaitGroup
}

// NewScheduler creates a scheduler driving sweeper through pool. tickInterval
// is the game tick; the flush sweep runs on FlushSweepInterval.
func NewScheduler(sweeper SessionSweeper, pool *Pool, tickInterval time.Duration) *Scheduler {
	return &Scheduler{
		sweeper:       sweeper,
		pool:          pool,
		tickInterval:  tickInterval,
		flushInterval: FlushSweepInterval,
		quit:          make(chan struct{}),
	}
}

// Start launches the tick loops.
func (s *Scheduler) Start() {
	s.wg.Add(2)
	go s.tickLoop()
	go s.flushLoop()
	logger.Info(LogMsgSchedulerStarted, "tick_interval", s.tickInterval)
}

// sweepJob runs one sweep function as a pool job.
type sweepJob struct {
	run func(ctx context.Context)
}

func (j sweepJob) Process(ctx context.Context) error {
	j.run(ctx)
	return nil
}

// tickLoop fires the game tick. Booster expiry runs before regeneration so a
// just-expired full-energy state regenerates under the right cap, and the
// autobot scores last against the settled multipliers.
func (s *Scheduler) tickLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			job := sweepJob{run: func(ctx context.Context) {
				s.sweeper.BoosterSweep(ctx)
				s.sweeper.RegenSweep(ctx)
				s.sweeper.AutobotSweep(ctx)
			}}
			if !s.pool.TryEnqueue(job) {
				logger.Warn(LogMsgSweepQueueSaturted)
			}
		case <-s.quit:
			return
		}
	}
}

func (s *Scheduler) flushLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			job := sweepJob{run: s.sweeper.FlushSweep}
			if !s.pool.TryEnqueue(job) {
				logger.Warn(LogMsgSweepQueueSaturted)
			}
		case <-s.quit:
			return
		}
	}
}

// Shutdown stops the tick loops and waits for them to exit.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSchedulerStopping)

	select {
	case <-s.quit:
	default:
		close(s.quit)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgSchedulerStopped)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgSchedulerTimeout)
		return ctx.Err()
	}
}
