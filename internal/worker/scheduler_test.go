package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avelins/tapcore/internal/testing/leaktest"
)

type countingSweeper struct {
	regen   int32
	booster int32
	autobot int32
	flush   int32
}

func (c *countingSweeper) RegenSweep(context.Context)   { atomic.AddInt32(&c.regen, 1) }
func (c *countingSweeper) BoosterSweep(context.Context) { atomic.AddInt32(&c.booster, 1) }
func (c *countingSweeper) AutobotSweep(context.Context) { atomic.AddInt32(&c.autobot, 1) }
func (c *countingSweeper) FlushSweep(context.Context)   { atomic.AddInt32(&c.flush, 1) }

func TestScheduler_DrivesSweeps(t *testing.T) {
	sweeper := &countingSweeper{}
	pool := NewPool(2, 16)
	pool.Start()
	defer pool.Stop()

	sched := NewScheduler(sweeper, pool, 10*time.Millisecond)
	sched.Start()

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&sweeper.regen) < 2 || atomic.LoadInt32(&sweeper.flush) < 1 {
		if time.Now().After(deadline) {
			t.Fatalf("sweeps never ran: regen=%d flush=%d",
				atomic.LoadInt32(&sweeper.regen), atomic.LoadInt32(&sweeper.flush))
		}
		time.Sleep(5 * time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := sched.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	// Each game tick runs every sweep exactly once.
	if atomic.LoadInt32(&sweeper.booster) != atomic.LoadInt32(&sweeper.regen) {
		t.Errorf("booster sweeps (%d) should match regen sweeps (%d)",
			atomic.LoadInt32(&sweeper.booster), atomic.LoadInt32(&sweeper.regen))
	}
}

func TestScheduler_ShutdownIsIdempotent(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	sched := NewScheduler(&countingSweeper{}, pool, 10*time.Millisecond)
	sched.Start()

	ctx := context.Background()
	if err := sched.Shutdown(ctx); err != nil {
		t.Fatalf("first Shutdown failed: %v", err)
	}
	if err := sched.Shutdown(ctx); err != nil {
		t.Fatalf("second Shutdown failed: %v", err)
	}
}

func TestScheduler_ShutdownStopsGoroutines(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	pool := NewPool(2, 16)
	pool.Start()

	sched := NewScheduler(&countingSweeper{}, pool, 10*time.Millisecond)
	sched.Start()

	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := sched.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	pool.Stop()

	checker.Check(0)
}
