package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler drives the engine on a recurring cron trigger. The deployed
// spec fires at the top of every hour so rule hours correspond to
// wall-clock hours at trigger time. A single cron entry runs its jobs
// sequentially, so ticks never overlap.
//
// There is no record of past sends: a tick that fires twice within the
// same hour window re-dispatches the same matches, and two scheduler
// instances sharing one database send duplicate reminders. Run one.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	spec   string
	log    zerolog.Logger
}

// NewScheduler creates a Scheduler firing RunTick per the cron spec.
func NewScheduler(engine *Engine, spec string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		engine: engine,
		spec:   spec,
		log:    log,
	}
}

// Start registers the tick job and starts the cron runner. A spec that
// fails to parse is a startup error — the one condition that should
// abort the process instead of being logged and ignored.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.engine.RunTick(context.Background(), time.Now())
	})
	if err != nil {
		return fmt.Errorf("register tick job %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("scheduler started")
	return nil
}

// Stop halts the trigger and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}
