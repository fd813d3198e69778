package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/hospital"
)

// Scheduler handles periodic background jobs for the admission engine.
// Its one job today is reclaiming expired bed holds so an abandoned
// wizard (closed tab, crashed browser) cannot lock a bed forever.
type Scheduler struct {
	cron     *cron.Cron
	Registry *hospital.Registry
}

// NewScheduler creates a new scheduler instance
func NewScheduler(registry *hospital.Registry) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		Registry: registry,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Sweep expired bed holds every minute
	_, err := s.cron.AddFunc("* * * * *", s.sweepExpiredHolds)
	if err != nil {
		zap.S().Errorw("failed to register hold sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("bed hold sweeper started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("bed hold sweeper stopped")
}

func (s *Scheduler) sweepExpiredHolds() {
	reclaimed := s.Registry.SweepExpired(time.Now())
	if len(reclaimed) > 0 {
		zap.S().Infow("reclaimed expired bed holds", "count", len(reclaimed))
	}
}
