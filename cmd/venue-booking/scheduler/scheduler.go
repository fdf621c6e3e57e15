// Package scheduler drives the daily reclassification of approved events.
package scheduler

import (
	"context"
	"time"
	"venue-booking-backend/cmd/venue-booking/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultSpec runs the job at campus midnight.
const DefaultSpec = "0 0 * * *"

type IReclassifier interface {
	Today() time.Time
	Reclassify(ctx context.Context, today time.Time) (*model.ReclassifyResult, error)
	PurgePast(ctx context.Context, before time.Time) (int64, error)
}

type Config struct {
	Spec     string
	Location *time.Location
	// RetentionDays > 0 deletes approved events older than that many days
	// after each run.
	RetentionDays int
}

type Scheduler struct {
	svc       IReclassifier
	retention int
	sched     gocron.Scheduler
	ctx       context.Context
}

func New(svc IReclassifier, cfg Config) (*Scheduler, error) {
	if cfg.Spec == "" {
		cfg.Spec = DefaultSpec
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	sched, err := gocron.NewScheduler(gocron.WithLocation(cfg.Location))
	if err != nil {
		return nil, errors.Wrap(err, "create scheduler")
	}

	s := &Scheduler{
		svc:       svc,
		retention: cfg.RetentionDays,
		sched:     sched,
		ctx:       context.Background(),
	}

	_, err = sched.NewJob(
		gocron.CronJob(cfg.Spec, false),
		gocron.NewTask(func() {
			if _, err := s.RunNow(s.ctx); err != nil {
				log.Error().Err(err).Msg("scheduled reclassification failed")
			}
		}),
		gocron.WithName("reclassify-events"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, errors.Wrapf(err, "schedule %q", cfg.Spec)
	}

	return s, nil
}

// Run starts the cron and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.ctx = log.Logger.WithContext(ctx)
	s.sched.Start()
	log.Info().Msg("reclassification scheduler started")

	<-ctx.Done()

	return s.sched.Shutdown()
}

// RunNow reclassifies against today and applies the retention purge.
// Concurrent calls are safe, every write is conditional.
func (s *Scheduler) RunNow(ctx context.Context) (*model.ReclassifyResult, error) {
	today := s.svc.Today()

	res, err := s.svc.Reclassify(ctx, today)
	if err != nil {
		return nil, err
	}

	if s.retention > 0 {
		n, err := s.svc.PurgePast(ctx, today.AddDate(0, 0, -s.retention))
		if err != nil {
			return nil, err
		}
		res.Purged = n
	}

	return res, nil
}
