package lifecycle

import (
	"context"
	"time"
	"venue-booking-backend/cmd/venue-booking/metrics"
	"venue-booking-backend/cmd/venue-booking/model"
	"venue-booking-backend/cmd/venue-booking/repository"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Reclassify moves every approved event to the classification its date has
// relative to today. Past events are marked PAST and kept. Only rows whose
// classification actually changes are written, so running it twice in a row
// reports nothing the second time.
func (s *Service) Reclassify(ctx context.Context, today time.Time) (*model.ReclassifyResult, error) {
	start := time.Now()
	today = model.DayOf(today)

	passes := []struct {
		match repository.DateMatch
		class model.Classification
	}{
		{repository.Before, model.Past},
		{repository.On, model.Live},
		{repository.After, model.Upcoming},
	}

	now := s.now()

	var res model.ReclassifyResult
	for _, p := range passes {
		n, err := s.events.BulkUpdateClassification(ctx, p.match, today, p.class, now)
		if err != nil {
			return nil, errors.Wrap(err, "reclassify")
		}
		switch p.class {
		case model.Past:
			res.Past = n
		case model.Live:
			res.Live = n
		case model.Upcoming:
			res.Upcoming = n
		}
		res.Total += n
		metrics.Reclassified.WithLabelValues(string(p.class)).Add(float64(n))
	}

	metrics.ReclassifyDuration.Observe(time.Since(start).Seconds())
	log.Ctx(ctx).Info().
		Str("today", today.Format(model.DateLayout)).
		Int64("past", res.Past).
		Int64("live", res.Live).
		Int64("upcoming", res.Upcoming).
		Msg("events reclassified")

	return &res, nil
}

// PurgePast hard-deletes approved events dated before the given day.
func (s *Service) PurgePast(ctx context.Context, before time.Time) (int64, error) {
	n, err := s.events.DeleteApprovedBefore(ctx, model.DayOf(before))
	if err != nil {
		return 0, errors.Wrap(err, "purge past events")
	}
	if n > 0 {
		log.Ctx(ctx).Info().
			Str("before", model.DayOf(before).Format(model.DateLayout)).
			Int64("deleted", n).
			Msg("past events purged")
	}
	return n, nil
}
