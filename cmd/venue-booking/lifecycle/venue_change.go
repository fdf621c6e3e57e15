package lifecycle

import (
	"context"
	"strings"
	"venue-booking-backend/cmd/venue-booking/metrics"
	"venue-booking-backend/cmd/venue-booking/model"
	"venue-booking-backend/cmd/venue-booking/notify"
	"venue-booking-backend/cmd/venue-booking/repository"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// RequestChange opens a venue change request on an approved, upcoming event
// owned by clubName. An event has at most one pending request.
func (s *Service) RequestChange(ctx context.Context, eventID, clubName string, req model.VenueChangeCreateRequest) (*model.VenueChangeRequest, error) {
	req.RequestedVenue = strings.TrimSpace(req.RequestedVenue)
	req.Reason = strings.TrimSpace(req.Reason)
	clubName = strings.TrimSpace(clubName)

	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	event, err := s.events.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, lookupErr(err, "event", eventID)
	}
	if event.ClubName != clubName {
		return nil, conflictf("event %s is not owned by %s", eventID, clubName)
	}
	if event.Status != model.Approved || Classify(event.Day(), s.Today()) != model.Upcoming {
		return nil, conflictf("venue changes are only allowed for approved upcoming events")
	}
	if event.Venue == req.RequestedVenue {
		return nil, validationf("event is already booked at %s", req.RequestedVenue)
	}

	release, err := s.locker.Lock(ctx, "venue-change:"+event.ID)
	if err != nil {
		return nil, errors.Wrap(err, "lock event")
	}
	defer release()

	_, err = s.changes.FindPendingVenueChangeByEvent(ctx, event.ID)
	switch {
	case err == nil:
		return nil, conflictf("a venue change request is already pending for this event")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, errors.Wrap(err, "find pending venue change")
	}

	now := s.now()
	change := &model.VenueChangeRequest{
		ID:             newID(),
		EventID:        event.ID,
		ClubName:       event.ClubName,
		RequestedVenue: req.RequestedVenue,
		Reason:         req.Reason,
		Status:         model.ChangePending,
		CreateDate:     now,
		UpdateDate:     now,
	}
	event.VenueChange = change.Snapshot()
	event.UpdateDate = now

	if err := s.changes.CreateVenueChange(ctx, change, event); err != nil {
		return nil, errors.Wrap(err, "create venue change")
	}

	metrics.VenueChanges.WithLabelValues("requested").Inc()
	log.Ctx(ctx).Info().
		Str("request_id", change.ID).
		Str("event_id", event.ID).
		Str("requested_venue", change.RequestedVenue).
		Msg("venue change requested")

	change.Event = event
	return change, nil
}

// ResolveChange applies the admin decision on a pending request. Approval
// only moves the parent event to the requested venue, which must be free for
// the event's slot.
func (s *Service) ResolveChange(ctx context.Context, requestID string, action model.ChangeAction, adminComment string) (*model.VenueChangeRequest, error) {
	if action != model.ApproveChange && action != model.RejectChange {
		return nil, validationf("action must be APPROVE or REJECT")
	}

	change, err := s.changes.FindVenueChangeByID(ctx, requestID)
	if err != nil {
		return nil, lookupErr(err, "venue change request", requestID)
	}
	if change.Status != model.ChangePending {
		return nil, conflictf("venue change request already processed")
	}

	event := change.Event
	if event == nil {
		if event, err = s.events.FindEventByID(ctx, change.EventID); err != nil {
			return nil, lookupErr(err, "event", change.EventID)
		}
	}

	change.AdminComment = strings.TrimSpace(adminComment)

	if action == model.ApproveChange {
		release, err := s.locker.Lock(ctx, bookingKey(event.Day(), change.RequestedVenue))
		if err != nil {
			return nil, errors.Wrap(err, "lock venue")
		}
		defer release()

		if event, err = s.events.FindEventByID(ctx, change.EventID); err != nil {
			return nil, lookupErr(err, "event", change.EventID)
		}
		if event.Status != model.Approved || Classify(event.Day(), s.Today()) != model.Upcoming {
			return nil, conflictf("event is no longer approved and upcoming")
		}

		clash, err := s.findClash(ctx, event.Day(), change.RequestedVenue, event.TimeSlot, event.ID)
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, conflictf("%s is already booked on %s for %q",
				change.RequestedVenue, event.Day().Format(model.DateLayout), clash.TimeSlot)
		}

		change.Status = model.ChangeApproved
		event.Venue = change.RequestedVenue
	} else {
		change.Status = model.ChangeRejected
	}

	now := s.now()
	change.UpdateDate = now
	event.VenueChange = change.Snapshot()
	event.UpdateDate = now

	if err := s.changes.ResolveVenueChange(ctx, change, event); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, conflictf("venue change request already processed")
		}
		return nil, errors.Wrap(err, "resolve venue change")
	}

	metrics.VenueChanges.WithLabelValues(strings.ToLower(string(change.Status))).Inc()
	log.Ctx(ctx).Info().
		Str("request_id", change.ID).
		Str("event_id", event.ID).
		Str("status", string(change.Status)).
		Msg("venue change resolved")

	change.Event = event
	s.notifier.Dispatch(notify.VenueChangeResolved(event, change))
	return change, nil
}

func (s *Service) PendingVenueChanges(ctx context.Context) ([]model.VenueChangeRequest, error) {
	reqs, err := s.changes.FindPendingVenueChanges(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list pending venue changes")
	}
	return reqs, nil
}

func (s *Service) VenueChangesForClub(ctx context.Context, clubName string) ([]model.VenueChangeRequest, error) {
	clubName = strings.TrimSpace(clubName)
	if clubName == "" {
		return nil, validationf("clubName is required")
	}
	reqs, err := s.changes.FindVenueChangesByClub(ctx, clubName)
	if err != nil {
		return nil, errors.Wrap(err, "list club venue changes")
	}
	return reqs, nil
}
