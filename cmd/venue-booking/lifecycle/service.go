// Package lifecycle owns event status transitions, venue availability and
// venue change requests.
package lifecycle

import (
	"context"
	"strings"
	"time"
	"venue-booking-backend/cmd/venue-booking/locker"
	"venue-booking-backend/cmd/venue-booking/metrics"
	"venue-booking-backend/cmd/venue-booking/model"
	"venue-booking-backend/cmd/venue-booking/notify"
	"venue-booking-backend/cmd/venue-booking/repository"
	"venue-booking-backend/cmd/venue-booking/venue"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// CancelledByClub is the admin message stored on owner cancellations.
const CancelledByClub = "Cancelled by club"

// ChangeClosedByCancel is the admin comment on venue change requests closed
// because their event was cancelled.
const ChangeClosedByCancel = "Event cancelled by club"

type IEventRepo interface {
	FindEventsByStatus(ctx context.Context, status model.EventStatus) ([]model.Event, error)
	FindEventsByDateAndStatus(ctx context.Context, day time.Time, status model.EventStatus) ([]model.Event, error)
	FindEventByID(ctx context.Context, id string) (*model.Event, error)
	FindEventsByClub(ctx context.Context, clubName string) ([]model.Event, error)
	FindApprovedEventsByClub(ctx context.Context, clubName string) ([]model.Event, error)
	FindPublishedEvents(ctx context.Context) ([]model.Event, error)
	CreateEvent(ctx context.Context, event *model.Event) error
	UpdateEvent(ctx context.Context, event *model.Event) error
	BulkUpdateClassification(ctx context.Context, match repository.DateMatch, today time.Time, classification model.Classification, updatedAt time.Time) (int64, error)
	DeleteApprovedBefore(ctx context.Context, day time.Time) (int64, error)
	CountEvents(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.EventStatus) (int64, error)
	CountByClassification(ctx context.Context, classification model.Classification) (int64, error)
}

type IVenueChangeRepo interface {
	CreateVenueChange(ctx context.Context, req *model.VenueChangeRequest, event *model.Event) error
	FindVenueChangeByID(ctx context.Context, id string) (*model.VenueChangeRequest, error)
	FindPendingVenueChangeByEvent(ctx context.Context, eventID string) (*model.VenueChangeRequest, error)
	FindPendingVenueChanges(ctx context.Context) ([]model.VenueChangeRequest, error)
	FindVenueChangesByClub(ctx context.Context, clubName string) ([]model.VenueChangeRequest, error)
	CountPendingVenueChanges(ctx context.Context) (int64, error)
	ResolveVenueChange(ctx context.Context, req *model.VenueChangeRequest, event *model.Event) error
	CancelEvent(ctx context.Context, event *model.Event, comment string) (int64, error)
}

// INotifier sends requester notifications without blocking the caller.
type INotifier interface {
	Dispatch(msg notify.Message)
}

type Option func(*Service)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the campus time zone that decides which calendar day
// "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func WithLocker(l locker.Locker) Option {
	return func(s *Service) { s.locker = l }
}

type Service struct {
	events   IEventRepo
	changes  IVenueChangeRepo
	catalog  *venue.Catalog
	notifier INotifier
	locker   locker.Locker
	validate *validator.Validate
	now      func() time.Time
	loc      *time.Location
}

func NewService(events IEventRepo, changes IVenueChangeRepo, catalog *venue.Catalog, notifier INotifier, opts ...Option) *Service {
	s := &Service{
		events:   events,
		changes:  changes,
		catalog:  catalog,
		notifier: notifier,
		locker:   locker.NewLocal(),
		validate: newValidator(catalog),
		now:      time.Now,
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the current campus calendar day as a UTC midnight.
func (s *Service) Today() time.Time {
	return model.DayOf(s.now().In(s.loc))
}

func (s *Service) Catalog() *venue.Catalog {
	return s.catalog
}

// Classify compares a day against today. Both are UTC midnights.
func Classify(day, today time.Time) model.Classification {
	switch {
	case day.Before(today):
		return model.Past
	case day.After(today):
		return model.Upcoming
	default:
		return model.Live
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func bookingKey(day time.Time, venueName string) string {
	return "booking:" + day.Format(model.DateLayout) + "|" + venueName
}

func (s *Service) Submit(ctx context.Context, req model.EventCreateRequest) (*model.Event, error) {
	req.EventName = strings.TrimSpace(req.EventName)
	req.ClubName = strings.TrimSpace(req.ClubName)
	req.Email = strings.TrimSpace(req.Email)
	req.Date = strings.TrimSpace(req.Date)
	req.TimeSlot = strings.TrimSpace(req.TimeSlot)
	req.Venue = strings.TrimSpace(req.Venue)

	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	day, err := model.ParseDay(req.Date)
	if err != nil {
		return nil, validationf("date %q is not a YYYY-MM-DD date", req.Date)
	}

	now := s.now()
	event := &model.Event{
		ID:         newID(),
		EventName:  req.EventName,
		ClubName:   req.ClubName,
		Email:      req.Email,
		Date:       model.DateOf(day),
		TimeSlot:   req.TimeSlot,
		Venue:      req.Venue,
		Status:     model.Pending,
		CreateDate: now,
		UpdateDate: now,
	}

	if err := s.events.CreateEvent(ctx, event); err != nil {
		return nil, errors.Wrap(err, "create event")
	}

	metrics.Transitions.WithLabelValues(string(model.Pending)).Inc()
	log.Ctx(ctx).Info().
		Str("event_id", event.ID).
		Str("club", event.ClubName).
		Str("venue", event.Venue).
		Msg("event submitted")

	return event, nil
}

// Approve publishes a pending event. Approving an already approved event
// recomputes the same state. The venue must be free for the slot: another
// approved booking overlapping it on the same day is a conflict.
func (s *Service) Approve(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.events.FindEventByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "event", id)
	}
	if err := approvable(event); err != nil {
		return nil, err
	}

	release, err := s.locker.Lock(ctx, bookingKey(event.Day(), event.Venue))
	if err != nil {
		return nil, errors.Wrap(err, "lock venue")
	}
	defer release()

	// re-read under the lock, the event may have moved on
	event, err = s.events.FindEventByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "event", id)
	}
	if err := approvable(event); err != nil {
		return nil, err
	}

	clash, err := s.findClash(ctx, event.Day(), event.Venue, event.TimeSlot, event.ID)
	if err != nil {
		return nil, err
	}
	if clash != nil {
		return nil, conflictf("%s is already booked on %s for %q by %s",
			event.Venue, event.Day().Format(model.DateLayout), clash.TimeSlot, clash.ClubName)
	}

	event.Status = model.Approved
	event.IsPublished = true
	event.AdminMessage = ""
	event.Classification = Classify(event.Day(), s.Today())
	event.UpdateDate = s.now()

	if err := s.events.UpdateEvent(ctx, event); err != nil {
		return nil, errors.Wrap(err, "update event")
	}

	metrics.Transitions.WithLabelValues(string(model.Approved)).Inc()
	log.Ctx(ctx).Info().
		Str("event_id", event.ID).
		Str("classification", string(event.Classification)).
		Msg("event approved")

	s.notifier.Dispatch(notify.Approved(event))
	return event, nil
}

func approvable(e *model.Event) error {
	switch e.Status {
	case model.Pending, model.Approved:
		return nil
	}
	return conflictf("event %s is %s and cannot be approved", e.ID, e.Status)
}

func (s *Service) Reject(ctx context.Context, id, reason string) (*model.Event, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, validationf("rejection reason is required")
	}

	event, err := s.events.FindEventByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "event", id)
	}
	if event.Status != model.Pending {
		return nil, conflictf("event %s is %s, only pending events can be rejected", id, event.Status)
	}

	event.Status = model.Rejected
	event.IsPublished = false
	event.Classification = model.Unclassified
	event.AdminMessage = reason
	event.UpdateDate = s.now()

	if err := s.events.UpdateEvent(ctx, event); err != nil {
		return nil, errors.Wrap(err, "update event")
	}

	metrics.Transitions.WithLabelValues(string(model.Rejected)).Inc()
	log.Ctx(ctx).Info().Str("event_id", event.ID).Msg("event rejected")

	s.notifier.Dispatch(notify.Rejected(event))
	return event, nil
}

// CancelByOwner withdraws a pending request or cancels an upcoming approved
// event on behalf of the club that owns it.
func (s *Service) CancelByOwner(ctx context.Context, id, clubName string) (*model.Event, error) {
	event, err := s.events.FindEventByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "event", id)
	}
	if event.ClubName != strings.TrimSpace(clubName) {
		return nil, forbiddenf("event %s is not owned by %s", id, clubName)
	}

	switch event.Status {
	case model.Pending:
	case model.Approved:
		switch Classify(event.Day(), s.Today()) {
		case model.Live:
			return nil, conflictf("live events cannot be cancelled")
		case model.Past:
			return nil, conflictf("past events cannot be cancelled")
		}
	default:
		return nil, conflictf("event %s is already %s", id, event.Status)
	}

	event.Status = model.Cancelled
	event.IsPublished = false
	event.Classification = model.Unclassified
	event.AdminMessage = CancelledByClub
	event.UpdateDate = s.now()
	if event.VenueChange.Status == model.ChangePending {
		event.VenueChange.Status = model.ChangeRejected
	}

	closed, err := s.changes.CancelEvent(ctx, event, ChangeClosedByCancel)
	if err != nil {
		return nil, errors.Wrap(err, "cancel event")
	}

	metrics.Transitions.WithLabelValues(string(model.Cancelled)).Inc()
	if closed > 0 {
		metrics.VenueChanges.WithLabelValues(strings.ToLower(string(model.ChangeRejected))).Add(float64(closed))
	}
	log.Ctx(ctx).Info().
		Str("event_id", event.ID).
		Str("club", event.ClubName).
		Int64("venue_changes_closed", closed).
		Msg("event cancelled by owner")

	s.notifier.Dispatch(notify.Cancelled(event))
	return event, nil
}

func (s *Service) EventsByStatus(ctx context.Context, status model.EventStatus) ([]model.Event, error) {
	events, err := s.events.FindEventsByStatus(ctx, status)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s events", status)
	}
	return events, nil
}

func (s *Service) EventsForClub(ctx context.Context, clubName string) ([]model.Event, error) {
	clubName = strings.TrimSpace(clubName)
	if clubName == "" {
		return nil, validationf("clubName is required")
	}
	events, err := s.events.FindEventsByClub(ctx, clubName)
	if err != nil {
		return nil, errors.Wrap(err, "list club events")
	}
	return events, nil
}

func (s *Service) ApprovedEventsForClub(ctx context.Context, clubName string) ([]model.Event, error) {
	clubName = strings.TrimSpace(clubName)
	if clubName == "" {
		return nil, validationf("clubName is required")
	}
	events, err := s.events.FindApprovedEventsByClub(ctx, clubName)
	if err != nil {
		return nil, errors.Wrap(err, "list approved club events")
	}
	return events, nil
}

func (s *Service) PublishedEvents(ctx context.Context) ([]model.Event, error) {
	events, err := s.events.FindPublishedEvents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list published events")
	}
	return events, nil
}

func (s *Service) Stats(ctx context.Context) (*model.Stats, error) {
	var (
		st  model.Stats
		err error
	)

	if st.TotalEvents, err = s.events.CountEvents(ctx); err != nil {
		return nil, errors.Wrap(err, "count events")
	}
	if st.PendingEvents, err = s.events.CountByStatus(ctx, model.Pending); err != nil {
		return nil, errors.Wrap(err, "count pending events")
	}
	if st.LiveEvents, err = s.events.CountByClassification(ctx, model.Live); err != nil {
		return nil, errors.Wrap(err, "count live events")
	}
	if st.UpcomingEvents, err = s.events.CountByClassification(ctx, model.Upcoming); err != nil {
		return nil, errors.Wrap(err, "count upcoming events")
	}
	if st.PendingVenueChanges, err = s.changes.CountPendingVenueChanges(ctx); err != nil {
		return nil, errors.Wrap(err, "count venue changes")
	}

	return &st, nil
}
