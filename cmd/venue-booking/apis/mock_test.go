package apis

import (
	"context"
	"venue-booking-backend/cmd/venue-booking/model"

	"github.com/stretchr/testify/mock"
)

// MockBookingService implements IEventService and IAdminService for testing
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) event(args mock.Arguments) (*model.Event, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockBookingService) events(args mock.Arguments) ([]model.Event, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockBookingService) change(args mock.Arguments) (*model.VenueChangeRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VenueChangeRequest), args.Error(1)
}

func (m *MockBookingService) changes(args mock.Arguments) ([]model.VenueChangeRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VenueChangeRequest), args.Error(1)
}

func (m *MockBookingService) Submit(ctx context.Context, req model.EventCreateRequest) (*model.Event, error) {
	return m.event(m.Called(ctx, req))
}

func (m *MockBookingService) CancelByOwner(ctx context.Context, id, clubName string) (*model.Event, error) {
	return m.event(m.Called(ctx, id, clubName))
}

func (m *MockBookingService) EventsForClub(ctx context.Context, clubName string) ([]model.Event, error) {
	return m.events(m.Called(ctx, clubName))
}

func (m *MockBookingService) ApprovedEventsForClub(ctx context.Context, clubName string) ([]model.Event, error) {
	return m.events(m.Called(ctx, clubName))
}

func (m *MockBookingService) PublishedEvents(ctx context.Context) ([]model.Event, error) {
	return m.events(m.Called(ctx))
}

func (m *MockBookingService) ListAvailableVenues(ctx context.Context, date, slot string) (*model.AvailabilityResponse, error) {
	args := m.Called(ctx, date, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AvailabilityResponse), args.Error(1)
}

func (m *MockBookingService) RequestChange(ctx context.Context, eventID, clubName string, req model.VenueChangeCreateRequest) (*model.VenueChangeRequest, error) {
	return m.change(m.Called(ctx, eventID, clubName, req))
}

func (m *MockBookingService) VenueChangesForClub(ctx context.Context, clubName string) ([]model.VenueChangeRequest, error) {
	return m.changes(m.Called(ctx, clubName))
}

func (m *MockBookingService) EventsByStatus(ctx context.Context, status model.EventStatus) ([]model.Event, error) {
	return m.events(m.Called(ctx, status))
}

func (m *MockBookingService) Approve(ctx context.Context, id string) (*model.Event, error) {
	return m.event(m.Called(ctx, id))
}

func (m *MockBookingService) Reject(ctx context.Context, id, reason string) (*model.Event, error) {
	return m.event(m.Called(ctx, id, reason))
}

func (m *MockBookingService) PendingVenueChanges(ctx context.Context) ([]model.VenueChangeRequest, error) {
	return m.changes(m.Called(ctx))
}

func (m *MockBookingService) ResolveChange(ctx context.Context, requestID string, action model.ChangeAction, adminComment string) (*model.VenueChangeRequest, error) {
	return m.change(m.Called(ctx, requestID, action, adminComment))
}

func (m *MockBookingService) Stats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) RunNow(ctx context.Context) (*model.ReclassifyResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReclassifyResult), args.Error(1)
}
