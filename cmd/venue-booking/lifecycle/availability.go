package lifecycle

import (
	"context"
	"strings"
	"time"
	"venue-booking-backend/cmd/venue-booking/model"
	"venue-booking-backend/cmd/venue-booking/timeslot"

	"github.com/pkg/errors"
)

// ListAvailableVenues splits the catalog into venues free for slot on date and
// venues already booked for an overlapping slot. Without a date or slot the
// whole catalog is returned as available.
func (s *Service) ListAvailableVenues(ctx context.Context, date, slot string) (*model.AvailabilityResponse, error) {
	date = strings.TrimSpace(date)
	slot = strings.TrimSpace(slot)

	res := &model.AvailabilityResponse{
		Date:            date,
		TimeSlot:        slot,
		AvailableVenues: s.catalog.Names(),
		BookedVenues:    []string{},
	}
	if date == "" || slot == "" {
		return res, nil
	}

	day, err := model.ParseDay(date)
	if err != nil {
		return nil, validationf("date %q is not a YYYY-MM-DD date", date)
	}

	bookings, err := s.events.FindEventsByDateAndStatus(ctx, day, model.Approved)
	if err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}

	booked := make(map[string]bool)
	for _, b := range bookings {
		if !b.IsBooking() || booked[b.Venue] || !timeslot.Overlaps(b.TimeSlot, slot) {
			continue
		}
		booked[b.Venue] = true
		res.BookedVenues = append(res.BookedVenues, b.Venue)
	}

	res.AvailableVenues = res.AvailableVenues[:0]
	for _, name := range s.catalog.Names() {
		if !booked[name] {
			res.AvailableVenues = append(res.AvailableVenues, name)
		}
	}

	return res, nil
}

// findClash returns an approved booking of venueName on day whose slot
// overlaps slot, ignoring the event with id exclude.
func (s *Service) findClash(ctx context.Context, day time.Time, venueName, slot, exclude string) (*model.Event, error) {
	bookings, err := s.events.FindEventsByDateAndStatus(ctx, day, model.Approved)
	if err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}

	for i := range bookings {
		b := &bookings[i]
		if b.ID == exclude || !b.IsBooking() || b.Venue != venueName {
			continue
		}
		if timeslot.Overlaps(b.TimeSlot, slot) {
			return b, nil
		}
	}
	return nil, nil
}
