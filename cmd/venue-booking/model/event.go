package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type EventStatus string

var (
	Pending   EventStatus = "PENDING"
	Approved  EventStatus = "APPROVED"
	Rejected  EventStatus = "REJECTED"
	Cancelled EventStatus = "CANCELLED"
)

// ParseEventStatus accepts the status names case-insensitively, as the admin
// listing routes receive them from the path.
func ParseEventStatus(s string) (EventStatus, bool) {
	switch EventStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case Pending:
		return Pending, true
	case Approved:
		return Approved, true
	case Rejected:
		return Rejected, true
	case Cancelled:
		return Cancelled, true
	}
	return "", false
}

// Classification is only meaningful while the event is Approved.
type Classification string

var (
	Unclassified Classification = ""
	Live         Classification = "LIVE"
	Upcoming     Classification = "UPCOMING"
	Past         Classification = "PAST"
)

type Event struct {
	ID             string         `gorm:"column:id;primaryKey" json:"id"`
	EventName      string         `gorm:"column:event_name;not null" json:"eventName"`
	ClubName       string         `gorm:"column:club_name;not null;index" json:"clubName"`
	Email          string         `gorm:"column:email;not null" json:"email"`
	Date           datatypes.Date `gorm:"column:date;not null;index:idx_events_status_date,priority:2" json:"date"`
	TimeSlot       string         `gorm:"column:time_slot;not null" json:"timeSlot"`
	Venue          string         `gorm:"column:venue;not null" json:"venue"`
	Status         EventStatus    `gorm:"column:status;not null;index:idx_events_status_date,priority:1" json:"status"`
	Classification Classification `gorm:"column:classification" json:"classification,omitempty"`
	IsPublished    bool           `gorm:"column:is_published;not null" json:"isPublished"`
	AdminMessage   string         `gorm:"column:admin_message" json:"adminMessage"`
	VenueChange    VenueChange    `gorm:"embedded;embeddedPrefix:venue_change_" json:"venueChange"`
	CreateDate     time.Time      `gorm:"column:create_date" json:"create_date"`
	UpdateDate     time.Time      `gorm:"column:update_date" json:"update_date"`
}

func (m *Event) TableName() string {
	return "events"
}

// Day returns the event date as a UTC midnight.
func (m *Event) Day() time.Time {
	return DayOf(time.Time(m.Date))
}

// IsBooking reports whether the event holds its venue for conflict checks.
func (m *Event) IsBooking() bool {
	return m.Status == Approved
}

// VenueChange is the snapshot of the latest venue change request kept on the
// parent event. The durable record lives in VenueChangeRequest.
type VenueChange struct {
	RequestID      string            `gorm:"column:request_id" json:"requestId,omitempty"`
	RequestedVenue string            `gorm:"column:requested_venue" json:"requestedVenue,omitempty"`
	Reason         string            `gorm:"column:reason" json:"reason,omitempty"`
	Status         VenueChangeStatus `gorm:"column:status" json:"status,omitempty"`
}
