package model

import "time"

type VenueChangeStatus string

var (
	ChangePending  VenueChangeStatus = "PENDING"
	ChangeApproved VenueChangeStatus = "APPROVED"
	ChangeRejected VenueChangeStatus = "REJECTED"
)

// ChangeAction is the admin decision on a venue change request.
type ChangeAction string

var (
	ApproveChange ChangeAction = "APPROVE"
	RejectChange  ChangeAction = "REJECT"
)

// ParseChangeAction accepts both the verb and the resulting status spelling
// ("APPROVE" / "APPROVED"), since older clients send the latter.
func ParseChangeAction(s string) (ChangeAction, bool) {
	switch s {
	case "APPROVE", "APPROVED", "approve", "approved":
		return ApproveChange, true
	case "REJECT", "REJECTED", "reject", "rejected":
		return RejectChange, true
	}
	return "", false
}

type VenueChangeRequest struct {
	ID             string            `gorm:"column:id;primaryKey" json:"id"`
	EventID        string            `gorm:"column:event_id;not null;uniqueIndex:idx_one_pending_change,where:status = 'PENDING'" json:"eventId"`
	ClubName       string            `gorm:"column:club_name;not null;index" json:"clubName"`
	RequestedVenue string            `gorm:"column:requested_venue;not null" json:"requestedVenue"`
	Reason         string            `gorm:"column:reason;not null" json:"reason"`
	Status         VenueChangeStatus `gorm:"column:status;not null;index" json:"status"`
	AdminComment   string            `gorm:"column:admin_comment" json:"adminComment"`
	CreateDate     time.Time         `gorm:"column:create_date" json:"create_date"`
	UpdateDate     time.Time         `gorm:"column:update_date" json:"update_date"`

	Event *Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"event,omitempty"`
}

func (m *VenueChangeRequest) TableName() string {
	return "venue_change_requests"
}

// Snapshot is the copy of the request stored on the parent event.
func (m *VenueChangeRequest) Snapshot() VenueChange {
	return VenueChange{
		RequestID:      m.ID,
		RequestedVenue: m.RequestedVenue,
		Reason:         m.Reason,
		Status:         m.Status,
	}
}
