package model

type BaseResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// EventCreateRequest is a club submission. ClubName is filled from the bearer
// token when present and only read from the body otherwise.
type EventCreateRequest struct {
	EventName string `json:"eventName" validate:"required"`
	ClubName  string `json:"clubName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Date      string `json:"date" validate:"required,day"`
	TimeSlot  string `json:"timeSlot" validate:"required,timeslot"`
	Venue     string `json:"venue" validate:"required,venue"`
}

type RejectRequest struct {
	AdminMessage string `json:"adminMessage" validate:"required"`
}

type VenueChangeCreateRequest struct {
	RequestedVenue string `json:"requestedVenue" validate:"required,venue"`
	Reason         string `json:"reason" validate:"required"`
}

type VenueChangeActionRequest struct {
	Action       string `json:"action" validate:"required"`
	AdminComment string `json:"adminComment"`
}

type AvailabilityResponse struct {
	Date            string   `json:"date,omitempty"`
	TimeSlot        string   `json:"timeSlot,omitempty"`
	AvailableVenues []string `json:"availableVenues"`
	BookedVenues    []string `json:"bookedVenues"`
}

type ReclassifyResult struct {
	Past     int64 `json:"past"`
	Live     int64 `json:"live"`
	Upcoming int64 `json:"upcoming"`
	Purged   int64 `json:"purged"`
	Total    int64 `json:"total"`
}

type Stats struct {
	TotalEvents         int64 `json:"totalEvents"`
	PendingEvents       int64 `json:"pendingEvents"`
	LiveEvents          int64 `json:"liveEvents"`
	UpcomingEvents      int64 `json:"upcomingEvents"`
	PendingVenueChanges int64 `json:"pendingVenueChanges"`
}

// EventCSV is one row of the admin export.
type EventCSV struct {
	ID             string `csv:"id"`
	EventName      string `csv:"event_name"`
	ClubName       string `csv:"club_name"`
	Email          string `csv:"email"`
	Date           string `csv:"date"`
	TimeSlot       string `csv:"time_slot"`
	Venue          string `csv:"venue"`
	Status         string `csv:"status"`
	Classification string `csv:"classification"`
	AdminMessage   string `csv:"admin_message"`
}

func NewEventCSV(e Event) *EventCSV {
	return &EventCSV{
		ID:             e.ID,
		EventName:      e.EventName,
		ClubName:       e.ClubName,
		Email:          e.Email,
		Date:           e.Day().Format(DateLayout),
		TimeSlot:       e.TimeSlot,
		Venue:          e.Venue,
		Status:         string(e.Status),
		Classification: string(e.Classification),
		AdminMessage:   e.AdminMessage,
	}
}
