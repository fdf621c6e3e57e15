package notify

import (
	"bytes"
	"fmt"
	"strings"
	"venue-booking-backend/cmd/venue-booking/model"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

type Kind string

const (
	EventApproved       Kind = "event.approved"
	EventRejected       Kind = "event.rejected"
	EventCancelled      Kind = "event.cancelled"
	VenueChangeApproved Kind = "venue_change.approved"
	VenueChangeRejected Kind = "venue_change.rejected"
)

// Message is what the mailer consumes. Body is Markdown, HTML its rendering.
type Message struct {
	Kind    Kind   `json:"kind"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    string `json:"html"`
	EventID string `json:"eventId"`
}

// raw HTML in bodies is escaped since WithUnsafe is not set
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func render(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}

func newMessage(kind Kind, e *model.Event, subject, body string) Message {
	return Message{
		Kind:    kind,
		To:      e.Email,
		Subject: subject,
		Body:    body,
		HTML:    render(body),
		EventID: e.ID,
	}
}

func details(e *model.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- **Event Name:** %s\n", e.EventName)
	fmt.Fprintf(&b, "- **Club Name:** %s\n", e.ClubName)
	fmt.Fprintf(&b, "- **Date:** %s\n", e.Day().Format(model.DateLayout))
	fmt.Fprintf(&b, "- **Time Slot:** %s\n", e.TimeSlot)
	fmt.Fprintf(&b, "- **Venue:** %s\n", e.Venue)
	return b.String()
}

func Approved(e *model.Event) Message {
	body := "## Your event has been approved\n\n" +
		details(e) +
		fmt.Sprintf("- **Status:** %s\n\n", e.Classification) +
		"The event is now published and visible to students.\n"
	return newMessage(EventApproved, e, "Event Approved", body)
}

func Rejected(e *model.Event) Message {
	body := "## Your event registration was rejected\n\n" +
		details(e) +
		fmt.Sprintf("\n**Reason:** %s\n", e.AdminMessage)
	return newMessage(EventRejected, e, "Event Registration Rejected", body)
}

func Cancelled(e *model.Event) Message {
	body := "## Your event has been cancelled\n\n" + details(e)
	return newMessage(EventCancelled, e, "Event Cancelled", body)
}

// VenueChangeResolved tells the requester how the admin decided.
func VenueChangeResolved(e *model.Event, req *model.VenueChangeRequest) Message {
	if req.Status == model.ChangeApproved {
		body := "## Your venue change was approved\n\n" +
			fmt.Sprintf("**New Venue:** %s\n\n", e.Venue) +
			details(e)
		return newMessage(VenueChangeApproved, e, "Venue Change Approved", body)
	}

	body := "## Your venue change was rejected\n\n" +
		fmt.Sprintf("**Requested Venue:** %s\n\n", req.RequestedVenue) +
		details(e)
	if req.AdminComment != "" {
		body += fmt.Sprintf("\n**Admin Comment:** %s\n", req.AdminComment)
	}
	return newMessage(VenueChangeRejected, e, "Venue Change Rejected", body)
}
