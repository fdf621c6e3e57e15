package apis

import (
	"context"
	"net/http"
	"venue-booking-backend/cmd/venue-booking/model"

	"github.com/labstack/echo/v4"
)

type IEventService interface {
	Submit(ctx context.Context, req model.EventCreateRequest) (*model.Event, error)
	CancelByOwner(ctx context.Context, id, clubName string) (*model.Event, error)
	EventsForClub(ctx context.Context, clubName string) ([]model.Event, error)
	ApprovedEventsForClub(ctx context.Context, clubName string) ([]model.Event, error)
	PublishedEvents(ctx context.Context) ([]model.Event, error)
	ListAvailableVenues(ctx context.Context, date, slot string) (*model.AvailabilityResponse, error)
	RequestChange(ctx context.Context, eventID, clubName string, req model.VenueChangeCreateRequest) (*model.VenueChangeRequest, error)
	VenueChangesForClub(ctx context.Context, clubName string) ([]model.VenueChangeRequest, error)
}

// EventAPI serves the public listings and the club booking routes.
type EventAPI struct {
	svc      IEventService
	clubAuth echo.MiddlewareFunc
}

func NewEventAPI(svc IEventService, clubAuth echo.MiddlewareFunc) *EventAPI {

	return &EventAPI{
		svc:      svc,
		clubAuth: clubAuth,
	}
}

func (a *EventAPI) Setup(g *echo.Group) {
	g.GET("/events/approved", a.listPublished)
	g.GET("/events/available-venues", a.availableVenues)

	g.POST("/events", a.submitEvent, a.clubAuth)

	club := g.Group("/events/club", a.clubAuth)
	club.GET("", a.listClubEvents)
	club.GET("/approved", a.listClubApproved)
	club.PUT("/cancel/:id", a.cancelEvent)
	club.PUT("/venue-change/:id", a.requestVenueChange)
	club.GET("/venue-changes", a.listClubVenueChanges)
}

func (a *EventAPI) listPublished(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.svc.PublishedEvents(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	return success(c, http.StatusOK, events)
}

func (a *EventAPI) availableVenues(c echo.Context) error {

	ctx := c.Request().Context()

	res, err := a.svc.ListAvailableVenues(ctx, c.QueryParam("date"), c.QueryParam("timeSlot"))
	if err != nil {
		return errorResponse(c, err)
	}

	return success(c, http.StatusOK, res)
}

func (a *EventAPI) submitEvent(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.EventCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	// the token decides which club is asking
	if club := claimsFrom(c).ClubName; club != "" {
		req.ClubName = club
	}

	event, err := a.svc.Submit(ctx, req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(
		http.StatusCreated,
		model.BaseResponse{
			Message: "Event request submitted. Awaiting admin approval.",
			Data:    event,
		},
	)
}

func (a *EventAPI) listClubEvents(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.svc.EventsForClub(ctx, claimsFrom(c).ClubName)
	if err != nil {
		return errorResponse(c, err)
	}

	return success(c, http.StatusOK, events)
}

func (a *EventAPI) listClubApproved(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.svc.ApprovedEventsForClub(ctx, claimsFrom(c).ClubName)
	if err != nil {
		return errorResponse(c, err)
	}

	return success(c, http.StatusOK, events)
}

func (a *EventAPI) cancelEvent(c echo.Context) error {

	ctx := c.Request().Context()

	event, err := a.svc.CancelByOwner(ctx, c.Param("id"), claimsFrom(c).ClubName)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "Event cancelled",
			Data:    event,
		},
	)
}

func (a *EventAPI) requestVenueChange(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.VenueChangeCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	change, err := a.svc.RequestChange(ctx, c.Param("id"), claimsFrom(c).ClubName, req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(
		http.StatusCreated,
		model.BaseResponse{
			Message: "Venue change request submitted",
			Data:    change,
		},
	)
}

func (a *EventAPI) listClubVenueChanges(c echo.Context) error {

	ctx := c.Request().Context()

	changes, err := a.svc.VenueChangesForClub(ctx, claimsFrom(c).ClubName)
	if err != nil {
		return errorResponse(c, err)
	}

	return success(c, http.StatusOK, changes)
}
