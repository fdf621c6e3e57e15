package apis

import (
	"context"
	"fmt"
	"net/http"
	"venue-booking-backend/cmd/venue-booking/model"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var errUnknownStatus = errors.New("unknown status")

type IAdminService interface {
	EventsByStatus(ctx context.Context, status model.EventStatus) ([]model.Event, error)
	Approve(ctx context.Context, id string) (*model.Event, error)
	Reject(ctx context.Context, id, reason string) (*model.Event, error)
	PendingVenueChanges(ctx context.Context) ([]model.VenueChangeRequest, error)
	ResolveChange(ctx context.Context, requestID string, action model.ChangeAction, adminComment string) (*model.VenueChangeRequest, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

type IReclassifyRunner interface {
	RunNow(ctx context.Context) (*model.ReclassifyResult, error)
}

type AdminAPI struct {
	svc       IAdminService
	runner    IReclassifyRunner
	adminAuth echo.MiddlewareFunc
}

func NewAdminAPI(svc IAdminService, runner IReclassifyRunner, adminAuth echo.MiddlewareFunc) *AdminAPI {

	return &AdminAPI{
		svc:       svc,
		runner:    runner,
		adminAuth: adminAuth,
	}
}

func (a *AdminAPI) Setup(g *echo.Group) {
	admin := g.Group("/admin", a.adminAuth)

	admin.GET("/events/:status", a.listByStatus)
	admin.GET("/events/:status/export", a.exportByStatus)
	admin.PUT("/approve/:id", a.approveEvent)
	admin.PUT("/reject/:id", a.rejectEvent)
	admin.GET("/venue-requests", a.listVenueRequests)
	admin.POST("/venue-requests/:id/action", a.resolveVenueRequest)
	admin.POST("/update-event-statuses", a.runReclassification)
	admin.GET("/stats", a.stats)
}

func (a *AdminAPI) eventsByStatus(c echo.Context) ([]model.Event, error) {
	status, ok := model.ParseEventStatus(c.Param("status"))
	if !ok {
		return nil, errUnknownStatus
	}
	return a.svc.EventsByStatus(c.Request().Context(), status)
}

func (a *AdminAPI) listByStatus(c echo.Context) error {

	events, err := a.eventsByStatus(c)
	if errors.Is(err, errUnknownStatus) {
		return badRequest(c, fmt.Sprintf("unknown status %q", c.Param("status")))
	}
	if err != nil {
		return errorResponse(c, err)
	}

	return success(c, http.StatusOK, events)
}

func (a *AdminAPI) exportByStatus(c echo.Context) error {

	events, err := a.eventsByStatus(c)
	if errors.Is(err, errUnknownStatus) {
		return badRequest(c, fmt.Sprintf("unknown status %q", c.Param("status")))
	}
	if err != nil {
		return errorResponse(c, err)
	}

	rows := make([]*model.EventCSV, 0, len(events))
	for _, e := range events {
		rows = append(rows, model.NewEventCSV(e))
	}

	data, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return errorResponse(c, err)
	}

	c.Response().Header().Set(
		echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", "events-"+c.Param("status")+".csv"),
	)
	return c.Blob(http.StatusOK, "text/csv", data)
}

func (a *AdminAPI) approveEvent(c echo.Context) error {

	ctx := c.Request().Context()

	event, err := a.svc.Approve(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "Event approved",
			Data:    event,
		},
	)
}

func (a *AdminAPI) rejectEvent(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.RejectRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	event, err := a.svc.Reject(ctx, c.Param("id"), req.AdminMessage)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "Event rejected",
			Data:    event,
		},
	)
}

func (a *AdminAPI) listVenueRequests(c echo.Context) error {

	ctx := c.Request().Context()

	changes, err := a.svc.PendingVenueChanges(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	return success(c, http.StatusOK, changes)
}

func (a *AdminAPI) resolveVenueRequest(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.VenueChangeActionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	action, ok := model.ParseChangeAction(req.Action)
	if !ok {
		return badRequest(c, "action must be APPROVE or REJECT")
	}

	change, err := a.svc.ResolveChange(ctx, c.Param("id"), action, req.AdminComment)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: fmt.Sprintf("Venue change %s", change.Status),
			Data:    change,
		},
	)
}

func (a *AdminAPI) runReclassification(c echo.Context) error {

	ctx := c.Request().Context()

	res, err := a.runner.RunNow(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "Event statuses updated",
			Data:    res,
		},
	)
}

func (a *AdminAPI) stats(c echo.Context) error {

	ctx := c.Request().Context()

	st, err := a.svc.Stats(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	return success(c, http.StatusOK, st)
}
