package apis

import (
	"net/http"
	"venue-booking-backend/cmd/venue-booking/timeslot"
	"venue-booking-backend/cmd/venue-booking/venue"

	"github.com/labstack/echo/v4"
)

// CatalogAPI lists the bookable venues and the slot labels the booking form
// offers.
type CatalogAPI struct {
	catalog *venue.Catalog
}

func NewCatalogAPI(catalog *venue.Catalog) *CatalogAPI {
	return &CatalogAPI{
		catalog: catalog,
	}
}

func (a *CatalogAPI) Setup(g *echo.Group) {
	g.GET("/venues", a.listVenues)
	g.GET("/slots", a.listSlots)
}

func (a *CatalogAPI) listVenues(c echo.Context) error {
	return success(c, http.StatusOK, a.catalog.Names())
}

func (a *CatalogAPI) listSlots(c echo.Context) error {
	return success(c, http.StatusOK, timeslot.Vocabulary())
}
