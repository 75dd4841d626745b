package clinics

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vidapoint/vidapoint/pkg/apperr"
	"github.com/vidapoint/vidapoint/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/clinics", h.List)
	api.GET("/clinics/:id", h.Get)
	api.GET("/clinics/:id/doctors", h.ListDoctors)
	api.GET("/doctors/:code", h.GetDoctor)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	list, total, err := h.svc.List(c.Request().Context(), c.QueryParam("search"), p)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(list, total, p.Limit, p.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Fall back to the short code for pretty URLs like /clinics/c1.
		clinic, err := h.svc.GetByCode(c.Request().Context(), c.Param("id"))
		if err != nil {
			return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
		}
		return c.JSON(http.StatusOK, clinic)
	}
	clinic, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, clinic)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		clinic, cerr := h.svc.GetByCode(c.Request().Context(), c.Param("id"))
		if cerr != nil {
			return echo.NewHTTPError(apperr.HTTPStatus(cerr), cerr.Error())
		}
		id = clinic.ID
	}
	doctors, err := h.svc.Doctors(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	doctor, err := h.svc.DoctorByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, doctor)
}
