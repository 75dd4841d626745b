package records

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vidapoint/vidapoint/internal/platform/auth"
	"github.com/vidapoint/vidapoint/pkg/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/records/prenatal", h.ListPrenatal)
	api.GET("/records/prenatal/:id", h.GetPrenatal)
	api.GET("/records/labs", h.ListLabResults)
	api.GET("/records/labs/:id", h.GetLabResult)
	api.GET("/records/vaccinations", h.ListVaccinations)
}

func currentUser(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return id, nil
}

func (h *Handler) ListPrenatal(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.svc.ListPrenatal(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetPrenatal(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	p, err := h.svc.GetPrenatal(c.Request().Context(), userID, id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListLabResults(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.svc.ListLabResults(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetLabResult(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lab result id")
	}
	l, err := h.svc.GetLabResult(c.Request().Context(), userID, id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) ListVaccinations(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.svc.ListVaccinations(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, list)
}
