package maternity

import (
	"net/http"
	"time"

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
	api.GET("/pregnancy", h.GetProfile)
	api.PUT("/pregnancy", h.UpsertProfile)
	api.GET("/pregnancy/progress", h.GetProgress)
}

func (h *Handler) GetProfile(c echo.Context) error {
	userID, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	p, err := h.svc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

type upsertProfileRequest struct {
	IsPregnant           bool   `json:"is_pregnant"`
	LastMenstruationDate string `json:"last_menstruation_date"`
	DoctorDueDate        string `json:"doctor_due_date"`
}

func (h *Handler) UpsertProfile(c echo.Context) error {
	userID, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}

	var req upsertProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := &Profile{UserID: userID, IsPregnant: req.IsPregnant}
	if req.LastMenstruationDate != "" {
		lmp, err := time.Parse("2006-01-02", req.LastMenstruationDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "last_menstruation_date must be YYYY-MM-DD")
		}
		p.LastMenstruationDate = &lmp
	}
	if req.DoctorDueDate != "" {
		due, err := time.Parse("2006-01-02", req.DoctorDueDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "doctor_due_date must be YYYY-MM-DD")
		}
		p.DoctorDueDate = &due
	}

	if err := h.svc.UpsertProfile(c.Request().Context(), p); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetProgress(c echo.Context) error {
	userID, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	progress, err := h.svc.Progress(c.Request().Context(), userID, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, progress)
}
