package settings

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
	api.GET("/settings/preferences", h.GetPreferences)
	api.PUT("/settings/preferences", h.UpdatePreferences)
	api.POST("/settings/bug-reports", h.SubmitBugReport)
	api.GET("/settings/bug-reports", h.ListBugReports)
}

func currentUser(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return id, nil
}

func (h *Handler) GetPreferences(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPreferences(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

type preferencesRequest struct {
	SMS                   bool `json:"sms"`
	Email                 bool `json:"email"`
	AppointmentReminders  bool `json:"appointment_reminders"`
	HealthTips            bool `json:"health_tips"`
	RecordSharingRequests bool `json:"record_sharing_requests"`
}

func (h *Handler) UpdatePreferences(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req preferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := &Preferences{
		UserID:                userID,
		SMS:                   req.SMS,
		Email:                 req.Email,
		AppointmentReminders:  req.AppointmentReminders,
		HealthTips:            req.HealthTips,
		RecordSharingRequests: req.RecordSharingRequests,
	}
	if err := h.svc.UpdatePreferences(c.Request().Context(), p); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

type bugReportRequest struct {
	Description string `json:"description"`
}

func (h *Handler) SubmitBugReport(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req bugReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rep, err := h.svc.SubmitBugReport(c.Request().Context(), userID, req.Description)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *Handler) ListBugReports(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.svc.ListBugReports(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, list)
}
