package sharing

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
	api.GET("/sharing", h.List)
	api.GET("/sharing/pending-count", h.PendingCount)
	api.POST("/sharing", h.Create)
	api.GET("/sharing/:id", h.Get)
	api.POST("/sharing/:id/approve", h.Approve)
	api.POST("/sharing/:id/decline", h.Decline)
	api.POST("/sharing/:id/revoke", h.Revoke)
}

func currentUser(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return id, nil
}

type createRequest struct {
	FacilityName string   `json:"facility_name"`
	RecordTypes  []string `json:"record_types"`
	Purpose      string   `json:"purpose"`
	AccessLevel  string   `json:"access_level"`
	Duration     string   `json:"duration"`
	Urgent       bool     `json:"urgent"`
}

// Create runs the wizard steps over the submitted payload so the same
// vocabulary checks guard both interactive and one-shot clients.
func (h *Handler) Create(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := Begin(req.FacilityName, req.RecordTypes, req.Urgent)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	withPurpose, err := start.SelectPurpose(req.Purpose)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	withAccess, err := withPurpose.SelectAccessLevel(req.AccessLevel)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	withDuration, err := withAccess.SelectDuration(req.Duration)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}

	created, err := h.svc.Create(c.Request().Context(), userID, withDuration.Finish())
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) List(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.svc.List(c.Request().Context(), userID, c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) PendingCount(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	count, err := h.svc.PendingCount(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"pending": count})
}

func (h *Handler) Get(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}
	req, err := h.svc.Get(c.Request().Context(), userID, id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, req)
}

type approveRequest struct {
	ConsentMethod string `json:"consent_method"`
}

func (h *Handler) Approve(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}
	var req approveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.svc.Approve(c.Request().Context(), userID, id, req.ConsentMethod)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) Decline(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}
	updated, err := h.svc.Decline(c.Request().Context(), userID, id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) Revoke(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}
	updated, err := h.svc.Revoke(c.Request().Context(), userID, id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}
