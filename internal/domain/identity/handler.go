package identity

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

// RegisterPublicRoutes mounts the unauthenticated auth endpoints.
func (h *Handler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/auth/otp/send", h.SendCode)
	g.POST("/auth/otp/verify", h.VerifyCode)
	g.POST("/auth/signup", h.Signup)
	g.POST("/auth/login", h.Login)
}

// RegisterRoutes mounts the endpoints that need a session.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/me", h.Me)
	api.PUT("/me", h.UpdateProfile)
}

type sendCodeRequest struct {
	Phone string `json:"phone"`
}

func (h *Handler) SendCode(c echo.Context) error {
	var req sendCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SendCode(c.Request().Context(), req.Phone); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "sent"})
}

type verifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (h *Handler) VerifyCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.VerifyCode(c.Request().Context(), req.Phone, req.Code); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "verified"})
}

type signupRequest struct {
	FullName                string   `json:"full_name"`
	Email                   string   `json:"email"`
	Phone                   string   `json:"phone"`
	Password                string   `json:"password"`
	IDNumber                *string  `json:"id_number"`
	Address                 *string  `json:"address"`
	DateOfBirth             string   `json:"date_of_birth"`
	NumberOfKids            int      `json:"number_of_kids"`
	YoungestChildDOB        string   `json:"youngest_child_dob"`
	HadPrenatalCheckup      bool     `json:"had_prenatal_checkup"`
	PreviousCheckupLocation *string  `json:"previous_checkup_location"`
	HeightCM                *float64 `json:"height_cm"`
	WeightKG                *float64 `json:"weight_kg"`
	BloodType               *string  `json:"blood_type"`
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *Handler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
	}
	childDOB, err := parseDate(req.YoungestChildDOB)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "youngest_child_dob must be YYYY-MM-DD")
	}

	u, err := h.svc.Signup(c.Request().Context(), SignupInput{
		FullName:                req.FullName,
		Email:                   req.Email,
		Phone:                   req.Phone,
		Password:                req.Password,
		IDNumber:                req.IDNumber,
		Address:                 req.Address,
		DateOfBirth:             dob,
		NumberOfKids:            req.NumberOfKids,
		YoungestChildDOB:        childDOB,
		HadPrenatalCheckup:      req.HadPrenatalCheckup,
		PreviousCheckupLocation: req.PreviousCheckupLocation,
		HeightCM:                req.HeightCM,
		WeightKG:                req.WeightKG,
		BloodType:               req.BloodType,
	})
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	token, u, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: u})
}

func (h *Handler) Me(c echo.Context) error {
	userID, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	u, err := h.svc.Get(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, u)
}

type updateProfileRequest struct {
	FullName                string   `json:"full_name"`
	IDNumber                *string  `json:"id_number"`
	Address                 *string  `json:"address"`
	DateOfBirth             string   `json:"date_of_birth"`
	NumberOfKids            int      `json:"number_of_kids"`
	YoungestChildDOB        string   `json:"youngest_child_dob"`
	HadPrenatalCheckup      bool     `json:"had_prenatal_checkup"`
	PreviousCheckupLocation *string  `json:"previous_checkup_location"`
	HeightCM                *float64 `json:"height_cm"`
	WeightKG                *float64 `json:"weight_kg"`
	BloodType               *string  `json:"blood_type"`
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
	}
	childDOB, err := parseDate(req.YoungestChildDOB)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "youngest_child_dob must be YYYY-MM-DD")
	}

	u := &User{
		ID:                      userID,
		FullName:                req.FullName,
		IDNumber:                req.IDNumber,
		Address:                 req.Address,
		DateOfBirth:             dob,
		NumberOfKids:            req.NumberOfKids,
		YoungestChildDOB:        childDOB,
		HadPrenatalCheckup:      req.HadPrenatalCheckup,
		PreviousCheckupLocation: req.PreviousCheckupLocation,
		HeightCM:                req.HeightCM,
		WeightKG:                req.WeightKG,
		BloodType:               req.BloodType,
	}
	if err := h.svc.UpdateProfile(c.Request().Context(), u); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, u)
}
