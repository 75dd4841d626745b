package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postJSON(e *echo.Echo, path, body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestSendCodeHandler(t *testing.T) {
	svc, _, otps, _ := newTestService()
	h := NewHandler(svc)

	e := echo.New()
	rec, c := postJSON(e, "/auth/otp/send", `{"phone":"+15550100"}`)
	if err := h.SendCode(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := otps.verifications["+15550100"]; !ok {
		t.Error("expected verification created")
	}
}

func TestSendCodeHandler_MissingPhone(t *testing.T) {
	svc, _, _, _ := newTestService()
	h := NewHandler(svc)

	e := echo.New()
	_, c := postJSON(e, "/auth/otp/send", `{}`)
	err := h.SendCode(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestSignupAndLoginHandlers(t *testing.T) {
	svc, _, otps, _ := newTestService()
	h := NewHandler(svc)
	verifyPhone(t, svc, otps, "+15550100")

	e := echo.New()
	body := `{"full_name":"Maria Gonzalez","email":"maria@example.com","phone":"+15550100","password":"correct-horse"}`
	rec, c := postJSON(e, "/auth/signup", body)
	if err := h.Signup(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "correct-horse") {
		t.Error("response leaks the password")
	}

	rec, c = postJSON(e, "/auth/login", `{"email":"maria@example.com","password":"correct-horse"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" || resp.User == nil {
		t.Fatalf("expected token and user in response: %s", rec.Body.String())
	}
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	svc, _, _, _ := newTestService()
	h := NewHandler(svc)

	e := echo.New()
	_, c := postJSON(e, "/auth/login", `{"email":"nobody@example.com","password":"x"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}
