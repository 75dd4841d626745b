package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), "vidapoint", time.Hour)
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.Issue("user-1", "+639171234567", "Maria Cruz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("expected subject user-1, got %s", claims.Subject)
	}
	if claims.Phone != "+639171234567" {
		t.Errorf("expected phone claim, got %s", claims.Phone)
	}
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := testIssuer()
	other := NewTokenIssuer([]byte("ffffffffffffffffffffffffffffffff"), "vidapoint", time.Hour)

	token, err := issuer.Issue("user-1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), "vidapoint", -time.Minute)

	token, err := issuer.Issue("user-1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := issuer.Verify(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestTokenIssuer_RejectsWrongIssuer(t *testing.T) {
	minter := NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), "someone-else", time.Hour)
	verifier := testIssuer()

	token, err := minter.Issue("user-1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Error("expected error for wrong issuer")
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Middleware(testIssuer())
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	err := h(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	issuer := testIssuer()
	token, err := issuer.Issue("user-7", "+639170000000", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Middleware(issuer)
	h := mw(func(c echo.Context) error {
		if got := UserIDFromContext(c.Request().Context()); got != "user-7" {
			t.Errorf("expected user-7 in context, got %q", got)
		}
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Middleware(testIssuer())
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	err := h(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestDevAuthMiddleware_DefaultsWithoutToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := DevAuthMiddleware(testIssuer())
	h := mw(func(c echo.Context) error {
		if got := UserIDFromContext(c.Request().Context()); got != DevUserID {
			t.Errorf("expected dev user, got %q", got)
		}
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
