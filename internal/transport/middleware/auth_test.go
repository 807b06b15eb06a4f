package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pollboard/pollboard-backend/pkg/ctxutil"
)

type tokenValidatorStub struct {
	role string
	err  error
}

func (s *tokenValidatorStub) ValidateAccessToken(token string) (int64, string, error) {
	return 1, s.role, s.err
}

func adminProbeHandler(isAdmin *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*isAdmin = ctxutil.IsAdminCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminAuth_APISecret(t *testing.T) {
	var isAdmin bool
	wrapped := AdminAuth("super-secret", &tokenValidatorStub{})(adminProbeHandler(&isAdmin))

	req := httptest.NewRequest(http.MethodPost, "/api/autopilot/creator/run", nil)
	req.Header.Set("X-Api-Secret", "super-secret")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !isAdmin {
		t.Error("expected admin context with valid api secret")
	}
}

func TestAdminAuth_WrongAPISecret(t *testing.T) {
	var isAdmin bool
	wrapped := AdminAuth("super-secret", &tokenValidatorStub{})(adminProbeHandler(&isAdmin))

	req := httptest.NewRequest(http.MethodPost, "/api/autopilot/creator/run", nil)
	req.Header.Set("X-Api-Secret", "wrong")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAdminAuth_AdminBearer(t *testing.T) {
	var isAdmin bool
	wrapped := AdminAuth("super-secret", &tokenValidatorStub{role: "admin"})(adminProbeHandler(&isAdmin))

	req := httptest.NewRequest(http.MethodPost, "/api/autopilot/creator/run", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !isAdmin {
		t.Error("expected admin context with admin bearer token")
	}
}

func TestAdminAuth_NonAdminBearer(t *testing.T) {
	var isAdmin bool
	wrapped := AdminAuth("super-secret", &tokenValidatorStub{role: "user"})(adminProbeHandler(&isAdmin))

	req := httptest.NewRequest(http.MethodPost, "/api/autopilot/creator/run", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if isAdmin {
		t.Error("non-admin token must not grant admin context")
	}
}

func TestAdminAuth_InvalidBearer(t *testing.T) {
	var isAdmin bool
	wrapped := AdminAuth("super-secret", &tokenValidatorStub{err: errors.New("bad token")})(adminProbeHandler(&isAdmin))

	req := httptest.NewRequest(http.MethodPost, "/api/autopilot/creator/run", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAdminAuth_Anonymous(t *testing.T) {
	var isAdmin bool
	wrapped := AdminAuth("super-secret", &tokenValidatorStub{})(adminProbeHandler(&isAdmin))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if isAdmin {
		t.Error("anonymous request must not be admin")
	}
}
