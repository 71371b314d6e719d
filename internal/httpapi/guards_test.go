package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crestline.dev/internal/auth"
)

func testGuard(t *testing.T) (*Guard, *auth.TokenCodec) {
	t.Helper()
	codec, err := auth.NewTokenCodec("guard-test-secret")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return NewGuard(codec), codec
}

func tokenFor(t *testing.T, codec *auth.TokenCodec, role auth.Role) string {
	t.Helper()
	token, _, err := codec.Encode(auth.Identity{UserID: "u-1", Email: "staff@example.com", Role: role})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return token
}

func TestRequireAuthenticatedRejectsMissingToken(t *testing.T) {
	guard, _ := testGuard(t)
	handler := guard.RequireAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if rr.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("401 must carry WWW-Authenticate")
	}
}

func TestRequireAuthenticatedRejectsMalformedToken(t *testing.T) {
	guard, _ := testGuard(t)
	handler := guard.RequireAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestRequireAuthenticatedAttachesIdentity(t *testing.T) {
	guard, codec := testGuard(t)
	var got auth.Identity
	handler := guard.RequireAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, codec, auth.RoleEditor))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got.UserID != "u-1" || got.Role != auth.RoleEditor {
		t.Fatalf("identity = %+v", got)
	}
}

func TestOptionalAuthTreatsInvalidAsAnonymous(t *testing.T) {
	guard, codec := testGuard(t)

	run := func(authorize func(*http.Request)) (int, bool) {
		var attached bool
		handler := guard.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, attached = auth.IdentityFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest(http.MethodGet, "/v1/projects", nil)
		if authorize != nil {
			authorize(req)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code, attached
	}

	// Absent credential.
	if code, attached := run(nil); code != http.StatusOK || attached {
		t.Fatalf("absent: code=%d attached=%v", code, attached)
	}
	// Malformed credential degrades to anonymous, same as absent.
	if code, attached := run(func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer garbage")
	}); code != http.StatusOK || attached {
		t.Fatalf("malformed: code=%d attached=%v", code, attached)
	}
	// Valid credential attaches identity.
	if code, attached := run(func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tokenFor(t, codec, auth.RoleUser))
	}); code != http.StatusOK || !attached {
		t.Fatalf("valid: code=%d attached=%v", code, attached)
	}
}

func TestRequireAnyRole(t *testing.T) {
	guard, codec := testGuard(t)
	handler := guard.RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		role auth.Role
		want int
	}{
		{auth.RoleSuperAdmin, http.StatusOK},
		{auth.RoleAdmin, http.StatusOK},
		{auth.RoleEditor, http.StatusForbidden},
		{auth.RoleUser, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, codec, tc.role))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Fatalf("role %s: status = %d, want %d", tc.role, rr.Code, tc.want)
		}
	}
}

func TestExtractTokenCookieFallback(t *testing.T) {
	guard, codec := testGuard(t)
	handler := guard.RequireAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookie, Value: tokenFor(t, codec, auth.RoleUser)})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("cookie credential: status = %d, want 200", rr.Code)
	}
}

func TestExtractTokenHeaderWinsOverCookie(t *testing.T) {
	guard, codec := testGuard(t)
	handler := guard.RequireAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// A malformed header must not fall through to the valid cookie.
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	req.AddCookie(&http.Cookie{Name: tokenCookie, Value: tokenFor(t, codec, auth.RoleUser)})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("non-bearer header must win over cookie: status = %d, want 401", rr.Code)
	}
}
