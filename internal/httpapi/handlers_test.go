package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"crestline.dev/internal/activity"
	"crestline.dev/internal/auth"
	"crestline.dev/internal/cms"
	"crestline.dev/internal/ratelimit"
	"crestline.dev/internal/store/memory"
)

type testEnv struct {
	handler http.Handler
	codec   *auth.TokenCodec
	users   map[auth.Role]*cms.User
}

const testPassword = "correct-horse-battery"

func newTestEnv(t *testing.T, limiter *ratelimit.Limiter) *testEnv {
	t.Helper()

	codec, err := auth.NewTokenCodec("handlers-test-secret")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	userStore := memory.NewUserStore()
	users := make(map[auth.Role]*cms.User)
	for i, role := range []auth.Role{auth.RoleSuperAdmin, auth.RoleAdmin, auth.RoleEditor, auth.RoleUser} {
		hash, err := auth.HashPassword(testPassword)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		u := &cms.User{
			ID:           "seed-" + string(role),
			Name:         "Seed " + string(role),
			Email:        string(role) + "@crestline.example",
			PasswordHash: hash,
			Role:         role,
			Active:       true,
		}
		if err := userStore.Create(t.Context(), u); err != nil {
			t.Fatalf("seed user %d: %v", i, err)
		}
		users[role] = u
	}

	userSvc, err := cms.NewUserService(userStore)
	if err != nil {
		t.Fatalf("user service: %v", err)
	}
	projectSvc, err := cms.NewProjectService(memory.NewProjectStore())
	if err != nil {
		t.Fatalf("project service: %v", err)
	}
	blogSvc, err := cms.NewBlogService(memory.NewBlogStore())
	if err != nil {
		t.Fatalf("blog service: %v", err)
	}
	leadSvc, err := cms.NewLeadService(memory.NewLeadStore())
	if err != nil {
		t.Fatalf("lead service: %v", err)
	}
	careerSvc, err := cms.NewCareerService(memory.NewCareerStore())
	if err != nil {
		t.Fatalf("career service: %v", err)
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	api := New(Options{
		Guard:       NewGuard(codec),
		Users:       userSvc,
		Projects:    projectSvc,
		Blogs:       blogSvc,
		Leads:       leadSvc,
		Careers:     careerSvc,
		Activity:    activity.NewEmitter(memory.NewActivityStore(), quiet),
		Limiter:     limiter,
		FrontendURL: "https://crestline.example",
		Version:     "test",
	})
	return &testEnv{handler: api.Handler(), codec: codec, users: users}
}

func (e *testEnv) token(t *testing.T, role auth.Role) string {
	t.Helper()
	u := e.users[role]
	token, _, err := e.codec.Encode(auth.Identity{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		t.Fatalf("encode token: %v", err)
	}
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

type testEnvelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	RequestID string          `json:"request_id"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", rr.Body.String(), err)
	}
	return env
}

func TestLoginAndMeFlow(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "admin@crestline.example",
		"password": testPassword,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rr.Code, rr.Body.String())
	}
	envl := decodeEnvelope(t, rr)
	if !envl.Success {
		t.Fatalf("login envelope: %+v", envl)
	}

	var payload struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.Unmarshal(envl.Data, &payload); err != nil {
		t.Fatalf("decode login payload: %v", err)
	}
	if payload.Token == "" || !payload.ExpiresAt.After(time.Now()) {
		t.Fatalf("login payload: %+v", payload)
	}

	rr = env.do(t, http.MethodGet, "/v1/me", payload.Token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("me status = %d: %s", rr.Code, rr.Body.String())
	}
	var me cms.User
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Email != "admin@crestline.example" {
		t.Fatalf("me email = %q", me.Email)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, body := range []map[string]string{
		{"email": "admin@crestline.example", "password": "wrong"},
		{"email": "nobody@crestline.example", "password": testPassword},
	} {
		rr := env.do(t, http.MethodPost, "/v1/auth/login", "", body)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("login %v: status = %d, want 401", body, rr.Code)
		}
		envl := decodeEnvelope(t, rr)
		if envl.Success || envl.Error != "invalid credentials" {
			t.Fatalf("login %v: envelope %+v", body, envl)
		}
	}
}

func TestErrorEnvelopeCarriesRequestID(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, http.MethodGet, "/v1/me", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	envl := decodeEnvelope(t, rr)
	if envl.RequestID == "" {
		t.Fatal("error envelope must carry request_id")
	}
	if envl.RequestID != rr.Header().Get("X-Request-ID") {
		t.Fatal("request_id must match the response header")
	}
}

func TestPreflightThroughFullPipeline(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/v1/users", nil)
	req.Header.Set("Origin", "https://crestline.example")
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("preflight body = %q, want empty", rr.Body.String())
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://crestline.example" {
		t.Fatalf("allow-origin = %q", got)
	}
}

func TestProjectDraftVisibility(t *testing.T) {
	env := newTestEnv(t, nil)
	editorToken := env.token(t, auth.RoleEditor)

	rr := env.do(t, http.MethodPost, "/v1/projects", editorToken, map[string]any{
		"title":    "Harbor View Residences",
		"summary":  "Waterfront apartments",
		"location": "Eastside",
		"status":   "upcoming",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rr.Code, rr.Body.String())
	}
	var project cms.Project
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &project); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	if project.Published {
		t.Fatal("project should default to draft")
	}

	// Anonymous callers cannot see the draft, by list or by id.
	rr = env.do(t, http.MethodGet, "/v1/projects/"+project.ID, "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("anonymous get draft: status = %d, want 404", rr.Code)
	}
	rr = env.do(t, http.MethodGet, "/v1/projects", "", nil)
	var listed []cms.Project
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("anonymous list shows drafts: %+v", listed)
	}

	// Staff see it.
	rr = env.do(t, http.MethodGet, "/v1/projects/"+project.ID, editorToken, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("editor get draft: status = %d", rr.Code)
	}

	// Plain users do not.
	rr = env.do(t, http.MethodGet, "/v1/projects/"+project.ID, env.token(t, auth.RoleUser), nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("user get draft: status = %d, want 404", rr.Code)
	}
}

func TestProjectMutationRequiresEditor(t *testing.T) {
	env := newTestEnv(t, nil)

	body := map[string]any{
		"title":    "Gated Mutation",
		"summary":  "s",
		"location": "l",
		"status":   "ongoing",
	}
	rr := env.do(t, http.MethodPost, "/v1/projects", "", body)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: status = %d, want 401", rr.Code)
	}
	rr = env.do(t, http.MethodPost, "/v1/projects", env.token(t, auth.RoleUser), body)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("user create: status = %d, want 403", rr.Code)
	}
	rr = env.do(t, http.MethodPost, "/v1/projects", env.token(t, auth.RoleEditor), body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("editor create: status = %d", rr.Code)
	}
}

func TestUserHierarchyOverHTTP(t *testing.T) {
	env := newTestEnv(t, nil)
	adminToken := env.token(t, auth.RoleAdmin)
	superToken := env.token(t, auth.RoleSuperAdmin)
	superID := env.users[auth.RoleSuperAdmin].ID
	editorID := env.users[auth.RoleEditor].ID

	// Admin cannot touch a super_admin record.
	name := map[string]any{"name": "Hijacked"}
	rr := env.do(t, http.MethodPut, "/v1/users/"+superID, adminToken, name)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("admin edits super_admin: status = %d, want 403", rr.Code)
	}
	rr = env.do(t, http.MethodDelete, "/v1/users/"+superID, adminToken, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("admin deletes super_admin: status = %d, want 403", rr.Code)
	}

	// The 403 body must not explain the hierarchy.
	envl := decodeEnvelope(t, rr)
	if envl.Error != "Insufficient permissions" {
		t.Fatalf("403 message = %q", envl.Error)
	}

	// Super_admin may edit their own profile.
	rr = env.do(t, http.MethodPut, "/v1/users/"+superID, superToken, map[string]any{"name": "Root Renamed"})
	if rr.Code != http.StatusOK {
		t.Fatalf("super self-edit: status = %d: %s", rr.Code, rr.Body.String())
	}

	// But not change their own role.
	rr = env.do(t, http.MethodPut, "/v1/users/"+superID, superToken, map[string]any{"role": "admin"})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("super self role change: status = %d, want 403", rr.Code)
	}

	// Downward deletion works.
	rr = env.do(t, http.MethodDelete, "/v1/users/"+editorID, adminToken, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin deletes editor: status = %d", rr.Code)
	}
}

func TestLeadIntakeAndTriage(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, http.MethodPost, "/v1/leads", "", map[string]any{
		"name":    "Prospective Buyer",
		"email":   "buyer@example.com",
		"message": "Interested in the Harbor View development.",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("lead intake: status = %d: %s", rr.Code, rr.Body.String())
	}
	var lead cms.Lead
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &lead); err != nil {
		t.Fatalf("decode lead: %v", err)
	}
	if lead.Status != cms.LeadNew {
		t.Fatalf("lead status = %q, want new", lead.Status)
	}

	// Listing requires admin.
	if rr := env.do(t, http.MethodGet, "/v1/leads", "", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list leads: status = %d, want 401", rr.Code)
	}
	if rr := env.do(t, http.MethodGet, "/v1/leads", env.token(t, auth.RoleEditor), nil); rr.Code != http.StatusForbidden {
		t.Fatalf("editor list leads: status = %d, want 403", rr.Code)
	}

	adminToken := env.token(t, auth.RoleAdmin)
	rr = env.do(t, http.MethodGet, "/v1/leads", adminToken, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin list leads: status = %d", rr.Code)
	}

	rr = env.do(t, http.MethodPut, "/v1/leads/"+lead.ID+"/status", adminToken, map[string]string{"status": "contacted"})
	if rr.Code != http.StatusOK {
		t.Fatalf("triage: status = %d: %s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodPut, "/v1/leads/"+lead.ID+"/status", adminToken, map[string]string{"status": "archived"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad status value: status = %d, want 400", rr.Code)
	}
}

func TestLeadIntakeRateLimited(t *testing.T) {
	limiter, err := ratelimit.New(ratelimit.NewMemoryStore(), 2, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	env := newTestEnv(t, limiter)

	body := map[string]any{
		"name":    "Repeat Visitor",
		"email":   "repeat@example.com",
		"message": "hello",
	}
	for i := 1; i <= 2; i++ {
		if rr := env.do(t, http.MethodPost, "/v1/leads", "", body); rr.Code != http.StatusCreated {
			t.Fatalf("lead %d: status = %d", i, rr.Code)
		}
	}
	rr := env.do(t, http.MethodPost, "/v1/leads", "", body)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("lead 3: status = %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Fatal("429 must carry Retry-After")
	}

	// Authenticated reads are not limited.
	// (httptest requests share a RemoteAddr, so this proves the limit is
	// scoped to the intake route, not the client.)
	if rr := env.do(t, http.MethodGet, "/v1/projects", "", nil); rr.Code != http.StatusOK {
		t.Fatalf("read after limit: status = %d", rr.Code)
	}
}

func TestCareersVisibility(t *testing.T) {
	env := newTestEnv(t, nil)
	adminToken := env.token(t, auth.RoleAdmin)

	openJob := map[string]any{
		"title":       "Site Engineer",
		"department":  "Construction",
		"location":    "Head Office",
		"description": "d",
		"open":        true,
	}
	closedJob := map[string]any{
		"title":       "Archived Role",
		"department":  "Ops",
		"location":    "Remote",
		"description": "d",
		"open":        false,
	}
	for _, body := range []map[string]any{openJob, closedJob} {
		if rr := env.do(t, http.MethodPost, "/v1/careers", adminToken, body); rr.Code != http.StatusCreated {
			t.Fatalf("create job: status = %d: %s", rr.Code, rr.Body.String())
		}
	}

	rr := env.do(t, http.MethodGet, "/v1/careers", "", nil)
	var public []cms.JobOpening
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &public); err != nil {
		t.Fatalf("decode careers: %v", err)
	}
	if len(public) != 1 || !public[0].Open {
		t.Fatalf("public careers = %+v, want only open roles", public)
	}

	rr = env.do(t, http.MethodGet, "/v1/careers", adminToken, nil)
	var all []cms.JobOpening
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &all); err != nil {
		t.Fatalf("decode careers: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin careers = %d entries, want 2", len(all))
	}
}

func TestActivityTrailRecordsLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "admin@crestline.example",
		"password": testPassword,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login: status = %d", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/v1/activity", env.token(t, auth.RoleAdmin), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("activity: status = %d", rr.Code)
	}
	var entries []activity.Entry
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) == 0 || entries[0].Action != activity.ActionLogin {
		t.Fatalf("entries = %+v, want a login entry", entries)
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, http.MethodPost, "/v1/leads", "", map[string]any{
		"name":    "Strict Decoder",
		"email":   "strict@example.com",
		"message": "hi",
		"extra":   "field",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: status = %d, want 400", rr.Code)
	}
}
