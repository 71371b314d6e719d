package httpapi

import (
	"net/http"
	"time"

	"crestline.dev/internal/activity"
	"crestline.dev/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      any       `json:"user"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// One message for every failure mode.
		writeError(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, expiresAt, err := a.guard.codec.Encode(auth.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.activity.Record(r.Context(), activity.Entry{
		Type:     "auth",
		Action:   activity.ActionLogin,
		Title:    user.Name + " logged in",
		UserID:   user.ID,
		UserName: user.Name,
	})

	writeData(w, r, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// handleLogout is advisory: tokens are stateless, so logout only records the
// event for the audit trail and lets the client discard the credential.
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	a.activity.Record(r.Context(), activity.Entry{
		Type:     "auth",
		Action:   activity.ActionLogout,
		Title:    identity.Email + " logged out",
		UserID:   identity.UserID,
		UserName: identity.Email,
	})

	writeData(w, r, http.StatusOK, map[string]string{"status": "logged out"})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	user, err := a.users.Get(r.Context(), identity.UserID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, user)
}
