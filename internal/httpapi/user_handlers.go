package httpapi

import (
	"net/http"

	"crestline.dev/internal/activity"
	"crestline.dev/internal/auth"
	"crestline.dev/internal/cms"
)

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.List(r.Context())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, users)
}

func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	var in cms.CreateUserInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	user, err := a.users.Create(r.Context(), actor, in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionCreate, "user", user.ID, "created user "+user.Email)
	writeData(w, r, http.StatusCreated, user)
}

func (a *API) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	var in cms.UpdateUserInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	user, err := a.users.Update(r.Context(), actor, r.PathValue("id"), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionUpdate, "user", user.ID, "updated user "+user.Email)
	writeData(w, r, http.StatusOK, user)
}

func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	user, err := a.users.Delete(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionDelete, "user", user.ID, "deleted user "+user.Email)
	writeData(w, r, http.StatusOK, map[string]string{"id": user.ID})
}

// recordMutation appends one audit entry for a successful back-office write.
func (a *API) recordMutation(r *http.Request, actor auth.Identity, action, entityType, entityID, title string) {
	a.activity.Record(r.Context(), activity.Entry{
		Type:       entityType,
		Action:     action,
		Title:      title,
		UserID:     actor.UserID,
		UserName:   actor.Email,
		EntityID:   entityID,
		EntityType: entityType,
	})
}
