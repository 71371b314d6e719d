package httpapi

import (
	"net/http"

	"crestline.dev/internal/activity"
	"crestline.dev/internal/auth"
	"crestline.dev/internal/cms"
)

func (a *API) handleListProjects(w http.ResponseWriter, r *http.Request) {
	limit, err := parsePositiveInt(r.URL.Query().Get("limit"), 20, 1, 100)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "limit "+err.Error())
		return
	}
	offset, err := parsePositiveInt(r.URL.Query().Get("offset"), 0, 0, 1<<30)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "offset "+err.Error())
		return
	}
	featured, err := optionalBoolQuery(r, "featured")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	filter := cms.ProjectFilter{
		Status:        optionalQuery(r, "status"),
		Featured:      featured,
		PublishedOnly: !canViewDrafts(r),
		Limit:         limit,
		Offset:        offset,
	}
	projects, err := a.projects.List(r.Context(), filter)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, projects)
}

func (a *API) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := a.projects.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	// Drafts are visible only to staff; anonymous callers get a 404 rather
	// than a hint that the record exists.
	if !project.Published && !canViewDrafts(r) {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	writeData(w, r, http.StatusOK, project)
}

func (a *API) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	var in cms.CreateProjectInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	project, err := a.projects.Create(r.Context(), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionCreate, "project", project.ID, "created project "+project.Title)
	writeData(w, r, http.StatusCreated, project)
}

func (a *API) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	var in cms.UpdateProjectInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	project, err := a.projects.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionUpdate, "project", project.ID, "updated project "+project.Title)
	writeData(w, r, http.StatusOK, project)
}

func (a *API) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	project, err := a.projects.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionDelete, "project", project.ID, "deleted project "+project.Title)
	writeData(w, r, http.StatusOK, map[string]string{"id": project.ID})
}
