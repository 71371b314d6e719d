package httpapi

import (
	"net/http"

	"crestline.dev/internal/activity"
	"crestline.dev/internal/auth"
	"crestline.dev/internal/cms"
)

func (a *API) handleListJobs(w http.ResponseWriter, r *http.Request) {
	// The public careers page shows open roles only; staff see everything.
	jobs, err := a.careers.List(r.Context(), !isAdmin(r))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, jobs)
}

func (a *API) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := a.careers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if !job.Open && !isAdmin(r) {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	writeData(w, r, http.StatusOK, job)
}

func (a *API) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	var in cms.CreateJobInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	job, err := a.careers.Create(r.Context(), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionCreate, "job_opening", job.ID, "created job "+job.Title)
	writeData(w, r, http.StatusCreated, job)
}

func (a *API) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	var in cms.UpdateJobInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	job, err := a.careers.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionUpdate, "job_opening", job.ID, "updated job "+job.Title)
	writeData(w, r, http.StatusOK, job)
}

func (a *API) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	job, err := a.careers.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionDelete, "job_opening", job.ID, "deleted job "+job.Title)
	writeData(w, r, http.StatusOK, map[string]string{"id": job.ID})
}
