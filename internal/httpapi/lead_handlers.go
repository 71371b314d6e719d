package httpapi

import (
	"net/http"

	"crestline.dev/internal/activity"
	"crestline.dev/internal/auth"
	"crestline.dev/internal/cms"
)

// handleCreateLead is the only unauthenticated write endpoint; it sits
// behind the per-client rate limit.
func (a *API) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var in cms.CreateLeadInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lead, err := a.leads.Create(r.Context(), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.activity.Record(r.Context(), activity.Entry{
		Type:       "lead",
		Action:     activity.ActionCreate,
		Title:      "new enquiry from " + lead.Name,
		UserID:     "anonymous",
		UserName:   lead.Email,
		EntityID:   lead.ID,
		EntityType: "lead",
	})
	writeData(w, r, http.StatusCreated, lead)
}

func (a *API) handleListLeads(w http.ResponseWriter, r *http.Request) {
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

	filter := cms.LeadFilter{
		Status:    optionalQuery(r, "status"),
		ProjectID: optionalQuery(r, "project_id"),
		Limit:     limit,
		Offset:    offset,
	}
	leads, err := a.leads.List(r.Context(), filter)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, leads)
}

type leadStatusRequest struct {
	Status string `json:"status"`
}

func (a *API) handleUpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	var req leadStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lead, err := a.leads.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionUpdate, "lead", lead.ID, "lead "+lead.Name+" marked "+lead.Status)
	writeData(w, r, http.StatusOK, lead)
}
