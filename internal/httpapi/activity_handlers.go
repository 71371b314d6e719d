package httpapi

import (
	"net/http"
)

func (a *API) handleListActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := parsePositiveInt(r.URL.Query().Get("limit"), 50, 1, 200)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "limit "+err.Error())
		return
	}
	offset, err := parsePositiveInt(r.URL.Query().Get("offset"), 0, 0, 1<<30)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "offset "+err.Error())
		return
	}

	entries, err := a.activity.List(r.Context(), limit, offset)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, entries)
}
