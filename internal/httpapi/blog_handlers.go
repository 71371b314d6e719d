package httpapi

import (
	"net/http"

	"crestline.dev/internal/activity"
	"crestline.dev/internal/auth"
	"crestline.dev/internal/cms"
)

func (a *API) handleListPosts(w http.ResponseWriter, r *http.Request) {
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

	filter := cms.BlogFilter{
		Tag:           optionalQuery(r, "tag"),
		PublishedOnly: !canViewDrafts(r),
		Limit:         limit,
		Offset:        offset,
	}
	posts, err := a.blogs.List(r.Context(), filter)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, posts)
}

func (a *API) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := a.blogs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if !post.Published && !canViewDrafts(r) {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	writeData(w, r, http.StatusOK, post)
}

func (a *API) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	var in cms.CreateBlogInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	post, err := a.blogs.Create(r.Context(), actor.UserID, in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionCreate, "blog_post", post.ID, "created post "+post.Title)
	writeData(w, r, http.StatusCreated, post)
}

func (a *API) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	var in cms.UpdateBlogInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	post, err := a.blogs.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionUpdate, "blog_post", post.ID, "updated post "+post.Title)
	writeData(w, r, http.StatusOK, post)
}

func (a *API) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())

	post, err := a.blogs.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.recordMutation(r, actor, activity.ActionDelete, "blog_post", post.ID, "deleted post "+post.Title)
	writeData(w, r, http.StatusOK, map[string]string{"id": post.ID})
}
