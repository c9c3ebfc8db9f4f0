package blog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"inkwell/internal/common"
)

// Handler exposes the publishing lifecycle over REST.
type Handler struct {
	service BlogUsecase
}

func NewHandler(service BlogUsecase) *Handler {
	return &Handler{service: service}
}

type draftRequest struct {
	DraftID  uint64   `json:"draft_id,omitempty"`
	Title    string   `json:"title"`
	Document string   `json:"document"`
	Tags     []string `json:"tags"`
}

type postRequest struct {
	Title    string   `json:"title"`
	Document string   `json:"document"`
	Tags     []string `json:"tags"`
}

type postUpdateRequest struct {
	Title    *string   `json:"title"`
	Document *string   `json:"document"`
	Tags     *[]string `json:"tags"`
}

func principalOrFail(w http.ResponseWriter, r *http.Request) (common.Principal, bool) {
	principal, ok := common.PrincipalFrom(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
	}
	return principal, ok
}

func pathID(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[name], 10, 64)
}

// SaveDraft handles POST /api/v1/drafts (upsert).
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.service.SaveDraft(r.Context(), principal, DraftInput{
		DraftID:  req.DraftID,
		Title:    req.Title,
		Document: req.Document,
		Tags:     req.Tags,
	})
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if req.DraftID != 0 {
		status = http.StatusOK
	}
	common.WriteJSON(w, status, draft)
}

// ListDrafts handles GET /api/v1/drafts.
func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	drafts, err := h.service.ListDrafts(r.Context(), principal)
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, drafts)
}

// GetDraft handles GET /api/v1/drafts/{id}.
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid draft id")
		return
	}

	draft, err := h.service.GetDraft(r.Context(), principal, id)
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, draft)
}

// DeleteDraft handles DELETE /api/v1/drafts/{id}.
func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid draft id")
		return
	}

	if err := h.service.DeleteDraft(r.Context(), principal, id); err != nil {
		common.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PublishDraft handles POST /api/v1/drafts/{id}/publish.
func (h *Handler) PublishDraft(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid draft id")
		return
	}

	post, err := h.service.Publish(r.Context(), principal, id)
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, post)
}

// CreatePost handles POST /api/v1/posts (publish without a draft).
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.service.PublishNew(r.Context(), principal, PostInput{
		Title:    req.Title,
		Document: req.Document,
		Tags:     req.Tags,
	})
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, post)
}

// ListPosts handles GET /api/v1/posts (public).
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	if author := r.URL.Query().Get("author"); author != "" {
		authorID, err := strconv.ParseUint(author, 10, 64)
		if err != nil {
			common.WriteError(w, http.StatusBadRequest, "invalid author id")
			return
		}
		posts, err := h.service.ListUserPosts(r.Context(), authorID)
		if err != nil {
			common.WriteServiceError(w, err)
			return
		}
		common.WriteJSON(w, http.StatusOK, posts)
		return
	}

	posts, err := h.service.ListPosts(r.Context(), limit, offset)
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /api/v1/posts/{id} (public).
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, post)
}

// UpdatePost handles PUT /api/v1/posts/{id} (partial update).
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req postUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.service.UpdatePost(r.Context(), principal, id, PostUpdate{
		Title:    req.Title,
		Document: req.Document,
		Tags:     req.Tags,
	})
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /api/v1/posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrFail(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.service.DeletePost(r.Context(), principal, id); err != nil {
		common.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
