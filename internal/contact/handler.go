package contact

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"inkwell/internal/common"
)

type Handler struct {
	service ContactUsecase
}

func NewHandler(service ContactUsecase) *Handler {
	return &Handler{service: service}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// SubmitMessage handles POST /api/v1/contact (public).
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.service.SubmitMessage(r.Context(), req.Name, req.Email, req.Subject, req.Body)
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, msg)
}

// Subscribe handles POST /api/v1/subscribe (public).
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Subscribe(r.Context(), req.Email); err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "subscribed"})
}

// Unsubscribe handles POST /api/v1/unsubscribe (public).
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Unsubscribe(r.Context(), req.Email); err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "unsubscribed"})
}

// ListMessages handles GET /api/v1/admin/messages.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	messages, err := h.service.ListMessages(r.Context(), limit, offset)
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, messages)
}

// DeleteMessage handles DELETE /api/v1/admin/messages/{id}.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := h.service.DeleteMessage(r.Context(), id); err != nil {
		common.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSubscribers handles GET /api/v1/admin/subscribers.
func (h *Handler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListSubscribers(r.Context())
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, subs)
}
