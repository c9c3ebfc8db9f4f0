package user

import (
	"encoding/json"
	"net/http"
	"time"

	"inkwell/internal/common"
	"inkwell/internal/dbmysql"
)

// Handler wires the auth REST endpoints to the user service.
type Handler struct {
	userService UserService
}

func NewHandler(userService UserService) *Handler {
	return &Handler{userService: userService}
}

type registerRequest struct {
	Handle   string `json:"handle"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Email string `json:"email"`
	Bio   string `json:"bio"`
}

type authResponse struct {
	Token  string `json:"token"`
	UserID uint64 `json:"user_id"`
	Handle string `json:"handle"`
	Role   string `json:"role"`
}

type profileResponse struct {
	UserID    uint64 `json:"user_id"`
	Handle    string `json:"handle"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toProfile(user *dbmysql.User) profileResponse {
	return profileResponse{
		UserID:    user.UserID,
		Handle:    user.Handle,
		Email:     user.Email,
		Bio:       user.Bio,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.userService.RegisterUser(r.Context(), req.Handle, req.Email, req.Password)
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, authResponse{
		Token:  token,
		UserID: user.UserID,
		Handle: user.Handle,
		Role:   user.Role,
	})
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.userService.LoginUser(r.Context(), req.Handle, req.Password)
	if err != nil {
		common.WriteError(w, http.StatusUnauthorized, "invalid handle or password")
		return
	}

	common.WriteJSON(w, http.StatusOK, authResponse{
		Token:  token,
		UserID: user.UserID,
		Handle: user.Handle,
		Role:   user.Role,
	})
}

// GetProfile handles GET /api/v1/auth/me.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFrom(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	user, err := h.userService.GetProfile(r.Context(), principal.UserID)
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, toProfile(user))
}

// UpdateProfile handles PUT /api/v1/auth/me.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFrom(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.userService.UpdateProfile(r.Context(), principal.UserID, req.Email, req.Bio); err != nil {
		common.WriteServiceError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}
