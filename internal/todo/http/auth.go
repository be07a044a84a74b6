package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/pkg/httpx"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a user account and logs it straight in: the
// response carries a session token alongside the profile.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		badRequest(w, "name, email and password are required")
		return
	}

	user, token, err := h.AuthService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, TokenResponse{
		Token:     token,
		ExpiresIn: int64(h.AuthService.Signer.TTL().Seconds()),
		User:      toUserResponse(user),
	})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(w, "email and password are required")
		return
	}

	user, token, err := h.AuthService.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		log.Debug("user login rejected")
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresIn: int64(h.AuthService.Signer.TTL().Seconds()),
		User:      toUserResponse(user),
	})
}

// HandleMe returns the authenticated principal's profile.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok {
		errAuthRequired.WriteError(w)
		return
	}

	if principal.Admin != nil {
		httpx.WriteJSON(w, http.StatusOK, toAdminResponse(*principal.Admin))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(*principal.User))
}
