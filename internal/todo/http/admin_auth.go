package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/pkg/httpx"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

// AdminAuthHandler covers admin sessions, profile self-service and the
// secret-gated superadmin recovery.
type AdminAuthHandler struct {
	AuthService     *service.AuthService
	AdminService    *service.AdminService
	RecoveryService *service.RecoveryService
}

type ResetSuperAdminRequest struct {
	SecretKey   string `json:"secret_key"`
	NewPassword string `json:"new_password"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AdminAuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(w, "email and password are required")
		return
	}

	admin, token, err := h.AuthService.LoginAdmin(ctx, req.Email, req.Password)
	if err != nil {
		slogx.FromContext(ctx).Debug("admin login rejected")
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, AdminTokenResponse{
		Token:     token,
		ExpiresIn: int64(h.AuthService.Signer.TTL().Seconds()),
		Admin:     toAdminResponse(admin),
	})
}

// HandleResetSuperAdmin is the break-glass path: no bearer token, gated
// solely by the deployment recovery secret.
func (h *AdminAuthHandler) HandleResetSuperAdmin(w http.ResponseWriter, r *http.Request) {
	var req ResetSuperAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.SecretKey == "" || req.NewPassword == "" {
		badRequest(w, "secret_key and new_password are required")
		return
	}

	if err := h.RecoveryService.ResetSuperAdmin(r.Context(), req.SecretKey, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "superadmin password has been reset"})
}

func (h *AdminAuthHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok || principal.Admin == nil {
		errAuthRequired.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAdminResponse(*principal.Admin))
}

func (h *AdminAuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok || principal.Admin == nil {
		errAuthRequired.WriteError(w)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	admin, err := h.AdminService.UpdateProfile(r.Context(), principal.Admin.ID, req.Name, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAdminResponse(admin))
}

func (h *AdminAuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok || principal.Admin == nil {
		errAuthRequired.WriteError(w)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		badRequest(w, "current_password and new_password are required")
		return
	}

	if err := h.AdminService.ChangePassword(r.Context(), principal.Admin.ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "password changed"})
}
