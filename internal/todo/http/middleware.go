package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/pkg/httpx"
	"github.com/aussiebroadwan/tasktab/pkg/jwtx"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

type principalCtxKey struct{}

// PrincipalFrom returns the authenticated principal the route guard attached.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(domain.Principal)
	return p, ok
}

// authenticate is the route guard: it is the only place a bearer token
// becomes a trusted principal. The token's role claim selects which store
// the subject is resolved against; a subject that no longer exists fails
// closed with the same 401 as a bad token.
func (rt *Router) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := slogx.FromContext(ctx)

		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			errAuthRequired.WriteError(w)
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))

		claims, err := rt.verifier.Verify(raw)
		if err != nil {
			log.Debug("token verification failed", "err", err)
			errInvalidToken.WriteError(w)
			return
		}

		principal := domain.Principal{Role: claims.Role}
		switch claims.Role {
		case jwtx.RoleAdmin:
			admin, err := rt.AdminService.GetByID(ctx, claims.Subject)
			if err != nil {
				rt.rejectPrincipal(w, log, err)
				return
			}
			principal.Admin = &admin
		default:
			user, err := rt.UserService.GetByID(ctx, claims.Subject)
			if err != nil {
				rt.rejectPrincipal(w, log, err)
				return
			}
			principal.User = &user
		}

		ctx = context.WithValue(ctx, principalCtxKey{}, principal)
		ctx = context.WithValue(ctx, httpx.CtxKeyPrincipalID, principal.ID())
		ctx = context.WithValue(ctx, httpx.CtxKeyRole, string(principal.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (rt *Router) rejectPrincipal(w http.ResponseWriter, log *slog.Logger, err error) {
	if !errors.Is(err, service.ErrNotFound) {
		log.Warn("principal resolution failed", "err", err)
	}
	errInvalidToken.WriteError(w)
}

// requireAdmin gates admin-only routes. It runs after authenticate, so a
// non-admin principal is authenticated but not authorized: 403, never 401.
func (rt *Router) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFrom(r.Context())
		if !ok {
			errAuthRequired.WriteError(w)
			return
		}
		if !principal.IsAdmin() {
			errAdminOnly.WriteError(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
