package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/internal/todo/store"
	"github.com/aussiebroadwan/tasktab/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/tasktab/pkg/cryptox"
	"github.com/aussiebroadwan/tasktab/pkg/idx"
	"github.com/aussiebroadwan/tasktab/pkg/jwtx"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tasktab-http-test-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(dir + "/pepper.key")

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

var testDBCounter atomic.Int64

type testEnv struct {
	router *Router
	store  store.Store
	signer *jwtx.Signer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:http_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSigner([]byte("http-test-secret"), "tasktab-test", 0)
	require.NoError(t, err)

	logger := slogx.New(slogx.Config{Service: "tasktab-test", Level: "error", Format: "text"})

	router := NewRouter(signer, "test", st, logger)
	router.AuthService = &service.AuthService{Store: st, Signer: signer}
	router.UserService = &service.UserService{Store: st}
	router.AdminService = &service.AdminService{Store: st}
	router.TaskService = &service.TaskService{Store: st}
	router.ResetService = &service.ResetService{Store: st}
	router.RecoveryService = &service.RecoveryService{Store: st, Secret: "test-recovery-key"}
	router.DashboardService = &service.DashboardService{Store: st}
	router.ApplyRoutes()

	return &testEnv{router: router, store: st, signer: signer}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) registerUser(t *testing.T, name, email, password string) (UserResponse, string) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.User, resp.Token
}

func (e *testEnv) createAdmin(t *testing.T, email, password string, role domain.AdminRole) (domain.Admin, string) {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	admin := domain.Admin{
		ID:           idx.New().String(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, e.store.Admins().CreateAdmin(t.Context(), admin))

	token, err := e.signer.Sign(admin.ID, jwtx.RoleAdmin)
	require.NoError(t, err)
	return admin, token
}

func TestGuardRejectsMissingAndBadTokens(t *testing.T) {
	env := newTestEnv(t)

	t.Run("no token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/tasks", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "authentication required", resp.Error)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/tasks", "not.a.jwt", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "invalid or expired token", resp.Error)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		other, err := jwtx.NewSigner([]byte("some-other-secret"), "tasktab-test", 0)
		require.NoError(t, err)
		token, err := other.Sign(idx.New().String(), jwtx.RoleUser)
		require.NoError(t, err)

		rec := env.do(t, http.MethodGet, "/v1/tasks", token, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		user, token := env.registerUser(t, "Gone", "gone@example.com", "password")
		require.NoError(t, env.store.Users().DeleteUser(t.Context(), user.ID))

		rec := env.do(t, http.MethodGet, "/v1/tasks", token, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)

	_, userToken := env.registerUser(t, "Plain User", "plain@example.com", "password")

	t.Run("user token gets 403, not 401", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/admin/dashboard", userToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "admin access required", resp.Error)
	})

	t.Run("admin token is allowed", func(t *testing.T) {
		_, adminToken := env.createAdmin(t, "boss@example.com", "password", domain.AdminRoleAdmin)

		rec := env.do(t, http.MethodGet, "/v1/admin/dashboard", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestTaskOwnershipOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	_, aliceToken := env.registerUser(t, "Alice", "alice@example.com", "password")
	_, malloryToken := env.registerUser(t, "Mallory", "mallory@example.com", "password")

	rec := env.do(t, http.MethodPost, "/v1/tasks", aliceToken, map[string]string{
		"title": "secret plans",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var task TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	require.Equal(t, domain.DefaultTaskCategory, task.Category)

	t.Run("other user cannot delete", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/v1/tasks/"+task.ID, malloryToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("other user cannot toggle", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/v1/tasks/"+task.ID+"/toggle", malloryToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("listing is scoped to the caller", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/tasks", malloryToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var tasks []TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
		require.Empty(t, tasks)
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		_, adminToken := env.createAdmin(t, "boss@example.com", "password", domain.AdminRoleAdmin)

		rec := env.do(t, http.MethodPatch, "/v1/admin/tasks/"+task.ID+"/toggle", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodDelete, "/v1/admin/tasks/"+task.ID, adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "Bob", "bob@example.com", "correct-horse")

	t.Run("wrong password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
			"email": "bob@example.com", "password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "invalid email or password", resp.Error)
	})

	t.Run("successful login token works on /v1/me", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
			"email": "bob@example.com", "password": "correct-horse",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		me := env.do(t, http.MethodGet, "/v1/me", resp.Token, nil)
		require.Equal(t, http.StatusOK, me.Code)

		var profile UserResponse
		require.NoError(t, json.Unmarshal(me.Body.Bytes(), &profile))
		require.Equal(t, "bob@example.com", profile.Email)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "bob@example.com"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestResetSuperAdminEndpoint(t *testing.T) {
	env := newTestEnv(t)

	admin, _ := env.createAdmin(t, "super@example.com", "original", domain.AdminRoleSuperAdmin)

	t.Run("wrong secret", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/admin/reset-superadmin", "", map[string]string{
			"secret_key": "nope", "new_password": "recovered",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("correct secret, then login with the new password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/admin/reset-superadmin", "", map[string]string{
			"secret_key": "test-recovery-key", "new_password": "recovered",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		login := env.do(t, http.MethodPost, "/v1/admin/login", "", map[string]string{
			"email": admin.Email, "password": "recovered",
		})
		require.Equal(t, http.StatusOK, login.Code)
	})
}

func TestForgotAndResetPassword(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "Resetta", "resetta@example.com", "old-password")

	t.Run("unknown email still returns 200", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/forgot-password", "", map[string]string{
			"email": "ghost@example.com",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad token is a 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/reset-password", "", map[string]string{
			"token": "bogus", "new_password": "whatever",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "invalid or expired reset token", resp.Error)
	})
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	t.Run("livez", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/livez", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readyz", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/readyz", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "ok", resp.Status)
	})
}
