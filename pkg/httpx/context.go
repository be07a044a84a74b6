package httpx

type ctxKey string

const (
	// CtxKeyPrincipalID holds the authenticated principal's id (string).
	CtxKeyPrincipalID ctxKey = "principal_id"
	// CtxKeyRole holds the authenticated principal's role claim (string).
	CtxKeyRole ctxKey = "role"
)
