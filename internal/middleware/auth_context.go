package middleware

import (
	"context"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"vet-clinic-scheduling/internal/platform/logger"
	"vet-clinic-scheduling/internal/ports/auth"
)

type ctxKey string

const (
	claimsKey      ctxKey = "claims"
	requestUserKey ctxKey = "request_user"
)

// Headers de desarrollo, solo se leen si no hay verifier.
const (
	HeaderDebugUserID   = "X-Debug-User-ID"
	HeaderDebugClinicID = "X-Debug-Clinic-ID"
	HeaderDebugRole     = "X-Debug-Role"
)

// AuthContext resuelve el usuario de la consola y deja los claims en el contexto.
//
// Con verifier, lee el Bearer token; un token inválido se loguea y el request
// sigue sin claims (el handler responde 401). Sin verifier (modo dev) arma los
// claims desde los headers X-Debug-*.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := resolveClaims(r, verifier, log)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if u, found := r.Context().Value(requestUserKey).(*requestUser); found {
				u.claims, u.set = claims, true
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.AuthVerifier, log logger.Logger) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get(HeaderDebugUserID))
		if uid == "" {
			return auth.Claims{}, false
		}
		return auth.Claims{
			UserID:   uid,
			ClinicID: strings.TrimSpace(r.Header.Get(HeaderDebugClinicID)),
			Role:     strings.TrimSpace(r.Header.Get(HeaderDebugRole)),
		}, true
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		log.Warn("auth token rejected", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"path":       r.URL.Path,
			"error":      err,
		})
		return auth.Claims{}, false
	}
	return claims, true
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// requestUser lo crea AccessLog y lo completa AuthContext, que corre después
// y solo puede pasar claims hacia adentro.
type requestUser struct {
	claims auth.Claims
	set    bool
}

func bearerToken(authHeader string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
