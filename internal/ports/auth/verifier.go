package auth

import "context"

// AuthVerifier valida el bearer token de la consola y devuelve los claims del usuario.
// Implementación: adapters/auth/jwt.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
