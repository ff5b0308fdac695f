package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hudlab/hudlab-ops/internal/entity"
)

type contextKey string

const profileKey contextKey = "user_profile"

// ProfileFinder é o recorte do repositório de perfis que o guard usa.
type ProfileFinder interface {
	FindByID(ctx context.Context, id string) (*entity.UserProfile, error)
}

// Authenticator valida o JWT de sessão do Supabase (HS256, cookie
// sb-access-token ou Authorization: Bearer), carrega o perfil e pendura
// no contexto. 401 sem sessão válida, 403 sem perfil.
//
// Esse é O guard de autorização: checagem de papel nunca é reimplementada
// inline nos handlers.
func Authenticator(jwtSecret string, profiles ProfileFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r)
			if tokenStr == "" {
				deny(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid || claims.Subject == "" {
				deny(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			profile, err := profiles.FindByID(r.Context(), claims.Subject)
			if err != nil {
				deny(w, http.StatusForbidden, "perfil não encontrado")
				return
			}

			ctx := context.WithValue(r.Context(), profileKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole exige approved=true e, se a lista não for vazia,
// papel dentro dela. Lista vazia = qualquer papel aprovado.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile := ProfileFromContext(r.Context())
			if profile == nil {
				deny(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !profile.Approved {
				deny(w, http.StatusForbidden, "conta aguardando aprovação")
				return
			}
			if len(allowed) > 0 && !allowed[profile.Role] {
				deny(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ProfileFromContext devolve o perfil autenticado (nil fora do guard).
func ProfileFromContext(ctx context.Context) *entity.UserProfile {
	profile, _ := ctx.Value(profileKey).(*entity.UserProfile)
	return profile
}

// WithProfile injeta um perfil no contexto — usado nos testes de handler.
func WithProfile(ctx context.Context, p *entity.UserProfile) context.Context {
	return context.WithValue(ctx, profileKey, p)
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie("sb-access-token"); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
