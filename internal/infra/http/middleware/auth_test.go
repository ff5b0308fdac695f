package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hudlab/hudlab-ops/internal/entity"
)

const testSecret = "segredo-de-teste"

type MockProfileFinder struct {
	mock.Mock
}

func (m *MockProfileFinder) FindByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserProfile), args.Error(1)
}

func signedToken(t *testing.T, subject, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticator(t *testing.T) {
	t.Run("sem token e 401", func(t *testing.T) {
		finder := new(MockProfileFinder)
		h := Authenticator(testSecret, finder)(okHandler())

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/api/deals", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token assinado com outro segredo e 401", func(t *testing.T) {
		finder := new(MockProfileFinder)
		h := Authenticator(testSecret, finder)(okHandler())

		req := httptest.NewRequest("GET", "/api/deals", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1", "segredo-errado"))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		finder.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("sessao valida sem perfil e 403", func(t *testing.T) {
		finder := new(MockProfileFinder)
		finder.On("FindByID", mock.Anything, "user-1").Return(nil, entity.ErrNotFound)
		h := Authenticator(testSecret, finder)(okHandler())

		req := httptest.NewRequest("GET", "/api/deals", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1", testSecret))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("cookie sb-access-token tambem vale", func(t *testing.T) {
		finder := new(MockProfileFinder)
		finder.On("FindByID", mock.Anything, "user-2").Return(
			&entity.UserProfile{ID: "user-2", Role: entity.RoleAdmin, Approved: true}, nil)

		var seen *entity.UserProfile
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = ProfileFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
		h := Authenticator(testSecret, finder)(inner)

		req := httptest.NewRequest("GET", "/api/deals", nil)
		req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: signedToken(t, "user-2", testSecret)})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotNil(t, seen)
		assert.Equal(t, "user-2", seen.ID)
	})
}

func TestRequireRole(t *testing.T) {
	serve := func(profile *entity.UserProfile, roles ...string) *httptest.ResponseRecorder {
		h := RequireRole(roles...)(okHandler())
		req := httptest.NewRequest("GET", "/api/admin/users", nil)
		if profile != nil {
			req = req.WithContext(WithProfile(req.Context(), profile))
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	t.Run("sem perfil no contexto e 401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(nil, entity.RoleOwner).Code)
	})

	t.Run("perfil nao aprovado e 403 mesmo com papel certo", func(t *testing.T) {
		w := serve(&entity.UserProfile{Role: entity.RoleOwner, Approved: false}, entity.RoleOwner)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "aprovação")
	})

	t.Run("papel fora da lista e 403", func(t *testing.T) {
		w := serve(&entity.UserProfile{Role: entity.RoleUser, Approved: true},
			entity.RoleOwner, entity.RoleAdmin)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Insufficient permissions")
	})

	t.Run("papel na lista passa", func(t *testing.T) {
		w := serve(&entity.UserProfile{Role: entity.RoleManager, Approved: true},
			entity.RoleOwner, entity.RoleAdmin, entity.RoleManager)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("lista vazia aceita qualquer aprovado", func(t *testing.T) {
		w := serve(&entity.UserProfile{Role: entity.RoleUser, Approved: true})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCanSeeBrand(t *testing.T) {
	brand := "Acme"
	partner := &entity.UserProfile{Role: entity.RolePartnersMedia, Approved: true, AssignedBrand: &brand}

	assert.True(t, partner.CanSeeBrand("Acme"))
	assert.True(t, partner.CanSeeBrand("acme")) // sem case-sensitivity
	assert.False(t, partner.CanSeeBrand("Outra"))

	admin := &entity.UserProfile{Role: entity.RoleAdmin, Approved: true}
	assert.True(t, admin.CanSeeBrand("Qualquer"))
}
