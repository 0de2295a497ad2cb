package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubAuth resolves "admin-token" and "user-token"; everything else is unknown.
type stubAuth struct {
	usecase.AuthService
	seen string
}

func (s *stubAuth) ResolveContext(_ context.Context, token string) (entity.UserContext, error) {
	s.seen = token
	switch token {
	case "admin-token":
		return entity.NewUserContext(&entity.User{Role: entity.RoleAdmin, Base: entity.Base{ID: uuid.New()}}, token), nil
	case "user-token":
		return entity.NewUserContext(&entity.User{Role: entity.RoleUser, Base: entity.Base{ID: uuid.New()}}, token), nil
	default:
		return entity.GuestContext(), usecase.ErrUnauthenticated
	}
}

func roleEcho(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(utils.GetUserContext(r.Context()).EffectiveRole()))
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestResolveSession(t *testing.T) {
	auth := &stubAuth{}
	h := ResolveSession(auth, zap.NewNop())(http.HandlerFunc(roleEcho))

	rec := serve(h, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "guest", rec.Body.String())

	rec = serve(h, "Bearer user-token")
	assert.Equal(t, "user", rec.Body.String())
	assert.Equal(t, "user-token", auth.seen)

	rec = serve(h, "bearer admin-token")
	assert.Equal(t, "admin", rec.Body.String())

	rec = serve(h, "Bearer stale")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "guest", rec.Body.String())

	rec = serve(h, "Token user-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireCapability(t *testing.T) {
	chain := func(c access.Capability) http.Handler {
		return ResolveSession(&stubAuth{}, zap.NewNop())(
			RequireCapability(c, zap.NewNop())(http.HandlerFunc(roleEcho)),
		)
	}

	assert.Equal(t, http.StatusUnauthorized, serve(chain(access.ManageMovies), "").Code)
	assert.Equal(t, http.StatusForbidden, serve(chain(access.ManageMovies), "Bearer user-token").Code)
	assert.Equal(t, http.StatusOK, serve(chain(access.ManageMovies), "Bearer admin-token").Code)
	assert.Equal(t, http.StatusOK, serve(chain(access.ViewMovies), "").Code)
}

func TestRequireAuth(t *testing.T) {
	h := ResolveSession(&stubAuth{}, zap.NewNop())(RequireAuth(http.HandlerFunc(roleEcho)))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer stale").Code)
	assert.Equal(t, http.StatusOK, serve(h, "Bearer user-token").Code)
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Internal server error"}`, rec.Body.String())
}
