package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository/repotest"
	"github.com/jwalitptl/medrec-api/pkg/auth"
)

func newAuthFixture(t *testing.T) (*AuthMiddleware, auth.JWTService, *repotest.TokenRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	tokens := repotest.NewTokenRepo()
	return NewAuthMiddleware(jwtSvc, tokens), jwtSvc, tokens
}

func issue(t *testing.T, jwtSvc auth.JWTService, role model.Role) string {
	t.Helper()
	token, err := jwtSvc.Generate(&model.Session{
		UserID:   uuid.New(),
		Username: "someone",
		Role:     role,
	})
	require.NoError(t, err)
	return token
}

func perform(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func probeEngine(m *AuthMiddleware, gate gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(m.Authenticate())
	engine.GET("/probe", gate, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": SessionFrom(c).Role})
	})
	return engine
}

func TestRequireAuth(t *testing.T) {
	m, jwtSvc, _ := newAuthFixture(t)
	engine := probeEngine(m, m.RequireAuth())

	w := perform(engine, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "/login")

	w = perform(engine, issue(t, jwtSvc, model.RolePatient))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	m, jwtSvc, _ := newAuthFixture(t)
	engine := probeEngine(m, m.RequireRole(model.RoleDoctor))

	w := perform(engine, issue(t, jwtSvc, model.RoleDoctor))
	assert.Equal(t, http.StatusOK, w.Code)

	// A recognized but wrong role gets a redirect to its own home.
	w = perform(engine, issue(t, jwtSvc, model.RolePatient))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "/patient")

	w = perform(engine, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAnyRole(t *testing.T) {
	m, jwtSvc, _ := newAuthFixture(t)
	engine := probeEngine(m, m.RequireAnyRole(model.RoleDoctor, model.RoleAdmin))

	w := perform(engine, issue(t, jwtSvc, model.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(engine, issue(t, jwtSvc, model.RolePatient))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthenticateIgnoresBadTokens(t *testing.T) {
	m, _, _ := newAuthFixture(t)
	engine := probeEngine(m, m.RequireAuth())

	// Garbage tokens leave the request sessionless rather than erroring.
	w := perform(engine, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateHonorsRevocation(t *testing.T) {
	m, jwtSvc, tokens := newAuthFixture(t)
	engine := probeEngine(m, m.RequireAuth())

	token := issue(t, jwtSvc, model.RoleDoctor)
	w := perform(engine, token)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, tokens.Revoke(context.Background(), token, time.Hour))
	w = perform(engine, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
