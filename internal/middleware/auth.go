package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medrec-api/internal/model"
	"github.com/jwalitptl/medrec-api/internal/repository"
	"github.com/jwalitptl/medrec-api/internal/service/access"
	"github.com/jwalitptl/medrec-api/pkg/auth"
)

const (
	ContextSession = "session"
	ContextToken   = "session_token"
)

type AuthMiddleware struct {
	jwtSvc    auth.JWTService
	tokenRepo repository.TokenRepository
}

func NewAuthMiddleware(jwtSvc auth.JWTService, tokenRepo repository.TokenRepository) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc, tokenRepo: tokenRepo}
}

// Authenticate resolves the bearer token into a session and stores it on
// the context. Unauthenticated requests proceed with no session; the
// access guard decides what that means per route group.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		revoked, err := m.tokenRepo.IsRevoked(c.Request.Context(), token)
		if err != nil || revoked {
			c.Next()
			return
		}

		session, err := m.jwtSvc.Verify(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextSession, session)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// SessionFrom returns the authenticated session, or nil.
func SessionFrom(c *gin.Context) *model.Session {
	if v, ok := c.Get(ContextSession); ok {
		if session, ok := v.(*model.Session); ok {
			return session
		}
	}
	return nil
}

// TokenFrom returns the raw bearer token of the authenticated session.
func TokenFrom(c *gin.Context) string {
	return c.GetString(ContextToken)
}

// RequireAuth gates a group on any authenticated session.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		applyDecision(c, access.DecideAny(SessionFrom(c)))
	}
}

// RequireRole gates a group on one role.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		applyDecision(c, access.Decide(SessionFrom(c), role))
	}
}

// RequireAnyRole gates a group on a set of roles; the first allowing
// decision wins.
func (m *AuthMiddleware) RequireAnyRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var decision access.Decision
		for _, role := range roles {
			decision = access.Decide(SessionFrom(c), role)
			if decision.Kind == access.Allow {
				break
			}
		}
		applyDecision(c, decision)
	}
}

func applyDecision(c *gin.Context, decision access.Decision) {
	switch decision.Kind {
	case access.Allow:
		c.Next()
	case access.RedirectLogin:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"status":   "error",
			"message":  "authentication required",
			"redirect": decision.Target,
		})
	case access.RedirectRoleHome:
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":   "error",
			"message":  "insufficient role",
			"redirect": decision.Target,
		})
	}
}
