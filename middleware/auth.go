package middleware

import (
	"errors"
	"net/http"
	"strings"

	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

const (
	ctxClaims  = "auth.claims"
	ctxProfile = "auth.profile"
)

type Authenticator struct {
	Tokens   *services.TokenService
	Denylist services.Denylist
	Profiles *services.ProfileService
}

func NewAuthenticator(tokens *services.TokenService, deny services.Denylist, profiles *services.ProfileService) *Authenticator {
	return &Authenticator{Tokens: tokens, Denylist: deny, Profiles: profiles}
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireAuth accepts a valid, not signed-out bearer token.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.AbortJSONError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := a.Tokens.Parse(token)
		if err != nil {
			utils.AbortJSONError(c, http.StatusUnauthorized, err.Error())
			return
		}
		revoked, err := a.Denylist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			_ = c.Error(err)
			utils.AbortJSONError(c, http.StatusInternalServerError, "session check failed")
			return
		}
		if revoked {
			utils.AbortJSONError(c, http.StatusUnauthorized, "session signed out")
			return
		}
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// RequireRoles must run after RequireAuth. The role is read from the
// profile on every request so role changes apply immediately.
func (a *Authenticator) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil {
			utils.AbortJSONError(c, http.StatusUnauthorized, "not signed in")
			return
		}
		profile, err := a.Profiles.Get(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				utils.AbortJSONError(c, http.StatusForbidden, "profile not found")
				return
			}
			_ = c.Error(err)
			utils.AbortJSONError(c, http.StatusInternalServerError, "profile lookup failed")
			return
		}
		if !profile.HasRole(roles...) {
			utils.AbortJSONError(c, http.StatusForbidden, "forbidden for role "+profile.Role)
			return
		}
		c.Set(ctxProfile, profile)
		c.Next()
	}
}

func CurrentClaims(c *gin.Context) *services.Claims {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.Claims)
	return claims
}

func CurrentUserID(c *gin.Context) string {
	if claims := CurrentClaims(c); claims != nil {
		return claims.Subject
	}
	return ""
}

func CurrentProfile(c *gin.Context) (models.Profile, bool) {
	v, ok := c.Get(ctxProfile)
	if !ok {
		return models.Profile{}, false
	}
	p, ok := v.(models.Profile)
	return p, ok
}
