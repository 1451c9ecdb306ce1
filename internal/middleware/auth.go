package middleware

import (
	"net/http"

	"github.com/dsaslb/restaurant-management-system/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"

	// SessionCookie carries the signed session token. HTTP-only and
	// SameSite=Strict; Secure outside development.
	SessionCookie = "session"
)

// SessionClaims are the custom claims embedded in every session token.
// The role here is authoritative for authorization decisions — it is not
// re-fetched from the account store on the fast path.
type SessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionAuth validates the session cookie on every protected route.
// Fail closed: a missing cookie, bad signature, malformed claims, and an
// expired token all produce the same unauthenticated response so callers
// cannot distinguish the cases.
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Unauthenticated("authentication required"))
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid || claims.Username == "" || claims.Role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Unauthenticated("authentication required"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose session role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		// No claims means SessionAuth never ran on this route; refuse
		// rather than panic through MustGet.
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Unauthenticated("authentication required"))
			return
		}
		if !allowed[claims.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.Forbidden("insufficient permissions"))
			return
		}
		c.Next()
	}
}

// GetClaims retrieves typed claims from the Gin context, nil when absent.
func GetClaims(c *gin.Context) *SessionClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*SessionClaims)
	return claims
}

// SetSessionCookie attaches the signed token to the response.
func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie (logout).
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
