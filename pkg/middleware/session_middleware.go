package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"zenjourney/pkg/utils"
)

// SessionCookie holds the signed session token.
const SessionCookie = "session"

const identityKey = "identity"

type SessionValidator interface {
	ValidateSessionToken(token string) (*utils.Identity, error)
}

// SessionMiddleware attaches the identity from a valid session cookie, or from
// an Authorization bearer header carrying a session token. Invalid or missing
// credentials leave the request anonymous.
func SessionMiddleware(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if token != "" {
			if identity, err := validator.ValidateSessionToken(token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// CurrentIdentity returns the verified caller, or nil for anonymous requests.
func CurrentIdentity(c *gin.Context) *utils.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*utils.Identity)
	return identity
}

// RequireSession redirects anonymous page requests to the login page.
func RequireSession(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			c.Redirect(http.StatusSeeOther, loginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSessionAPI rejects anonymous API requests with 401.
func RequireSessionAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RoleMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil || identity.Role != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}

// SafeNext keeps post-login redirects on this site.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}
