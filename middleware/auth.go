// middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sidhant-sriv/expiry-tracker/auth"
)

const accountKey = "account"

// AuthMiddleware resolves the caller on every request, from a Bearer access
// token or from HTTP Basic credentials, and stores the account in the context.
func AuthMiddleware(store *auth.Store, tokens *auth.TokenIssuer, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			acc auth.Account
			err error
		)

		authHeader := c.GetHeader("Authorization")
		switch {
		case strings.HasPrefix(authHeader, "Bearer "):
			var username string
			username, err = tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "), auth.AccessToken)
			if err == nil {
				// the account may have been removed since the token was issued
				acc, err = store.Lookup(username)
			}
		case strings.HasPrefix(authHeader, "Basic "):
			username, password, ok := c.Request.BasicAuth()
			if !ok {
				err = auth.ErrBadCredentials
				break
			}
			acc, err = store.Authenticate(username, password)
		default:
			c.Header("WWW-Authenticate", `Basic realm="expiry"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		if err != nil {
			log.Debug("authentication failed", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authError(err)})
			return
		}

		c.Set(accountKey, acc)
		c.Next()
	}
}

// authError maps an authentication failure to the message shown to the client.
func authError(err error) string {
	switch {
	case errors.Is(err, auth.ErrUnknownUser):
		return auth.ErrUnknownUser.Error()
	case errors.Is(err, auth.ErrBadCredentials):
		return auth.ErrBadCredentials.Error()
	default:
		return auth.ErrInvalidToken.Error()
	}
}

// RequireAdmin rejects callers whose section is not "all". It must run after
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		acc, ok := GetAccount(c)
		if !ok || !acc.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// GetAccount retrieves the authenticated account from the Gin context
func GetAccount(c *gin.Context) (auth.Account, bool) {
	v, exists := c.Get(accountKey)
	if !exists {
		return auth.Account{}, false
	}
	acc, ok := v.(auth.Account)
	return acc, ok
}
