// routes/auth.go
package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sidhant-sriv/expiry-tracker/auth"
	"github.com/sidhant-sriv/expiry-tracker/metrics"
	"github.com/sidhant-sriv/expiry-tracker/middleware"
)

// AuthRoutes sets up /auth/login, /auth/refresh and /auth/me.
func (h *Handler) AuthRoutes(router *gin.Engine) {
	group := router.Group("/auth")
	{
		group.POST("/login", h.Login())
		group.POST("/refresh", h.RefreshToken())
		group.GET("/me", middleware.AuthMiddleware(h.Users, h.Tokens, h.Log), h.Me())
	}
}

// Login checks a username and password against the credential table.
func (h *Handler) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&loginRequest); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		acc, err := h.Users.Authenticate(loginRequest.Username, loginRequest.Password)
		if err != nil {
			result := metrics.LoginBadCredentials
			if errors.Is(err, auth.ErrUnknownUser) {
				result = metrics.LoginUnknownUser
			}
			h.Metrics.Logins.WithLabelValues(result).Inc()
			h.Log.Info("login failed", zap.String("username", loginRequest.Username), zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.Metrics.Logins.WithLabelValues(metrics.LoginOK).Inc()

		accessToken, refreshToken, err := h.Tokens.Issue(acc.Username)
		if err != nil {
			h.Log.Error("issue tokens", zap.String("username", acc.Username), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate login tokens"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Login successful",
			"user":          acc,
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		})
	}
}

// RefreshToken trades a valid refresh token for a new token pair.
func (h *Handler) RefreshToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var refreshRequest struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&refreshRequest); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		username, err := h.Tokens.Parse(refreshRequest.RefreshToken, auth.RefreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
			return
		}
		// the user may have been removed from the configuration since
		if _, err := h.Users.Lookup(username); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		accessToken, refreshToken, err := h.Tokens.Issue(username)
		if err != nil {
			h.Log.Error("issue tokens", zap.String("username", username), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate new tokens"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Tokens refreshed successfully",
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		})
	}
}

// Me reports who is logged in.
func (h *Handler) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		acc, _ := middleware.GetAccount(c)
		c.JSON(http.StatusOK, gin.H{
			"user":    acc,
			"admin":   acc.IsAdmin(),
			"message": fmt.Sprintf("welcome, %s (%s)", acc.Username, acc.Section),
		})
	}
}
