package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/expiry-tracker/middleware"
	"github.com/sidhant-sriv/expiry-tracker/views"
)

// SectionRoutes sets up the section listing.
func (h *Handler) SectionRoutes(router *gin.RouterGroup) {
	router.GET("/sections", h.ListSections())
}

// ListSections returns the sections the caller may enter and filter.
func (h *Handler) ListSections() gin.HandlerFunc {
	return func(c *gin.Context) {
		acc, _ := middleware.GetAccount(c)
		c.JSON(http.StatusOK, gin.H{"sections": views.VisibleSections(acc, h.Sections)})
	}
}
