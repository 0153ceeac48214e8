package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sidhant-sriv/expiry-tracker/middleware"
	"github.com/sidhant-sriv/expiry-tracker/models"
	"github.com/sidhant-sriv/expiry-tracker/views"
)

// ChartRoutes sets up the per-status quantity chart.
func (h *Handler) ChartRoutes(router *gin.RouterGroup) {
	chart := router.Group("/chart")
	{
		chart.GET("", h.GetChart())
		chart.GET("/export", h.ExportChart())
	}
}

// GetChart returns the quantity per status for the caller's section filter.
func (h *Handler) GetChart() gin.HandlerFunc {
	return func(c *gin.Context) {
		buckets, section, ok := h.chart(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"section": section, "buckets": buckets})
	}
}

// ExportChart returns the chart as an xlsx workbook.
func (h *Handler) ExportChart() gin.HandlerFunc {
	return func(c *gin.Context) {
		buckets, _, ok := h.chart(c)
		if !ok {
			return
		}
		data, err := views.ChartWorkbook(buckets)
		if err != nil {
			h.Log.Error("export chart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
			return
		}
		attachment(c, "chart", h.today().Format("20060102"), data)
	}
}

func (h *Handler) chart(c *gin.Context) ([]views.Bucket, string, bool) {
	acc, _ := middleware.GetAccount(c)

	section := c.Query("section")
	if !acc.IsAdmin() {
		section = acc.Section
	} else if section == "" {
		section = models.AllSections
	}

	products, err := h.Products.ListAll(c.Request.Context())
	if err != nil {
		h.Log.Error("list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return nil, "", false
	}
	return views.Chart(acc, products, section, h.today()), section, true
}
