package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sidhant-sriv/expiry-tracker/expiry"
	"github.com/sidhant-sriv/expiry-tracker/metrics"
	"github.com/sidhant-sriv/expiry-tracker/middleware"
	"github.com/sidhant-sriv/expiry-tracker/views"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductRoutes sets up the entry, browse and deletion routes.
func (h *Handler) ProductRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.POST("", h.CreateProduct())
		products.GET("", h.ListProducts())
		products.GET("/export", h.ExportProducts())
		products.POST("/:product_id/mark-deleted", middleware.RequireAdmin(), h.MarkProductDeleted())
		products.DELETE("", middleware.RequireAdmin(), h.DeleteProducts())
	}
}

// CreateProduct handles the data-entry form.
func (h *Handler) CreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		acc, _ := middleware.GetAccount(c)

		var req views.EntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := views.BuildEntry(acc, req, h.Sections)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := h.Products.Insert(c.Request.Context(), product); err != nil {
			h.Log.Error("insert product", zap.String("user", acc.Username), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		h.Metrics.ProductsCreated.WithLabelValues(product.Section).Inc()

		c.JSON(http.StatusCreated, gin.H{"product": product})
	}
}

// ListProducts returns the browse table for the caller.
func (h *Handler) ListProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, ok := h.browse(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": rows, "count": len(rows)})
	}
}

// ExportProducts returns the browse table as an xlsx workbook.
func (h *Handler) ExportProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, ok := h.browse(c)
		if !ok {
			return
		}
		data, err := views.BrowseWorkbook(rows)
		if err != nil {
			h.Log.Error("export products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
			return
		}
		attachment(c, "products", h.today().Format("20060102"), data)
	}
}

// browse loads, classifies and filters the products. On failure it has
// already written the response.
func (h *Handler) browse(c *gin.Context) ([]views.Row, bool) {
	acc, _ := middleware.GetAccount(c)

	filter := views.Filter{
		Section: c.Query("section"),
		Barcode: c.Query("barcode"),
	}
	for _, s := range c.QueryArray("status") {
		status, err := expiry.ParseStatus(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, false
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	products, err := h.Products.ListAll(c.Request.Context())
	if err != nil {
		h.Log.Error("list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return nil, false
	}
	return views.Browse(acc, products, filter, h.today()), true
}

// MarkProductDeleted sets the soft-delete flag of one product.
func (h *Handler) MarkProductDeleted() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("product_id"), 10, 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		if err := h.Products.MarkDeleted(c.Request.Context(), uint(id)); err != nil {
			h.Log.Error("mark product deleted", zap.Uint64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark product as deleted"})
			return
		}
		h.Metrics.Deletions.WithLabelValues(metrics.DeleteSoft).Inc()

		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Product %d marked as deleted", id)})
	}
}

// DeleteProducts permanently removes the listed products.
func (h *Handler) DeleteProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDs []uint `json:"ids"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := h.Products.DeletePermanently(c.Request.Context(), req.IDs); err != nil {
			h.Log.Error("delete products", zap.Int("count", len(req.IDs)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete products"})
			return
		}
		h.Metrics.Deletions.WithLabelValues(metrics.DeleteHard).Add(float64(len(req.IDs)))

		c.JSON(http.StatusOK, gin.H{"message": "Products deleted successfully"})
	}
}

func attachment(c *gin.Context, name, stamp string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%s.xlsx"`, name, stamp))
	c.Data(http.StatusOK, xlsxContentType, data)
}
