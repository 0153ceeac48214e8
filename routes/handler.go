package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sidhant-sriv/expiry-tracker/auth"
	"github.com/sidhant-sriv/expiry-tracker/expiry"
	"github.com/sidhant-sriv/expiry-tracker/metrics"
	"github.com/sidhant-sriv/expiry-tracker/middleware"
	"github.com/sidhant-sriv/expiry-tracker/models"
)

// ProductRepository is the storage the handlers need. *db.ProductStore
// satisfies it.
type ProductRepository interface {
	Insert(ctx context.Context, p *models.Product) error
	ListAll(ctx context.Context) ([]models.Product, error)
	MarkDeleted(ctx context.Context, id uint) error
	DeletePermanently(ctx context.Context, ids []uint) error
	Ping(ctx context.Context) error
}

// Handler carries the dependencies shared by every route.
type Handler struct {
	Products ProductRepository
	Users    *auth.Store
	Tokens   *auth.TokenIssuer
	Sections []string
	Location *time.Location
	Log      *zap.Logger
	Metrics  *metrics.Metrics

	// Now is the clock used to decide what today is. Defaults to time.Now.
	Now func() time.Time
}

func (h *Handler) today() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return expiry.Today(now(), h.Location)
}

// Setup registers every route on router.
func Setup(router *gin.Engine, h *Handler) {
	router.GET("/health", h.Health())
	h.AuthRoutes(router)

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(h.Users, h.Tokens, h.Log))
	h.SectionRoutes(protected)
	h.ProductRoutes(protected)
	h.ChartRoutes(protected)
}
