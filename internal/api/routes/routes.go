package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/restopos/inventory-service/internal/api/middleware"
	auditH "github.com/restopos/inventory-service/internal/audit/handler"
	liquorH "github.com/restopos/inventory-service/internal/liquor/handler"
	orderH "github.com/restopos/inventory-service/internal/order/handler"
	stockH "github.com/restopos/inventory-service/internal/stock/handler"
	"go.uber.org/zap"
)

type Handlers struct {
	Stock  *stockH.StockHandler
	Liquor *liquorH.LiquorHandler
	Order  *orderH.OrderHandler
	Audit  *auditH.AuditHandler
}

// SetupRouter mounts the API under /api/v1 plus the operational endpoints.
func SetupRouter(appEnv string, h Handlers, logger *zap.Logger) *gin.Engine {
	if appEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	h.Stock.RegisterRoutes(v1.Group("/stock"))
	h.Liquor.RegisterRoutes(v1.Group("/liquor"))
	h.Order.RegisterRoutes(v1.Group("/orders"))
	h.Audit.RegisterRoutes(v1.Group("/audit"))

	return router
}
