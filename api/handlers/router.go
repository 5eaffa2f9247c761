package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wordwall/backend/internal/metrics"
)

const apiPrefix = "/api/v1"

// Controller registers its routes on the API group.
type Controller interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// WallCounter reports how many walls exist.
type WallCounter interface {
	Len() int
}

// RouterConfig holds what the router needs beyond its controllers.
type RouterConfig struct {
	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry
	Walls    WallCounter
}

// NewRouter builds the gin engine with health, metrics and API routes.
func NewRouter(config RouterConfig, controllers ...Controller) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(corsMiddleware())
	if config.Metrics != nil {
		r.Use(config.Metrics.Middleware())
	}

	r.GET("/health", func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if config.Walls != nil {
			body["walls"] = config.Walls.Len()
		}
		c.JSON(http.StatusOK, body)
	})

	if config.Registry != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(config.Registry)))
	}

	api := r.Group(apiPrefix)
	for _, controller := range controllers {
		controller.RegisterRoutes(api)
	}

	return r
}

// corsMiddleware returns a permissive CORS middleware for the browser client.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
