package httpapi

import (
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/maurice2k/shardqueue"
)

// NewRouter builds the gin engine exposing the task submission surface
// described in the HTTP runtime: POST /api/v1/tasks, GET /api/v1/stats,
// and GET /health.
func NewRouter(backend shardqueue.Backend, backendName string, shuttingDown *atomic.Bool, development bool) *gin.Engine {
	if !development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RequestLogger(), Recovery())

	handler := NewTaskHandler(backend, backendName, shuttingDown)

	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/tasks", handler.CreateTask)
		v1.GET("/stats", handler.Stats)
	}

	return router
}
