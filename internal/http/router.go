package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/kovalchuka569/taskflow/internal/http/handlers"
	httpMW "github.com/kovalchuka569/taskflow/internal/http/middleware"
	"github.com/kovalchuka569/taskflow/internal/observability"
	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

type RouterConfig struct {
	TodoHandler   *httpH.TodoHandler
	HealthHandler *httpH.HealthHandler

	Metrics      *observability.Metrics
	Log          *logger.Logger
	ServiceName  string
	AllowOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowOrigins))
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Metrics
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Todos
		if cfg.TodoHandler != nil {
			api.GET("/todos", cfg.TodoHandler.ListByProject)
			api.POST("/todos", cfg.TodoHandler.Create)
			api.GET("/todos/:todoId", cfg.TodoHandler.Get)
			api.PATCH("/todos/:todoId/title", cfg.TodoHandler.UpdateTitle)
			api.PATCH("/todos/:todoId/description", cfg.TodoHandler.UpdateDescription)
			api.PATCH("/todos/:todoId/priority", cfg.TodoHandler.UpdatePriority)
			api.PATCH("/todos/:todoId/status", cfg.TodoHandler.UpdateStatus)
			api.DELETE("/todos/:todoId", cfg.TodoHandler.Delete)
		}
	}

	return r
}
