package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Ronei-rcm/rare-toy-admin/internal/auth"
	intconfig "github.com/Ronei-rcm/rare-toy-admin/internal/config"
	h "github.com/Ronei-rcm/rare-toy-admin/internal/http/handlers"
	"github.com/Ronei-rcm/rare-toy-admin/internal/http/middleware"
	"github.com/Ronei-rcm/rare-toy-admin/internal/orders"
	"github.com/Ronei-rcm/rare-toy-admin/internal/repositories"
	"github.com/Ronei-rcm/rare-toy-admin/internal/services"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Env          intconfig.Env
	Store        *orders.Store
	Coordinators *orders.CoordinatorRegistry
	Filters      repositories.SavedFilterRepository
	Export       services.ExportService
	Auth         *auth.Service
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(deps.Env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logrus.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	orderH := h.OrderHandlers{Store: deps.Store}
	selectionH := h.SelectionHandlers{Store: deps.Store, Coordinators: deps.Coordinators}
	filterH := h.FilterHandlers{Repo: deps.Filters}
	exportH := h.ExportHandlers{Store: deps.Store, Export: deps.Export}
	authH := h.AuthHandlers{Service: deps.Auth}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", h.Health)
		apiGroup.POST("/auth/login", authH.Login)

		protected := apiGroup.Group("")
		protected.Use(middleware.RequireAuth(deps.Auth))
		{
			protected.GET("/routes", h.Routes)

			ordersGroup := protected.Group("/orders")
			ordersGroup.GET("", orderH.List)
			ordersGroup.POST("/refresh", orderH.Refresh)
			ordersGroup.GET("/stats", orderH.Stats)
			ordersGroup.GET("/export", exportH.Download)
			ordersGroup.PATCH("/:id/status", orderH.UpdateStatus)

			selection := protected.Group("/selection")
			selection.GET("", selectionH.Get)
			selection.POST("/toggle", selectionH.Toggle)
			selection.POST("/all", selectionH.SelectAllVisible)
			selection.POST("/clear", selectionH.Clear)

			bulk := protected.Group("/bulk")
			bulk.POST("/prepare", selectionH.BulkPrepare)
			bulk.POST("/confirm", selectionH.BulkConfirm)
			bulk.POST("/cancel", selectionH.BulkCancel)

			filters := protected.Group("/filters")
			filters.GET("", filterH.List)
			filters.POST("", filterH.Save)
			filters.DELETE("/:id", filterH.Delete)
		}
	}

	h.SetRouter(r)
	return r
}
