package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the planner endpoints on rg.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/status", h.Status)
	rg.GET("/catalog/majors", h.GetMajors)
	rg.POST("/catalog/reload", h.PostReload)

	search := rg.Group("/search")
	{
		search.GET("", h.GetSearch)
		search.PUT("/options", h.PutOptions)
		search.POST("/more", h.PostMore)
		search.POST("/observe", h.PostObserve)
		search.POST("/open", h.PostOpen)
		search.DELETE("/target", h.DeleteTarget)
		search.POST("/select", h.PostSelect)
	}

	tables := rg.Group("/tables")
	{
		tables.GET("", h.GetTables)
		tables.POST("/:id/duplicate", h.PostDuplicate)
		tables.DELETE("/:id", h.DeleteTable)
		tables.GET("/:id/blocks", h.GetBlocks)
		tables.GET("/:id/cell", h.GetCell)
		tables.POST("/:id/click", h.PostClick)
		tables.DELETE("/:id/entries", h.DeleteEntries)
		tables.GET("/:id/export.ics", h.GetExport)
	}

	drag := rg.Group("/drag")
	{
		drag.POST("/start", h.PostDragStart)
		drag.POST("/end", h.PostDragEnd)
	}

	rg.DELETE("/blocks/:dragId", h.DeleteBlock)
}

// NewRouter builds the gin engine serving the planner under /api/v0.
func NewRouter(h *Handler, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), requestLogger(logger))
	RegisterRoutes(router.Group("/api/"+Version), h)
	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"requestId", c.GetString(requestIDKey),
		)
	}
}
