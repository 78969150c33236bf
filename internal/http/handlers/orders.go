package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ronei-rcm/rare-toy-admin/internal/backend"
	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
	"github.com/Ronei-rcm/rare-toy-admin/internal/http/middleware"
	"github.com/Ronei-rcm/rare-toy-admin/internal/orders"
)

type OrderHandlers struct {
	Store *orders.Store
}

// GET /api/orders
// The snapshot filtered through the pipeline; criteria come in as query params.
func (h OrderHandlers) List(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	visible := orders.ApplyFilters(h.Store.Orders(), criteria, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"orders":    visible,
		"total":     len(visible),
		"loaded_at": h.Store.LoadedAt(),
	})
}

// POST /api/orders/refresh
// Manual reload; never queued behind the auto-refresh loop.
func (h OrderHandlers) Refresh(c *gin.Context) {
	ctx := backend.WithRequestID(c.Request.Context(), middleware.GetRequestID(c))

	page := domain.PageParams{
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 100),
	}
	if err := h.Store.LoadOrders(ctx, page); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.Store.LoadStats(ctx); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "snapshot refreshed",
		"count":     len(h.Store.Orders()),
		"loaded_at": h.Store.LoadedAt(),
	})
}

// GET /api/orders/stats
func (h OrderHandlers) Stats(c *gin.Context) {
	stats, loadedAt := h.Store.Stats()
	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"loaded_at": loadedAt,
	})
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// PATCH /api/orders/:id/status
func (h OrderHandlers) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	ctx := backend.WithRequestID(c.Request.Context(), middleware.GetRequestID(c))
	if err := h.Store.UpdateOrderStatus(ctx, c.Param("id"), req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
