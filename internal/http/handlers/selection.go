package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ronei-rcm/rare-toy-admin/internal/backend"
	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
	"github.com/Ronei-rcm/rare-toy-admin/internal/http/middleware"
	"github.com/Ronei-rcm/rare-toy-admin/internal/orders"
)

type SelectionHandlers struct {
	Store        *orders.Store
	Coordinators *orders.CoordinatorRegistry
}

func (h SelectionHandlers) coordinator(c *gin.Context) *orders.Coordinator {
	authCtx, _ := middleware.GetAuthContext(c)
	return h.Coordinators.ForSession(authCtx.Subject)
}

// GET /api/selection
func (h SelectionHandlers) Get(c *gin.Context) {
	coord := h.coordinator(c)
	c.JSON(http.StatusOK, gin.H{
		"selected": coord.Selected(),
		"state":    coord.State(),
	})
}

type toggleRequest struct {
	OrderID string `json:"order_id"`
}

// POST /api/selection/toggle
func (h SelectionHandlers) Toggle(c *gin.Context) {
	var req toggleRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	coord := h.coordinator(c)
	if err := coord.Toggle(req.OrderID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": coord.Selected()})
}

// POST /api/selection/all
// Selects exactly the ids visible under the criteria in the query params,
// never rows the current filter hides.
func (h SelectionHandlers) SelectAllVisible(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	visible := orders.ApplyFilters(h.Store.Orders(), criteria, time.Now())
	coord := h.coordinator(c)
	if err := coord.SelectAllVisible(visible); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": coord.Selected()})
}

// POST /api/selection/clear
func (h SelectionHandlers) Clear(c *gin.Context) {
	if err := h.coordinator(c).Clear(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": []string{}})
}

type bulkPrepareRequest struct {
	Action models.BulkActionType `json:"action"`
	Reason string                `json:"reason"`
}

// POST /api/bulk/prepare
// Stages the action; nothing is sent until the explicit confirm.
func (h SelectionHandlers) BulkPrepare(c *gin.Context) {
	var req bulkPrepareRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	coord := h.coordinator(c)
	count, err := coord.Prepare(req.Action, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":  coord.State(),
		"action": req.Action,
		"count":  count,
	})
}

// POST /api/bulk/confirm
func (h SelectionHandlers) BulkConfirm(c *gin.Context) {
	ctx := backend.WithRequestID(c.Request.Context(), middleware.GetRequestID(c))

	coord := h.coordinator(c)
	result, err := coord.Confirm(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":  coord.State(),
		"result": result,
	})
}

// POST /api/bulk/cancel
func (h SelectionHandlers) BulkCancel(c *gin.Context) {
	coord := h.coordinator(c)
	if err := coord.Cancel(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": coord.State()})
}
