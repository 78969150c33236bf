package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ronei-rcm/rare-toy-admin/internal/orders"
	"github.com/Ronei-rcm/rare-toy-admin/internal/services"
)

type ExportHandlers struct {
	Store  *orders.Store
	Export services.ExportService
}

// GET /api/orders/export?format=csv|excel|pdf
// Renders the filtered snapshot, so the download matches what the console
// currently shows.
func (h ExportHandlers) Download(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	format := services.ExportFormat(c.DefaultQuery("format", string(services.ExportCSV)))
	now := time.Now()
	visible := orders.ApplyFilters(h.Store.Orders(), criteria, now)

	data, filename, contentType, err := h.Export.Render(format, visible, now)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
