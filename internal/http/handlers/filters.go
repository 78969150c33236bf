package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
	"github.com/Ronei-rcm/rare-toy-admin/internal/repositories"
)

type FilterHandlers struct {
	Repo repositories.SavedFilterRepository
}

// GET /api/filters
func (h FilterHandlers) List(c *gin.Context) {
	filters, err := h.Repo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if filters == nil {
		filters = []models.SavedFilter{}
	}
	c.JSON(http.StatusOK, gin.H{"filters": filters})
}

// POST /api/filters
// Creates when id is empty, updates otherwise.
func (h FilterHandlers) Save(c *gin.Context) {
	var f models.SavedFilter
	if !BindJSONOrError(c, &f) {
		return
	}

	saved, err := h.Repo.Save(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filter": saved})
}

// DELETE /api/filters/:id
func (h FilterHandlers) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "filter deleted"})
}
