package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
)

// parseCriteria builds FilterCriteria from query params. Malformed numeric
// bounds are rejected here, at the boundary; the pipeline itself never errors.
func parseCriteria(c *gin.Context) (models.FilterCriteria, error) {
	criteria := models.DefaultCriteria()

	criteria.SearchTerm = strings.TrimSpace(c.Query("search"))

	if v := strings.TrimSpace(c.Query("status")); v != "" {
		if v != models.FilterAll && !models.ValidOrderStatus(models.OrderStatus(v)) {
			return criteria, domain.ValidationError{Field: "status", Msg: "unknown order status"}
		}
		criteria.StatusFilter = v
	}
	if v := strings.TrimSpace(c.Query("payment")); v != "" {
		criteria.PaymentFilter = v
	}
	if v := strings.TrimSpace(c.Query("priority")); v != "" {
		if v != models.FilterAll && !models.ValidOrderPriority(models.OrderPriority(v)) {
			return criteria, domain.ValidationError{Field: "priority", Msg: "unknown priority"}
		}
		criteria.PriorityFilter = v
	}
	if v := strings.TrimSpace(c.Query("date")); v != "" {
		switch models.DateWindow(v) {
		case models.DateAll, models.DateToday, models.DateWeek, models.DateMonth, models.DateYear:
			criteria.DateFilter = models.DateWindow(v)
		default:
			return criteria, domain.ValidationError{Field: "date", Msg: "unknown date window"}
		}
	}

	var err error
	if criteria.PriceRange.Min, err = parsePrice(c.Query("min_price"), "min_price"); err != nil {
		return criteria, err
	}
	if criteria.PriceRange.Max, err = parsePrice(c.Query("max_price"), "max_price"); err != nil {
		return criteria, err
	}

	if v := strings.TrimSpace(c.Query("tags")); v != "" {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				criteria.TagsFilter = append(criteria.TagsFilter, tag)
			}
		}
	}

	if v := strings.TrimSpace(c.Query("sort_by")); v != "" {
		switch models.SortBy(v) {
		case models.SortByRecent, models.SortByTotal, models.SortByCustomer, models.SortByStatus:
			criteria.SortBy = models.SortBy(v)
		default:
			return criteria, domain.ValidationError{Field: "sort_by", Msg: "unknown sort key"}
		}
	}
	if v := strings.TrimSpace(c.Query("sort_order")); v != "" {
		switch models.SortOrder(v) {
		case models.SortAsc, models.SortDesc:
			criteria.SortOrder = models.SortOrder(v)
		default:
			return criteria, domain.ValidationError{Field: "sort_order", Msg: "must be asc or desc"}
		}
	}

	return criteria, nil
}

func parsePrice(raw, field string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.ValidationError{Field: field, Msg: "must be a number", Err: err}
	}
	return &v, nil
}
