package handlers

import (
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
)

func ginContextWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/orders?"+rawQuery, nil)
	return c
}

func TestParseCriteriaDefaults(t *testing.T) {
	c := ginContextWithQuery(t, "")

	criteria, err := parseCriteria(c)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !reflect.DeepEqual(criteria, models.DefaultCriteria()) {
		t.Fatalf("empty query should yield defaults, got %+v", criteria)
	}
}

func TestParseCriteriaFullQuery(t *testing.T) {
	c := ginContextWithQuery(t,
		"search=lego&status=pending&payment=card&priority=high&date=week&min_price=10.5&max_price=99&tags=vip,gift&sort_by=total&sort_order=asc")

	criteria, err := parseCriteria(c)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if criteria.SearchTerm != "lego" ||
		criteria.StatusFilter != "pending" ||
		criteria.PaymentFilter != "card" ||
		criteria.PriorityFilter != "high" ||
		criteria.DateFilter != models.DateWeek {
		t.Fatalf("predicates not parsed: %+v", criteria)
	}
	if criteria.PriceRange.Min == nil || *criteria.PriceRange.Min != 10.5 {
		t.Fatalf("min price not parsed: %+v", criteria.PriceRange)
	}
	if criteria.PriceRange.Max == nil || *criteria.PriceRange.Max != 99 {
		t.Fatalf("max price not parsed: %+v", criteria.PriceRange)
	}
	if len(criteria.TagsFilter) != 2 || criteria.TagsFilter[0] != "vip" || criteria.TagsFilter[1] != "gift" {
		t.Fatalf("tags not parsed: %v", criteria.TagsFilter)
	}
	if criteria.SortBy != models.SortByTotal || criteria.SortOrder != models.SortAsc {
		t.Fatalf("sort not parsed: %+v", criteria)
	}
}

func TestParseCriteriaRejectsMalformedValues(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"non-numeric min price", "min_price=cheap"},
		{"non-numeric max price", "max_price=1e!"},
		{"unknown status", "status=teleported"},
		{"unknown priority", "priority=asap"},
		{"unknown date window", "date=fortnight"},
		{"unknown sort key", "sort_by=color"},
		{"bad sort order", "sort_order=sideways"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := ginContextWithQuery(t, tc.query)
			if _, err := parseCriteria(c); !domain.IsValidation(err) {
				t.Fatalf("expected ValidationError for %q, got %v", tc.query, err)
			}
		})
	}
}

func TestParseCriteriaAllowsInvertedPriceRange(t *testing.T) {
	// min > max is legal at the boundary; the pipeline just matches nothing.
	c := ginContextWithQuery(t, "min_price=50&max_price=10")

	criteria, err := parseCriteria(c)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if *criteria.PriceRange.Min != 50 || *criteria.PriceRange.Max != 10 {
		t.Fatalf("bounds should be kept literally: %+v", criteria.PriceRange)
	}
}
