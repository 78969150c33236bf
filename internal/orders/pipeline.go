package orders

import (
	"sort"
	"strings"
	"time"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
)

// ApplyFilters is the pure filter/sort pipeline over an order snapshot. It
// never mutates its input, never errors, and is cheap enough to re-run on
// every keystroke. Stages run in a fixed order; a stage whose criterion is at
// its default/"all" value passes everything through.
func ApplyFilters(orders []models.Order, c models.FilterCriteria, now time.Time) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if !matchesSearch(o, c.SearchTerm) {
			continue
		}
		if c.StatusFilter != "" && c.StatusFilter != models.FilterAll && string(o.Status) != c.StatusFilter {
			continue
		}
		if c.PaymentFilter != "" && c.PaymentFilter != models.FilterAll && o.PaymentMethod != c.PaymentFilter {
			continue
		}
		if c.PriorityFilter != "" && c.PriorityFilter != models.FilterAll && string(o.Priority) != c.PriorityFilter {
			continue
		}
		if !matchesDateWindow(o.CreatedAt, c.DateFilter, now) {
			continue
		}
		if c.PriceRange.Min != nil && o.Total < *c.PriceRange.Min {
			continue
		}
		if c.PriceRange.Max != nil && o.Total > *c.PriceRange.Max {
			continue
		}
		if !matchesTags(o.Tags, c.TagsFilter) {
			continue
		}
		out = append(out, o)
	}

	sortOrders(out, c.SortBy, c.SortOrder)
	return out
}

// matchesSearch does a case-insensitive substring match across the fields a
// console user actually types: id, name, email, phone. Any hit matches.
func matchesSearch(o models.Order, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{o.ID, o.CustomerName, o.CustomerEmail, o.CustomerPhone} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesDateWindow(createdAt time.Time, window models.DateWindow, now time.Time) bool {
	switch window {
	case "", models.DateAll:
		return true
	case models.DateToday:
		y1, m1, d1 := createdAt.In(now.Location()).Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case models.DateWeek:
		return !createdAt.Before(now.Add(-7 * 24 * time.Hour))
	case models.DateMonth:
		return !createdAt.Before(now.Add(-30 * 24 * time.Hour))
	case models.DateYear:
		return !createdAt.Before(now.Add(-365 * 24 * time.Hour))
	default:
		// Unknown window behaves like "all" rather than erroring mid-typing.
		return true
	}
}

func matchesTags(tags, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		for _, t := range tags {
			if t == w {
				return true
			}
		}
	}
	return false
}

// sortOrders sorts in place, stably, so equal keys keep their input order. An
// unknown sort key compares everything equal and leaves the slice untouched.
func sortOrders(list []models.Order, by models.SortBy, order models.SortOrder) {
	cmp := comparator(by)
	if cmp == nil {
		return
	}
	desc := order == models.SortDesc

	sort.SliceStable(list, func(i, j int) bool {
		c := cmp(list[i], list[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func comparator(by models.SortBy) func(a, b models.Order) int {
	switch by {
	case models.SortByRecent:
		return func(a, b models.Order) int {
			switch {
			case a.CreatedAt.Before(b.CreatedAt):
				return -1
			case a.CreatedAt.After(b.CreatedAt):
				return 1
			default:
				return 0
			}
		}
	case models.SortByTotal:
		return func(a, b models.Order) int {
			switch {
			case a.Total < b.Total:
				return -1
			case a.Total > b.Total:
				return 1
			default:
				return 0
			}
		}
	case models.SortByCustomer:
		return func(a, b models.Order) int {
			return strings.Compare(strings.ToLower(a.CustomerName), strings.ToLower(b.CustomerName))
		}
	case models.SortByStatus:
		return func(a, b models.Order) int {
			return strings.Compare(string(a.Status), string(b.Status))
		}
	default:
		return nil
	}
}
