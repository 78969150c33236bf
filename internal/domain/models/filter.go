package models

// SortBy selects the key used by the sort stage of the filter pipeline.
type SortBy string

const (
	SortByRecent   SortBy = "recent"
	SortByTotal    SortBy = "total"
	SortByCustomer SortBy = "customer"
	SortByStatus   SortBy = "status"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DateWindow names a relative createdAt window computed from "now" at
// filter-evaluation time.
type DateWindow string

const (
	DateAll   DateWindow = "all"
	DateToday DateWindow = "today"
	DateWeek  DateWindow = "week"
	DateMonth DateWindow = "month"
	DateYear  DateWindow = "year"
)

// PriceRange bounds the order total. Both bounds are optional and applied
// independently, so an inverted range (min > max) simply matches nothing.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// FilterCriteria is the full set of predicate and sort parameters a console
// user can apply to the order list. The zero-ish value from DefaultCriteria
// passes every order through unchanged.
type FilterCriteria struct {
	SearchTerm     string     `json:"searchTerm"`
	StatusFilter   string     `json:"statusFilter"`
	PaymentFilter  string     `json:"paymentFilter"`
	DateFilter     DateWindow `json:"dateFilter"`
	PriorityFilter string     `json:"priorityFilter"`
	PriceRange     PriceRange `json:"priceRange"`
	TagsFilter     []string   `json:"tagsFilter,omitempty"`
	SortBy         SortBy     `json:"sortBy"`
	SortOrder      SortOrder  `json:"sortOrder"`
}

const FilterAll = "all"

func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		StatusFilter:   FilterAll,
		PaymentFilter:  FilterAll,
		DateFilter:     DateAll,
		PriorityFilter: FilterAll,
		SortBy:         SortByRecent,
		SortOrder:      SortDesc,
	}
}

// SavedFilter is a named snapshot of FilterCriteria kept for reuse.
type SavedFilter struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Filters FilterCriteria `json:"filters"`
}
