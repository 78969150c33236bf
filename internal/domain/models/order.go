package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known statuses. The client
// never validates transitions between statuses, only the value itself; the
// backend stays the authority on which moves are legal.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderPriority string

const (
	PriorityLow    OrderPriority = "low"
	PriorityMedium OrderPriority = "medium"
	PriorityHigh   OrderPriority = "high"
	PriorityUrgent OrderPriority = "urgent"
)

func ValidOrderPriority(p OrderPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Order mirrors the commerce backend's order payload.
type Order struct {
	ID            string        `json:"id"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerPhone string        `json:"customerPhone,omitempty"`
	Status        OrderStatus   `json:"status"`
	PaymentMethod string        `json:"paymentMethod"`
	Total         float64       `json:"total"`
	ItemsCount    int           `json:"itemsCount"`
	CreatedAt     time.Time     `json:"createdAt"`
	Priority      OrderPriority `json:"priority,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
}

// OrderStats carries the aggregate counters shown on the console dashboard.
type OrderStats struct {
	TotalOrders     int     `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingOrders   int     `json:"pendingOrders"`
	ShippedOrders   int     `json:"shippedOrders"`
	DeliveredOrders int     `json:"deliveredOrders"`
	CancelledOrders int     `json:"cancelledOrders"`
	TodayOrders     int     `json:"todayOrders"`
	TodayRevenue    float64 `json:"todayRevenue"`
}

// BulkActionType names a batched operation applied to selected orders.
type BulkActionType string

const (
	BulkActionConfirm BulkActionType = "confirm"
	BulkActionShip    BulkActionType = "ship"
	BulkActionDeliver BulkActionType = "deliver"
	BulkActionCancel  BulkActionType = "cancel"
	BulkActionNotify  BulkActionType = "notify"
	BulkActionNote    BulkActionType = "note"
)

func ValidBulkAction(a BulkActionType) bool {
	switch a {
	case BulkActionConfirm, BulkActionShip, BulkActionDeliver,
		BulkActionCancel, BulkActionNotify, BulkActionNote:
		return true
	}
	return false
}

type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult reports the per-order outcome of a batched action. Partial
// failure is normal; callers decide whether to retry the failed subset.
type BulkResult struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// AllFailed reports whether no order in the batch went through.
func (r BulkResult) AllFailed() bool {
	return len(r.Succeeded) == 0 && len(r.Failed) > 0
}
