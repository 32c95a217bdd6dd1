package constant

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

var validOrderStatus = map[OrderStatus]struct{}{
	OrderStatusPending:    {},
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

var validPaymentStatus = map[PaymentStatus]struct{}{
	PaymentStatusPending:  {},
	PaymentStatusPaid:     {},
	PaymentStatusFailed:   {},
	PaymentStatusRefunded: {},
}

// IsValidOrderStatus reports whether s is a known order status. Transitions
// between statuses are not restricted, admin updates may set any value.
func IsValidOrderStatus(s OrderStatus) bool {
	_, ok := validOrderStatus[s]
	return ok
}

func IsValidPaymentStatus(s PaymentStatus) bool {
	_, ok := validPaymentStatus[s]
	return ok
}

func IsValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}
