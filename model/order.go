package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
)

// OrderItem is a snapshot of one cart line at checkout time. Name, price and
// image are copied from the product so later edits don't rewrite history.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"productId" json:"product_id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Size        string             `bson:"size,omitempty" json:"size,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	VariantID   string             `bson:"variantId,omitempty" json:"variant_id,omitempty"`
	VariantName string             `bson:"variantName,omitempty" json:"variant_name,omitempty"`
	VariantType string             `bson:"variantType,omitempty" json:"variant_type,omitempty"`
}

type ShippingAddress struct {
	Name       string `bson:"name" json:"name" validate:"required"`
	Phone      string `bson:"phone" json:"phone" validate:"required"`
	Line1      string `bson:"line1" json:"line1" validate:"required"`
	Line2      string `bson:"line2,omitempty" json:"line2,omitempty"`
	City       string `bson:"city" json:"city" validate:"required"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postalCode" json:"postal_code" validate:"required"`
}

type Order struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	OrderID         string                 `bson:"orderId" json:"order_id"`
	UserID          primitive.ObjectID     `bson:"userId" json:"user_id"`
	Items           []OrderItem            `bson:"items" json:"items"`
	ShippingAddress ShippingAddress        `bson:"shippingAddress" json:"shipping_address"`
	PaymentMethod   constant.PaymentMethod `bson:"paymentMethod" json:"payment_method"`
	PaymentStatus   constant.PaymentStatus `bson:"paymentStatus" json:"payment_status"`
	Status          constant.OrderStatus   `bson:"status" json:"status"`
	Subtotal        float64                `bson:"subtotal" json:"subtotal"`
	ShippingCost    float64                `bson:"shippingCost" json:"shipping_cost"`
	Discount        float64                `bson:"discount" json:"discount"`
	Total           float64                `bson:"total" json:"total"`
	CouponCode      string                 `bson:"couponCode,omitempty" json:"coupon_code,omitempty"`
	TrackingNumber  string                 `bson:"trackingNumber,omitempty" json:"tracking_number,omitempty"`
	Notes           string                 `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time              `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updated_at"`
}

type CreateOrderItem struct {
	ProductID   string  `json:"product_id" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Size        string  `json:"size"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	VariantID   string  `json:"variant_id"`
	VariantName string  `json:"variant_name"`
	VariantType string  `json:"variant_type"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem      `json:"items" validate:"dive"`
	ShippingAddress *ShippingAddress       `json:"shipping_address"`
	PaymentMethod   constant.PaymentMethod `json:"payment_method"`
	CouponCode      string                 `json:"coupon_code"`

	// Client-computed figures. The server recomputes all of them and only
	// accepts these when they agree within the configured tolerance.
	Subtotal     *float64 `json:"subtotal"`
	ShippingCost *float64 `json:"shipping_cost"`
	Discount     *float64 `json:"discount"`
	Total        *float64 `json:"total"`
}

// OrderListItem carries the joined user display fields for the admin list.
type OrderListItem struct {
	Order     `bson:",inline"`
	UserName  string `bson:"userName" json:"user_name,omitempty"`
	UserEmail string `bson:"userEmail" json:"user_email,omitempty"`
}

type OrderListFilter struct {
	Page   int
	Limit  int
	Status constant.OrderStatus
	Search string
}

type OrderListResponse struct {
	Items      []OrderListItem `json:"items"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
}

type UpdateStatusRequest struct {
	Status constant.OrderStatus `json:"status" validate:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus constant.PaymentStatus `json:"payment_status" validate:"required"`
}

type UpdateTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}
