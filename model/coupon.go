package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
)

// Coupon codes are stored upper-cased, lookups upper-case the input.
type Coupon struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Code         string                `bson:"code" json:"code"`
	DiscountType constant.DiscountType `bson:"discountType" json:"discount_type"`
	Value        float64               `bson:"value" json:"value"`
	MaxDiscount  float64               `bson:"maxDiscount,omitempty" json:"max_discount,omitempty"`
	MinAmount    float64               `bson:"minAmount" json:"min_amount"`
	MaxAmount    float64               `bson:"maxAmount,omitempty" json:"max_amount,omitempty"`
	UsageLimit   int                   `bson:"usageLimit,omitempty" json:"usage_limit,omitempty"`
	UsedCount    int                   `bson:"usedCount" json:"used_count"`
	ValidFrom    time.Time             `bson:"validFrom" json:"valid_from"`
	ValidUntil   time.Time             `bson:"validUntil" json:"valid_until"`
	Active       bool                  `bson:"active" json:"active"`
	CreatedAt    time.Time             `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time             `bson:"updatedAt" json:"updated_at"`
}

type ValidateCouponRequest struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

type ValidateCouponResponse struct {
	Code         string                `json:"code"`
	DiscountType constant.DiscountType `json:"discount_type"`
	Discount     float64               `json:"discount"`
	FreeShipping bool                  `json:"free_shipping"`
}

type CreateCouponRequest struct {
	Code         string                `json:"code" validate:"required"`
	DiscountType constant.DiscountType `json:"discount_type" validate:"required"`
	Value        float64               `json:"value" validate:"gte=0"`
	MaxDiscount  float64               `json:"max_discount" validate:"gte=0"`
	MinAmount    float64               `json:"min_amount" validate:"gte=0"`
	MaxAmount    float64               `json:"max_amount" validate:"gte=0"`
	UsageLimit   int                   `json:"usage_limit" validate:"gte=0"`
	ValidFrom    time.Time             `json:"valid_from"`
	ValidUntil   time.Time             `json:"valid_until"`
	Active       bool                  `json:"active"`
}
