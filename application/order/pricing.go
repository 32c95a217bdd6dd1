package order

import (
	"github.com/shopspring/decimal"

	"github.com/onestopfashion897-star/onestopfashion-backend/cmd/config"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
)

// quote is the server-computed money breakdown for a checkout. The server is
// the source of truth: client-supplied figures are only accepted when they
// agree with a quote within the configured tolerance.
type quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// computeSubtotal sums unit price times quantity over the order lines.
func computeSubtotal(items []model.OrderItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	return subtotal.Round(2)
}

// shippingCost applies the flat-fee rule: free above the threshold or when a
// free-shipping coupon waives it, else the configured flat fee.
func shippingCost(cfg *config.OrderConfig, subtotal decimal.Decimal, waived bool) decimal.Decimal {
	if waived {
		return decimal.Zero
	}
	if subtotal.GreaterThan(decimal.NewFromFloat(cfg.FreeShippingThreshold)) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(cfg.ShippingFlatFee)
}

func buildQuote(cfg *config.OrderConfig, items []model.OrderItem, discount decimal.Decimal, freeShipping bool) quote {
	subtotal := computeSubtotal(items)
	shipping := shippingCost(cfg, subtotal, freeShipping)
	total := subtotal.Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount.Round(2),
		Total:    total.Round(2),
	}
}

// withinTolerance reports whether a client figure matches the server figure.
// A nil client figure always matches, the server value is used.
func withinTolerance(client *float64, server decimal.Decimal, tolerance float64) bool {
	if client == nil {
		return true
	}
	diff := decimal.NewFromFloat(*client).Sub(server).Abs()
	return diff.LessThanOrEqual(decimal.NewFromFloat(tolerance))
}
