package constant

type DiscountType string

const (
	DiscountTypePercentage   DiscountType = "percentage"
	DiscountTypeFixed        DiscountType = "fixed"
	DiscountTypeFreeShipping DiscountType = "free-shipping"
)

func IsValidDiscountType(t DiscountType) bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixed, DiscountTypeFreeShipping:
		return true
	}
	return false
}
