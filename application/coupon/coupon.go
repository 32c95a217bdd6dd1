package coupon

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
	couponrepo "github.com/onestopfashion897-star/onestopfashion-backend/repository/coupon"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/errors"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/logger"
)

type CouponApp interface {
	Validate(ctx context.Context, req *model.ValidateCouponRequest) (*model.ValidateCouponResponse, error)
	Redeem(ctx context.Context, code string) error
	Release(ctx context.Context, code string) error
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
}

type couponAppImpl struct {
	couponRepo couponrepo.CouponRepository
}

func NewCouponApp(couponRepo couponrepo.CouponRepository) CouponApp {
	return &couponAppImpl{couponRepo: couponRepo}
}

// Validate checks a code against a subtotal and computes the discount it
// would grant. It never consumes usage, redemption happens at checkout.
func (s *couponAppImpl) Validate(ctx context.Context, req *model.ValidateCouponRequest) (*model.ValidateCouponResponse, error) {
	coupon, err := s.couponRepo.FindActiveByCode(ctx, req.Code)
	if err != nil {
		logger.Error("[Validate] err couponRepo.FindActiveByCode", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if coupon == nil {
		return nil, errors.SetCustomError(constant.ErrCouponInvalid)
	}

	if req.Subtotal < coupon.MinAmount {
		return nil, errors.SetCustomError(constant.ErrCouponMinAmount)
	}
	if coupon.MaxAmount > 0 && req.Subtotal > coupon.MaxAmount {
		return nil, errors.SetCustomError(constant.ErrCouponMaxAmount)
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, errors.SetCustomError(constant.ErrCouponUsageLimit)
	}

	discount, freeShipping := ComputeDiscount(coupon, decimal.NewFromFloat(req.Subtotal))

	return &model.ValidateCouponResponse{
		Code:         coupon.Code,
		DiscountType: coupon.DiscountType,
		Discount:     discount.InexactFloat64(),
		FreeShipping: freeShipping,
	}, nil
}

// ComputeDiscount returns the currency discount for a coupon applied to a
// subtotal, and whether the coupon waives shipping instead.
func ComputeDiscount(coupon *model.Coupon, subtotal decimal.Decimal) (decimal.Decimal, bool) {
	switch coupon.DiscountType {
	case constant.DiscountTypePercentage:
		discount := subtotal.Mul(decimal.NewFromFloat(coupon.Value)).Div(decimal.NewFromInt(100))
		if coupon.MaxDiscount > 0 {
			maxDiscount := decimal.NewFromFloat(coupon.MaxDiscount)
			if discount.GreaterThan(maxDiscount) {
				discount = maxDiscount
			}
		}
		return discount.Round(2), false
	case constant.DiscountTypeFixed:
		discount := decimal.NewFromFloat(coupon.Value)
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
		return discount.Round(2), false
	case constant.DiscountTypeFreeShipping:
		return decimal.Zero, true
	}
	return decimal.Zero, false
}

// Redeem consumes one usage of the coupon. The repository guards the
// usage limit in the update filter, so a lost race surfaces here as an error
// before any order is persisted.
func (s *couponAppImpl) Redeem(ctx context.Context, code string) error {
	ok, err := s.couponRepo.Redeem(ctx, code)
	if err != nil {
		logger.Error("[Redeem] err couponRepo.Redeem", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return errors.SetCustomError(constant.ErrCouponUsageLimit)
	}
	return nil
}

// Release is the compensation for Redeem: it hands one usage back when the
// checkout that consumed it fails to persist an order.
func (s *couponAppImpl) Release(ctx context.Context, code string) error {
	ok, err := s.couponRepo.Release(ctx, code)
	if err != nil {
		logger.Error("[Release] err couponRepo.Release", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		logger.Warn("[Release] no usage to hand back", zap.String("coupon", code))
	}
	return nil
}

func (s *couponAppImpl) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	if !constant.IsValidDiscountType(req.DiscountType) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	validUntil := req.ValidUntil
	if validUntil.IsZero() {
		validUntil = time.Now().AddDate(1, 0, 0)
	}
	validFrom := req.ValidFrom
	if validFrom.IsZero() {
		validFrom = time.Now()
	}

	coupon := &model.Coupon{
		Code:         strings.ToUpper(req.Code),
		DiscountType: req.DiscountType,
		Value:        req.Value,
		MaxDiscount:  req.MaxDiscount,
		MinAmount:    req.MinAmount,
		MaxAmount:    req.MaxAmount,
		UsageLimit:   req.UsageLimit,
		ValidFrom:    validFrom,
		ValidUntil:   validUntil,
		Active:       req.Active,
	}

	coupon, err := s.couponRepo.Insert(ctx, coupon)
	if err != nil {
		logger.Error("[Create] err couponRepo.Insert", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return coupon, nil
}

func (s *couponAppImpl) List(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		logger.Error("[List] err couponRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return coupons, nil
}
