package transport

import (
	"encoding/json"
	"net/http"

	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
	utilsContext "github.com/onestopfashion897-star/onestopfashion-backend/utils/context"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/errors"
	validatorx "github.com/onestopfashion897-star/onestopfashion-backend/utils/validator"
)

// ValidateCoupon handler
// @Summary Validate coupon
// @Description Check a coupon code against a subtotal and return the discount
// @Tags Coupons
// @Accept json
// @Produce json
// @Param request body model.ValidateCouponRequest true "Validate Request"
// @Success 200 {object} model.ValidateCouponResponse
// @Failure 400 {object} errorResponse
// @Router /coupons/validate [post]
func (s *RestHandler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req model.ValidateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := s.CouponApp.Validate(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateCoupon handler
// @Summary Create coupon
// @Tags Coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateCouponRequest true "Create Request"
// @Success 200 {object} model.Coupon
// @Failure 403 {object} errorResponse
// @Router /coupons [post]
func (s *RestHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !utilsContext.IsAdmin(ctx) {
		writeError(w, errors.SetCustomError(constant.ErrForbidden))
		return
	}

	var req model.CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	coupon, err := s.CouponApp.Create(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, coupon)
}

// ListCoupons handler
// @Summary List coupons
// @Tags Coupons
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Coupon
// @Failure 403 {object} errorResponse
// @Router /coupons [get]
func (s *RestHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !utilsContext.IsAdmin(ctx) {
		writeError(w, errors.SetCustomError(constant.ErrForbidden))
		return
	}

	coupons, err := s.CouponApp.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, coupons)
}
