package coupon_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	appcoupon "github.com/onestopfashion897-star/onestopfashion-backend/application/coupon"
	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	couponmocks "github.com/onestopfashion897-star/onestopfashion-backend/mocks/repository/coupon"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
	cerr "github.com/onestopfashion897-star/onestopfashion-backend/utils/errors"
)

func TestCouponApp_Validate(t *testing.T) {
	type fields struct {
		couponRepo *couponmocks.CouponRepository
	}
	type args struct {
		ctx context.Context
		req *model.ValidateCouponRequest
	}
	tests := []struct {
		name        string
		fields      fields
		args        args
		mockCall    func(f fields)
		want        *model.ValidateCouponResponse
		wantErrType constant.ErrorType
	}{
		{
			name:   "error: unknown or inactive code",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			args: args{
				ctx: context.Background(),
				req: &model.ValidateCouponRequest{Code: "NOPE", Subtotal: 500},
			},
			mockCall: func(f fields) {
				f.couponRepo.On("FindActiveByCode", mock.Anything, "NOPE").Return(nil, nil).Once()
			},
			wantErrType: constant.ErrCouponInvalid,
		},
		{
			name:   "error: repository failure",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			args: args{
				ctx: context.Background(),
				req: &model.ValidateCouponRequest{Code: "WELCOME20", Subtotal: 500},
			},
			mockCall: func(f fields) {
				f.couponRepo.On("FindActiveByCode", mock.Anything, "WELCOME20").Return(nil, errors.New("db error")).Once()
			},
			wantErrType: constant.ErrInternal,
		},
		{
			name:   "error: subtotal below minimum",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			args: args{
				ctx: context.Background(),
				req: &model.ValidateCouponRequest{Code: "BIGSPEND", Subtotal: 500},
			},
			mockCall: func(f fields) {
				f.couponRepo.On("FindActiveByCode", mock.Anything, "BIGSPEND").Return(&model.Coupon{
					Code:         "BIGSPEND",
					DiscountType: constant.DiscountTypeFixed,
					Value:        200,
					MinAmount:    800,
					Active:       true,
				}, nil).Once()
			},
			wantErrType: constant.ErrCouponMinAmount,
		},
		{
			name:   "error: subtotal above maximum",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			args: args{
				ctx: context.Background(),
				req: &model.ValidateCouponRequest{Code: "SMALLCART", Subtotal: 5000},
			},
			mockCall: func(f fields) {
				f.couponRepo.On("FindActiveByCode", mock.Anything, "SMALLCART").Return(&model.Coupon{
					Code:         "SMALLCART",
					DiscountType: constant.DiscountTypeFixed,
					Value:        100,
					MaxAmount:    2000,
					Active:       true,
				}, nil).Once()
			},
			wantErrType: constant.ErrCouponMaxAmount,
		},
		{
			name:   "error: usage limit exhausted",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			args: args{
				ctx: context.Background(),
				req: &model.ValidateCouponRequest{Code: "LIMITED", Subtotal: 500},
			},
			mockCall: func(f fields) {
				f.couponRepo.On("FindActiveByCode", mock.Anything, "LIMITED").Return(&model.Coupon{
					Code:         "LIMITED",
					DiscountType: constant.DiscountTypeFixed,
					Value:        50,
					UsageLimit:   100,
					UsedCount:    100,
					Active:       true,
				}, nil).Once()
			},
			wantErrType: constant.ErrCouponUsageLimit,
		},
		{
			name:   "success: percentage discount",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			args: args{
				ctx: context.Background(),
				req: &model.ValidateCouponRequest{Code: "WELCOME20", Subtotal: 1797},
			},
			mockCall: func(f fields) {
				f.couponRepo.On("FindActiveByCode", mock.Anything, "WELCOME20").Return(&model.Coupon{
					Code:         "WELCOME20",
					DiscountType: constant.DiscountTypePercentage,
					Value:        20,
					Active:       true,
				}, nil).Once()
			},
			want: &model.ValidateCouponResponse{
				Code:         "WELCOME20",
				DiscountType: constant.DiscountTypePercentage,
				Discount:     359.4,
			},
		},
		{
			name:   "success: percentage discount capped",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			args: args{
				ctx: context.Background(),
				req: &model.ValidateCouponRequest{Code: "WELCOME20", Subtotal: 10000},
			},
			mockCall: func(f fields) {
				f.couponRepo.On("FindActiveByCode", mock.Anything, "WELCOME20").Return(&model.Coupon{
					Code:         "WELCOME20",
					DiscountType: constant.DiscountTypePercentage,
					Value:        20,
					MaxDiscount:  500,
					Active:       true,
				}, nil).Once()
			},
			want: &model.ValidateCouponResponse{
				Code:         "WELCOME20",
				DiscountType: constant.DiscountTypePercentage,
				Discount:     500,
			},
		},
		{
			name:   "success: fixed discount never exceeds the subtotal",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			args: args{
				ctx: context.Background(),
				req: &model.ValidateCouponRequest{Code: "FLAT800", Subtotal: 500},
			},
			mockCall: func(f fields) {
				f.couponRepo.On("FindActiveByCode", mock.Anything, "FLAT800").Return(&model.Coupon{
					Code:         "FLAT800",
					DiscountType: constant.DiscountTypeFixed,
					Value:        800,
					Active:       true,
				}, nil).Once()
			},
			want: &model.ValidateCouponResponse{
				Code:         "FLAT800",
				DiscountType: constant.DiscountTypeFixed,
				Discount:     500,
			},
		},
		{
			name:   "success: free shipping grants no currency discount",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			args: args{
				ctx: context.Background(),
				req: &model.ValidateCouponRequest{Code: "SHIPFREE", Subtotal: 500},
			},
			mockCall: func(f fields) {
				f.couponRepo.On("FindActiveByCode", mock.Anything, "SHIPFREE").Return(&model.Coupon{
					Code:         "SHIPFREE",
					DiscountType: constant.DiscountTypeFreeShipping,
					Active:       true,
				}, nil).Once()
			},
			want: &model.ValidateCouponResponse{
				Code:         "SHIPFREE",
				DiscountType: constant.DiscountTypeFreeShipping,
				Discount:     0,
				FreeShipping: true,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcoupon.NewCouponApp(tt.fields.couponRepo)

			got, err := app.Validate(tt.args.ctx, tt.args.req)
			if tt.wantErrType != constant.Successful {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T (%v), want CustomError", err, err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.wantErrType] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.wantErrType])
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got.Code != tt.want.Code || got.DiscountType != tt.want.DiscountType ||
				got.Discount != tt.want.Discount || got.FreeShipping != tt.want.FreeShipping {
				t.Fatalf("Validate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCouponApp_Redeem(t *testing.T) {
	type fields struct {
		couponRepo *couponmocks.CouponRepository
	}
	tests := []struct {
		name        string
		fields      fields
		code        string
		mockCall    func(f fields)
		wantErrType constant.ErrorType
	}{
		{
			name:   "success: usage consumed",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			code:   "WELCOME20",
			mockCall: func(f fields) {
				f.couponRepo.On("Redeem", mock.Anything, "WELCOME20").Return(true, nil).Once()
			},
		},
		{
			name:   "error: guard rejected the increment",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			code:   "LIMITED",
			mockCall: func(f fields) {
				f.couponRepo.On("Redeem", mock.Anything, "LIMITED").Return(false, nil).Once()
			},
			wantErrType: constant.ErrCouponUsageLimit,
		},
		{
			name:   "error: repository failure",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			code:   "WELCOME20",
			mockCall: func(f fields) {
				f.couponRepo.On("Redeem", mock.Anything, "WELCOME20").Return(false, errors.New("db error")).Once()
			},
			wantErrType: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcoupon.NewCouponApp(tt.fields.couponRepo)

			err := app.Redeem(context.Background(), tt.code)
			if tt.wantErrType != constant.Successful {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T (%v), want CustomError", err, err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.wantErrType] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.wantErrType])
				}
				return
			}
			if err != nil {
				t.Fatalf("Redeem() error = %v", err)
			}
		})
	}
}

func TestCouponApp_Release(t *testing.T) {
	type fields struct {
		couponRepo *couponmocks.CouponRepository
	}
	tests := []struct {
		name        string
		fields      fields
		code        string
		mockCall    func(f fields)
		wantErrType constant.ErrorType
	}{
		{
			name:   "success: usage handed back",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			code:   "WELCOME20",
			mockCall: func(f fields) {
				f.couponRepo.On("Release", mock.Anything, "WELCOME20").Return(true, nil).Once()
			},
		},
		{
			name:   "success: nothing to hand back is not an error",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			code:   "UNUSED",
			mockCall: func(f fields) {
				f.couponRepo.On("Release", mock.Anything, "UNUSED").Return(false, nil).Once()
			},
		},
		{
			name:   "error: repository failure",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			code:   "WELCOME20",
			mockCall: func(f fields) {
				f.couponRepo.On("Release", mock.Anything, "WELCOME20").Return(false, errors.New("db error")).Once()
			},
			wantErrType: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcoupon.NewCouponApp(tt.fields.couponRepo)

			err := app.Release(context.Background(), tt.code)
			if tt.wantErrType != constant.Successful {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T (%v), want CustomError", err, err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.wantErrType] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.wantErrType])
				}
				return
			}
			if err != nil {
				t.Fatalf("Release() error = %v", err)
			}
		})
	}
}

func TestCouponApp_Create(t *testing.T) {
	type fields struct {
		couponRepo *couponmocks.CouponRepository
	}
	tests := []struct {
		name        string
		fields      fields
		req         *model.CreateCouponRequest
		mockCall    func(f fields)
		wantErrType constant.ErrorType
	}{
		{
			name:   "error: unknown discount type",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			req: &model.CreateCouponRequest{
				Code:         "weird",
				DiscountType: "bogo",
				Value:        1,
			},
			wantErrType: constant.ErrInvalidRequest,
		},
		{
			name:   "success: code upper-cased and validity defaulted",
			fields: fields{couponRepo: couponmocks.NewCouponRepository(t)},
			req: &model.CreateCouponRequest{
				Code:         "welcome20",
				DiscountType: constant.DiscountTypePercentage,
				Value:        20,
				UsageLimit:   100,
				Active:       true,
			},
			mockCall: func(f fields) {
				f.couponRepo.
					On("Insert", mock.Anything, mock.MatchedBy(func(c *model.Coupon) bool {
						return c.Code == "WELCOME20" &&
							c.UsageLimit == 100 &&
							!c.ValidFrom.IsZero() &&
							c.ValidUntil.After(time.Now())
					})).
					Return(func(ctx context.Context, c *model.Coupon) (*model.Coupon, error) {
						return c, nil
					}).
					Once()
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcoupon.NewCouponApp(tt.fields.couponRepo)

			got, err := app.Create(context.Background(), tt.req)
			if tt.wantErrType != constant.Successful {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T (%v), want CustomError", err, err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.wantErrType] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.wantErrType])
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if got.Code != "WELCOME20" {
				t.Fatalf("code = %s, want WELCOME20", got.Code)
			}
		})
	}
}
