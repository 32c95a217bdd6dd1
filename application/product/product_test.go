package product_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	appproduct "github.com/onestopfashion897-star/onestopfashion-backend/application/product"
	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	productmocks "github.com/onestopfashion897-star/onestopfashion-backend/mocks/repository/product"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
	cerr "github.com/onestopfashion897-star/onestopfashion-backend/utils/errors"
)

func TestProductApp_List(t *testing.T) {
	type fields struct {
		productRepo *productmocks.ProductRepository
	}
	type args struct {
		ctx     context.Context
		page    int
		perPage int
	}
	tests := []struct {
		name        string
		fields      fields
		args        args
		mockCall    func(f fields)
		want        *model.ProductListResponse
		wantErrType constant.ErrorType
	}{
		{
			name:   "success: list with pagination",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			args:   args{ctx: context.Background(), page: 1, perPage: 10},
			mockCall: func(f fields) {
				items := []model.Product{
					{Name: "Linen Tee", Price: 499, Stock: 14, Active: true},
					{Name: "Denim Jacket", Price: 1299, Stock: 6, Active: true},
				}
				f.productRepo.
					On("List", mock.Anything, 1, 10).
					Return(items, int64(2), nil).
					Once()
			},
			want: &model.ProductListResponse{
				Items: []model.Product{
					{Name: "Linen Tee", Price: 499, Stock: 14, Active: true},
					{Name: "Denim Jacket", Price: 1299, Stock: 6, Active: true},
				},
				TotalCount: 2,
				Page:       1,
				PerPage:    10,
			},
		},
		{
			name:   "success: zero paging falls back to defaults",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			args:   args{ctx: context.Background(), page: 0, perPage: 0},
			mockCall: func(f fields) {
				f.productRepo.
					On("List", mock.Anything, 1, 20).
					Return([]model.Product{}, int64(0), nil).
					Once()
			},
			want: &model.ProductListResponse{
				Items:      []model.Product{},
				TotalCount: 0,
				Page:       1,
				PerPage:    20,
			},
		},
		{
			name:   "error: repository List returns error",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			args:   args{ctx: context.Background(), page: 1, perPage: 10},
			mockCall: func(f fields) {
				f.productRepo.
					On("List", mock.Anything, 1, 10).
					Return(nil, int64(0), errors.New("db error")).
					Once()
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
			app := appproduct.NewProductApp(tt.fields.productRepo)

			got, err := app.List(tt.args.ctx, tt.args.page, tt.args.perPage)
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
				t.Fatalf("List() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("List() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductApp_Update(t *testing.T) {
	productID := primitive.NewObjectID()
	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }

	type fields struct {
		productRepo *productmocks.ProductRepository
	}
	tests := []struct {
		name        string
		fields      fields
		id          string
		req         *model.UpdateProductRequest
		mockCall    func(f fields)
		wantErrType constant.ErrorType
	}{
		{
			name:        "error: malformed id",
			fields:      fields{productRepo: productmocks.NewProductRepository(t)},
			id:          "nope",
			req:         &model.UpdateProductRequest{Name: strPtr("Linen Tee")},
			wantErrType: constant.ErrInvalidRequest,
		},
		{
			name:        "error: empty edit",
			fields:      fields{productRepo: productmocks.NewProductRepository(t)},
			id:          productID.Hex(),
			req:         &model.UpdateProductRequest{},
			wantErrType: constant.ErrInvalidRequest,
		},
		{
			name:   "error: product gone",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			id:     productID.Hex(),
			req:    &model.UpdateProductRequest{Stock: intPtr(5)},
			mockCall: func(f fields) {
				f.productRepo.
					On("Update", mock.Anything, productID, bson.M{"stock": 5}).
					Return(false, nil).
					Once()
			},
			wantErrType: constant.ErrNotFound,
		},
		{
			name:   "success: replacing buckets resets the flat stock",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			id:     productID.Hex(),
			req: &model.UpdateProductRequest{
				SizeStocks: []model.SizeStock{
					{Size: "M", Stock: 7},
					{Size: "L", Stock: 3},
				},
			},
			mockCall: func(f fields) {
				f.productRepo.
					On("Update", mock.Anything, productID, bson.M{
						"sizeStocks": []model.SizeStock{
							{Size: "M", Stock: 7},
							{Size: "L", Stock: 3},
						},
						"stock": 10,
					}).
					Return(true, nil).
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
			app := appproduct.NewProductApp(tt.fields.productRepo)

			err := app.Update(context.Background(), tt.id, tt.req)
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
				t.Fatalf("Update() error = %v", err)
			}
		})
	}
}

func TestProductApp_Detail(t *testing.T) {
	productID := primitive.NewObjectID()

	type fields struct {
		productRepo *productmocks.ProductRepository
	}
	tests := []struct {
		name        string
		fields      fields
		id          string
		mockCall    func(f fields)
		wantErrType constant.ErrorType
	}{
		{
			name:        "error: malformed id",
			fields:      fields{productRepo: productmocks.NewProductRepository(t)},
			id:          "nope",
			wantErrType: constant.ErrInvalidRequest,
		},
		{
			name:   "error: product not found",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			id:     productID.Hex(),
			mockCall: func(f fields) {
				f.productRepo.On("FindByID", mock.Anything, productID).Return(nil, nil).Once()
			},
			wantErrType: constant.ErrNotFound,
		},
		{
			name:   "success: product returned with size buckets",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			id:     productID.Hex(),
			mockCall: func(f fields) {
				f.productRepo.
					On("FindByID", mock.Anything, productID).
					Return(&model.Product{
						ID:    productID,
						Name:  "Linen Tee",
						Price: 499,
						Stock: 14,
						SizeStocks: []model.SizeStock{
							{Size: "M", Stock: 10},
							{Size: "L", Stock: 4},
						},
						Active: true,
					}, nil).
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
			app := appproduct.NewProductApp(tt.fields.productRepo)

			got, err := app.Detail(context.Background(), tt.id)
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
				t.Fatalf("Detail() error = %v", err)
			}
			if got.ID != productID {
				t.Fatalf("id = %s, want %s", got.ID.Hex(), productID.Hex())
			}
		})
	}
}
