package product

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
	productrepo "github.com/onestopfashion897-star/onestopfashion-backend/repository/product"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/errors"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/logger"
)

type ProductApp interface {
	List(ctx context.Context, page, perPage int) (*model.ProductListResponse, error)
	Detail(ctx context.Context, id string) (*model.Product, error)
	Update(ctx context.Context, id string, req *model.UpdateProductRequest) error
}

type productAppImpl struct {
	productRepo productrepo.ProductRepository
}

func NewProductApp(productRepo productrepo.ProductRepository) ProductApp {
	return &productAppImpl{productRepo: productRepo}
}

func (s *productAppImpl) List(ctx context.Context, page, perPage int) (*model.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	items, total, err := s.productRepo.List(ctx, page, perPage)
	if err != nil {
		logger.Error("[List] err productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ProductListResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

func (s *productAppImpl) Detail(ctx context.Context, id string) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	product, err := s.productRepo.FindByID(ctx, oid)
	if err != nil {
		logger.Error("[Detail] err productRepo.FindByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return product, nil
}

// Update applies a partial admin edit. Replacing the size buckets keeps the
// flat stock consistent by resetting it to the bucket sum.
func (s *productAppImpl) Update(ctx context.Context, id string, req *model.UpdateProductRequest) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}
	if req.SizeStocks != nil {
		total := 0
		for _, b := range req.SizeStocks {
			total += b.Stock
		}
		fields["sizeStocks"] = req.SizeStocks
		fields["stock"] = total
	} else if req.Stock != nil {
		fields["stock"] = *req.Stock
	}
	if len(fields) == 0 {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	matched, err := s.productRepo.Update(ctx, oid, fields)
	if err != nil {
		logger.Error("[Update] err productRepo.Update", zap.String("product_id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !matched {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return nil
}
