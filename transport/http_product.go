package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
	utilsContext "github.com/onestopfashion897-star/onestopfashion-backend/utils/context"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/errors"
	validatorx "github.com/onestopfashion897-star/onestopfashion-backend/utils/validator"
)

// ListProducts handler
// @Summary List products
// @Description Paginated storefront product list
// @Tags Products
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} model.ProductListResponse
// @Router /products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	res, err := s.ProductApp.List(r.Context(), page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ProductDetail handler
// @Summary Product detail
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errorResponse
// @Router /products/{id} [get]
func (s *RestHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	product, err := s.ProductApp.Detail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, product)
}

// UpdateProduct handler
// @Summary Update product
// @Description Partial admin edit of a product, including size buckets
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body model.UpdateProductRequest true "Update Request"
// @Success 200 {object} successResponse
// @Failure 403 {object} errorResponse
// @Router /products/{id} [patch]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !utilsContext.IsAdmin(ctx) {
		writeError(w, errors.SetCustomError(constant.ErrForbidden))
		return
	}

	var req model.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := s.ProductApp.Update(ctx, mux.Vars(r)["id"], &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
