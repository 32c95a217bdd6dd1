package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
	"github.com/onestopfashion897-star/onestopfashion-backend/thirdparty/rabbitmq"
	utilsContext "github.com/onestopfashion897-star/onestopfashion-backend/utils/context"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/errors"
	validatorx "github.com/onestopfashion897-star/onestopfashion-backend/utils/validator"
)

// CreateOrder handler
// @Summary Create order
// @Description Checkout the cart into a new order
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateOrderRequest true "Create Order Request"
// @Success 200 {object} model.Order
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /orders [post]
func (s *RestHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	order, err := s.OrderApp.CreateOrder(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{"order": order})
}

// GetOrder handler
// @Summary Get order
// @Description Fetch a single order, owners see their own, admins see any
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} model.Order
// @Failure 404 {object} errorResponse
// @Router /orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	order, err := s.OrderApp.GetOrder(ctx, userID, utilsContext.IsAdmin(ctx), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{"order": order})
}

// ListOrders handler
// @Summary List orders
// @Description Paginated admin order list with status filter and free-text search
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param status query string false "Status filter"
// @Param search query string false "Search over order id, recipient name, phone"
// @Success 200 {object} model.OrderListResponse
// @Failure 403 {object} errorResponse
// @Router /orders [get]
func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !utilsContext.IsAdmin(ctx) {
		writeError(w, errors.SetCustomError(constant.ErrForbidden))
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	res, err := s.OrderApp.ListOrders(ctx, &model.OrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: constant.OrderStatus(q.Get("status")),
		Search: q.Get("search"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ConfirmPayment handler
// @Summary Confirm payment
// @Description Flip a pending order to paid/processing after online payment
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorResponse
// @Router /orders/{id}/confirm-payment [post]
func (s *RestHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.OrderApp.ConfirmPayment(ctx, userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// UpdateOrderStatus handler
// @Summary Update order status
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body model.UpdateStatusRequest true "Status"
// @Success 200 {object} successResponse
// @Failure 403 {object} errorResponse
// @Router /orders/{id}/status [patch]
func (s *RestHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	s.adminOrderUpdate(w, r, func(orderID string) error {
		var req model.UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return errors.SetCustomError(constant.ErrInvalidRequest)
		}
		return s.OrderApp.UpdateStatus(r.Context(), orderID, req.Status)
	})
}

// UpdatePaymentStatus handler
// @Summary Update payment status
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body model.UpdatePaymentStatusRequest true "Payment Status"
// @Success 200 {object} successResponse
// @Router /orders/{id}/payment-status [patch]
func (s *RestHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	s.adminOrderUpdate(w, r, func(orderID string) error {
		var req model.UpdatePaymentStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return errors.SetCustomError(constant.ErrInvalidRequest)
		}
		return s.OrderApp.UpdatePaymentStatus(r.Context(), orderID, req.PaymentStatus)
	})
}

// UpdateTracking handler
// @Summary Update tracking number
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body model.UpdateTrackingRequest true "Tracking"
// @Success 200 {object} successResponse
// @Router /orders/{id}/tracking [patch]
func (s *RestHandler) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	s.adminOrderUpdate(w, r, func(orderID string) error {
		var req model.UpdateTrackingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return errors.SetCustomError(constant.ErrInvalidRequest)
		}
		if err := validatorx.ValidateStruct(&req); err != nil {
			return errors.SetCustomError(constant.ErrInvalidRequest)
		}
		return s.OrderApp.UpdateTracking(r.Context(), orderID, req.TrackingNumber)
	})
}

// UpdateNotes handler
// @Summary Update internal notes
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body model.UpdateNotesRequest true "Notes"
// @Success 200 {object} successResponse
// @Router /orders/{id}/notes [patch]
func (s *RestHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	s.adminOrderUpdate(w, r, func(orderID string) error {
		var req model.UpdateNotesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return errors.SetCustomError(constant.ErrInvalidRequest)
		}
		return s.OrderApp.UpdateNotes(r.Context(), orderID, req.Notes)
	})
}

// adminOrderUpdate wraps the single-field order mutators with the admin gate.
func (s *RestHandler) adminOrderUpdate(w http.ResponseWriter, r *http.Request, fn func(orderID string) error) {
	if !utilsContext.IsAdmin(r.Context()) {
		writeError(w, errors.SetCustomError(constant.ErrForbidden))
		return
	}

	if err := fn(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// ReconcileInventory handler replays a failed stock decrement. Reached only
// through the internal subrouter, which checks the static API key.
func (s *RestHandler) ReconcileInventory(w http.ResponseWriter, r *http.Request) {
	var msg rabbitmq.StockAdjustmentMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.OrderApp.ReconcileStock(r.Context(), &msg); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
