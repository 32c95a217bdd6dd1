package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	couponapp "github.com/onestopfashion897-star/onestopfashion-backend/application/coupon"
	orderapp "github.com/onestopfashion897-star/onestopfashion-backend/application/order"
	productapp "github.com/onestopfashion897-star/onestopfashion-backend/application/product"
	userapp "github.com/onestopfashion897-star/onestopfashion-backend/application/user"
	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/errors"
	validatorx "github.com/onestopfashion897-star/onestopfashion-backend/utils/validator"
)

type RestHandler struct {
	UserApp    userapp.UserApp
	ProductApp productapp.ProductApp
	OrderApp   orderapp.OrderApp
	CouponApp  couponapp.CouponApp
}

func NewTransport(UserApp userapp.UserApp, ProductApp productapp.ProductApp, OrderApp orderapp.OrderApp, CouponApp couponapp.CouponApp, internalAPIKey string) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		UserApp:    UserApp,
		ProductApp: ProductApp,
		OrderApp:   OrderApp,
		CouponApp:  CouponApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	router.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	router.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{id}", rh.ProductDetail).Methods(http.MethodGet)
	router.HandleFunc("/coupons/validate", rh.ValidateCoupon).Methods(http.MethodPost)

	// Protected routes
	router.HandleFunc("/logout", rh.Logout).Methods(http.MethodPost)
	router.HandleFunc("/orders", rh.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders", rh.ListOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}/confirm-payment", rh.ConfirmPayment).Methods(http.MethodPost)

	// Admin routes
	router.HandleFunc("/orders/{id}/status", rh.UpdateOrderStatus).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{id}/payment-status", rh.UpdatePaymentStatus).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{id}/tracking", rh.UpdateTracking).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{id}/notes", rh.UpdateNotes).Methods(http.MethodPatch)
	router.HandleFunc("/products/{id}", rh.UpdateProduct).Methods(http.MethodPatch)
	router.HandleFunc("/coupons", rh.CreateCoupon).Methods(http.MethodPost)
	router.HandleFunc("/coupons", rh.ListCoupons).Methods(http.MethodGet)

	// Internal routes, guarded by the static API key
	internal := router.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/inventory/reconcile", rh.ReconcileInventory).Methods(http.MethodPost)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(UserApp))

	return router
}

// Register handler
// @Summary Register user
// @Description Register a new customer account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errorResponse
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errorResponse
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Logout handler
// @Summary Logout
// @Description Invalidate the current session
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} successResponse
// @Router /logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.UserApp.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
