package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrForbidden
	ErrCredentialExists
	ErrInvalidPassword
	ErrItemsRequired
	ErrAddressRequired
	ErrInvalidStatus
	ErrTotalMismatch
	ErrOrderCreateFailed
	ErrCouponInvalid
	ErrCouponMinAmount
	ErrCouponMaxAmount
	ErrCouponUsageLimit
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:           "success",
	ErrInternal:          "error internal",
	ErrNotFound:          "data not found",
	ErrInvalidRequest:    "invalid request",
	ErrUnauthorize:       "authentication required",
	ErrForbidden:         "insufficient permission",
	ErrCredentialExists:  "email or phone already exists",
	ErrInvalidPassword:   "password invalid",
	ErrItemsRequired:     "items required",
	ErrAddressRequired:   "address required",
	ErrInvalidStatus:     "invalid status value",
	ErrTotalMismatch:     "order total does not match server calculation",
	ErrOrderCreateFailed: "failed to create order",
	ErrCouponInvalid:     "coupon not found or expired",
	ErrCouponMinAmount:   "order amount below coupon minimum",
	ErrCouponMaxAmount:   "order amount above coupon maximum",
	ErrCouponUsageLimit:  "coupon usage limit reached",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:           http.StatusOK,
	ErrInternal:          http.StatusInternalServerError,
	ErrNotFound:          http.StatusNotFound,
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrUnauthorize:       http.StatusUnauthorized,
	ErrForbidden:         http.StatusForbidden,
	ErrCredentialExists:  http.StatusBadRequest,
	ErrInvalidPassword:   http.StatusBadRequest,
	ErrItemsRequired:     http.StatusBadRequest,
	ErrAddressRequired:   http.StatusBadRequest,
	ErrInvalidStatus:     http.StatusBadRequest,
	ErrTotalMismatch:     http.StatusBadRequest,
	ErrOrderCreateFailed: http.StatusInternalServerError,
	ErrCouponInvalid:     http.StatusBadRequest,
	ErrCouponMinAmount:   http.StatusBadRequest,
	ErrCouponMaxAmount:   http.StatusBadRequest,
	ErrCouponUsageLimit:  http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:           "0000",
	ErrInternal:          "0001",
	ErrNotFound:          "0002",
	ErrInvalidRequest:    "0003",
	ErrUnauthorize:       "0004",
	ErrForbidden:         "0005",
	ErrCredentialExists:  "0006",
	ErrInvalidPassword:   "0007",
	ErrItemsRequired:     "0008",
	ErrAddressRequired:   "0009",
	ErrInvalidStatus:     "0010",
	ErrTotalMismatch:     "0011",
	ErrOrderCreateFailed: "0012",
	ErrCouponInvalid:     "0013",
	ErrCouponMinAmount:   "0014",
	ErrCouponMaxAmount:   "0015",
	ErrCouponUsageLimit:  "0016",
}
