package transport_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	usermocks "github.com/onestopfashion897-star/onestopfashion-backend/mocks/application/user"
	"github.com/onestopfashion897-star/onestopfashion-backend/transport"
	utilsContext "github.com/onestopfashion897-star/onestopfashion-backend/utils/context"
)

func TestAuthMiddleware(t *testing.T) {
	type fields struct {
		userApp *usermocks.UserApp
	}
	type args struct {
		method string
		path   string
		header string
		cookie string
	}
	tests := []struct {
		name       string
		fields     fields
		args       args
		mockCall   func(f fields)
		wantStatus int
		wantUserID string
		wantRole   string
	}{
		{
			name:       "public product listing passes without a token",
			fields:     fields{userApp: usermocks.NewUserApp(t)},
			args:       args{method: http.MethodGet, path: "/products"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "checkout without a token is unauthorized",
			fields:     fields{userApp: usermocks.NewUserApp(t)},
			args:       args{method: http.MethodPost, path: "/orders"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "rejected token is unauthorized",
			fields: fields{userApp: usermocks.NewUserApp(t)},
			args:   args{method: http.MethodPost, path: "/orders", header: "Bearer stale"},
			mockCall: func(f fields) {
				f.userApp.
					On("ValidateToken", mock.Anything, "stale").
					Return("", "", errors.New("session evicted")).
					Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid bearer token embeds identity into the context",
			fields: fields{userApp: usermocks.NewUserApp(t)},
			args:   args{method: http.MethodPost, path: "/orders", header: "Bearer good"},
			mockCall: func(f fields) {
				f.userApp.
					On("ValidateToken", mock.Anything, "good").
					Return("64f000000000000000000001", constant.RoleCustomer, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantUserID: "64f000000000000000000001",
			wantRole:   constant.RoleCustomer,
		},
		{
			name:   "cookie token works for browser clients",
			fields: fields{userApp: usermocks.NewUserApp(t)},
			args:   args{method: http.MethodGet, path: "/orders/abc", cookie: "cookie-token"},
			mockCall: func(f fields) {
				f.userApp.
					On("ValidateToken", mock.Anything, "cookie-token").
					Return("64f000000000000000000002", constant.RoleAdmin, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantUserID: "64f000000000000000000002",
			wantRole:   constant.RoleAdmin,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}

			var gotUserID, gotRole string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = utilsContext.GetUserID(r.Context())
				gotRole, _ = utilsContext.GetUserRole(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			handler := transport.AuthMiddleware(tt.fields.userApp)(next)

			req := httptest.NewRequest(tt.args.method, tt.args.path, nil)
			if tt.args.header != "" {
				req.Header.Set("Authorization", tt.args.header)
			}
			if tt.args.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tt.args.cookie})
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantUserID != "" && gotUserID != tt.wantUserID {
				t.Fatalf("context userID = %q, want %q", gotUserID, tt.wantUserID)
			}
			if tt.wantRole != "" && gotRole != tt.wantRole {
				t.Fatalf("context role = %q, want %q", gotRole, tt.wantRole)
			}
		})
	}
}
