package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	appuser "github.com/onestopfashion897-star/onestopfashion-backend/application/user"
	"github.com/onestopfashion897-star/onestopfashion-backend/cmd/config"
	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	redismocks "github.com/onestopfashion897-star/onestopfashion-backend/mocks/repository/redis"
	usermocks "github.com/onestopfashion897-star/onestopfashion-backend/mocks/repository/user"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
	cerr "github.com/onestopfashion897-star/onestopfashion-backend/utils/errors"
)

func authConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
		},
	}
}

func signTestToken(t *testing.T, secret, userID, role, jti string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID,
		"jti":  jti,
		"role": role,
		"exp":  time.Now().Add(expiresIn).Unix(),
		"iat":  time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestUserApp_Register(t *testing.T) {
	type fields struct {
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.Repository
	}
	type args struct {
		ctx context.Context
		req *model.RegisterRequest
	}
	tests := []struct {
		name        string
		fields      fields
		args        args
		mockCall    func(f fields)
		want        *model.RegisterResponse
		wantErrType constant.ErrorType
	}{
		{
			name: "error: email already registered",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Asha Rao",
					Email:    "asha@example.com",
					Phone:    "9876543210",
					Password: "secret123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "asha@example.com"}).
					Return(&model.UserEntity{Email: "asha@example.com"}, nil).
					Once()
			},
			wantErrType: constant.ErrCredentialExists,
		},
		{
			name: "error: phone already registered",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Asha Rao",
					Email:    "asha@example.com",
					Phone:    "9876543210",
					Password: "secret123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "asha@example.com"}).
					Return(nil, nil).
					Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "9876543210"}).
					Return(&model.UserEntity{Phone: "9876543210"}, nil).
					Once()
			},
			wantErrType: constant.ErrCredentialExists,
		},
		{
			name: "success: new customer registered with hashed password",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Asha Rao",
					Email:    "asha@example.com",
					Phone:    "9876543210",
					Password: "secret123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "asha@example.com"}).
					Return(nil, nil).
					Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "9876543210"}).
					Return(nil, nil).
					Once()
				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(u *model.UserEntity) bool {
						if u.Role != constant.RoleCustomer {
							return false
						}
						return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
					})).
					Return(func(ctx context.Context, u *model.UserEntity) (*model.UserEntity, error) {
						return u, nil
					}).
					Once()
			},
			want: &model.RegisterResponse{
				Name:  "Asha Rao",
				Email: "asha@example.com",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appuser.NewUserApp(authConfig(), tt.fields.userRepo, tt.fields.redisRepo)

			got, err := app.Register(tt.args.ctx, tt.args.req)
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
				t.Fatalf("Register() error = %v", err)
			}
			if got.Name != tt.want.Name || got.Email != tt.want.Email {
				t.Fatalf("Register() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUserApp_Login(t *testing.T) {
	userID := primitive.NewObjectID()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	type fields struct {
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.Repository
	}
	tests := []struct {
		name        string
		fields      fields
		req         *model.LoginRequest
		mockCall    func(f fields)
		wantErrType constant.ErrorType
	}{
		{
			name: "error: user not found",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Identifier: "ghost@example.com", Password: "secret123"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "ghost@example.com"}).
					Return(nil, nil).
					Once()
			},
			wantErrType: constant.ErrNotFound,
		},
		{
			name: "error: wrong password",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Identifier: "asha@example.com", Password: "wrong"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "asha@example.com"}).
					Return(&model.UserEntity{
						ID:           userID,
						Name:         "Asha Rao",
						Email:        "asha@example.com",
						PasswordHash: string(passwordHash),
						Role:         constant.RoleCustomer,
					}, nil).
					Once()
			},
			wantErrType: constant.ErrInvalidPassword,
		},
		{
			name: "success: login by phone stores a session",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Identifier: "9876543210", Password: "secret123"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "9876543210"}).
					Return(&model.UserEntity{
						ID:           userID,
						Name:         "Asha Rao",
						Email:        "asha@example.com",
						PasswordHash: string(passwordHash),
						Role:         constant.RoleAdmin,
					}, nil).
					Once()
				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), userID.Hex(), time.Hour).
					Return(nil).
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
			app := appuser.NewUserApp(authConfig(), tt.fields.userRepo, tt.fields.redisRepo)

			got, err := app.Login(context.Background(), tt.req)
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
				t.Fatalf("Login() error = %v", err)
			}
			if got.Token == "" {
				t.Fatal("Login() returned empty token")
			}
			if got.Role != constant.RoleAdmin {
				t.Fatalf("role = %s, want %s", got.Role, constant.RoleAdmin)
			}
		})
	}
}

func TestUserApp_ValidateToken(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	secret := "test-secret"

	type fields struct {
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		token    func(t *testing.T) string
		mockCall func(f fields)
		wantRole string
		wantErr  bool
	}{
		{
			name: "success: live session matches subject",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			token: func(t *testing.T) string {
				return signTestToken(t, secret, userID, constant.RoleCustomer, "jti-1", time.Hour)
			},
			mockCall: func(f fields) {
				f.redisRepo.On("GetSession", mock.Anything, "jti-1").Return(userID, nil).Once()
			},
			wantRole: constant.RoleCustomer,
		},
		{
			name: "error: expired token",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			token: func(t *testing.T) string {
				return signTestToken(t, secret, userID, constant.RoleCustomer, "jti-2", -time.Hour)
			},
			wantErr: true,
		},
		{
			name: "error: wrong signing key",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			token: func(t *testing.T) string {
				return signTestToken(t, "other-secret", userID, constant.RoleCustomer, "jti-3", time.Hour)
			},
			wantErr: true,
		},
		{
			name: "error: session evicted",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			token: func(t *testing.T) string {
				return signTestToken(t, secret, userID, constant.RoleCustomer, "jti-4", time.Hour)
			},
			mockCall: func(f fields) {
				f.redisRepo.On("GetSession", mock.Anything, "jti-4").Return("", errors.New("redis: nil")).Once()
			},
			wantErr: true,
		},
		{
			name: "error: session belongs to another user",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			token: func(t *testing.T) string {
				return signTestToken(t, secret, userID, constant.RoleCustomer, "jti-5", time.Hour)
			},
			mockCall: func(f fields) {
				f.redisRepo.On("GetSession", mock.Anything, "jti-5").Return(primitive.NewObjectID().Hex(), nil).Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appuser.NewUserApp(authConfig(), tt.fields.userRepo, tt.fields.redisRepo)

			gotID, gotRole, err := app.ValidateToken(context.Background(), tt.token(t))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if gotID != userID {
				t.Fatalf("user id = %s, want %s", gotID, userID)
			}
			if gotRole != tt.wantRole {
				t.Fatalf("role = %s, want %s", gotRole, tt.wantRole)
			}
		})
	}
}

func TestUserApp_Logout(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	secret := "test-secret"

	type fields struct {
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.Repository
	}
	tests := []struct {
		name        string
		fields      fields
		token       func(t *testing.T) string
		mockCall    func(f fields)
		wantErrType constant.ErrorType
	}{
		{
			name: "success: session deleted",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			token: func(t *testing.T) string {
				return signTestToken(t, secret, userID, constant.RoleCustomer, "jti-out", time.Hour)
			},
			mockCall: func(f fields) {
				f.redisRepo.On("DeleteSession", mock.Anything, "jti-out").Return(nil).Once()
			},
		},
		{
			name: "error: garbage token",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			token: func(t *testing.T) string {
				return "not.a.token"
			},
			wantErrType: constant.ErrUnauthorize,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appuser.NewUserApp(authConfig(), tt.fields.userRepo, tt.fields.redisRepo)

			err := app.Logout(context.Background(), tt.token(t))
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
				t.Fatalf("Logout() error = %v", err)
			}
		})
	}
}
