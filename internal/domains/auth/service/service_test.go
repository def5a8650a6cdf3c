package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/oauth2"

	"hotelier/config"
	"hotelier/infras/google"
	googleMocks "hotelier/infras/google/mocks"
	"hotelier/infras/jwt"
	jwtMocks "hotelier/infras/jwt/mocks"
	otelMocks "hotelier/infras/otel/mocks"
	"hotelier/internal/domains/auth/model/dto"
	"hotelier/internal/domains/auth/service"
	userMocks "hotelier/internal/domains/user/mocks"
	userModel "hotelier/internal/domains/user/model"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/password"
)

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, *userMocks.MockAccount, *jwtMocks.MockJWT, *googleMocks.MockGoogle) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockUsers := userMocks.NewMockUser(ctrl)
	mockAccounts := userMocks.NewMockAccount(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockGoogle := googleMocks.NewMockGoogle(ctrl)

	svc := service.New(mockUsers, mockAccounts, &config.Config{}, otelMocks.NewOtel(), mockJWT, mockGoogle)

	return svc, mockUsers, mockAccounts, mockJWT, mockGoogle
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.Hash("correct horse")
	require.NoError(t, err)

	admin := userModel.User{
		ID:       1,
		Email:    "admin@example.com",
		Password: &hash,
		Role:     constant.RoleAdmin,
	}

	pair := &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(users *userMocks.MockUser, jwtService *jwtMocks.MockJWT)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful admin login",
			req:  dto.LoginRequest{Email: admin.Email, Password: "correct horse"},
			setupMock: func(users *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				users.EXPECT().
					GetAdminByEmail(gomock.Any(), admin.Email).
					Return(admin, true, nil)

				jwtService.EXPECT().
					GenerateTokenPair("1", admin.Email, constant.RoleAdmin).
					Return(pair, nil)
			},
			wantErr: false,
		},
		{
			name: "unknown or non-admin email",
			req:  dto.LoginRequest{Email: "guest@example.com", Password: "whatever"},
			setupMock: func(users *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				users.EXPECT().
					GetAdminByEmail(gomock.Any(), "guest@example.com").
					Return(userModel.User{}, false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "oauth-provisioned user has no password",
			req:  dto.LoginRequest{Email: admin.Email, Password: "correct horse"},
			setupMock: func(users *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				users.EXPECT().
					GetAdminByEmail(gomock.Any(), admin.Email).
					Return(userModel.User{ID: 1, Email: admin.Email, Role: constant.RoleAdmin}, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: admin.Email, Password: "incorrect horse"},
			setupMock: func(users *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				users.EXPECT().
					GetAdminByEmail(gomock.Any(), admin.Email).
					Return(admin, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Email: admin.Email, Password: "correct horse"},
			setupMock: func(users *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				users.EXPECT().
					GetAdminByEmail(gomock.Any(), admin.Email).
					Return(userModel.User{}, false, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockUsers, _, mockJWT, _ := newService(t)
			tt.setupMock(mockUsers, mockJWT)

			result, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access", result.AccessToken)
			assert.Equal(t, "refresh", result.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	pair := &jwt.TokenPair{AccessToken: "access2", RefreshToken: "refresh2", TokenType: "Bearer", ExpiresIn: 900}

	t.Run("valid refresh token", func(t *testing.T) {
		svc, _, _, mockJWT, _ := newService(t)

		mockJWT.EXPECT().
			RefreshTokens("refresh1").
			Return(pair, nil)

		result, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh1"})

		assert.NoError(t, err)
		assert.Equal(t, "access2", result.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		svc, _, _, mockJWT, _ := newService(t)

		mockJWT.EXPECT().
			RefreshTokens("garbage").
			Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "garbage"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_GoogleCallback(t *testing.T) {
	info := google.UserInfo{
		ID:      "google-id-1",
		Email:   "newcomer@example.com",
		Name:    "Newcomer",
		Picture: "https://example.com/avatar.png",
	}

	token := &oauth2.Token{AccessToken: "oauth-access"}
	pair := &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}

	t.Run("first sign-in provisions a user with the user role", func(t *testing.T) {
		svc, mockUsers, mockAccounts, mockJWT, mockGoogle := newService(t)

		mockGoogle.EXPECT().Exchange(gomock.Any(), "auth-code").Return(token, nil)
		mockGoogle.EXPECT().FetchUserInfo(gomock.Any(), token).Return(info, nil)

		mockUsers.EXPECT().
			GetByEmail(gomock.Any(), info.Email).
			Return(userModel.User{}, false, nil)

		mockUsers.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) (int64, error) {
				assert.Equal(t, constant.RoleUser, user.Role)
				assert.Nil(t, user.Password)

				return int64(42), nil
			})

		mockAccounts.EXPECT().
			Exist(gomock.Any(), userModel.ProviderGoogle, info.ID).
			Return(false, nil)

		mockAccounts.EXPECT().
			Insert(gomock.Any(), userModel.Account{UserID: 42, Provider: userModel.ProviderGoogle, ProviderAccountID: info.ID}).
			Return(nil)

		mockJWT.EXPECT().
			GenerateTokenPair("42", info.Email, constant.RoleUser).
			Return(pair, nil)

		result, err := svc.GoogleCallback(context.Background(), "auth-code")

		assert.NoError(t, err)
		assert.Equal(t, "access", result.AccessToken)
	})

	t.Run("returning user keeps the stored role", func(t *testing.T) {
		svc, mockUsers, mockAccounts, mockJWT, mockGoogle := newService(t)

		existing := userModel.User{ID: 7, Email: info.Email, Role: constant.RoleAdmin}

		mockGoogle.EXPECT().Exchange(gomock.Any(), "auth-code").Return(token, nil)
		mockGoogle.EXPECT().FetchUserInfo(gomock.Any(), token).Return(info, nil)

		mockUsers.EXPECT().
			GetByEmail(gomock.Any(), info.Email).
			Return(existing, true, nil)

		mockAccounts.EXPECT().
			Exist(gomock.Any(), userModel.ProviderGoogle, info.ID).
			Return(true, nil)

		mockJWT.EXPECT().
			GenerateTokenPair("7", info.Email, constant.RoleAdmin).
			Return(pair, nil)

		_, err := svc.GoogleCallback(context.Background(), "auth-code")

		assert.NoError(t, err)
	})

	t.Run("exchange failure", func(t *testing.T) {
		svc, _, _, _, mockGoogle := newService(t)

		mockGoogle.EXPECT().
			Exchange(gomock.Any(), "bad-code").
			Return(nil, errors.New("oauth2: invalid grant"))

		_, err := svc.GoogleCallback(context.Background(), "bad-code")

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("userinfo without email is rejected", func(t *testing.T) {
		svc, _, _, _, mockGoogle := newService(t)

		mockGoogle.EXPECT().Exchange(gomock.Any(), "auth-code").Return(token, nil)
		mockGoogle.EXPECT().
			FetchUserInfo(gomock.Any(), token).
			Return(google.UserInfo{ID: "google-id-1"}, nil)

		_, err := svc.GoogleCallback(context.Background(), "auth-code")

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_Profile(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		svc, mockUsers, _, _, _ := newService(t)

		name := "Admin"
		mockUsers.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(userModel.User{ID: 1, Email: "admin@example.com", Name: &name, Role: constant.RoleAdmin}, true, nil)

		result, err := svc.Profile(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), result.ID)
		assert.Equal(t, constant.RoleAdmin, result.Role)
	})

	t.Run("deleted user", func(t *testing.T) {
		svc, mockUsers, _, _, _ := newService(t)

		mockUsers.EXPECT().
			GetByID(gomock.Any(), int64(9)).
			Return(userModel.User{}, false, nil)

		_, err := svc.Profile(context.Background(), 9)

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
