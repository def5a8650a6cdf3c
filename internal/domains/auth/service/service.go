package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"strconv"

	"hotelier/config"
	"hotelier/infras/google"
	"hotelier/infras/jwt"
	"hotelier/infras/otel"
	"hotelier/internal/domains/auth/model/dto"
	userModel "hotelier/internal/domains/user/model"
	userRepo "hotelier/internal/domains/user/repository"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	msgInvalidCredentials = "Invalid email or password."
	msgInvalidRefresh     = "Invalid refresh token."
	msgGoogleFailed       = "Google sign-in failed."
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	GoogleAuthURL(state string) string
	GoogleCallback(ctx context.Context, code string) (dto.TokenResponse, error)
	Profile(ctx context.Context, userID int64) (dto.ProfileResponse, error)
}

type serviceImpl struct {
	userRepo    userRepo.User
	accountRepo userRepo.Account
	cfg         *config.Config
	otel        otel.Otel
	jwtService  jwt.JWT
	google      google.Google
}

func New(users userRepo.User, accounts userRepo.Account, cfg *config.Config, ot otel.Otel, jwtService jwt.JWT, googleService google.Google) Auth {
	return &serviceImpl{
		userRepo:    users,
		accountRepo: accounts,
		cfg:         cfg,
		otel:        ot,
		jwtService:  jwtService,
		google:      googleService,
	}
}

// Login checks the credentials against admin accounts only. Non-admin users
// sign in through an OAuth provider, never with a password.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, found, err := s.userRepo.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up admin user")

		return res, failure.InternalFromString(constant.ResponseErrorInternal)
	}

	if !found || user.Password == nil {
		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	if err = password.Verify(req.Password, *user.Password); err != nil {
		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	pair, err := s.jwtService.GenerateTokenPair(strconv.FormatInt(user.ID, 10), user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token pair")

		return res, failure.InternalFromString(constant.ResponseErrorInternal)
	}

	res.FromTokenPair(pair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	pair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		return res, failure.Unauthorized(msgInvalidRefresh)
	}

	res.FromTokenPair(pair)

	return res, nil
}

func (s *serviceImpl) GoogleAuthURL(state string) string {
	return s.google.AuthCodeURL(state)
}

// GoogleCallback exchanges the authorization code and signs the user in,
// provisioning an account on first sight. Provisioned users always get the
// user role; admin is only ever granted through the bootstrap command.
func (s *serviceImpl) GoogleCallback(ctx context.Context, code string) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.GoogleCallback")
	defer scope.End()
	defer scope.TraceIfError(err)

	token, err := s.google.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("failed to exchange authorization code")

		return res, failure.Unauthorized(msgGoogleFailed)
	}

	info, err := s.google.FetchUserInfo(ctx, token)
	if err != nil || info.Email == constant.Empty {
		log.Error().Err(err).Msg("failed to fetch google user info")

		return res, failure.Unauthorized(msgGoogleFailed)
	}

	user, err := s.findOrProvision(ctx, info)
	if err != nil {
		return res, err
	}

	pair, err := s.jwtService.GenerateTokenPair(strconv.FormatInt(user.ID, 10), user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token pair")

		return res, failure.InternalFromString(constant.ResponseErrorInternal)
	}

	res.FromTokenPair(pair)

	return res, nil
}

func (s *serviceImpl) findOrProvision(ctx context.Context, info google.UserInfo) (userModel.User, error) {
	user, found, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up user")

		return user, failure.InternalFromString(constant.ResponseErrorInternal)
	}

	if !found {
		user = userModel.User{
			Email: info.Email,
			Role:  constant.RoleUser,
		}

		if info.Name != constant.Empty {
			user.Name = &info.Name
		}

		if info.Picture != constant.Empty {
			user.Image = &info.Picture
		}

		id, err := s.userRepo.Insert(ctx, user)
		if err != nil {
			log.Error().Err(err).Msg("failed to provision user")

			return user, failure.InternalFromString(constant.ResponseErrorInternal)
		}

		user.ID = id
	}

	linked, err := s.accountRepo.Exist(ctx, userModel.ProviderGoogle, info.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check account linkage")

		return user, failure.InternalFromString(constant.ResponseErrorInternal)
	}

	if !linked {
		account := userModel.Account{
			UserID:            user.ID,
			Provider:          userModel.ProviderGoogle,
			ProviderAccountID: info.ID,
		}

		if err := s.accountRepo.Insert(ctx, account); err != nil {
			log.Error().Err(err).Msg("failed to link account")

			return user, failure.InternalFromString(constant.ResponseErrorInternal)
		}
	}

	return user, nil
}

func (s *serviceImpl) Profile(ctx context.Context, userID int64) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Profile")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, found, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up user")

		return res, failure.InternalFromString(constant.ResponseErrorInternal)
	}

	if !found {
		return res, failure.Unauthorized("Unauthorized")
	}

	res.FromModel(user)

	return res, nil
}
