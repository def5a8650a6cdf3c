package auth

import (
	"net/http"
	"time"

	"hotelier/infras/otel"
	"hotelier/internal/domains/auth/model/dto"
	"hotelier/internal/domains/auth/service"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/validator"
	"hotelier/transport/http/middleware"
	"hotelier/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const stateCookieMaxAge = 10 * time.Minute

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the auth routes. Sign-in endpoints are public; the profile
// echo requires a session.
func (handler *Handler) Router(router chi.Router, auth middleware.Auth) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/login", handler.Login)
		routerGroup.Post("/refresh-token", handler.RefreshToken)
		routerGroup.Get("/google", handler.GoogleRedirect)
		routerGroup.Get("/google/callback", handler.GoogleCallback)

		routerGroup.With(auth.Authenticate).Get("/me", handler.Me)
	})
}

func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	tokens, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, tokens)
}

func (handler *Handler) RefreshToken(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	tokens, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, tokens)
}

// GoogleRedirect sends the client to Google's consent page. The state nonce
// is mirrored in a short-lived cookie so the callback can verify it.
func (handler *Handler) GoogleRedirect(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GoogleRedirect")
	defer scope.End()

	state := uuid.NewString()

	http.SetCookie(writer, &http.Cookie{
		Name:     constant.CookieOAuthState,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(writer, request, handler.service.GoogleAuthURL(state), http.StatusTemporaryRedirect)
}

func (handler *Handler) GoogleCallback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GoogleCallback")
	defer scope.End()

	cookie, err := request.Cookie(constant.CookieOAuthState)
	if err != nil || cookie.Value == constant.Empty || cookie.Value != request.URL.Query().Get("state") {
		log.Warn().Msg("oauth state mismatch")

		err := failure.Unauthorized("Invalid OAuth state.")
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	// The nonce is single use.
	http.SetCookie(writer, &http.Cookie{
		Name:     constant.CookieOAuthState,
		Value:    constant.Empty,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	code := request.URL.Query().Get("code")
	if code == constant.Empty {
		err := failure.Unauthorized("Missing authorization code.")
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	tokens, err := handler.service.GoogleCallback(ctx, code)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, tokens)
}

func (handler *Handler) Me(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		response.WithError(writer, failure.Unauthorized("Unauthorized"))

		return
	}

	profile, err := handler.service.Profile(ctx, principal.UserID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, profile)
}
