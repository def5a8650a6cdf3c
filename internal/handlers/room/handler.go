package room

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hotelier/infras/otel"
	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/service"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/transport/http/middleware"
	"hotelier/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	msgInvalidID   = "Invalid room id."
	msgRoomRemoved = "Room removed."
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the room routes. Reads only need a valid session; mutations
// are admin-only.
func (handler *Handler) Router(router chi.Router, auth middleware.Auth) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Use(auth.Authenticate)

		routerGroup.Get("/", handler.GetRooms)

		routerGroup.Group(func(adminGroup chi.Router) {
			adminGroup.Use(auth.RequireAdmin)

			adminGroup.Post("/", handler.CreateRoom)
			adminGroup.Put("/{id}", handler.UpdateRoom)
			adminGroup.Delete("/{id}", handler.DeleteRoom)
		})
	})
}

func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	rooms, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, rooms)
}

func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	// An unreadable body behaves like an empty one: every required-field
	// message comes back at once instead of a bare decode error.
	var req dto.CreateRoomRequest
	if err := json.NewDecoder(request.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("failed to decode create room payload")

		req = dto.CreateRoomRequest{}
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("room created")

	response.WithJSON(writer, http.StatusCreated, room)
}

func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id, ok := roomID(request)
	if !ok {
		response.WithError(writer, failure.BadRequestFromString(msgInvalidID))

		return
	}

	// An unreadable body carries no usable fields and is rejected by the
	// service the same way an empty object is.
	var req dto.UpdateRoomRequest
	if err := json.NewDecoder(request.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("failed to decode update room payload")

		req = dto.UpdateRoomRequest{}
	}

	room, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, room)
}

func (handler *Handler) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id, ok := roomID(request)
	if !ok {
		response.WithError(writer, failure.BadRequestFromString(msgInvalidID))

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, msgRoomRemoved)
}

// roomID parses the path parameter. Ids are positive integers; anything else
// is rejected before the service sees it.
func roomID(request *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(request, constant.RequestParamID), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
