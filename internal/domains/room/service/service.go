package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllRoom = "room:gets"

	msgLoadFailed   = "Unable to load rooms."
	msgCreateFailed = "Unable to create room."
	msgUpdateFailed = "Unable to update room."
	msgDeleteFailed = "Unable to delete room."
	msgNotFound     = "Room not found."
	msgNoFields     = "No valid fields to update."
)

type Room interface {
	List(ctx context.Context) ([]dto.RoomResponse, error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (dto.RoomResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllRoom, "all")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	models, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list rooms")

		return nil, failure.InternalFromString(msgLoadFailed)
	}

	res = dto.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

// Create validates the request, inserts the room, and reads the stored row
// back so the response reflects what the database actually holds.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if messages := req.Validate(); len(messages) > 0 {
		return res, failure.ValidationErrors(messages)
	}

	id, err := s.repo.Insert(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, failure.InternalFromString(msgCreateFailed)
	}

	stored, found, err := s.repo.Get(ctx, id)
	if err != nil || !found {
		log.Error().Err(err).Int64("id", id).Msg("failed to read back created room")

		return res, failure.InternalFromString(msgCreateFailed)
	}

	res.FromModel(stored)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
	}()

	return res, nil
}

// Update applies only the fields present in the request body. A body with
// no recognized fields is rejected before touching storage.
func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	changes, messages := req.Changes()
	if len(messages) > 0 {
		return res, failure.ValidationErrors(messages)
	}

	if changes.Empty() {
		return res, failure.BadRequestFromString(msgNoFields)
	}

	affected, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update room")

		return res, failure.InternalFromString(msgUpdateFailed)
	}

	if affected == 0 {
		return res, failure.NotFound(msgNotFound)
	}

	stored, found, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to read back updated room")

		return res, failure.InternalFromString(msgUpdateFailed)
	}

	if !found {
		return res, failure.NotFound(msgNotFound)
	}

	res.FromModel(stored)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete room")

		return failure.InternalFromString(msgDeleteFailed)
	}

	if affected == 0 {
		return failure.NotFound(msgNotFound)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
	}()

	return nil
}
