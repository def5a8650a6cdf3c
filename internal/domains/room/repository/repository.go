package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/room/model"
	"hotelier/shared/constant"
	"hotelier/shared/logger"
)

const selectColumns = "id, name, room_type, nightly_rate, status, notes"

type Room interface {
	List(ctx context.Context) ([]model.Room, error)
	Get(ctx context.Context, id int64) (model.Room, bool, error)
	Insert(ctx context.Context, room model.Room) (int64, error)
	Update(ctx context.Context, id int64, changes model.Changes) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// List returns every room ordered newest-id-first.
func (repo *repositoryImpl) List(ctx context.Context) ([]model.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.List")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id DESC", selectColumns, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rooms []model.Room

	if err := repo.db.Read.SelectContext(ctx, &rooms, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list data (%s): %w", model.EntityName, err)
	}

	return rooms, nil
}

// Get reads a single room by id. The second result reports existence so
// callers do not have to compare against a zero value.
func (repo *repositoryImpl) Get(ctx context.Context, id int64) (model.Room, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Get")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 LIMIT 1", selectColumns, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var room model.Room

	err := repo.db.Read.GetContext(ctx, &room, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return room, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return room, false, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return room, true, nil
}

// Insert writes a new room and returns the generated id. The caller reads
// the row back so the response reflects exactly what storage now holds.
func (repo *repositoryImpl) Insert(ctx context.Context, room model.Room) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Insert")
	defer scope.End()

	query := fmt.Sprintf(
		"INSERT INTO %s (name, room_type, nightly_rate, status, notes) VALUES (:name, :room_type, :nightly_rate, :status, :notes) RETURNING id",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Write.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	var id int64

	if err := prepare.GetContext(ctx, &id, room); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return id, nil
}

// Update applies only the fields present in the change set and returns the
// number of affected rows. Zero rows means the room does not exist.
func (repo *repositoryImpl) Update(ctx context.Context, id int64, changes model.Changes) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Update")
	defer scope.End()

	sets := []string{}
	args := map[string]any{"id": id}

	if changes.Name != nil {
		sets = append(sets, "name = :name")
		args["name"] = *changes.Name
	}

	if changes.RoomType != nil {
		sets = append(sets, "room_type = :room_type")
		args["room_type"] = *changes.RoomType
	}

	if changes.NightlyRate != nil {
		sets = append(sets, "nightly_rate = :nightly_rate")
		args["nightly_rate"] = *changes.NightlyRate
	}

	if changes.Status != nil {
		sets = append(sets, "status = :status")
		args["status"] = *changes.Status
	}

	if changes.Notes != nil {
		sets = append(sets, "notes = :notes")
		args["notes"] = *changes.Notes
	}

	if len(sets) == 0 {
		return 0, errors.New("empty change set")
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", model.TableName, strings.Join(sets, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected, nil
}

// Delete removes a room and returns the number of affected rows.
func (repo *repositoryImpl) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Delete")
	defer scope.End()

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected, nil
}
