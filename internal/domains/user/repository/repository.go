package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/user/model"
	"hotelier/shared/constant"
	"hotelier/shared/logger"
)

const userColumns = "id, email, password, name, role, image"

type User interface {
	GetByEmail(ctx context.Context, email string) (model.User, bool, error)
	GetAdminByEmail(ctx context.Context, email string) (model.User, bool, error)
	GetByID(ctx context.Context, id int64) (model.User, bool, error)
	Insert(ctx context.Context, user model.User) (int64, error)
	UpsertAdmin(ctx context.Context, email, passwordHash string) error
}

type Account interface {
	Exist(ctx context.Context, provider, providerAccountID string) (bool, error)
	Insert(ctx context.Context, account model.Account) error
}

type userRepositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &userRepositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (model.User, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetByEmail")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE email = $1 LIMIT 1", userColumns, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return repo.getOne(ctx, scope, query, email)
}

// GetAdminByEmail only matches users holding the admin role. Credential
// sign-in is restricted to admins, so the role check lives in the query.
func (repo *userRepositoryImpl) GetAdminByEmail(ctx context.Context, email string) (model.User, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetAdminByEmail")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE email = $1 AND role = $2 LIMIT 1", userColumns, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return repo.getOne(ctx, scope, query, email, constant.RoleAdmin)
}

func (repo *userRepositoryImpl) GetByID(ctx context.Context, id int64) (model.User, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetByID")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 LIMIT 1", userColumns, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return repo.getOne(ctx, scope, query, id)
}

func (repo *userRepositoryImpl) getOne(ctx context.Context, scope otel.Scope, query string, args ...any) (model.User, bool, error) {
	var user model.User

	err := repo.db.Read.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return user, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return user, false, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return user, true, nil
}

func (repo *userRepositoryImpl) Insert(ctx context.Context, user model.User) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.Insert")
	defer scope.End()

	query := fmt.Sprintf(
		"INSERT INTO %s (email, password, name, role, image) VALUES (:email, :password, :name, :role, :image) RETURNING id",
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

	if err := prepare.GetContext(ctx, &id, user); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return id, nil
}

// UpsertAdmin creates or promotes the admin account used for credential
// sign-in. Used by the bootstrap command, not by request handling.
func (repo *userRepositoryImpl) UpsertAdmin(ctx context.Context, email, passwordHash string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.UpsertAdmin")
	defer scope.End()

	query := fmt.Sprintf(
		"INSERT INTO %s (email, password, role) VALUES ($1, $2, $3) ON CONFLICT (email) DO UPDATE SET password = EXCLUDED.password, role = EXCLUDED.role",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.ExecContext(ctx, query, email, passwordHash, constant.RoleAdmin); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return nil
}

type accountRepositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func NewAccount(db *postgres.Connection, otel otel.Otel) Account {
	return &accountRepositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *accountRepositoryImpl) Exist(ctx context.Context, provider, providerAccountID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".account.Exist")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE provider = $1 AND provider_account_id = $2)",
		model.AccountTableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exist bool

	if err := repo.db.Read.GetContext(ctx, &exist, query, provider, providerAccountID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check existence (account): %w", err)
	}

	return exist, nil
}

func (repo *accountRepositoryImpl) Insert(ctx context.Context, account model.Account) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".account.Insert")
	defer scope.End()

	query := fmt.Sprintf(
		"INSERT INTO %s (user_id, provider, provider_account_id) VALUES (:user_id, :provider, :provider_account_id)",
		model.AccountTableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, account); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (account): %w", err)
	}

	return nil
}
