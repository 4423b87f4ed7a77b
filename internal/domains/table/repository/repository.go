package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"lunchtime/infras/otel"
	"lunchtime/infras/postgres"
	"lunchtime/internal/domains/table/model"
	"lunchtime/shared/constant"
	gDto "lunchtime/shared/dto"
	"lunchtime/shared/logger"
	gRepo "lunchtime/shared/repository"
)

type Table interface {
	Insert(ctx context.Context, model model.Table) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Table, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Table, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetAvailable(ctx context.Context, restaurantID string, date, slotTime time.Time) ([]model.Table, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Table]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Table {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Table](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetAvailable returns the restaurant's tables with no reservation for the
// given slot. Availability is derived from reservation rows, never from a
// flag on the table itself.
func (repo *repositoryImpl) GetAvailable(ctx context.Context, restaurantID string, date, slotTime time.Time) ([]model.Table, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.GetAvailable")
	defer scope.End()

	query := `SELECT tables.id, tables.restaurant_id, tables.persons,
			tables.created_at, tables.modified_at, tables.created_by, tables.modified_by
		FROM tables
		WHERE tables.restaurant_id = :restaurant_id
		AND NOT EXISTS (
			SELECT 1 FROM reservations
			WHERE reservations.table_id = tables.id
			AND reservations.reserved_date = :reserved_date
			AND reservations.reserved_time = :reserved_time
		)
		ORDER BY tables.persons ASC`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"restaurant_id": restaurantID,
		"reserved_date": date.Format(constant.SlotDateFormat),
		"reserved_time": slotTime.Format(constant.SlotTimeFormat),
	}

	var models []model.Table

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &models, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get available tables: %w", err)
	}

	return models, nil
}
