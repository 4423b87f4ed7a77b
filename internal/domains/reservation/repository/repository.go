package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"lunchtime/infras/otel"
	"lunchtime/infras/postgres"
	"lunchtime/internal/domains/reservation/model"
	"lunchtime/shared/constant"
	gDto "lunchtime/shared/dto"
	"lunchtime/shared/failure"
	"lunchtime/shared/logger"
	gRepo "lunchtime/shared/repository"
)

type Reservation interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CreateWithMeals(ctx context.Context, reservation model.Reservation, meals []model.ReservationMeal) error
	GetMealNames(ctx context.Context, reservationIDs []string) (map[string][]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	mealsRepo gRepo.Repository[model.ReservationMeal]
	db        *postgres.Connection
	otel      otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		mealsRepo:  gRepo.NewRepository[model.ReservationMeal](model.MealsEntityName, model.MealsTableName, model.FieldReservationID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CreateWithMeals writes the reservation and its pre-ordered meals in one
// transaction. A unique violation on the slot constraint means another diner
// took the table between availability check and commit.
func (repo *repositoryImpl) CreateWithMeals(ctx context.Context, reservation model.Reservation, meals []model.ReservationMeal) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CreateWithMeals")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback reservation transaction")
			}
		}
	}()

	if err = repo.InsertTx(ctx, tx, reservation); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("table is no longer available for this slot") // nolint:wrapcheck
		}

		return err
	}

	if len(meals) > 0 {
		if err = repo.mealsRepo.InsertBulkTx(ctx, tx, meals); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit reservation transaction: %w", err)
	}

	return nil
}

// GetMealNames returns the pre-ordered meal names keyed by reservation ID.
func (repo *repositoryImpl) GetMealNames(ctx context.Context, reservationIDs []string) (map[string][]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetMealNames")
	defer scope.End()

	result := make(map[string][]string)

	if len(reservationIDs) == 0 {
		return result, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReservationID,
				Value:    reservationIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    model.MealsTableName,
			},
		},
	}

	where, args := filter.GetWhereClause()

	query := fmt.Sprintf(`SELECT reservation_meals.reservation_id, meals.name
		FROM reservation_meals
		JOIN meals ON meals.id = reservation_meals.meal_id
		WHERE %s
		ORDER BY meals.name ASC`, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rows []struct {
		ReservationID string `db:"reservation_id"`
		Name          string `db:"name"`
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return result, fmt.Errorf("failed to prepare statement (%s): %w", model.MealsEntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &rows, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return result, fmt.Errorf("failed to get reservation meal names: %w", err)
	}

	for _, row := range rows {
		result[row.ReservationID] = append(result[row.ReservationID], row.Name)
	}

	return result, nil
}
