package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lunchtime/config"
	"lunchtime/infras/otel"
	"lunchtime/internal/domains/meal/model"
	"lunchtime/internal/domains/meal/model/dto"
	"lunchtime/internal/domains/meal/repository"
	restaurantModel "lunchtime/internal/domains/restaurant/model"
	restaurantRepo "lunchtime/internal/domains/restaurant/repository"
	"lunchtime/shared"
	"lunchtime/shared/cache"
	"lunchtime/shared/constant"
	gDto "lunchtime/shared/dto"
	"lunchtime/shared/failure"
)

const (
	cacheGetMeal    = "meal:get"
	cacheGetAllMeal = "meal:gets"
	cacheCountMeal  = "meal:count"
)

type Meal interface {
	Create(ctx context.Context, req dto.CreateMealRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMealsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.MealResponse, error)
	Update(ctx context.Context, req dto.UpdateMealRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo           repository.Meal
	restaurantRepo restaurantRepo.Restaurant
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(repo repository.Meal, restaurantRepo restaurantRepo.Restaurant, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Meal {
	return &serviceImpl{
		repo:           repo,
		restaurantRepo: restaurantRepo,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMealRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.authorizeRestaurant(ctx, req.RestaurantID); err != nil {
		return err
	}

	meal, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse meal request")

		return failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, meal); err != nil {
		log.Error().Err(err).Msg("failed to create meal")

		return fmt.Errorf("failed to create meal: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllMeal)
		shared.InvalidateCaches(c, s.cache, cacheCountMeal)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMealsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllMeal, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for meals")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count meals")

		return res, fmt.Errorf("failed to count meals: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get meals")

		return res, fmt.Errorf("failed to get meals: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save meals to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountMeal, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for meal count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count meals")

		return res, fmt.Errorf("failed to count meals: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save meal count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MealResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetMeal, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for meal")

		return res, nil
	}

	meal, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(meal)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save meal to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMealRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdateMealRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	meal, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizeRestaurant(ctx, meal.RestaurantID); err != nil {
		return err
	}

	if req.Price != constant.Empty {
		price, err := dto.NormalizePrice(req.Price)
		if err != nil {
			return failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
		}

		req.Price = price
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update meal")

		return fmt.Errorf("failed to update meal: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	meal, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizeRestaurant(ctx, meal.RestaurantID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete meal")

		return fmt.Errorf("failed to delete meal: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Meal, error) {
	meal, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get meal")

		return meal, fmt.Errorf("failed to get meal: %w", err)
	}

	if meal.ID == constant.Empty {
		return meal, failure.NotFound("meal not found") // nolint:wrapcheck
	}

	return meal, nil
}

func (s *serviceImpl) authorizeRestaurant(ctx context.Context, restaurantID string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	restaurant, err := s.restaurantRepo.Get(ctx, shared.FilterByID(restaurantID, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant")

		return fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant.ID == constant.Empty {
		return failure.NotFound("restaurant not found") // nolint:wrapcheck
	}

	if restaurant.OwnerID != user && role != constant.RoleAdmin {
		return failure.Forbidden("you do not manage this restaurant") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetMeal, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete meal from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllMeal)
		shared.InvalidateCaches(c, s.cache, cacheCountMeal)
	}()
}
