package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"

	"lunchtime/config"
	"lunchtime/infras/otel"
	"lunchtime/infras/s3"
	mealModel "lunchtime/internal/domains/meal/model"
	mealDto "lunchtime/internal/domains/meal/model/dto"
	mealRepo "lunchtime/internal/domains/meal/repository"
	"lunchtime/internal/domains/restaurant/model"
	"lunchtime/internal/domains/restaurant/model/dto"
	"lunchtime/internal/domains/restaurant/repository"
	reviewModel "lunchtime/internal/domains/review/model"
	reviewDto "lunchtime/internal/domains/review/model/dto"
	reviewRepo "lunchtime/internal/domains/review/repository"
	tableModel "lunchtime/internal/domains/table/model"
	tableDto "lunchtime/internal/domains/table/model/dto"
	tableRepo "lunchtime/internal/domains/table/repository"
	"lunchtime/shared"
	"lunchtime/shared/base64"
	"lunchtime/shared/cache"
	"lunchtime/shared/constant"
	gDto "lunchtime/shared/dto"
	"lunchtime/shared/failure"
)

const (
	cacheGetRestaurant    = "restaurant:get"
	cacheGetAllRestaurant = "restaurant:gets"
	cacheCountRestaurant  = "restaurant:count"
	cacheDetailRestaurant = "restaurant:detail"

	logoDirectory = "restaurant-logos"
)

type Restaurant interface {
	Create(ctx context.Context, req dto.CreateRestaurantRequest) (dto.RestaurantResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRestaurantsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RestaurantResponse, error)
	Detail(ctx context.Context, id string) (dto.RestaurantDetailResponse, error)
	Update(ctx context.Context, req dto.UpdateRestaurantRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Restaurant
	tableRepo  tableRepo.Table
	mealRepo   mealRepo.Meal
	reviewRepo reviewRepo.Review
	cfg        *config.Config
	cache      cache.RedisCache
	s3         s3.S3
	otel       otel.Otel
}

func New(
	repo repository.Restaurant,
	tableRepo tableRepo.Table,
	mealRepo mealRepo.Meal,
	reviewRepo reviewRepo.Review,
	cfg *config.Config,
	cache cache.RedisCache,
	s3 s3.S3,
	otel otel.Otel,
) Restaurant {
	return &serviceImpl{
		repo:       repo,
		tableRepo:  tableRepo,
		mealRepo:   mealRepo,
		reviewRepo: reviewRepo,
		cfg:        cfg,
		cache:      cache,
		s3:         s3,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRestaurantRequest) (res dto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	restaurantSlug, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate restaurant slug")

		return res, fmt.Errorf("failed to generate restaurant slug: %w", err)
	}

	var logoURL string

	if req.Logo != constant.Empty {
		logoURL, err = s.uploadLogo(ctx, req.Logo)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload restaurant logo")

			return res, fmt.Errorf("failed to upload restaurant logo: %w", err)
		}
	}

	restaurant := req.ToModel(user, restaurantSlug, logoURL)

	if err = s.repo.Insert(ctx, restaurant); err != nil {
		log.Error().Err(err).Msg("failed to create restaurant")

		return res, fmt.Errorf("failed to create restaurant: %w", err)
	}

	res.FromModel(restaurant)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRestaurant)
		shared.InvalidateCaches(c, s.cache, cacheCountRestaurant)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRestaurantsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRestaurant, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for restaurants")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count restaurants")

		return res, fmt.Errorf("failed to count restaurants: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurants")

		return res, fmt.Errorf("failed to get restaurants: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save restaurants to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRestaurant, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for restaurant count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count restaurants")

		return res, fmt.Errorf("failed to count restaurants: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save restaurant count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRestaurant, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for restaurant")

		return res, nil
	}

	restaurant, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant")

		return res, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant.ID == constant.Empty {
		return res, failure.NotFound("restaurant not found") // nolint:wrapcheck
	}

	res.FromModel(restaurant)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save restaurant to cache")
		}
	}()

	return res, nil
}

// Detail composes the restaurant profile with its menu, reviews, and tables.
func (s *serviceImpl) Detail(ctx context.Context, id string) (res dto.RestaurantDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Detail")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheDetailRestaurant, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for restaurant detail")

		return res, nil
	}

	res.Restaurant, err = s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	childParams := gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	meals, err := s.mealRepo.GetAll(ctx, gDto.QueryParams{SortBy: mealModel.FieldName, SortDir: gDto.SortDirAsc},
		shared.FilterByID(id, mealModel.FieldRestaurantID, mealModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant meals")

		return res, fmt.Errorf("failed to get restaurant meals: %w", err)
	}

	res.MenuBreakfast = make([]mealDto.MealResponse, 0, len(meals))
	res.MenuLunch = make([]mealDto.MealResponse, 0, len(meals))
	res.MenuDinner = make([]mealDto.MealResponse, 0, len(meals))

	for _, meal := range meals {
		var item mealDto.MealResponse
		item.FromModel(meal)

		switch meal.Category {
		case mealModel.CategoryBreakfast:
			res.MenuBreakfast = append(res.MenuBreakfast, item)
		case mealModel.CategoryLunch:
			res.MenuLunch = append(res.MenuLunch, item)
		case mealModel.CategoryDinner:
			res.MenuDinner = append(res.MenuDinner, item)
		}
	}

	reviews, err := s.reviewRepo.GetAll(ctx, childParams,
		shared.FilterByID(id, reviewModel.FieldRestaurantID, reviewModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant reviews")

		return res, fmt.Errorf("failed to get restaurant reviews: %w", err)
	}

	res.Reviews = make([]reviewDto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		res.Reviews[i].FromModel(review)
	}

	tables, err := s.tableRepo.GetAll(ctx, gDto.QueryParams{SortBy: tableModel.FieldPersons, SortDir: gDto.SortDirAsc},
		shared.FilterByID(id, tableModel.FieldRestaurantID, tableModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant tables")

		return res, fmt.Errorf("failed to get restaurant tables: %w", err)
	}

	res.Tables = make([]tableDto.TableResponse, len(tables))
	for i, table := range tables {
		res.Tables[i].FromModel(table)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save restaurant detail to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRestaurantRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdateRestaurantRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	restaurant, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)

	if req.Logo != constant.Empty {
		logoURL, err := s.uploadLogo(ctx, req.Logo)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload restaurant logo")

			return fmt.Errorf("failed to upload restaurant logo: %w", err)
		}

		s.removeLogo(ctx, restaurant.LogoURL)

		updatedFields[model.FieldLogoURL] = logoURL
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update restaurant")

		return fmt.Errorf("failed to update restaurant: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	restaurant, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete restaurant")

		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	s.removeLogo(ctx, restaurant.LogoURL)

	s.invalidate(ctx, id)

	return nil
}

// authorize loads the restaurant and ensures the caller owns it or is an admin.
func (s *serviceImpl) authorize(ctx context.Context, id string) (model.Restaurant, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	restaurant, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant")

		return restaurant, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant.ID == constant.Empty {
		return restaurant, failure.NotFound("restaurant not found") // nolint:wrapcheck
	}

	if restaurant.OwnerID != user && role != constant.RoleAdmin {
		return restaurant, failure.Forbidden("you do not manage this restaurant") // nolint:wrapcheck
	}

	return restaurant, nil
}

func (s *serviceImpl) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	candidate := base

	for i := 2; ; i++ {
		exist, err := s.repo.Exist(ctx, shared.FilterByID(candidate, model.FieldSlug, model.TableName))
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to check slug uniqueness: %w", err)
		}

		if !exist {
			return candidate, nil
		}

		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *serviceImpl) uploadLogo(ctx context.Context, logo string) (string, error) {
	contentType := base64.GetContentType(logo)

	payload, err := base64.DecodePayload(logo)
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("logo must be a base64 data URI") // nolint:wrapcheck
	}

	fileName := uuid.NewString()

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, logoDirectory, fileName, contentType, payload)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload logo: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) removeLogo(ctx context.Context, logoURL string) {
	if logoURL == constant.Empty {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		bucket := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucket, logoURL)
		if objectName == constant.Empty {
			return
		}

		if err := s.s3.DeleteFile(c, bucket, constant.Empty, objectName); err != nil {
			log.Error().Err(err).Msg("failed to delete restaurant logo")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRestaurant, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete restaurant from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheDetailRestaurant, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete restaurant detail from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRestaurant)
		shared.InvalidateCaches(c, s.cache, cacheCountRestaurant)
	}()
}
