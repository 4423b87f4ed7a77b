package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"lunchtime/config"
	"lunchtime/infras/kafka"
	"lunchtime/infras/mailer"
	"lunchtime/infras/otel"
	mealModel "lunchtime/internal/domains/meal/model"
	mealDto "lunchtime/internal/domains/meal/model/dto"
	mealRepo "lunchtime/internal/domains/meal/repository"
	"lunchtime/internal/domains/reservation/model"
	"lunchtime/internal/domains/reservation/model/dto"
	"lunchtime/internal/domains/reservation/repository"
	restaurantModel "lunchtime/internal/domains/restaurant/model"
	restaurantDto "lunchtime/internal/domains/restaurant/model/dto"
	restaurantRepo "lunchtime/internal/domains/restaurant/repository"
	tableModel "lunchtime/internal/domains/table/model"
	tableDto "lunchtime/internal/domains/table/model/dto"
	tableRepo "lunchtime/internal/domains/table/repository"
	userModel "lunchtime/internal/domains/user/model"
	userRepo "lunchtime/internal/domains/user/repository"
	"lunchtime/shared"
	"lunchtime/shared/cache"
	"lunchtime/shared/constant"
	gDto "lunchtime/shared/dto"
	"lunchtime/shared/failure"
	"lunchtime/shared/qr"
	"lunchtime/shared/timezone"
)

const (
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"

	qrCodeSize = 256

	msgNoTablesAvailable = "no tables available, change date or time"
)

type Reservation interface {
	ValidateSlot(ctx context.Context, dateValue, timeValue string) (time.Time, time.Time, error)
	SelectRestaurant(ctx context.Context, dateValue, timeValue string, params gDto.QueryParams) (dto.SelectRestaurantResponse, error)
	Availability(ctx context.Context, dateValue, timeValue, restaurantID string) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateReservationRequest, dateValue, timeValue, restaurantID string) (dto.ReservationResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationDetailResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo           repository.Reservation
	tableRepo      tableRepo.Table
	mealRepo       mealRepo.Meal
	restaurantRepo restaurantRepo.Restaurant
	userRepo       userRepo.User
	cfg            *config.Config
	cache          cache.RedisCache
	kafka          kafka.Client
	mailer         mailer.Mailer
	otel           otel.Otel
}

func New(
	repo repository.Reservation,
	tableRepo tableRepo.Table,
	mealRepo mealRepo.Meal,
	restaurantRepo restaurantRepo.Restaurant,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	mailer mailer.Mailer,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:           repo,
		tableRepo:      tableRepo,
		mealRepo:       mealRepo,
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
		cfg:            cfg,
		cache:          cache,
		kafka:          kafkaClient,
		mailer:         mailer,
		otel:           otel,
	}
}

// ValidateSlot parses the slot and rejects dates already in the past.
func (s *serviceImpl) ValidateSlot(ctx context.Context, dateValue, timeValue string) (time.Time, time.Time, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ValidateSlot")
	defer scope.End()

	date, err := dto.ParseSlotDate(dateValue)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	slotTime, err := dto.ParseSlotTime(timeValue)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	if date.Before(today()) {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("date cannot be in the past") // nolint:wrapcheck
	}

	return date, slotTime, nil
}

// SelectRestaurant is the second wizard stage: every restaurant is listed so
// the diner can pick one for the chosen slot.
func (s *serviceImpl) SelectRestaurant(ctx context.Context, dateValue, timeValue string, params gDto.QueryParams) (res dto.SelectRestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SelectRestaurant")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, slotTime, err := s.ValidateSlot(ctx, dateValue, timeValue)
	if err != nil {
		return res, err
	}

	restaurants, err := s.restaurantRepo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurants")

		return res, fmt.Errorf("failed to get restaurants: %w", err)
	}

	res.ReservedDate = date.Format(constant.SlotDateFormat)
	res.ReservedTime = slotTime.Format(constant.SlotTimeFormat)

	res.Restaurants = make([]restaurantDto.RestaurantResponse, len(restaurants))
	for i, restaurant := range restaurants {
		res.Restaurants[i].FromModel(restaurant)
	}

	return res, nil
}

// Availability is the third wizard stage: the restaurant's free tables for the
// slot, derived from existing reservations, plus its menu for pre-ordering.
func (s *serviceImpl) Availability(ctx context.Context, dateValue, timeValue, restaurantID string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, slotTime, err := s.ValidateSlot(ctx, dateValue, timeValue)
	if err != nil {
		return res, err
	}

	if err = s.restaurantExists(ctx, restaurantID); err != nil {
		return res, err
	}

	res.ReservedDate = date.Format(constant.SlotDateFormat)
	res.ReservedTime = slotTime.Format(constant.SlotTimeFormat)
	res.RestaurantID = restaurantID

	tables, err := s.tableRepo.GetAvailable(ctx, restaurantID, date, slotTime)
	if err != nil {
		log.Error().Err(err).Msg("failed to get available tables")

		return res, fmt.Errorf("failed to get available tables: %w", err)
	}

	if len(tables) == 0 {
		res.Message = msgNoTablesAvailable

		return res, nil
	}

	res.Tables = make([]tableDto.TableResponse, len(tables))
	for i, table := range tables {
		res.Tables[i].FromModel(table)
	}

	meals, err := s.mealRepo.GetAll(ctx, gDto.QueryParams{SortBy: mealModel.FieldName, SortDir: gDto.SortDirAsc},
		shared.FilterByID(restaurantID, mealModel.FieldRestaurantID, mealModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get meals")

		return res, fmt.Errorf("failed to get meals: %w", err)
	}

	res.Meals = make([]mealDto.MealResponse, len(meals))
	for i, meal := range meals {
		res.Meals[i].FromModel(meal)
	}

	return res, nil
}

// Create commits the reservation and its meal pre-orders atomically. The slot
// uniqueness constraint in storage is the final arbiter against double booking.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest, dateValue, timeValue, restaurantID string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	date, slotTime, err := s.ValidateSlot(ctx, dateValue, timeValue)
	if err != nil {
		return res, err
	}

	if err = s.restaurantExists(ctx, restaurantID); err != nil {
		return res, err
	}

	table, err := s.tableRepo.Get(ctx, shared.FilterByID(req.TableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return res, failure.NotFound("table not found") // nolint:wrapcheck
	}

	if table.RestaurantID != restaurantID {
		return res, failure.BadRequestFromString("table does not belong to this restaurant") // nolint:wrapcheck
	}

	reservation := req.ToModel(user, restaurantID, date, slotTime)

	reservationMeals, err := s.buildMeals(ctx, reservation.ID, restaurantID, req.MealIDs)
	if err != nil {
		return res, err
	}

	if err = s.repo.CreateWithMeals(ctx, reservation, reservationMeals); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, err
	}

	res.FromModel(reservation)

	go s.afterCreate(context.WithoutCancel(ctx), reservation)

	return res, nil
}

// GetMine lists the caller's reservations, most recent slot first, enriched
// with restaurant names and pre-ordered meal names.
func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(user, model.FieldUserID, model.TableName)

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllReservation, user), params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	if params.SortBy == constant.Empty {
		params.SortBy = model.FieldReservedDate
		params.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(reservations, total, params.Limit)

	if err = s.enrich(ctx, reservations, res.Reservations); err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

// Get returns one reservation with its check-in QR code. Only the owner or an
// admin may view it.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.authorize(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	enriched := []dto.ReservationResponse{res.ReservationResponse}
	if err = s.enrich(ctx, []model.Reservation{reservation}, enriched); err != nil {
		return res, err
	}

	res.ReservationResponse = enriched[0]

	res.QRCode, err = qr.EncodeDataURI(reservation.ID, qrCodeSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode reservation QR code")

		return res, fmt.Errorf("failed to encode reservation QR code: %w", err)
	}

	return res, nil
}

// Delete cancels a reservation, freeing its table for the slot.
func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	reservation, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, dto.EventTypeCancelled, reservation)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	return nil
}

func (s *serviceImpl) authorize(ctx context.Context, id string) (model.Reservation, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if reservation.UserID != user && role != constant.RoleAdmin {
		return reservation, failure.Forbidden("you can only manage your own reservations") // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) restaurantExists(ctx context.Context, restaurantID string) error {
	exist, err := s.restaurantRepo.Exist(ctx, shared.FilterByID(restaurantID, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if restaurant exists")

		return fmt.Errorf("failed to check if restaurant exists: %w", err)
	}

	if !exist {
		return failure.NotFound("restaurant not found") // nolint:wrapcheck
	}

	return nil
}

// buildMeals verifies every requested meal belongs to the restaurant and maps
// them to join rows.
func (s *serviceImpl) buildMeals(ctx context.Context, reservationID, restaurantID string, mealIDs []string) ([]model.ReservationMeal, error) {
	if len(mealIDs) == 0 {
		return nil, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    mealModel.FieldID,
				Value:    mealIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    mealModel.TableName,
			},
			gDto.Filter{
				Field:    mealModel.FieldRestaurantID,
				Value:    restaurantID,
				Operator: gDto.FilterOperatorEq,
				Table:    mealModel.TableName,
			},
		},
	}

	count, err := s.mealRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check meals")

		return nil, fmt.Errorf("failed to check meals: %w", err)
	}

	if count != len(mealIDs) {
		return nil, failure.NotFound("one or more meals not found at this restaurant") // nolint:wrapcheck
	}

	meals := make([]model.ReservationMeal, len(mealIDs))
	for i, mealID := range mealIDs {
		meals[i] = model.ReservationMeal{
			ReservationID: reservationID,
			MealID:        mealID,
		}
	}

	return meals, nil
}

// enrich fills restaurant and meal names into the responses. The two slices
// are parallel.
func (s *serviceImpl) enrich(ctx context.Context, reservations []model.Reservation, responses []dto.ReservationResponse) error {
	if len(reservations) == 0 {
		return nil
	}

	ids := make([]string, len(reservations))
	restaurantIDs := make([]string, len(reservations))

	for i, reservation := range reservations {
		ids[i] = reservation.ID
		restaurantIDs[i] = reservation.RestaurantID
	}

	mealNames, err := s.repo.GetMealNames(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation meal names")

		return fmt.Errorf("failed to get reservation meal names: %w", err)
	}

	restaurantFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    restaurantModel.FieldID,
				Value:    restaurantIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    restaurantModel.TableName,
			},
		},
	}

	restaurants, err := s.restaurantRepo.GetAll(ctx, gDto.QueryParams{}, restaurantFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurants")

		return fmt.Errorf("failed to get restaurants: %w", err)
	}

	names := make(map[string]string, len(restaurants))
	for _, restaurant := range restaurants {
		names[restaurant.ID] = restaurant.Name
	}

	for i := range responses {
		responses[i].Meals = mealNames[responses[i].ID]
		responses[i].RestaurantName = names[responses[i].RestaurantID]
	}

	return nil
}

func (s *serviceImpl) afterCreate(ctx context.Context, reservation model.Reservation) {
	s.publishEvent(ctx, dto.EventTypeCreated, reservation)
	s.sendConfirmation(ctx, reservation)

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReservation)
	shared.InvalidateCaches(ctx, s.cache, cacheCountReservation)
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, reservation model.Reservation) {
	event := dto.NewReservationEvent(eventType, reservation)

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic.ReservationEvents, kafka.Message{
		Key:   reservation.ID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("failed to publish reservation event")
	}
}

func today() time.Time {
	now := timezone.Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *serviceImpl) sendConfirmation(ctx context.Context, reservation model.Reservation) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(reservation.UserID, userModel.FieldID, userModel.TableName))
	if err != nil || user.Email == constant.Empty {
		log.Error().Err(err).Msg("failed to load user for reservation confirmation")

		return
	}

	restaurant, err := s.restaurantRepo.Get(ctx, shared.FilterByID(reservation.RestaurantID, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to load restaurant for reservation confirmation")

		return
	}

	body := fmt.Sprintf(
		"<p>Your table at <b>%s</b> is booked for <b>%s</b> at <b>%s</b>.</p><p>Reservation reference: %s</p>",
		restaurant.Name,
		reservation.ReservedDate.Format(constant.SlotDateFormat),
		reservation.ReservedTime.Format(constant.SlotTimeFormat),
		reservation.ID,
	)

	if err := s.mailer.Send(user.Email, "Reservation confirmed", body); err != nil {
		log.Error().Err(err).Msg("failed to send reservation confirmation")
	}
}
