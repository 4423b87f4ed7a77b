package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lunchtime/config"
	kafkaMocks "lunchtime/infras/kafka/mocks"
	mailerMocks "lunchtime/infras/mailer/mocks"
	"lunchtime/infras/otel/mocks"
	mealMocks "lunchtime/internal/domains/meal/mocks"
	mealModel "lunchtime/internal/domains/meal/model"
	reservationMocks "lunchtime/internal/domains/reservation/mocks"
	"lunchtime/internal/domains/reservation/model"
	"lunchtime/internal/domains/reservation/model/dto"
	"lunchtime/internal/domains/reservation/service"
	restaurantMocks "lunchtime/internal/domains/restaurant/mocks"
	restaurantModel "lunchtime/internal/domains/restaurant/model"
	tableMocks "lunchtime/internal/domains/table/mocks"
	tableModel "lunchtime/internal/domains/table/model"
	userMocks "lunchtime/internal/domains/user/mocks"
	userModel "lunchtime/internal/domains/user/model"
	cacheMocks "lunchtime/shared/cache/mocks"
	"lunchtime/shared/constant"
	gDto "lunchtime/shared/dto"
	"lunchtime/shared/failure"
	gModel "lunchtime/shared/model"
	"lunchtime/shared/timezone"
)

type serviceMocks struct {
	repo           *reservationMocks.MockReservation
	tableRepo      *tableMocks.MockTable
	mealRepo       *mealMocks.MockMeal
	restaurantRepo *restaurantMocks.MockRestaurant
	userRepo       *userMocks.MockUser
	cache          *cacheMocks.MockRedisCache
	kafka          *kafkaMocks.MockClient
	mailer         *mailerMocks.MockMailer
}

func newService(ctrl *gomock.Controller) (service.Reservation, serviceMocks) {
	m := serviceMocks{
		repo:           reservationMocks.NewMockReservation(ctrl),
		tableRepo:      tableMocks.NewMockTable(ctrl),
		mealRepo:       mealMocks.NewMockMeal(ctrl),
		restaurantRepo: restaurantMocks.NewMockRestaurant(ctrl),
		userRepo:       userMocks.NewMockUser(ctrl),
		cache:          cacheMocks.NewMockRedisCache(ctrl),
		kafka:          kafkaMocks.NewMockClient(ctrl),
		mailer:         mailerMocks.NewMockMailer(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(
		m.repo,
		m.tableRepo,
		m.mealRepo,
		m.restaurantRepo,
		m.userRepo,
		cfg,
		m.cache,
		m.kafka,
		m.mailer,
		mocks.NewOtel(),
	)

	return svc, m
}

func dinerContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleDiner)
}

func TestReservationService_ValidateSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newService(ctrl)

	tests := []struct {
		name     string
		date     string
		time     string
		wantErr  bool
		wantDate string
		wantTime string
	}{
		{
			name:     "valid slot",
			date:     "2030-05-20",
			time:     "19:00:00",
			wantErr:  false,
			wantDate: "2030-05-20",
			wantTime: "19:00:00",
		},
		{
			name:     "compact formats",
			date:     "20300520",
			time:     "190000",
			wantErr:  false,
			wantDate: "2030-05-20",
			wantTime: "19:00:00",
		},
		{
			name:    "invalid date",
			date:    "not-a-date",
			time:    "19:00:00",
			wantErr: true,
		},
		{
			name:    "invalid time",
			date:    "2030-05-20",
			time:    "late",
			wantErr: true,
		},
		{
			name:    "date in the past",
			date:    "2020-01-01",
			time:    "19:00:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, slotTime, err := svc.ValidateSlot(context.Background(), tt.date, tt.time)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantDate, date.Format(constant.SlotDateFormat))
				assert.Equal(t, tt.wantTime, slotTime.Format(constant.SlotTimeFormat))
			}
		})
	}
}

func TestReservationService_Availability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	tests := []struct {
		name        string
		setupMock   func()
		wantErr     bool
		wantMessage string
		wantTables  int
	}{
		{
			name: "restaurant not found",
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "no tables free for slot",
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.tableRepo.EXPECT().
					GetAvailable(gomock.Any(), "restaurant-1", gomock.Any(), gomock.Any()).
					Return([]tableModel.Table{}, nil)
			},
			wantErr:     false,
			wantMessage: "no tables available, change date or time",
		},
		{
			name: "tables and menu returned",
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.tableRepo.EXPECT().
					GetAvailable(gomock.Any(), "restaurant-1", gomock.Any(), gomock.Any()).
					Return([]tableModel.Table{
						{ID: "table-1", RestaurantID: "restaurant-1", Persons: 2},
						{ID: "table-2", RestaurantID: "restaurant-1", Persons: 4},
					}, nil)

				m.mealRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]mealModel.Meal{
						{ID: "meal-1", RestaurantID: "restaurant-1", Name: "Soup", Price: "4.50"},
					}, nil)
			},
			wantErr:    false,
			wantTables: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Availability(context.Background(), "2030-05-20", "19:00:00", "restaurant-1")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "2030-05-20", res.ReservedDate)
			assert.Equal(t, "19:00:00", res.ReservedTime)
			assert.Equal(t, tt.wantMessage, res.Message)
			assert.Len(t, res.Tables, tt.wantTables)
		})
	}
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	table := tableModel.Table{
		ID:           "table-1",
		RestaurantID: "restaurant-1",
		Persons:      2,
	}

	allowAsyncSideEffects := func() {
		m.kafka.EXPECT().
			SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		m.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModelForConfirmation(), nil).
			AnyTimes()

		m.restaurantRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(restaurantModelForConfirmation(), nil).
			AnyTimes()

		m.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		m.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()
	}

	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful reservation",
			req:  dto.CreateReservationRequest{TableID: "table-1"},
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.tableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(table, nil)

				m.repo.EXPECT().
					CreateWithMeals(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				allowAsyncSideEffects()
			},
			wantErr: false,
		},
		{
			name: "successful reservation with meal pre-order",
			req:  dto.CreateReservationRequest{TableID: "table-1", MealIDs: []string{"meal-1", "meal-2"}},
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.tableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(table, nil)

				m.mealRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

				m.repo.EXPECT().
					CreateWithMeals(gomock.Any(), gomock.Any(), gomock.Len(2)).
					Return(nil)

				allowAsyncSideEffects()
			},
			wantErr: false,
		},
		{
			name: "table not found",
			req:  dto.CreateReservationRequest{TableID: "missing"},
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.tableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tableModel.Table{}, nil)
			},
			wantErr: true,
		},
		{
			name: "table belongs to another restaurant",
			req:  dto.CreateReservationRequest{TableID: "table-1"},
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.tableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tableModel.Table{ID: "table-1", RestaurantID: "restaurant-2"}, nil)
			},
			wantErr: true,
		},
		{
			name: "meal from another restaurant",
			req:  dto.CreateReservationRequest{TableID: "table-1", MealIDs: []string{"meal-1", "foreign-meal"}},
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.tableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(table, nil)

				m.mealRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)
			},
			wantErr: true,
		},
		{
			name: "slot taken concurrently",
			req:  dto.CreateReservationRequest{TableID: "table-1"},
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.tableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(table, nil)

				m.repo.EXPECT().
					CreateWithMeals(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(failure.Conflict("table is no longer available for this slot"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(dinerContext("user-1"), tt.req, "2030-05-20", "19:00:00", "restaurant-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, "2030-05-20", res.ReservedDate)
				assert.Equal(t, "19:00:00", res.ReservedTime)
			}
		})
	}
}

func TestReservationService_GetMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	reservation := reservationFixture("reservation-1", "user-1")

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, enriched from db",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{reservation}, nil)

				m.repo.EXPECT().
					GetMealNames(gomock.Any(), []string{"reservation-1"}).
					Return(map[string][]string{"reservation-1": {"Soup"}}, nil)

				m.restaurantRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(restaurantListForEnrich(), nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "count error",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetMine(dinerContext("user-1"), gDto.QueryParams{Limit: 10, Page: 1})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)

			if tt.wantTotal > 0 {
				assert.Equal(t, "Pasta Palace", res.Reservations[0].RestaurantName)
				assert.Equal(t, []string{"Soup"}, res.Reservations[0].Meals)
			}
		})
	}
}

func TestReservationService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	reservation := reservationFixture("reservation-1", "user-1")

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
	}{
		{
			name: "owner gets reservation with qr code",
			ctx:  dinerContext("user-1"),
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.repo.EXPECT().
					GetMealNames(gomock.Any(), []string{"reservation-1"}).
					Return(map[string][]string{}, nil)

				m.restaurantRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(restaurantListForEnrich(), nil)
			},
			wantErr: false,
		},
		{
			name: "not found",
			ctx:  dinerContext("user-1"),
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr: true,
		},
		{
			name: "another diner is rejected",
			ctx:  dinerContext("user-2"),
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr: true,
		},
		{
			name: "admin can view any reservation",
			ctx: context.WithValue(
				context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1"),
				constant.ContextKeyUserRole, constant.RoleAdmin),
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.repo.EXPECT().
					GetMealNames(gomock.Any(), []string{"reservation-1"}).
					Return(map[string][]string{}, nil)

				m.restaurantRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(restaurantListForEnrich(), nil)
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(tt.ctx, "reservation-1")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "reservation-1", res.ID)
			assert.Equal(t, "Pasta Palace", res.RestaurantName)
			assert.NotEmpty(t, res.QRCode)
		})
	}
}

func TestReservationService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	reservation := reservationFixture("reservation-1", "user-1")

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
	}{
		{
			name: "owner cancels reservation",
			ctx:  dinerContext("user-1"),
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "another diner is rejected",
			ctx:  dinerContext("user-2"),
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr: true,
		},
		{
			name: "delete error",
			ctx:  dinerContext("user-1"),
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("delete error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(tt.ctx, "reservation-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func userModelForConfirmation() userModel.User {
	return userModel.User{
		ID:       "user-1",
		Username: "diner",
		Email:    "diner@example.com",
		Role:     constant.RoleDiner,
		Active:   true,
	}
}

func restaurantModelForConfirmation() restaurantModel.Restaurant {
	return restaurantModel.Restaurant{
		ID:      "restaurant-1",
		Name:    "Pasta Palace",
		Slug:    "pasta-palace",
		Address: "1 Noodle Way",
		OwnerID: "owner-1",
	}
}

func restaurantListForEnrich() []restaurantModel.Restaurant {
	return []restaurantModel.Restaurant{restaurantModelForConfirmation()}
}

func reservationFixture(id, userID string) model.Reservation {
	return model.Reservation{
		ID:           id,
		UserID:       userID,
		RestaurantID: "restaurant-1",
		TableID:      "table-1",
		ReservedDate: time.Date(2030, 5, 20, 0, 0, 0, 0, time.UTC),
		ReservedTime: time.Date(0, 1, 1, 19, 0, 0, 0, time.UTC),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}
