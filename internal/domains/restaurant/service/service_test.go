package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lunchtime/config"
	"lunchtime/infras/otel/mocks"
	s3Mocks "lunchtime/infras/s3/mocks"
	mealMocks "lunchtime/internal/domains/meal/mocks"
	restaurantMocks "lunchtime/internal/domains/restaurant/mocks"
	"lunchtime/internal/domains/restaurant/model"
	"lunchtime/internal/domains/restaurant/model/dto"
	"lunchtime/internal/domains/restaurant/service"
	reviewMocks "lunchtime/internal/domains/review/mocks"
	tableMocks "lunchtime/internal/domains/table/mocks"
	cacheMocks "lunchtime/shared/cache/mocks"
	"lunchtime/shared/constant"
	gModel "lunchtime/shared/model"
	"lunchtime/shared/timezone"
)

type serviceMocks struct {
	repo       *restaurantMocks.MockRestaurant
	tableRepo  *tableMocks.MockTable
	mealRepo   *mealMocks.MockMeal
	reviewRepo *reviewMocks.MockReview
	cache      *cacheMocks.MockRedisCache
	s3         *s3Mocks.MockS3
}

func newService(ctrl *gomock.Controller) (service.Restaurant, serviceMocks) {
	m := serviceMocks{
		repo:       restaurantMocks.NewMockRestaurant(ctrl),
		tableRepo:  tableMocks.NewMockTable(ctrl),
		mealRepo:   mealMocks.NewMockMeal(ctrl),
		reviewRepo: reviewMocks.NewMockReview(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		s3:         s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "lunchtime-assets"

	svc := service.New(
		m.repo,
		m.tableRepo,
		m.mealRepo,
		m.reviewRepo,
		cfg,
		m.cache,
		m.s3,
		mocks.NewOtel(),
	)

	return svc, m
}

func ownerContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleOwner)
}

func restaurantFixture() model.Restaurant {
	return model.Restaurant{
		ID:      "restaurant-1",
		Name:    "Pasta Palace",
		Slug:    "pasta-palace",
		Address: "1 Noodle Way",
		OwnerID: "owner-1",
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "owner-1",
			ModifiedBy: "owner-1",
		},
	}
}

func TestRestaurantService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	req := dto.CreateRestaurantRequest{
		Name:    "Pasta Palace",
		Address: "1 Noodle Way",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantSlug  string
	}{
		{
			name: "successful creation",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:  false,
			wantSlug: "pasta-palace",
		},
		{
			name: "slug collision gets a numeric suffix",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:  false,
			wantSlug: "pasta-palace-2",
		},
		{
			name: "slug check error",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "insert error",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("insert error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(ownerContext("owner-1"), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantSlug, res.Slug)
				assert.NotEmpty(t, res.ID)
			}
		})
	}
}

func TestRestaurantService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantID    string
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
			name: "cache miss, successful get from db",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(restaurantFixture(), nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "restaurant-1",
		},
		{
			name: "restaurant not found",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Restaurant{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "restaurant-1")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, res.ID)
			}
		})
	}
}

func TestRestaurantService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	req := dto.UpdateRestaurantRequest{Name: "Pasta Palace Deluxe"}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateRestaurantRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "owner updates own restaurant",
			ctx:  ownerContext("owner-1"),
			req:  req,
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(restaurantFixture(), nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
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
			name:      "empty update request",
			ctx:       ownerContext("owner-1"),
			req:       dto.UpdateRestaurantRequest{},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "another owner is rejected",
			ctx:  ownerContext("owner-2"),
			req:  req,
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(restaurantFixture(), nil)
			},
			wantErr: true,
		},
		{
			name: "admin can update any restaurant",
			ctx: context.WithValue(
				context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1"),
				constant.ContextKeyUserRole, constant.RoleAdmin),
			req: req,
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(restaurantFixture(), nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(tt.ctx, tt.req, "restaurant-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRestaurantService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
	}{
		{
			name: "owner deletes own restaurant",
			ctx:  ownerContext("owner-1"),
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(restaurantFixture(), nil)

				m.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
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
			name: "restaurant not found",
			ctx:  ownerContext("owner-1"),
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Restaurant{}, nil)
			},
			wantErr: true,
		},
		{
			name: "another owner is rejected",
			ctx:  ownerContext("owner-2"),
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(restaurantFixture(), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(tt.ctx, "restaurant-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
