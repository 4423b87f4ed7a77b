//go:build wireinject
// +build wireinject

package di

import (
	"lunchtime/config"
	"lunchtime/infras/jwt"
	"lunchtime/infras/kafka"
	"lunchtime/infras/mailer"
	"lunchtime/infras/otel"
	"lunchtime/infras/postgres"
	"lunchtime/infras/redis"
	"lunchtime/infras/s3"
	"lunchtime/permissions"
	"lunchtime/shared/cache"
	"lunchtime/transport/http"
	"lunchtime/transport/http/middleware"
	"lunchtime/transport/http/router"

	"github.com/google/wire"

	authService "lunchtime/internal/domains/auth/service"
	mealRepository "lunchtime/internal/domains/meal/repository"
	mealService "lunchtime/internal/domains/meal/service"
	reservationRepository "lunchtime/internal/domains/reservation/repository"
	reservationService "lunchtime/internal/domains/reservation/service"
	restaurantRepository "lunchtime/internal/domains/restaurant/repository"
	restaurantService "lunchtime/internal/domains/restaurant/service"
	reviewRepository "lunchtime/internal/domains/review/repository"
	reviewService "lunchtime/internal/domains/review/service"
	tableRepository "lunchtime/internal/domains/table/repository"
	tableService "lunchtime/internal/domains/table/service"
	userRepository "lunchtime/internal/domains/user/repository"
	authHandler "lunchtime/internal/handlers/auth"
	mealHandler "lunchtime/internal/handlers/meal"
	reservationHandler "lunchtime/internal/handlers/reservation"
	restaurantHandler "lunchtime/internal/handlers/restaurant"
	reviewHandler "lunchtime/internal/handlers/review"
	tableHandler "lunchtime/internal/handlers/table"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	mailer.New,
	s3.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var restaurantDomain = wire.NewSet(
	restaurantRepository.New,
	restaurantService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var mealDomain = wire.NewSet(
	mealRepository.New,
	mealService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	authDomain,
	restaurantDomain,
	tableDomain,
	mealDomain,
	reviewDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	restaurantHandler.New,
	tableHandler.New,
	mealHandler.New,
	reviewHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
