//go:build wireinject
// +build wireinject

package di

import (
	"hallbook/config"
	"hallbook/infras/jwt"
	"hallbook/infras/kafka"
	"hallbook/infras/otel"
	"hallbook/infras/postgres"
	"hallbook/infras/razorpay"
	"hallbook/infras/redis"
	"hallbook/infras/s3"
	"hallbook/permissions"
	"hallbook/shared/cache"
	"hallbook/transport/http"
	"hallbook/transport/http/middleware"
	"hallbook/transport/http/router"

	"github.com/google/wire"

	amenityRepository "hallbook/internal/domains/amenity/repository"
	amenityService "hallbook/internal/domains/amenity/service"
	analyticsRepository "hallbook/internal/domains/analytics/repository"
	analyticsService "hallbook/internal/domains/analytics/service"
	authService "hallbook/internal/domains/auth/service"
	"hallbook/internal/domains/booking/pricing"
	bookingRepository "hallbook/internal/domains/booking/repository"
	bookingService "hallbook/internal/domains/booking/service"
	hallRepository "hallbook/internal/domains/hall/repository"
	hallService "hallbook/internal/domains/hall/service"
	paymentRepository "hallbook/internal/domains/payment/repository"
	paymentService "hallbook/internal/domains/payment/service"
	userRepository "hallbook/internal/domains/user/repository"
	userService "hallbook/internal/domains/user/service"

	amenityHandler "hallbook/internal/handlers/amenity"
	analyticsHandler "hallbook/internal/handlers/analytics"
	authHandler "hallbook/internal/handlers/auth"
	bookingHandler "hallbook/internal/handlers/booking"
	hallHandler "hallbook/internal/handlers/hall"
	paymentHandler "hallbook/internal/handlers/payment"
	userHandler "hallbook/internal/handlers/user"
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
	s3.New,
	razorpay.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	permissions.Get,
)

var hallDomain = wire.NewSet(
	hallRepository.New,
	hallService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	pricing.FromConfig,
	bookingService.New,
)

var amenityDomain = wire.NewSet(
	amenityRepository.New,
	amenityService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var analyticsDomain = wire.NewSet(
	analyticsRepository.New,
	analyticsService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	hallDomain,
	amenityDomain,
	bookingDomain,
	paymentDomain,
	analyticsDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	hallHandler.New,
	amenityHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	analyticsHandler.New,
	userHandler.New,
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
