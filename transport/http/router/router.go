package router

import (
	"hallbook/internal/handlers/amenity"
	"hallbook/internal/handlers/analytics"
	"hallbook/internal/handlers/auth"
	"hallbook/internal/handlers/booking"
	"hallbook/internal/handlers/hall"
	"hallbook/internal/handlers/payment"
	"hallbook/internal/handlers/user"
	"hallbook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Hall      hall.Handler
	Amenity   amenity.Handler
	Booking   booking.Handler
	Payment   payment.Handler
	Analytics analytics.Handler
	User      user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	appMiddleware  middleware.AppMiddleware
	authRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.appMiddleware.Tracing)
	router.Use(r.appMiddleware.RateLimit())

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.authRole.APIKey)
		routerGroup.Use(r.authRole.Auth)
		routerGroup.Use(r.authRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Auth.AuthenticatedRouter(routerGroup)
		r.DomainHandlers.Hall.Router(routerGroup)
		r.DomainHandlers.Amenity.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Analytics.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		appMiddleware:  appMiddleware,
		authRole:       authRole,
	}
}
