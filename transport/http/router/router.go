package router

import (
	"github.com/go-chi/chi/v5"

	"lunchtime/internal/handlers/auth"
	"lunchtime/internal/handlers/meal"
	"lunchtime/internal/handlers/reservation"
	"lunchtime/internal/handlers/restaurant"
	"lunchtime/internal/handlers/review"
	"lunchtime/internal/handlers/table"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Restaurant  restaurant.Handler
	Table       table.Handler
	Meal        meal.Handler
	Review      review.Handler
	Reservation reservation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Restaurant.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Meal.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
