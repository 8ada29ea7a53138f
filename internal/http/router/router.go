package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courier-track/internal/http/handlers"
	"courier-track/internal/http/middleware"
	"courier-track/internal/http/middleware/ratelimit"
	"courier-track/internal/logx"
)

// Deps carries everything the router needs.
type Deps struct {
	Base    *handlers.Handlers
	Auth    *handlers.AuthHandler
	Courier *handlers.CourierHandler
	Tokens  middleware.TokenParser
	LoginRL *ratelimit.Middleware
	Logger  logx.Logger
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))
	r.Use(middleware.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	r.Post("/register", d.Auth.Register)
	r.Group(func(r chi.Router) {
		if d.LoginRL != nil {
			r.Use(d.LoginRL.Handler())
		}
		r.Post("/login", d.Auth.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Tokens, d.Logger))

		r.Get("/my/couriers", d.Courier.ListMine)
		r.Get("/courier/{id}/location", d.Courier.Location)
		r.Get("/courier/{id}/delivery-person", d.Courier.DeliveryPerson)
		r.Get("/courier/{id}/track", d.Courier.Track)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(d.Logger))

			r.Get("/couriers", d.Courier.List)
			r.Post("/courier", d.Courier.Create)
			r.Patch("/courier/{id}/status", d.Courier.UpdateStatus)
		})
	})

	return r
}
