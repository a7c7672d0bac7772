package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/beiramar/pousada/internal/api/handler"
	"github.com/beiramar/pousada/internal/api/middleware"
	"github.com/beiramar/pousada/internal/booking"
	"github.com/beiramar/pousada/internal/menu"
	"github.com/beiramar/pousada/internal/metrics"
	"github.com/beiramar/pousada/internal/post"
	"github.com/beiramar/pousada/internal/product"
	"github.com/beiramar/pousada/internal/profile"
	"github.com/beiramar/pousada/internal/room"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger   handler.DBPinger
	Version    string
	AdminEmail string

	Resolver  middleware.SessionResolver
	Gate      middleware.AdminAuthorizer
	Collector *metrics.Collector

	PublicLimiter  *middleware.RateLimiter
	BookingLimiter *middleware.RateLimiter

	MenuRepo    menu.Repository
	ProductRepo product.Repository
	RoomRepo    room.Repository
	PostRepo    post.Repository
	BookingRepo booking.Repository
	ProfileRepo profile.Repository

	Sanitizer  handler.HTMLSanitizer
	MediaStore handler.MediaStore
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics(deps.Collector))

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)
	r.Method("GET", "/metrics", deps.Collector.Handler())

	menuHandler := handler.NewMenuHandler(deps.MenuRepo)
	productHandler := handler.NewProductHandler(deps.ProductRepo)
	roomHandler := handler.NewRoomHandler(deps.RoomRepo, deps.Sanitizer)
	postHandler := handler.NewPostHandler(deps.PostRepo, deps.Sanitizer)
	bookingHandler := handler.NewBookingHandler(deps.BookingRepo)
	userHandler := handler.NewUserHandler(deps.ProfileRepo, deps.AdminEmail)
	mediaHandler := handler.NewMediaHandler(deps.MediaStore)

	// Public surface: read-only content plus booking submission, rate
	// limited per client IP.
	r.Group(func(r chi.Router) {
		r.Use(deps.PublicLimiter.Handler)

		r.Get("/menu", menuHandler.ListPublic)
		r.Get("/cafe/products", productHandler.ListPublic)
		r.Get("/rooms", roomHandler.ListPublic)
		r.Get("/rooms/{id}", roomHandler.GetByID)
		r.Get("/posts", postHandler.ListPublic)
		r.Get("/posts/{slug}", postHandler.GetBySlug)
	})

	// Booking submission gets its own tighter bucket.
	r.Group(func(r chi.Router) {
		r.Use(deps.BookingLimiter.Handler)

		r.Post("/bookings", bookingHandler.Create)
	})

	// Back office: every route requires an authenticated admin.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Authenticate(deps.Resolver))
		r.Use(middleware.RequireAdmin(deps.Gate, deps.Collector))

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", menuHandler.List)
			r.Post("/", menuHandler.Create)
			r.Patch("/{id}", menuHandler.Update)
			r.Delete("/{id}", menuHandler.Delete)
		})

		r.Route("/cafe/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Post("/", productHandler.Create)
			r.Patch("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", roomHandler.List)
			r.Post("/", roomHandler.Create)
			r.Patch("/{id}", roomHandler.Update)
			r.Delete("/{id}", roomHandler.Delete)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Post("/", postHandler.Create)
			r.Get("/{id}", postHandler.GetByID)
			r.Patch("/{id}", postHandler.Update)
			r.Delete("/{id}", postHandler.Delete)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", bookingHandler.List)
			r.Get("/{id}", bookingHandler.GetByID)
			r.Patch("/{id}/status", bookingHandler.UpdateStatus)
			r.Delete("/{id}", bookingHandler.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Get("/{id}", userHandler.GetByID)
			r.Patch("/{id}/role", userHandler.UpdateRole)
			r.Delete("/{id}", userHandler.Delete)
		})

		r.Route("/media", func(r chi.Router) {
			r.Post("/", mediaHandler.Upload)
			r.Delete("/*", mediaHandler.Delete)
		})
	})

	return r
}
