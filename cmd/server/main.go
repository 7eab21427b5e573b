package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/mailer"
	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/payment"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/router"
	"github.com/iliyamo/hotel-booking/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, relying on process environment: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: when unavailable, caching and rate limiting
	// silently degrade to no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)

	checker := service.NewAvailabilityChecker(bookings)
	checkout := payment.NewCheckout(cfg.StripeSecretKey, cfg.Currency)

	userH := handler.NewUserHandler(users, cfg.Env)
	hotelH := handler.NewHotelHandler(hotels, users, cfg.Env)
	roomH := handler.NewRoomHandler(rooms, hotels, cfg.Env)
	bookingH := handler.NewBookingHandler(bookings, rooms, hotels, checker, checkout,
		cfg.Env, cfg.Currency, cfg.FrontendURL)

	// The consumer turns booking events into confirmation mail.  It owns
	// its broker connection and reconnects forever; mail failures never
	// reach the request path.
	m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SenderEmail)
	if !m.Enabled() {
		log.Printf("smtp not configured; booking confirmations will be logged only")
	}
	go func() {
		if err := queue.StartBookingConsumer(m); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	router.RegisterRoutes(e)
	router.RegisterPublic(e, hotelH, roomH, bookingH, cache)
	router.RegisterAuthenticated(e, users, cfg.JWTSecret, userH, hotelH, roomH, bookingH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
