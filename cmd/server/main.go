package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/database"
	"github.com/iliyamo/restaurant-table-reservation/internal/engine"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// The engine holds all reservation state in memory; seed its user
	// registry from the durable account store.
	store := engine.NewStore()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	users, err := userRepo.List(ctx)
	cancel()
	if err != nil {
		log.Fatalf("load users: %v", err)
	}
	for _, u := range users {
		store.RegisterUser(&model.User{ID: u.ID, Email: u.Email, Role: model.Role(u.Role)})
	}
	log.Printf("engine: registered %d users", len(users))

	clock := engine.SystemClock()
	step := time.Duration(cfg.SlotStepMin) * time.Minute
	planner := engine.NewPlanner(store, clock, step)
	authority := engine.NewAuthority(store, clock, step)

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unavailable, rate limiting and caching disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Reservation event consumer writes logs/reservations.log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation-consumer: %v", err)
		}
	}()

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo, store)
	restaurantHandler := handler.NewRestaurantHandler(store)
	reservationHandler := handler.NewReservationHandler(store, planner, authority, true)
	managerHandler := handler.NewManagerReservationHandler(store, authority)

	e := echo.New()
	e.Use(rateLimit)
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, restaurantHandler, reservationHandler, cache)
	router.RegisterReservations(e, cfg.JWTSecret, restaurantHandler, reservationHandler, managerHandler)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, slot step=%s)", addr, cfg.Env, step)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
