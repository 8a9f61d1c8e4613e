package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/booking"
	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/logger"
	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/router"
	queue_publisher "github.com/iliyamo/venue-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	store := repository.NewStore(db)
	engineLog := logger.New(cfg.EngineLog)

	var pub booking.Publisher
	if cfg.AMQPURL != "" {
		pub = queue_publisher.New(cfg.AMQPURL)
		// The consumer appends booking activity to logs/activity.log.
		go queue.StartActivityConsumer(cfg.AMQPURL)
	}
	engine := booking.New(store, pub, engineLog)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(repository.NewUserRepo(db), cfg.JWTSecret, cfg.AccessTTLMin))

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient())
	router.RegisterEngine(e,
		handler.NewEngineHandler(engine),
		handler.NewTicketHandler(store.Tickets, store.Shows),
		cfg.JWTSecret, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
