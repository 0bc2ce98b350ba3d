package main // Entry point package

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/experience-booking/internal/config"
    "github.com/iliyamo/experience-booking/internal/database"
    "github.com/iliyamo/experience-booking/internal/handler"
    "github.com/iliyamo/experience-booking/internal/queue"
    "github.com/iliyamo/experience-booking/internal/repository"
    "github.com/iliyamo/experience-booking/internal/router"
    "github.com/iliyamo/experience-booking/internal/service"
)

func main() {
    // Load .env when present; real deployments set the environment
    // directly and the file is absent.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional: without it caching and rate limiting are
    // disabled and the API still serves correctly.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; response cache and rate limiter disabled")
    }

    experienceRepo := repository.NewExperienceRepo(db)
    slotRepo := repository.NewSlotRepo(db)
    bookingRepo := repository.NewBookingRepo(db)
    promoRepo := repository.NewPromoRepo(db)

    bookingSvc := service.NewBookingService(slotRepo, bookingRepo, service.PublishBookingConfirmed)

    // Background consumer appends confirmed bookings to logs/booking.log.
    // It reconnects forever on its own; failures never affect requests.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterBrowse(e,
        handler.NewBrowseHandler(experienceRepo, slotRepo),
        config.LoadCacheConfig(), rdb)
    router.RegisterBooking(e,
        handler.NewBookingHandler(bookingSvc, bookingRepo),
        handler.NewPromoHandler(promoRepo),
        config.LoadRateLimitConfig(), rdb)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
