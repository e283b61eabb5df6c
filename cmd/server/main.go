package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/uowclimb/society-seats/internal/config"
	"github.com/uowclimb/society-seats/internal/database"
	"github.com/uowclimb/society-seats/internal/handler"
	"github.com/uowclimb/society-seats/internal/notify"
	"github.com/uowclimb/society-seats/internal/queue"
	"github.com/uowclimb/society-seats/internal/repository"
	"github.com/uowclimb/society-seats/internal/router"
	"github.com/uowclimb/society-seats/internal/scheduler"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database:", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatal("schema:", err)
	}
	cancel()

	rdb := config.NewRedisClient() // nil when Redis is absent; limiter and cache pass through

	events := repository.NewEventRepo(db)
	participants := repository.NewParticipantRepo(db)
	users := repository.NewUserRepo(db)

	mailer := notify.NewEmailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword)

	sched := scheduler.New(cfg, events, participants, mailer)
	sched.Start()
	defer sched.Stop()

	if cfg.AMQPURL != "" {
		consumer := &queue.ClosureConsumer{URL: cfg.AMQPURL, Mailer: mailer, Address: cfg.ClosureEmail}
		go consumer.Start()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e, cfg, cacheCfg, rdb, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users),
		Events:       handler.NewEventHandler(events, cacheCfg, rdb),
		Participants: handler.NewParticipantHandler(participants, cacheCfg, rdb),
		Register:     handler.NewRegistrationHandler(events, participants, cacheCfg, rdb),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
