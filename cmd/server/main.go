package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-catalog-api/internal/config"
	"github.com/iliyamo/book-catalog-api/internal/database"
	"github.com/iliyamo/book-catalog-api/internal/handler"
	"github.com/iliyamo/book-catalog-api/internal/middleware"
	"github.com/iliyamo/book-catalog-api/internal/queue"
	"github.com/iliyamo/book-catalog-api/internal/repository"
	"github.com/iliyamo/book-catalog-api/internal/router"
	queue_publisher "github.com/iliyamo/book-catalog-api/internal/service"
	"github.com/iliyamo/book-catalog-api/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	issuer := utils.NewTokenIssuer(cfg.AccessSecret, cfg.AccessTTL, cfg.RefreshSecret, cfg.RefreshTTL)

	users := repository.NewUserRepo(db)
	authors := repository.NewAuthorRepo(db)
	genres := repository.NewGenreRepo(db)
	books := repository.NewBookRepo(db)
	reviews := repository.NewReviewRepo(db)

	authHandler := handler.NewAuthHandler(cfg, issuer, users)
	userHandler := handler.NewUserHandler(users)
	catalogHandler := handler.NewCatalogHandler(authors, genres, books)
	reviewHandler := handler.NewReviewHandler(books, reviews, queue_publisher.PublishReviewCreated)

	// Redis is optional: when unreachable the catalog cache degrades to a
	// pass-through middleware.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, response cache disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Background consumer appending review.created events to logs/reviews.log.
	go func() {
		if err := queue.StartReviewConsumer(); err != nil {
			log.Printf("review-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, userHandler, issuer)
	router.RegisterCatalog(e, catalogHandler, issuer, cache)
	router.RegisterReviews(e, reviewHandler, issuer)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
