package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"bookstore_backend/internal/app/config"
	"bookstore_backend/internal/app/router"
	authadapters "bookstore_backend/internal/feature/auth/adapters"
	authhandler "bookstore_backend/internal/feature/auth/transport/handler"
	authusecase "bookstore_backend/internal/feature/auth/usecase"
	bookadapters "bookstore_backend/internal/feature/books/adapters"
	bookhandler "bookstore_backend/internal/feature/books/transport/handler"
	bookusecase "bookstore_backend/internal/feature/books/usecase"
	useradapters "bookstore_backend/internal/feature/users/adapters"
	userhandler "bookstore_backend/internal/feature/users/transport/handler"
	userusecase "bookstore_backend/internal/feature/users/usecase"
	"bookstore_backend/internal/platform/cache"
	platformdb "bookstore_backend/internal/platform/db"
	"bookstore_backend/internal/platform/mongodb"
	"bookstore_backend/internal/platform/password"
	platformredis "bookstore_backend/internal/platform/redis"
	"bookstore_backend/internal/platform/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// MySQL
	db, err := platformdb.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// MongoDB
	mongoClient, err := mongodb.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("failed to disconnect mongodb", "error", err)
		}
	}()
	mongoDB := mongoClient.Database(cfg.MongoDatabase)

	// Redis（接続できない場合はキャッシュなしで継続）
	var rdb *redisv9.Client
	if addr := cfg.RedisAddr(); addr != "" {
		if tmp, err := platformredis.NewRedisClient(addr, cfg.RedisPassword); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	userListRepo := useradapters.NewUserGorm(db)
	bookRepo := bookadapters.NewBookMongo(mongoDB)
	if err := bookRepo.EnsureIndexes(context.Background()); err != nil {
		slog.Error("failed to ensure book indexes", "error", err)
	}

	// Redisキャッシュでラップ
	cachedBookRepo := cache.NewCachingBookRepository(rdb, cfg.CacheTTL, bookRepo, "books")

	// Usecase
	codec := token.NewCodec(cfg.JWTSecret)
	hasher := password.NewHasher()
	authUC := authusecase.NewAuthUsecase(userRepo, codec, hasher, cfg.RegisterTokenTTL, cfg.LoginTokenTTL)
	userUC := userusecase.NewUserUsecase(userListRepo)
	bookUC := bookusecase.NewBookUsecase(cachedBookRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, authhandler.CookieTTL{
		Register: cfg.RegisterTokenTTL,
		Login:    cfg.LoginTokenTTL,
	}, cfg.CookieSecure)
	userH := userhandler.NewUserHandler(userUC)
	bookH := bookhandler.NewBookHandler(bookUC)

	// ルータ生成
	r := router.NewRouter(cfg, authH, userH, bookH, authUC)

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
