package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"todo_backend/internal/app/router"
	"todo_backend/internal/config"
	authadapters "todo_backend/internal/feature/auth/adapters"
	authhandler "todo_backend/internal/feature/auth/transport/handler"
	authusecase "todo_backend/internal/feature/auth/usecase"
	taskadapters "todo_backend/internal/feature/tasks/adapters"
	taskhandler "todo_backend/internal/feature/tasks/transport/handler"
	taskusecase "todo_backend/internal/feature/tasks/usecase"
	"todo_backend/internal/platform/cache"
	infradb "todo_backend/internal/platform/db"
	jwtmw "todo_backend/internal/platform/jwt"
	infraredis "todo_backend/internal/platform/redis"
)

func main() {
	// 設定読み込み（.env → 環境変数）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWT.Secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := infradb.OpenDB(cfg.Database)

	// Redis（任意。無ければキャッシュなしで動作）
	var rdb *redisv9.Client
	if cfg.Redis.Host == "" {
		rdb = nil
	} else if tmp, err := infraredis.NewRedisClient(cfg.Redis); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Token manager
	tokens := jwtmw.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	taskRepo := taskadapters.NewTaskMySQL(db)

	// Redisキャッシュでラップ
	cachedTaskRepo := cache.NewCachingTaskRepository(rdb, cfg.Redis.CacheTTL, taskRepo, "task_lists")

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	taskUC := taskusecase.NewTaskUsecase(cachedTaskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)

	// ルータ生成
	router := router.NewRouter(authH, taskH, tokens)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
