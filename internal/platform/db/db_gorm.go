package db

import (
	"fmt"
	"log"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"todo_backend/internal/config"
	authentity "todo_backend/internal/feature/auth/domain/entity"
	taskentity "todo_backend/internal/feature/tasks/domain/entity"
)

// OpenDB opens the configured database and optionally runs migrations.
// MySQL is retried for up to 60 seconds so the server survives a database
// that is still starting up; SQLite is for local development.
func OpenDB(cfg config.DatabaseConfig) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if cfg.Driver == "sqlite" {
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open sqlite database: %v", err)
		}
		log.Println("USING_SQLITE:", cfg.SQLitePath)
	} else {
		dsn := mysqlDSN(cfg)
		deadline := time.Now().Add(60 * time.Second)
		for {
			db, err = gorm.Open(gmysql.Open(dsn), &gorm.Config{})
			if err == nil {
				break
			}
			if time.Now().After(deadline) {
				log.Fatalf("DB connect failed after 60s: %v", err)
			}
			log.Printf("DB connect failed, retrying...: %v", err)
			time.Sleep(3 * time.Second)
		}
	}

	if cfg.RunMigrations {
		// マイグレーション（User, Task）
		if err := db.AutoMigrate(
			&authentity.User{},
			&taskentity.Task{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// mysqlDSN builds the MySQL DSN, using the Cloud SQL unix socket when an
// instance connection name is configured.
func mysqlDSN(cfg config.DatabaseConfig) string {
	if cfg.InstanceConnectionName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceConnectionName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}
