package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rpupo63/blog-backend/config"
	"github.com/rpupo63/blog-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the primary database described by c and, when
// DATABASE_REPLICA_URL is set, registers the replica for read queries.
func Open(c map[string]string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Duration(config.GetInt(c, "DB_SLOW_THRESHOLD_MS", 2000)) * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  config.GetString(c, "LOG_FORMAT", "") == "console",
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  config.DatabaseURL(c),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if replica := config.GetString(c, "DATABASE_REPLICA_URL", ""); replica != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  replica,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	// Test database connection
	var result int
	if err := db.Clauses(dbresolver.Write).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}

// AutoMigrate creates or updates the posts, categories and post_categories tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		return fmt.Errorf("enable pgcrypto extension: %w", err)
	}
	return db.AutoMigrate(models.All()...)
}
