package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/blog-backend/api"
	"github.com/rpupo63/blog-backend/config"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/database/memory"
	"github.com/rpupo63/blog-backend/database/tableclient"
	"github.com/rpupo63/blog-backend/services"
)

// buildDependencies selects the store, the public read path and the optional
// cover image presigner from configuration. cleanup releases pools.
func buildDependencies(ctx context.Context, c map[string]string) (api.Dependencies, func(), error) {
	var deps api.Dependencies
	cleanup := func() {}

	store := config.GetString(c, "STORE", "postgres")
	readClient := config.GetString(c, "READ_CLIENT", "gorm")
	if store == "memory" && readClient == "pgx" {
		return deps, cleanup, fmt.Errorf("READ_CLIENT=pgx reads from Postgres and cannot serve STORE=memory")
	}

	switch store {
	case "memory":
		log.Warn().Msg("Using the in-memory store; data is lost on restart")
		deps.Store = memory.New()
	case "postgres":
		db, err := database.Open(c)
		if err != nil {
			return deps, cleanup, err
		}
		if config.GetBool(c, "AUTO_MIGRATE", false) {
			if err := database.AutoMigrate(db); err != nil {
				return deps, cleanup, fmt.Errorf("auto migrate: %w", err)
			}
			log.Info().Msg("Database schema migrated")
		}
		deps.Store = database.New(db)
	default:
		return deps, cleanup, fmt.Errorf("unsupported STORE %q", store)
	}

	if readClient == "pgx" {
		dsn := config.GetString(c, "DATABASE_REPLICA_URL", config.DatabaseURL(c))
		pool, err := tableclient.NewPool(ctx, tableclient.PoolConfig{
			DSN:            dsn,
			MaxConns:       int32(config.GetInt(c, "PGX_MAX_CONNS", 10)),
			SimpleProtocol: config.GetBool(c, "PGX_SIMPLE_PROTOCOL", true),
		})
		if err != nil {
			return deps, cleanup, fmt.Errorf("read pool: %w", err)
		}
		cleanup = pool.Close
		deps.Reads = tableclient.New(pool)
		log.Info().Msg("Public reads served by the direct table client")
	}

	if bucket := config.GetString(c, "COVER_IMAGE_BUCKET", ""); bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return deps, cleanup, fmt.Errorf("load aws config: %w", err)
		}
		presigner := s3.NewPresignClient(s3.NewFromConfig(awsCfg))
		deps.CoverImages = services.NewCoverImageService(presigner, bucket, awsCfg.Region,
			config.GetString(c, "COVER_IMAGE_PUBLIC_BASE_URL", ""))
		log.Info().Str("bucket", bucket).Msg("Cover image uploads enabled")
	}

	return deps, cleanup, nil
}
