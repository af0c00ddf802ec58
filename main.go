package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/blog-backend/api"
	"github.com/rpupo63/blog-backend/config"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/models"
)

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	c := config.New()
	setupLogger(c)
	if envErr != nil {
		log.Warn().Err(envErr).Msg("no .env file loaded")
	}
	log.Info().Msg("Initializing app...")

	ctx := context.Background()

	if prefix := config.GetString(c, "SSM_PARAMETER_PREFIX", ""); prefix != "" {
		applied, err := config.LoadSSM(ctx, c, prefix)
		if err != nil {
			log.Fatal().Err(err).Str("prefix", prefix).Msg("Error loading SSM parameters")
		}
		log.Info().Int("parameters", applied).Str("prefix", prefix).Msg("Loaded SSM parameters")
	}

	// Generation switches run against the database and exit
	generateModels := config.GetBool(c, "GENERATE_MODELS", false)
	columnReport := config.GetBool(c, "GENERATE_COLUMN_REPORT", false)
	if generateModels || columnReport {
		if err := runTooling(c, generateModels); err != nil {
			log.Fatal().Err(err).Msg("Error running model tooling")
		}
		return
	}

	deps, cleanup, err := buildDependencies(ctx, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing dependencies")
	}
	defer cleanup()

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(c, deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// setupLogger applies LOG_LEVEL and LOG_FORMAT to the global zerolog logger.
func setupLogger(c map[string]string) {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "LOG_FORMAT", "") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// runTooling migrates and generates query helpers, or only prints the column report.
func runTooling(c map[string]string, generate bool) error {
	db, err := database.Open(c)
	if err != nil {
		return err
	}

	if generate {
		log.Info().Msg("Migrating models...")
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	report, err := models.ColumnReport(db)
	if err != nil {
		return err
	}
	models.WriteColumnReport(os.Stdout, report)

	if generate {
		log.Info().Msg("Generating query helpers...")
		models.GenerateQueries(db, "./generated")
		log.Info().Msg("Model generation complete!")
	}
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
