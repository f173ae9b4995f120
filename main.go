package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/budgetproject/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:               "budget",
	Short:             "Track the budgets of projects and what is spent on them",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	RunE:              serve,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "file to load environment variables from")

	rootCmd.AddCommand(serveCmd(), exportCmd())
}

//	@title			Budget
//	@description	Track the budgets of projects and the expenses made for them.
//	@BasePath		/
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig loads the environment and sets up gin and logging.
func initConfig(_ *cobra.Command, _ []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("could not load %s: %w", envFile, err)
		}
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	return nil
}

// baseURL returns the URL the instance is reachable at.
func baseURL() (*url.URL, error) {
	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		return nil, errors.New("environment variable API_URL must be set")
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	return u, nil
}

// connect connects to PostgreSQL if DB_HOST is set and to the
// SQLite database in DATA_DIR otherwise.
func connect() error {
	if host, ok := os.LookupEnv("DB_HOST"); ok {
		log.Info().Str("host", host).Msg("Database")
		return models.ConnectPostgres(models.PostgresDSN(host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME")))
	}

	dataDir, ok := os.LookupEnv("DATA_DIR")
	if !ok {
		dataDir = "data"
	}

	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	path := filepath.Join(dataDir, "budget.db")
	log.Info().Str("path", path).Msg("Database")
	return models.Connect(path)
}

// closeDB closes the database connection.
func closeDB() {
	sqlDB, err := models.DB.DB()
	if err != nil {
		log.Error().Err(err).Msg("Database")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("Database")
	}
}
