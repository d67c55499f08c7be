package app

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"go.uber.org/zap"

	"bookhive-api/internal/cache"
	"bookhive-api/internal/controller"
	"bookhive-api/internal/repo"
	"bookhive-api/internal/service"
	"bookhive-api/pkg/http_server"
	"bookhive-api/pkg/postgres"
)

func runMigrations(logger *zap.Logger, postgresDB *postgres.Postgres, databaseName string) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		logger.Fatal("migration driver", zap.Error(err))
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		logger.Fatal("migration setup", zap.Error(err))
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.Info("no change made by migration scripts")
		} else {
			logger.Fatal("migration up", zap.Error(err))
		}
	}
}

// newHighestBidCache returns nil when REDIS_ADDR is unset; the bid service
// then reduces the sub-bid log on every read.
func newHighestBidCache(logger *zap.Logger) *cache.HighestBidCache {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		return nil
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	highestBids, err := cache.NewHighestBidCache(redisAddr, os.Getenv("REDIS_PASSWORD"), redisDB, logger)
	if err != nil {
		logger.Warn("redis unavailable, highest-bid cache disabled", zap.Error(err))
		return nil
	}

	logger.Info("highest-bid cache enabled", zap.String("addr", redisAddr))

	return highestBids
}

func Run() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	serverAddressEnv := os.Getenv("SERVER_ADDRESS")
	dbConnEnv := os.Getenv("POSTGRES_CONN")
	databaseEnv := os.Getenv("POSTGRES_DATABASE")

	logger.Info("connecting database")
	postgresDB, err := postgres.NewDB(dbConnEnv)
	if err != nil {
		logger.Fatal("error occurred while connecting to db", zap.Error(err))
	}
	defer postgresDB.Close()

	logger.Info("running migrations")
	runMigrations(logger, postgresDB, databaseEnv)

	highestBids := newHighestBidCache(logger)
	if highestBids != nil {
		defer highestBids.Close()
	}

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(repositories, highestBids)
	handler := echo.New()

	logger.Info("setup routes")
	controller.SetupRoutesHandlers(handler, services)

	logger.Info("starting server", zap.String("addr", serverAddressEnv))
	httpServer := http_server.New(handler, serverAddressEnv)

	logger.Info("ready to process requests")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		logger.Info("got signal", zap.String("signal", s.String()))
	case err = <-httpServer.Notify():
		logger.Error("server stopped", zap.Error(err))
	}

	logger.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	} else {
		logger.Info("successful shutdown")
	}
}
