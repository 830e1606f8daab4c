package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"freightledger/cmd"
	httpadapter "freightledger/internal/adapters/in/http"
	"freightledger/internal/adapters/out/postgres"
	"freightledger/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	root := cmd.NewCompositionRoot(configs, db)
	defer func() {
		if closeErr := root.ClosePublisher(); closeErr != nil {
			log.Errorf("Failed to close event publisher: %v", closeErr)
		}
	}()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(
		root.CreateSettleDueIncentivesCommandHandler(),
		configs.SweepSchedule,
		logger,
	)

	e := newWebServer(&root)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if startErr := jobManager.StartAll(); startErr != nil {
			return startErr
		}
		<-groupCtx.Done()
		jobManager.StopAll()
		return nil
	})

	group.Go(func() error {
		startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
		if startErr != nil && startErr != http.ErrServerClosed {
			return startErr
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		log.Fatalf("Application stopped with error: %v", err)
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
		SweepSchedule: goDotEnvVariable("SWEEP_SCHEDULE"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		config.KafkaBrokers = strings.Split(brokers, ",")
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
	return gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
}

func newWebServer(root *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(httpadapter.MetricsMiddleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", httpadapter.MetricsHandler())

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateSubmitOrderCommandHandler(),
		root.CreateLaunchLegCommandHandler(),
		root.CreateReportLegCommandHandler(),
		root.CreateRegisterCarrierCommandHandler(),
		root.CreateUnregisterCarrierCommandHandler(),
		root.CreateSettleIncentiveCommandHandler(),
		root.CreateGetCarrierRatingsQueryHandler(),
		root.CreateGetRecipientBalancesQueryHandler(),
		root.CreateGetOpenOrdersQueryHandler(),
		root.CreateGetAuditLogQueryHandler(),
	)
	server.RegisterRoutes(e)

	return e
}
