package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"

	"fulfillment/cmd"
	httpserver "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/historyrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/paymentrepo"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB := openDatabase(configs)
	migrateDatabase(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		_ = app.Close()
	}()

	jobManager := jobs.NewJobManager(
		app.UnitOfWorkFactory(),
		app.NotificationPublisher(),
		app.PendingReminderAfter(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		KafkaHost:               goDotEnvVariable("KAFKA_HOST"),
		KafkaNotificationsTopic: goDotEnvVariable("KAFKA_NOTIFICATIONS_TOPIC"),

		DepositCapPercent:    goDotEnvVariable("DEPOSIT_CAP_PERCENT"),
		PaymentMethods:       goDotEnvVariable("PAYMENT_METHODS"),
		PendingReminderAfter: goDotEnvVariable("PENDING_REMINDER_AFTER"),
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

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateDatabase(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&paymentrepo.PaymentDTO{},
		&historyrepo.HistoryDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpserver.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateApplyTransitionCommandHandler(),
		app.CreateRecordDepositCommandHandler(),
		app.CreateRecordRemainingPaymentCommandHandler(),
		app.CreateGetOrderPaymentsQueryHandler(),
		app.CreateGetOrderHistoryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
