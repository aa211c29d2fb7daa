package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"bakeshop/cmd"
	httpin "bakeshop/internal/adapters/in/http"
	"bakeshop/internal/adapters/out/postgres/auditrepo"
	"bakeshop/internal/adapters/out/postgres/orderrepo"
	"bakeshop/internal/adapters/out/rabbit"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	migrateDB(gormDB)

	publisher, err := rabbit.NewPublisher(configs.AmqpURL, configs.AmqpExchange)
	if err != nil {
		log.Fatalf("Error connecting to message broker: %v", err)
	}
	defer publisher.Close()

	app, err := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	if err := app.RehydrateCapacity(context.Background()); err != nil {
		log.Fatalf("Error rehydrating capacity counters: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:           goDotEnvVariable("AMQP_URL"),
		AmqpExchange:      goDotEnvVariable("AMQP_EXCHANGE"),
		CalendarOpenHour:  goDotEnvInt("CALENDAR_OPEN_HOUR"),
		CalendarCloseHour: goDotEnvInt("CALENDAR_CLOSE_HOUR"),
		CalendarSlotLimit: goDotEnvInt("CALENDAR_SLOT_LIMIT"),
		CalendarHolidays:  goDotEnvList("CALENDAR_HOLIDAYS"),
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

func goDotEnvInt(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s as integer: %v", key, err)
	}
	return value
}

func goDotEnvList(key string) []string {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func migrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &auditrepo.RecordDTO{})
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateRequestTransitionCommandHandler(),
		app.CreateSetPaymentStatusCommandHandler(),
		app.CreateGetAvailabilityQueryHandler(),
		app.CreateGetOrderHistoryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
