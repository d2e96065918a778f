package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/dispatchlogrepo"
	"dispatch/internal/adapters/out/postgres/earningrepo"
	"dispatch/internal/adapters/out/postgres/merchantrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/paymentlogrepo"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := mustConnectDB(configs)

	root := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := jobs.NewJobManager(
		root.CreateDispatchOrderCommandHandler(),
		root.CreateDispatchUoWFactory(),
		configs.DispatchMaxAttempts,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
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

		ClickServiceID:  goDotEnvVariable("CLICK_SERVICE_ID"),
		ClickSecretKey:  goDotEnvVariable("CLICK_SECRET_KEY"),
		ClickMerchantID: goDotEnvVariable("CLICK_MERCHANT_ID"),
		ClickReturnURL:  goDotEnvVariable("CLICK_RETURN_URL"),

		WeightsPath:    goDotEnvVariable("WEIGHTS_PATH"),
		WeightsRefresh: envDuration("WEIGHTS_REFRESH", 0),

		FallbackDeliveryFee: envFloat("FALLBACK_DELIVERY_FEE", 0),
		DispatchMaxAttempts: envInt("DISPATCH_MAX_ATTEMPTS", 0),
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

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Error parsing %s as duration: %v", key, err)
	}
	return value
}

func envFloat(key string, fallback float64) float64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Error parsing %s as float: %v", key, err)
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Error parsing %s as int: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&merchantrepo.MerchantDTO{},
		&earningrepo.EarningDTO{},
		&dispatchlogrepo.AttemptDTO{},
		&paymentlogrepo.EntryDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return db
}

func startWebServer(root cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateDispatchOrderCommandHandler(),
		root.CreateAssignCourierCommandHandler(),
		root.CreateReleaseOrderCommandHandler(),
		root.CreateUpdateOrderStatusCommandHandler(),
		root.CreateCreateCourierCommandHandler(),
		root.CreateUpdateCourierLocationCommandHandler(),
		root.CreateSetCourierStatusCommandHandler(),
		root.CreateCreateMerchantCommandHandler(),
		root.CreateProcessPaymentCommandHandler(),
		root.CreateTrackOrderQueryHandler(),
		root.CreateGetActiveOrdersQueryHandler(),
		root.CreateGetAllCouriersQueryHandler(),
		root.CreatePaymentLinkBuilder(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
