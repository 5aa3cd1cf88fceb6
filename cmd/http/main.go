package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/delivery/http/controllers"
	"farmalink-service/internal/app/delivery/http/middlewares"
	"farmalink-service/internal/app/delivery/http/routers"
	"farmalink-service/internal/app/drivers/database"
	"farmalink-service/internal/app/drivers/logger"
	"farmalink-service/internal/app/drivers/messaging"
	driverstorage "farmalink-service/internal/app/drivers/storage"
	"farmalink-service/internal/app/services/core/orders"
	"farmalink-service/internal/app/services/core/payflow"
	"farmalink-service/internal/app/services/core/payments"
	"farmalink-service/internal/app/services/core/prescriptions"
	"farmalink-service/internal/app/services/core/quotes"
	"farmalink-service/internal/app/services/core/users"
	"farmalink-service/internal/app/services/shared/checkout"
	"farmalink-service/internal/app/services/shared/locker"
	"farmalink-service/internal/app/services/shared/orderevents"
	"farmalink-service/internal/app/services/shared/ratelimiter"
	sharedredis "farmalink-service/internal/app/services/shared/redis"
	sharedstorage "farmalink-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootLog := logger.NewLogrusLogger(internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := driverstorage.NewMinio(driverConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if err := bootstrapingTheApp(bootstrap, minioClient); err != nil {
		bootLog.Fatalf("Failed to bootstrap application: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootLog.Fatalf("Server failed to start: %v", err)
		}
	}()
	bootLog.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	bootLog.Println("Waiting for pending requests to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootLog.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		bootLog.Fatalf("Failed to close application resources: %v", err)
	}

	bootLog.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client) error {
	// Shared services
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)
	storageService := sharedstorage.NewMinioStorage(minioClient, bootstrap.DriverConfig, bootstrap.Logger)
	checkoutProvider := checkout.NewCheckoutService(bootstrap.InternalConfig, resourceLimiter, bootstrap.Logger)

	eventQueue, err := orderevents.NewService(bootstrap.RabbitMQ, bootstrap.Logger, 1)
	if err != nil {
		return err
	}

	// Middlewares
	appMiddlewares := &middlewares.Middlewares{
		Log:             bootstrap.Logger,
		InternalConfig:  bootstrap.InternalConfig,
		ResourceLimiter: resourceLimiter,
	}

	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// User
	userMongoRepository := users.NewUserMongoRepository(bootstrap.MongoDB, dbName)

	// Prescription
	prescriptionMongoRepository := prescriptions.NewPrescriptionMongoRepository(bootstrap.MongoDB, dbName)
	prescriptionUsecase := prescriptions.NewPrescriptionUsecase(prescriptionMongoRepository, storageService, bootstrap.Logger)
	prescriptionController := controllers.NewPrescriptionController(bootstrap.Logger, prescriptionUsecase)

	// Quote
	quoteMongoRepository := quotes.NewQuoteMongoRepository(bootstrap.MongoDB, dbName, redisRepository, bootstrap.Logger)
	quoteUsecase := quotes.NewQuoteUsecase(quoteMongoRepository, bootstrap.Logger)
	quoteController := controllers.NewQuoteController(bootstrap.Logger, quoteUsecase)

	// Order
	orderMongoRepository := orders.NewOrderMongoRepository(bootstrap.MongoDB, dbName)
	orderController := controllers.NewOrderController(bootstrap.Logger, orderMongoRepository)

	// Payment
	paymentUsecase := payments.NewPaymentUsecase(
		orderMongoRepository,
		quoteUsecase,
		userMongoRepository,
		checkoutProvider,
		lockerService,
		eventQueue,
		bootstrap.Logger,
	)
	paymentController := controllers.NewPaymentController(bootstrap.Logger, paymentUsecase)

	// Push notification worker
	notifiedRegistry := payflow.NewNotifiedRegistry()
	notificationSink := payflow.NewLogNotificationSink(bootstrap.Logger)
	notificationWorker := payments.NewNotificationWorker(
		eventQueue,
		orderMongoRepository,
		notifiedRegistry,
		notificationSink,
		bootstrap.Logger,
	)
	workerStop, err := notificationWorker.Start(context.Background())
	if err != nil {
		return err
	}
	bootstrap.WorkerStop = workerStop

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		paymentController,
		orderController,
		quoteController,
		prescriptionController,
	)
	return nil
}
