package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/static"

	"github.com/asre459/menna/internal/config"
	"github.com/asre459/menna/internal/database/mongo"
	"github.com/asre459/menna/internal/database/redis"
	"github.com/asre459/menna/internal/events"
	"github.com/asre459/menna/internal/handlers"
	"github.com/asre459/menna/internal/middleware"
	"github.com/asre459/menna/internal/models"
	"github.com/asre459/menna/internal/repository"
	"github.com/asre459/menna/internal/service"
	"github.com/asre459/menna/internal/storage"
	"github.com/asre459/menna/pkg/discovery"
)

func setupLogging(logDir string) (*os.File, error) {
	if logDir == "" {
		return nil, nil
	}

	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

// ServiceContainer holds all service dependencies
type ServiceContainer struct {
	UserService      *service.UserService
	DonationService  *service.DonationService
	MediaService     *service.MediaService
	JWTService       *service.JWTService
	EventPublisher   events.Publisher
	ServiceDiscovery *discovery.ServiceRegistry
}

func main() {
	cfg := config.Load()

	logFile, err := setupLogging(cfg.Server.LogDir)
	if err != nil {
		log.Printf("Warning: Failed to set up logging: %v", err)
	} else if logFile != nil {
		defer logFile.Close()
	}

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	if err := mongo.InitMongoDB(&cfg.MongoDB); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer mongo.CloseDB()

	redis.InitRedis(&cfg.Redis)
	defer redis.CloseRedis()

	store, err := storage.NewDiskStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	eventPublisher, err := events.NewEventPublisher(cfg.RabbitMQ.URI)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}
	defer eventPublisher.Close()

	userRepository := repository.NewUserRepository(mongo.Database)
	donationRepository := repository.NewDonationRepository(mongo.Database)
	mediaRepository := repository.NewMediaRepository(mongo.Database)
	redisRepository := repository.NewRedisRepo()

	container := &ServiceContainer{
		UserService:     service.NewUserService(userRepository, redisRepository, eventPublisher),
		DonationService: service.NewDonationService(donationRepository, eventPublisher),
		MediaService:    service.NewMediaService(mediaRepository, store, cfg.Upload.PublicPath, cfg.Upload.MaxFileSize, eventPublisher),
		JWTService:      service.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry),
		EventPublisher:  eventPublisher,
	}

	if cfg.Consul.Address != "" {
		serviceDiscovery, err := discovery.NewServiceRegistry(cfg)
		if err != nil {
			log.Printf("Warning: Failed to create Consul client: %v", err)
		} else if err := serviceDiscovery.Register(); err != nil {
			log.Printf("Warning: Failed to register with Consul: %v", err)
		} else {
			container.ServiceDiscovery = serviceDiscovery
			defer serviceDiscovery.Deregister()
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Upload.MaxFileSize) + 1024*1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	app.Use(cfg.Upload.PublicPath, static.New(cfg.Upload.Dir))

	requireAdmin := middleware.RequireRole(container.JWTService, models.RoleAdmin)

	handlers.NewAuthHandler(container.UserService, container.JWTService).RegisterRoutes(app)
	handlers.NewDashboardHandler(container.DonationService, container.MediaService, container.UserService).RegisterRoutes(app, requireAdmin)
	handlers.NewDonationHandler(container.DonationService).RegisterRoutes(app, requireAdmin)
	handlers.NewMediaHandler(container.MediaService).RegisterRoutes(app, requireAdmin)
	handlers.NewUserHandler(container.UserService).RegisterRoutes(app, requireAdmin)

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := app.Listen(cfg.Server.Host + ":" + cfg.Server.Port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	<-doneChan
	log.Println("Server exited, goodbye!")
}
