package main

import (
	"log"
	"net/http"

	"medibook/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"medibook/internal/auth"
	"medibook/internal/cache"
	"medibook/internal/calendar"
	"medibook/internal/config"
	"medibook/internal/db"
	"medibook/internal/handler"
	"medibook/internal/model"
	"medibook/internal/repository"
	"medibook/internal/router"
	"medibook/internal/service"
)

// @title Medibook API
// @version 1.0
// @description Doctor/patient appointment platform with calendar synchronization, role-based registration, and a doctors' blog.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Doctor{},
		&model.Category{},
		&model.Appointment{},
		&model.BlogPost{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	doctorRepo := repository.NewDoctorRepository(gormDB)
	appointmentRepo := repository.NewAppointmentRepository(gormDB)
	blogRepo := repository.NewBlogRepository(gormDB)

	// Initialize auth and calendar components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	provider := calendar.NewGoogleProvider(cfg)

	// Initialize services
	registrationService := service.NewRegistrationService(userRepo, categoryRepo, cfg.DefaultAvatar)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, provider, cfg.DefaultAvatar)
	calendarAuthService := service.NewCalendarAuthService(provider, tokenStore)
	bookingService := service.NewBookingService(userRepo, doctorRepo, appointmentRepo, provider, cacheClient, cfg.CalendarTimeZone)
	queryService := service.NewAppointmentQueryService(userRepo, doctorRepo, appointmentRepo, cacheClient, cfg.DefaultAvatar)
	categoryService := service.NewCategoryService(categoryRepo)
	blogService := service.NewBlogService(blogRepo, doctorRepo, categoryRepo)
	doctorService := service.NewDoctorService(userRepo, doctorRepo, categoryRepo, cfg.DefaultAvatar)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(registrationService, authService)
	calendarHandler := handler.NewCalendarHandler(calendarAuthService)
	appointmentHandler := handler.NewAppointmentHandler(bookingService, queryService, calendarAuthService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	blogHandler := handler.NewBlogHandler(blogService)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	seedHandler := handler.NewSeedHandler(categoryService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		calendarHandler,
		appointmentHandler,
		categoryHandler,
		blogHandler,
		doctorHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
