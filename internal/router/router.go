package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"medibook/internal/config"
	"medibook/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	calendarHandler *handler.CalendarHandler,
	appointmentHandler *handler.AppointmentHandler,
	categoryHandler *handler.CategoryHandler,
	blogHandler *handler.BlogHandler,
	doctorHandler *handler.DoctorHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/categories", categoryHandler.List)
	api.GET("/blogposts", blogHandler.ListPublished)
	api.GET("/blogposts/filtered", blogHandler.ListFiltered)
	api.GET("/doctors", doctorHandler.ListFiltered)
	api.GET("/seed/categories", seedHandler.SeedCategories)

	// Secured routes (require JWT authentication)
	secured := api.Group("", JWTMiddleware(cfg.JWTSecret))

	// Calendar credential flow
	secured.GET("/auth/google/callback", calendarHandler.Callback)

	// Appointment routes
	secured.POST("/appointments", appointmentHandler.Book)
	secured.GET("/appointments", appointmentHandler.ListByPatient)
	secured.GET("/doc-appointments", appointmentHandler.ListByDoctor)

	// User routes
	secured.GET("/users/details", doctorHandler.UserDetails)
	secured.POST("/blogposts", blogHandler.Create)
	secured.GET("/users/blogposts", blogHandler.ListByAuthor)
}

// JWTMiddleware authenticates requests carrying a "Bearer <token>" header.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
