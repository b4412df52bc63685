package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"carlog/internal/auth"
	"carlog/internal/handler"
	"carlog/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	sessions auth.SessionStore,
	authHandler *handler.AuthHandler,
	historyHandler *handler.HistoryHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// History routes; the middleware resolves the session cookie into a
	// Principal once per request, enforcement happens downstream.
	vehicles := e.Group("/vehicles", middleware.SessionPrincipal(sessions))
	vehicles.POST("/:id/services", historyHandler.CreateServiceRecord)
	vehicles.POST("/:id/accidents", historyHandler.CreateAccidentHistory)
}
