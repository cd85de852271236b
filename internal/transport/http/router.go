package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/wishify/wishify/internal/transport/http/handler"
	"github.com/wishify/wishify/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, wishHandler *handler.WishHandler, jwtKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(jwtKey)

	// Public credential routes
	users := r.Group("/users")
	users.POST("", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/me", authMW, authHandler.Me)

	// Protected wish routes
	wishes := r.Group("/wishes", authMW)
	wishes.GET("", wishHandler.List)
	wishes.POST("", wishHandler.Create)
	wishes.DELETE("/:id", wishHandler.Delete)

	return r
}
