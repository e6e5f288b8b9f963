package routes

import (
	"learnbrightly/api/handler"
	"learnbrightly/api/middleware"
	"learnbrightly/internal/entity"

	"github.com/labstack/echo/v4"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	AuthMiddleware middleware.AuthMiddleware
}

func NewRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		AuthMiddleware: authMiddleware,
	}
}

func (r *Router) RegisterRoutes() {
	auth := r.Echo.Group("/api/auth")

	auth.POST("/signup", r.Auth.Signup)
	auth.POST("/login", r.Auth.Login)
	auth.POST("/verify-email", r.Auth.VerifyEmail)
	auth.POST("/resend-verification", r.Auth.ResendVerification)
	auth.POST("/logout", r.Auth.Logout)

	auth.GET("/verify", r.Auth.Verify, r.AuthMiddleware.RequireAuth)
	auth.POST("/update-dyslexia-score", r.Auth.UpdateDyslexiaScore, r.AuthMiddleware.RequireAuth)
	auth.GET("/dyslexia-score", r.Auth.GetDyslexiaScore, r.AuthMiddleware.RequireAuth)
	auth.GET("/reading-preferences", r.Auth.GetReadingPreferences, r.AuthMiddleware.RequireAuth)
	auth.POST("/reading-preferences", r.Auth.UpdateReadingPreferences, r.AuthMiddleware.RequireAuth)
	auth.POST("/update-account", r.Auth.UpdateAccount, r.AuthMiddleware.RequireAuth)
	auth.GET("/notification-settings", r.Auth.GetNotificationSettings, r.AuthMiddleware.RequireAuth)
	auth.POST("/update-notification-settings", r.Auth.UpdateNotificationSettings, r.AuthMiddleware.RequireAuth)

	auth.POST("/link-child", r.Auth.LinkChild, r.AuthMiddleware.RequireAuth, middleware.RequireRole(entity.RoleParent))
	auth.GET("/children", r.Auth.GetChildren, r.AuthMiddleware.RequireAuth, middleware.RequireRole(entity.RoleParent))
}
