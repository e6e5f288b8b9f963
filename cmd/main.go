package main

import (
	"net/http"
	"os"
	"time"

	"learnbrightly/api/handler"
	apiMiddleware "learnbrightly/api/middleware"
	"learnbrightly/api/routes"
	"learnbrightly/config"
	"learnbrightly/internal/repository"
	"learnbrightly/internal/service"
	"learnbrightly/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	db := config.ConnectionDb()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	secret := []byte(os.Getenv("JWT_SECRET"))
	issuer := os.Getenv("JWT_ISSUER")
	if len(secret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}

	jwtManager := utils.JWTManager{
		Secret:   secret,
		Issuer:   issuer,
		TokenTTL: 24 * time.Hour,
	}
	tokenIssuer := service.JWTTokenIssuer{Manager: &jwtManager}

	studentRepo := repository.NewStudentRepository(db)
	parentRepo := repository.NewParentRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	eventRepo := repository.NewAuthEventRepository(db)

	// Without a configured sender accounts are verified at signup and no
	// verification emails go out.
	var emailSender service.EmailSender
	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		emailSender = service.NewResendEmailSender(
			apiKey,
			os.Getenv("EMAIL_FROM"),
			os.Getenv("CLIENT_URL"),
		)
	} else {
		logger.Warn("RESEND_API_KEY not set, email verification disabled")
	}

	accountService := service.NewAccountService(
		studentRepo,
		parentRepo,
		scoreRepo,
		eventRepo,
		emailSender,
		service.NewMemoryVerificationStore(),
		service.BcryptPasswordHasher{},
		tokenIssuer,
		service.RealClock{},
		service.AuthConfig{
			TokenTTL:             24 * time.Hour,
			VerificationTokenTTL: 24 * time.Hour,
		},
	)

	authHandler := handler.NewAuthHandler(accountService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{Verifier: accountService}
	router := routes.NewRouter(app, authHandler, authMiddleware)
	router.RegisterRoutes()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", addr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
