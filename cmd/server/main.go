package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hangwa-be/internal/adminsetting"
	"hangwa-be/internal/cache"
	"hangwa-be/internal/config"
	"hangwa-be/internal/dashboard"
	"hangwa-be/internal/db"
	"hangwa-be/internal/httpapi"
	"hangwa-be/internal/logger"
	"hangwa-be/internal/middleware"
	"hangwa-be/internal/order"
	"hangwa-be/internal/payment"
	"hangwa-be/internal/setting"
	"hangwa-be/internal/user"
	"hangwa-be/internal/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = serve
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return user.ErrMissingSecret
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// An interface-typed nil keeps the settings service on the database path.
	var settingsCache setting.SnapshotCache
	if cfg.RedisURL != "" {
		c, err := cache.Initialize(ctx, cfg.RedisURL)
		if err != nil {
			logger.L().Warn("settings cache disabled", zap.Error(err))
		} else {
			defer c.Close()
			settingsCache = c
		}
	}

	users := user.NewService(user.NewRepository(database), user.NewTokenManager(cfg.JWTSecret))
	if err := bootstrapManager(ctx, users, cfg.ManagerUsername, cfg.ManagerPassword); err != nil {
		return err
	}

	handler := newServer(ctx, cfg, database, settingsCache)

	logger.L().Info("http server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
	return startServerFunc(":"+cfg.AppPort, handler)
}

// newServer builds the services and wraps the router in the middleware chain.
// The limiter's cleanup loop stops when ctx is cancelled.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB, settingsCache setting.SnapshotCache) http.Handler {
	settingSvc := setting.NewService(setting.NewRepository(database), settingsCache, cfg.SettingsCacheTTL)
	orderSvc := order.NewService(order.NewRepository(database), payment.NewRepository(database), settingSvc)

	tokens := user.NewTokenManager(cfg.JWTSecret)
	userSvc := user.NewService(user.NewRepository(database), tokens)

	api := httpapi.NewHandler(httpapi.Deps{
		Orders:        orderSvc,
		Settings:      settingSvc,
		AdminSettings: adminsetting.NewRepository(database),
		Dashboard:     dashboard.NewRepository(database),
		Users:         userSvc,
		SMSShortcut:   cfg.SMSShortcutName,
		SecureCookies: cfg.AppEnv == "production",
	})

	limiter := middleware.NewLimiter()
	go limiter.Run(ctx)

	var h http.Handler = setupRouter(api)
	h = limiter.Middleware(h)
	h = middleware.Authenticate(tokens)(h)
	h = middleware.CORS(cfg.CORSOrigin)(h)
	h = middleware.Metrics(h)
	h = logger.LoggingMiddleware(h)
	h = logger.RequestIDMiddleware(h)
	return h
}

// bootstrapManager creates the first manager account when credentials are
// configured. An existing account with that username is left untouched.
func bootstrapManager(ctx context.Context, users user.Service, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := users.Register(ctx, username, password, user.RoleManager)
	switch {
	case errors.Is(err, user.ErrUsernameTaken):
		logger.L().Debug("manager account already exists", zap.String("username", username))
		return nil
	case err != nil:
		return fmt.Errorf("bootstrap manager: %w", err)
	}

	logger.L().Info("manager account created", zap.String("username", username))
	return nil
}

func setupRouter(api *httpapi.Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api.Register(r)
	return r
}

// serve runs the server until SIGINT or SIGTERM, then drains in-flight
// requests.
func serve(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
