package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"kiroku/internal/auth"
	"kiroku/internal/client/jikan"
	"kiroku/internal/config"
	cronrunner "kiroku/internal/cron"
	"kiroku/internal/db"
	"kiroku/internal/handler"
	"kiroku/internal/logger"
	gormrepository "kiroku/internal/repository/gorm"
	"kiroku/internal/service"

	_ "kiroku/docs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, envOnly := resolveConfigPath()
		cfg, err := config.Load(path, envOnly)
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.Log)
		if err != nil {
			return err
		}
		defer log.Sync()

		return runServer(cfg, log)
	},
}

func runServer(cfg config.Config, log *zap.Logger) error {
	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		log.Error("db open failed", zap.Error(err))
		return err
	}
	defer db.Close(dbConn)

	if err := db.AutoMigrate(dbConn); err != nil {
		log.Error("auto-migrate failed", zap.Error(err))
		return err
	}

	jikanHTTP := &http.Client{Timeout: cfg.Jikan.Timeout}
	jikanClient := jikan.NewClient(jikanHTTP, cfg.Jikan.BaseURL)
	store := gormrepository.New(dbConn.Gorm)

	authService := &auth.Service{
		Repo:     store,
		Secret:   []byte(cfg.Auth.Secret),
		TokenTTL: cfg.Auth.TokenTTL,
	}
	listService := &service.ListService{Repo: store}
	catalogService := &service.CatalogService{
		Repo:   store,
		Jikan:  jikanClient,
		Logger: log,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn}
	healthHandler.Register(engine)
	authHandler := &handler.AuthHandler{Service: authService, Logger: log}
	authHandler.Register(engine)
	jikanHandler := &handler.JikanHandler{
		Client:  jikanClient,
		Catalog: catalogService,
		Logger:  log,
	}
	jikanHandler.Register(engine)

	authed := engine.Group("/")
	authed.Use(auth.RequireJWT([]byte(cfg.Auth.Secret)))
	listHandler := &handler.ListHandler{Service: listService, Logger: log}
	listHandler.Register(authed)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(log, ctx)
	if cfg.CatalogSync.Enabled {
		maxPages := cfg.CatalogSync.MaxPages
		_, err := cronRunner.Add(cfg.CatalogSync.Schedule, func(ctx context.Context) {
			result, err := catalogService.SyncSeasonNow(ctx, maxPages)
			if err != nil {
				log.Warn("season sync failed", zap.Error(err))
				return
			}
			log.Info("season sync ok",
				zap.Int("pages", result.Pages),
				zap.Int("imported", result.Imported),
				zap.Int("skipped", result.Skipped),
			)
		})
		if err != nil {
			log.Warn("cron register season sync failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
