package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tourpricing/internal/config"
	"tourpricing/internal/database"
	"tourpricing/internal/logging"
	"tourpricing/internal/middleware"
	"tourpricing/internal/modules/quote"
	"tourpricing/internal/modules/rates"
	"tourpricing/internal/modules/snapshot"
	"tourpricing/internal/modules/variant"
	jwtsvc "tourpricing/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.Initialize(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Output:      "stderr",
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		panic(err)
	}
	defer logging.Sync()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	rateService := rates.NewService(db, rates.Options{
		Precision:  cfg.CurrencyPrecision,
		MaxRetries: cfg.RateInsertMaxRetries,
		Logger:     log,
	})
	rateHandler := rates.NewHandler(rateService)

	variantService := variant.NewService(db, cfg.CurrencyPrecision, log)
	variantHandler := variant.NewHandler(variantService)

	aggregator := quote.NewAggregator(rateService.Resolver(), cfg.CurrencyPrecision, log)
	quoteService := quote.NewService(aggregator, variantService.Repository(), cfg.DefaultMarkupPercent, log)
	quoteHandler := quote.NewHandler(quoteService)

	snapshotService := snapshot.NewService(db, cfg.CurrencyPrecision, log)
	snapshotHandler := snapshot.NewHandler(snapshotService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.ErrorLogger(log), middleware.RequestLogger(log), middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// operator endpoints change rates, itineraries and snapshots
		operator := v1.Group("/")
		operator.Use(middleware.JWTAuth(j), middleware.OperatorOnly())

		rateHandler.RegisterRoutes(v1, operator)
		variantHandler.RegisterRoutes(v1, operator)
		quoteHandler.RegisterRoutes(v1)
		snapshotHandler.RegisterRoutes(v1, operator)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}
	log.Info("http server stopped")
}
