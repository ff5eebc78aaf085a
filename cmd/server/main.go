package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"health-insights/internal/api"
	"health-insights/internal/config"
	"health-insights/internal/diary"
	"health-insights/internal/food"
	"health-insights/internal/insights"
	"health-insights/internal/logging"
	"health-insights/internal/logs"
	"health-insights/internal/metrics"
	"health-insights/internal/store"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	// .env is optional, real env vars win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("load .env: %s", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	// Logger
	recentLogs := logs.NewLogger(cfg.LogBufferSize, logs.ParseLevel(cfg.LogLevel))
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "health-insights",
		Hooks:            []log.Hook{recentLogs},
	})
	defer sentry.Flush(2 * time.Second)

	log.Warnf("---->> running in [%s] environment", cfg.Environment)

	// Metrics
	metricsRegistry := metrics.NewRegistry()
	promRegistry := metrics.SetupPrometheus(metricsRegistry)

	// Store
	seed := insights.SampleData(time.Now())
	if cfg.SeedDataPath != "" {
		seed, err = store.LoadSeed(cfg.SeedDataPath, time.Now())
		if err != nil {
			log.Fatalf("load seed data: %s", err)
		}
		log.Infof("seed data loaded from %s", cfg.SeedDataPath)
	} else {
		log.Debugln("no seed data path set, using sample data")
	}
	dataStore := store.NewStore(metricsRegistry, seed)

	// Engine
	engine := insights.NewEngine(dataStore, metricsRegistry)

	// Food recognition
	foodSeed := cfg.FoodRandomSeed
	if foodSeed == 0 {
		foodSeed = time.Now().UnixNano()
	}
	analyzer := food.NewAnalyzer(rand.New(rand.NewSource(foodSeed)), metricsRegistry)

	// Diary
	foodDiary := diary.New(metricsRegistry)

	// API
	handler := api.NewHandler(
		engine,
		dataStore,
		analyzer,
		foodDiary,
		metricsRegistry,
		recentLogs,
	)

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(handler, promRegistry, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infof("server started on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %s", err)
		}
	}()

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("server shutdown: %s", err)
		return
	}
	log.Infoln("server stopped")
}
