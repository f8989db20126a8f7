package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cardRevealServer/api"
	"cardRevealServer/config"
	"cardRevealServer/crypto"
	"cardRevealServer/db"
	"cardRevealServer/game"
	"cardRevealServer/logger"
	"cardRevealServer/metrics"
	"cardRevealServer/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load .env file
	envLoaded := config.LoadEnv()

	_, levelErr := logger.Init(os.Getenv("LOG_LEVEL"))
	if levelErr != nil {
		logger.Init("info")
	}
	defer logger.Sync()
	log := logger.S()
	if levelErr != nil {
		log.Warnf("⚠️  %v, falling back to info", levelErr)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	if envLoaded {
		log.Info("✅ Loaded environment variables from .env")
	} else {
		log.Warn("⚠️  Warning: .env file not found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pay table
	payTable := config.DefaultPayTable()
	if cfg.PayTablePath != "" {
		payTable, err = config.LoadPayTable(cfg.PayTablePath)
		if err != nil {
			log.Fatalf("❌ Failed to load pay table: %v", err)
		}
		log.Infof("📄 Pay table loaded from %s", cfg.PayTablePath)
	}

	// RNG seed: fixed from env for reproducible sessions, random otherwise.
	seed := cfg.RNGSeed
	if seed == "" {
		var hash string
		seed, hash, err = crypto.GenerateSeed()
		if err != nil {
			log.Fatalf("❌ Failed to generate RNG seed: %v", err)
		}
		log.Infof("🎲 Session seed hash: %s", hash)
	} else {
		log.Infof("🎲 Using fixed RNG seed (hash %s)", crypto.HashSeed(seed))
	}

	table, err := payTable.Build(game.NewSeededRNG(seed).Float64)
	if err != nil {
		log.Fatalf("❌ Invalid pay table: %v", err)
	}
	log.Infof("📊 Theoretical RTP: %.4f", game.TheoreticalRTP(table))

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	// Settings store (optional)
	var store *db.SettingsStore
	if cfg.RedisURL != "" {
		client, err := db.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warnf("⚠️  Warning: Redis initialization failed: %v", err)
			log.Warn("   Bet and speed settings will not be saved")
		} else {
			defer client.Close()
			store = db.NewSettingsStore(client, cfg.Profile)
		}
	} else {
		log.Info("ℹ️  REDIS_URL not set, settings persistence disabled")
	}

	// Presentation hub
	hub := ws.NewHub()
	hub.OnClientCount(func(n int) { recorder.ConnectedClients.Set(float64(n)) })
	go hub.Run(ctx)

	presenter := ws.NewPresenter(hub, cfg.FlipAckGrace)
	presenter.OnAckTimeout(recorder.FlipAckTimeouts.Inc)

	engine, err := game.NewEngine(table, payTable.Bets, presenter,
		game.WithTimings(game.DefaultTimings(cfg.HoldBand)),
		game.WithBetIndex(cfg.DefaultBetIndex),
		game.WithObserver(recorder),
		game.WithLogger(logger.Named("engine")),
	)
	if err != nil {
		log.Fatalf("❌ Failed to create engine: %v", err)
	}
	defer engine.Close()

	var saver ws.SettingsSaver
	var health api.HealthChecker
	if store != nil {
		saver, health = store, store
		restoreSettings(ctx, store, engine)
	}

	router := api.NewRouter(api.Deps{
		Engine:      engine,
		WS:          ws.NewHandler(hub, engine, presenter, saver),
		Metrics:     recorder.Handler(),
		Settings:    health,
		AllowOrigin: config.AllowOrigin,
	})

	srv := &http.Server{Addr: cfg.ServerAddr, Handler: router}

	log.Infof("🚀 Server starting on %s", cfg.ServerAddr)
	log.Info("📡 WebSocket Endpoint:")
	log.Info("   /ws - card reveal presentation + controls")
	log.Info("🔌 API Endpoints:")
	log.Info("   GET  /api/health - Health check (engine + Redis)")
	log.Info("   GET  /api/state - Engine snapshot")
	log.Info("   GET  /api/paytable - Pay table rows")
	log.Info("   GET  /api/rtp - Theoretical return to player")
	log.Info("   POST /api/action/{action} - play, start_round, cycle_bet, cycle_speed, toggle_autoplay, toggle_paytable")
	log.Info("   GET  /metrics - Prometheus metrics")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("⚠️  Server shutdown error: %v", err)
	}
}

func restoreSettings(ctx context.Context, store *db.SettingsStore, engine *game.Engine) {
	log := logger.S()

	ctx, cancel := context.WithTimeout(ctx, config.RedisOpTimeout)
	defer cancel()

	saved, found, err := store.Load(ctx)
	switch {
	case err != nil:
		log.Warnf("⚠️  Failed to load saved settings: %v", err)
	case !found:
		log.Info("ℹ️  No saved settings for this profile")
	default:
		if _, err := engine.ApplySettings(saved); err != nil {
			log.Warnf("⚠️  Ignoring saved settings: %v", err)
			return
		}
		log.Infof("♻️  Restored settings: bet %s, %s", game.BetLabel(engine.BetAmount()), engine.SpeedLabel())
	}
}
