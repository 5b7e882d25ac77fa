package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/auth"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/bot"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/config"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/handler"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/logger"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/middleware"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/repository/postgres"
	redisrepo "github.com/sachio222/civil-war-strategy-online-sub000/internal/repository/redis"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/service"
)

func main() {
	logger.Init()
	cfg := config.Load()
	bot.GonnxModelPath = cfg.GonnxModelPath
	log.Info().Str("databaseURL", cfg.DatabaseURL).Msg("Config loaded")

	// Database
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer db.Close()

	// Redis
	redisClient, err := redisrepo.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}
	defer redisClient.Close()

	// Enable Redis keyspace notifications for waiting-game expiry events.
	if err := redisClient.Underlying().ConfigSet(context.Background(), "notify-keyspace-events", "Ex").Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to set Redis keyspace notifications (abandoned-game cleanup falls back to polling)")
	}

	// Repos
	userRepo := postgres.NewUserRepo(db)
	gameRepo := postgres.NewGameRepo(db)
	turnRepo := postgres.NewTurnRepo(db)

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret)
	googleOAuth := auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	// WebSocket hub
	wsHub := handler.NewHub()

	// Services
	gameSvc := service.NewGameService(gameRepo, redisClient)
	turnSvc := service.NewTurnService(gameRepo, turnRepo, redisClient, wsHub)
	reaper := service.NewReaper(redisClient.Underlying(), gameRepo, redisClient, wsHub)

	// Handlers
	authHandler := handler.NewAuthHandler(googleOAuth, jwtMgr, userRepo)
	userHandler := handler.NewUserHandler(userRepo, gameSvc)
	gameHandler := handler.NewGameHandler(gameSvc, jwtMgr, wsHub)
	turnHandler := handler.NewTurnHandler(turnSvc)
	wsHandler := handler.NewWSHandler(wsHub, gameSvc)

	// Router
	mux := http.NewServeMux()
	sideMw := auth.SideMiddleware(jwtMgr)
	userMw := auth.Middleware(jwtMgr)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Game lifecycle (public; the join code is the capability)
	mux.HandleFunc("POST /api/v1/games", gameHandler.CreateGame)
	mux.HandleFunc("POST /api/v1/games/{code}/join", gameHandler.JoinGame)
	mux.HandleFunc("GET /api/v1/games/{code}", gameHandler.GameStatus)
	mux.HandleFunc("GET /api/v1/games/{code}/turns", turnHandler.ListTurns)
	mux.HandleFunc("GET /api/v1/games/{code}/ws", wsHandler.ServeWS)

	// Turn exchange (side token required)
	mux.Handle("POST /api/v1/games/{code}/turn", sideMw(http.HandlerFunc(turnHandler.SubmitTurn)))
	mux.Handle("GET /api/v1/games/{code}/turn", sideMw(http.HandlerFunc(turnHandler.PollTurn)))
	mux.Handle("POST /api/v1/games/{code}/phase", sideMw(http.HandlerFunc(turnHandler.SetPhase)))

	// Accounts
	mux.HandleFunc("POST /api/v1/auth/google", authHandler.GoogleAuth)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.RefreshToken)
	mux.Handle("GET /api/v1/me", userMw(http.HandlerFunc(userHandler.GetMe)))
	mux.Handle("PATCH /api/v1/me", userMw(http.HandlerFunc(userHandler.UpdateMe)))

	// Apply global middleware
	root := middleware.Chain(mux, middleware.Logger, middleware.CORS(cfg.AllowedOrigins), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reaper.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
