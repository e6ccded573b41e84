package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mock-interview-service/internal/app"
	"mock-interview-service/internal/config"
	"mock-interview-service/internal/domain"
	"mock-interview-service/internal/evaluation"
	"mock-interview-service/internal/executor"
	"mock-interview-service/internal/infra/memory"
	pgloader "mock-interview-service/internal/infra/postgres"
	redisstore "mock-interview-service/internal/infra/redis"
	transport "mock-interview-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the interview server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "5000"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 24*time.Hour)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(nil)
	if pool != nil {
		pg := pgloader.NewQuestionLoader(pool)
		if err := seedQuestionSets(ctx, pg, memory.DefaultQuestionSets()); err != nil {
			return err
		}
		loader = pg
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	var questions app.QuestionBank
	if redisClient != nil {
		questions = redisstore.NewQuestionBank(redisClient, loader, questionTTL)
	} else {
		questions = memory.NewQuestionBank(loader, questionTTL)
	}

	var rooms app.RoomRepository
	if redisClient != nil {
		redisRooms := redisstore.NewRoomStore(redisClient, redisTTL)
		if known, err := redisRooms.KnownRooms(ctx); err != nil {
			log.Warn().Str("module", "cli").Err(err).Msg("could not list rooms registered in redis")
		} else {
			log.Info().Str("module", "cli").Int("rooms", len(known)).Msg("rooms registered in redis by earlier instances")
		}
		rooms = redisRooms
	} else {
		rooms = memory.NewRoomStore()
	}

	hub := transport.NewHub()
	coordinator := app.NewCoordinator(rooms, hub)

	var llm evaluation.Completer
	if chat := evaluation.NewChatClient(evaluation.LLMConfig{
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Timeout:     config.TTLDuration(cfg.AI.Timeout, time.Minute),
	}); chat != nil {
		llm = chat
	} else {
		log.Warn().Str("module", "cli").Msg("OPENROUTER_API_KEY not set, evaluations use the deterministic fallback")
	}
	orchestrator := evaluation.NewOrchestrator(llm, evaluation.Options{
		VoiceTimeout:  config.TTLDuration(cfg.AI.VoiceTimeout, 20*time.Second),
		ReportTimeout: config.TTLDuration(cfg.AI.ReportTimeout, 45*time.Second),
		Concurrency:   cfg.AI.Concurrency,
	})

	var exec transport.Executor
	if cfg.Executor.URL != "" {
		exec = executor.NewClient(cfg.Executor.URL, config.TTLDuration(cfg.Executor.Timeout, 15*time.Second))
	}

	wsHandler := transport.NewWSHandler(coordinator, hub, transport.WSConfig{
		SendBuffer:      cfg.WebSocket.SendBuffer,
		MaxMessageBytes: cfg.WebSocket.MaxMessageBytes,
		PingInterval:    config.TTLDuration(cfg.WebSocket.PingInterval, 0),
		PongWait:        config.TTLDuration(cfg.WebSocket.PongWait, 0),
		WriteWait:       config.TTLDuration(cfg.WebSocket.WriteWait, 0),
	})

	server := &http.Server{
		Addr: ":" + finalPort,
		Handler: transport.NewRouter(&transport.Container{
			Coordinator: coordinator,
			Evaluator:   orchestrator,
			Executor:    exec,
			Questions:   questions,
			WS:          wsHandler,
			PublicURL:   cfg.Server.PublicURL,
		}),
		ReadHeaderTimeout: 15 * time.Second,
	}
	server.RegisterOnShutdown(wsHandler.CloseAll)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("module", "cli").Str("addr", server.Addr).
			Bool("redis", redisClient != nil).Bool("postgres", pool != nil).
			Bool("ai", orchestrator.Enabled()).Bool("executor", exec != nil).
			Msg("starting interview service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Str("module", "cli").Msg("shutting down server...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// seedQuestionSets stores the built-in sets for any difficulty missing from the database.
func seedQuestionSets(ctx context.Context, loader *pgloader.QuestionLoader, sets map[string]domain.QuestionSet) error {
	for difficulty, set := range sets {
		_, err := loader.LoadQuestionSet(ctx, difficulty)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrQuestionSetNotFound) {
			return err
		}
		if err := loader.SaveQuestionSet(ctx, set); err != nil {
			return err
		}
		log.Info().Str("module", "cli").Str("difficulty", difficulty).Msg("seeded question set")
	}
	return nil
}
